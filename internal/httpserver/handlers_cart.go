package httpserver

import (
	"errors"
	"io"
	"net/http"

	cartsvc "budgetthreads/internal/service/cart"
	checkoutsvc "budgetthreads/internal/service/checkout"
	ordersvc "budgetthreads/internal/service/order"
	"github.com/gin-gonic/gin"
)

// bindOptionalJSON decodes the body into dst; an empty body leaves dst as is.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *handlers) getCart(c *gin.Context) {
	items, err := h.deps.CartSvc.Read(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *handlers) addToCart(c *gin.Context) {
	var draft cartsvc.Draft
	if err := bindOptionalJSON(c, &draft); err != nil {
		badRequest(c, "invalid cart item payload")
		return
	}
	item, count, err := h.deps.CartSvc.Add(c.Request.Context(), sessionID(c), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": item, "count": count})
}

func (h *handlers) removeFromCart(c *gin.Context) {
	var in cartsvc.RemoveInput
	if err := bindOptionalJSON(c, &in); err != nil {
		badRequest(c, "invalid remove payload")
		return
	}
	items, err := h.deps.CartSvc.Remove(c.Request.Context(), sessionID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *handlers) checkout(c *gin.Context) {
	q, err := h.deps.CheckoutSvc.Quote(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"ok":       true,
		"amount":   q.Amount,
		"currency": q.Currency,
		"items":    q.Items,
		"shipment": q.Shipment,
	})
}

func (h *handlers) createPaymentOrder(c *gin.Context) {
	po, err := h.deps.CheckoutSvc.CreatePaymentOrder(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"order":     po.Order,
		"publicKey": po.PublicKey,
		"amountINR": po.AmountINR,
		"shipment":  po.Shipment,
	})
}

func (h *handlers) completePayment(c *gin.Context) {
	var in checkoutsvc.CompleteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "orderId and amountINR required")
		return
	}
	done, err := h.deps.CheckoutSvc.CompletePayment(c.Request.Context(), sessionID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"ok": true, "order": done.Order, "notified": done.Notified})
}

func (h *handlers) recordOrder(c *gin.Context) {
	var in ordersvc.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid order payload")
		return
	}
	sid := sessionID(c)
	in.SessionID = &sid
	o, err := h.deps.OrderSvc.Record(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"ok": true, "data": o})
}
