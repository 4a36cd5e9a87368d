package httpserver

import (
	"errors"
	"net/http"

	"budgetthreads/internal/domain"
	designsvc "budgetthreads/internal/service/design"
	reviewsvc "budgetthreads/internal/service/review"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.CatalogSvc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respondList(c, products)
}

func (h *handlers) createDesign(c *gin.Context) {
	var in designsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "title, description, and frontImage are required")
		return
	}
	d, err := h.deps.DesignSvc.Create(c.Request.Context(), sessionID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": d.ID})
}

func (h *handlers) getDesign(c *gin.Context) {
	d, err := h.deps.DesignSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": d})
}

func (h *handlers) listDesigns(c *gin.Context) {
	designs, err := h.deps.DesignSvc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": designs})
}

// Review endpoints report failures under "error" rather than "message".
func (h *handlers) createReview(c *gin.Context) {
	var in reviewsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing productId or rating"})
		return
	}
	if _, err := h.deps.ReviewSvc.Create(c.Request.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing productId or rating"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) listReviews(c *gin.Context) {
	reviews, err := h.deps.ReviewSvc.List(c.Request.Context(), c.Query("productId"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respondList(c, reviews)
}
