package httpserver

import (
	"net/http"

	"budgetthreads/internal/domain"
	accountsvc "budgetthreads/internal/service/account"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Token: u.Token}
}

func (h *handlers) register(c *gin.Context) {
	var in accountsvc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Missing required fields")
		return
	}
	u, err := h.deps.AccountSvc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Missing email or password")
		return
	}
	u, err := h.deps.AccountSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *handlers) me(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	u, err := h.deps.AccountSvc.LookupByToken(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": h.deps.AccountSvc.IsAdmin(u),
	})
}

func (h *handlers) adminOrders(c *gin.Context) {
	if _, err := h.deps.AccountSvc.RequireAdmin(c.Request.Context(), bearerToken(c)); err != nil {
		writeError(c, err)
		return
	}
	orders, err := h.deps.OrderSvc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": orders, "count": len(orders)})
}
