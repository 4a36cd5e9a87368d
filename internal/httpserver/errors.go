package httpserver

import (
	"errors"
	"net/http"

	"budgetthreads/internal/domain"
	accountsvc "budgetthreads/internal/service/account"
	checkoutsvc "budgetthreads/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var providerErr *checkoutsvc.PaymentProviderError
	switch {
	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Razorpay order failed", "detail": providerErr.Detail})
	case errors.Is(err, checkoutsvc.ErrProviderNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing Razorpay keys"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, accountsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, accountsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, accountsvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "service temporarily unavailable"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
