package httpserver

import (
	"net/http"
	"strings"
	"time"

	"budgetthreads/internal/resilience"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCtxKey = "sessionID"

// requestLogger emits one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if resilience.Degraded(c.Request.Context()) {
			fields = append(fields, zap.Bool("fallback", true))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// markerMiddleware attaches a fresh degradation marker to the request.
func markerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := resilience.WithMarker(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// sessionMiddleware resolves the visitor id from the session cookie and sets
// the cookie when a new id was minted.
func sessionMiddleware(resolver SessionResolver, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		marker, _ := c.Cookie(cfg.CookieName)
		sid, minted := resolver.Resolve(marker)
		if minted {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid, int(cfg.MaxAge.Seconds()), "/", "", false, false)
		}
		c.Set(sessionCtxKey, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// respond writes body as JSON, adding "fallback": true when any store call
// for this request was served by the fallback store.
func respond(c *gin.Context, status int, body gin.H) {
	if resilience.Degraded(c.Request.Context()) {
		body["fallback"] = true
		c.Header("X-Storefront-Fallback", "true")
	}
	c.JSON(status, body)
}

// respondList writes a bare JSON array; degradation is reported by header only.
func respondList(c *gin.Context, list interface{}) {
	if resilience.Degraded(c.Request.Context()) {
		c.Header("X-Storefront-Fallback", "true")
	}
	c.JSON(http.StatusOK, list)
}
