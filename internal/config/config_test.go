package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_COOKIE", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("RAZORPAY_KEY_ID", "")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "bt_sid", cfg.SessionCookie)
	assert.Equal(t, "admin@budgetthreads.com", cfg.AdminEmail)
	assert.Equal(t, "https://api.razorpay.com", cfg.RazorpayBaseURL)
	assert.Empty(t, cfg.RazorpayKeyID)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("BREAKER_FAILURES", "nope")
	t.Setenv("SESSION_MAX_AGE_DAYS", "2")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.BreakerFailures)
	assert.Equal(t, 48*time.Hour, cfg.SessionMaxAge)
}
