package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/events"
	"budgetthreads/internal/payment/razorpay"
	cartrepo "budgetthreads/internal/repository/cart"
	designrepo "budgetthreads/internal/repository/design"
	"budgetthreads/internal/repository/memory"
	orderrepo "budgetthreads/internal/repository/order"
	productrepo "budgetthreads/internal/repository/product"
	reviewrepo "budgetthreads/internal/repository/review"
	userrepo "budgetthreads/internal/repository/user"
	"budgetthreads/internal/resilience"
	"budgetthreads/internal/seed"
	accountsvc "budgetthreads/internal/service/account"
	cartsvc "budgetthreads/internal/service/cart"
	catalogsvc "budgetthreads/internal/service/catalog"
	checkoutsvc "budgetthreads/internal/service/checkout"
	designsvc "budgetthreads/internal/service/design"
	ordersvc "budgetthreads/internal/service/order"
	reviewsvc "budgetthreads/internal/service/review"
	"budgetthreads/internal/service/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cookieName = "bt_sid"

type stubProvider struct {
	configured bool
	err        error
}

func (p *stubProvider) Configured() bool  { return p.configured }
func (p *stubProvider) PublicKey() string { return "rzp_test_key" }

func (p *stubProvider) CreateOrder(_ context.Context, req razorpay.OrderRequest) (*razorpay.Order, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &razorpay.Order{ID: "order_test", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt}, nil
}

type errPinger struct{ err error }

func (p errPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	deps     Deps
	router   *gin.Engine
	store    *memory.Store
	provider *stubProvider
}

// newTestEnv wires the real services over the in-memory store. With durable
// false every store call is served from the fallback and marked degraded.
func newTestEnv(t *testing.T, durable bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	require.NoError(t, seed.Apply(context.Background(), store.Products()))
	policy := func(name string) *resilience.Policy {
		return resilience.NewPolicy(name, durable, resilience.Settings{}, nil)
	}
	// With durable true the memory stores also serve as primaries.
	carts := cartrepo.NewResilient(store.Carts(), store.Carts(), policy("carts"))
	orders := orderrepo.NewResilient(store.Orders(), store.Orders(), policy("orders"))
	designs := designrepo.NewResilient(store.Designs(), store.Designs(), policy("designs"))
	reviews := reviewrepo.NewResilient(store.Reviews(), store.Reviews(), policy("reviews"))
	products := productrepo.NewResilient(store.Products(), store.Products(), policy("products"))
	users := userrepo.NewResilient(store.Users(), store.Users(), policy("users"))

	cartSvc := cartsvc.New(carts, nil)
	orderSvc := ordersvc.New(orders, nil)
	provider := &stubProvider{configured: true}

	deps := Deps{
		Sessions:    session.New(),
		Session:     SessionConfig{CookieName: cookieName, MaxAge: 30 * 24 * time.Hour},
		CartSvc:     cartSvc,
		CheckoutSvc: checkoutsvc.New(cartSvc, orderSvc, provider, events.Nop{}, nil),
		OrderSvc:    orderSvc,
		DesignSvc:   designsvc.New(designs),
		ReviewSvc:   reviewsvc.New(reviews),
		CatalogSvc:  catalogsvc.New(products),
		AccountSvc:  accountsvc.New(users, accountsvc.AdminEmail("admin@budgetthreads.in")),
	}
	router, err := buildRouter(zap.NewNop(), nil, deps)
	require.NoError(t, err)
	return &testEnv{deps: deps, router: router, store: store, provider: provider}
}

type call struct {
	method string
	path   string
	body   interface{}
	sid    string
	token  string
}

func (e *testEnv) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: c.sid})
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestHealthAndReadiness(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodGet, path: "/healthz"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/readyz"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])

	w = env.do(t, call{method: http.MethodGet, path: "/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", readyHandler(errPinger{}))
	r.GET("/down", readyHandler(errPinger{err: errors.New("refused")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSessionCookie(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodGet, path: "/api/cart"})
	require.Equal(t, http.StatusOK, w.Code)
	minted := sessionCookie(w)
	require.NotNil(t, minted)
	assert.Regexp(t, `^sid_`, minted.Value)
	assert.Equal(t, "/", minted.Path)
	assert.Equal(t, 30*24*3600, minted.MaxAge)

	w = env.do(t, call{method: http.MethodGet, path: "/api/cart", sid: minted.Value})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionCookie(w), "existing session must not be re-minted")

	w = env.do(t, call{method: http.MethodGet, path: "/api/cart", sid: "bad value;"})
	require.NotNil(t, sessionCookie(w))
}

func TestCartAndCheckoutTotals(t *testing.T) {
	env := newTestEnv(t, true)
	sid := "sid_cart"

	w := env.do(t, call{method: http.MethodPost, path: "/api/cart", sid: sid, body: map[string]interface{}{
		"title": "Classic Tee", "price": 399, "qty": 1,
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = env.do(t, call{method: http.MethodPost, path: "/api/cart", sid: sid, body: map[string]interface{}{
		"title": "Custom Tee", "price": 617, "qty": 1,
		"meta": map[string]interface{}{"isCustom": true, "hasFront": true, "hasBack": true},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = env.do(t, call{method: http.MethodPost, path: "/api/checkout", sid: sid})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "INR", body["currency"])
	// 399 + (399+99+119) + one shipment of 59.
	assert.EqualValues(t, 399+617+59, body["amount"])
	assert.EqualValues(t, 59, body["shipment"])
	assert.Nil(t, body["fallback"])

	w = env.do(t, call{method: http.MethodPost, path: "/api/razorpay/order", sid: sid})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "rzp_test_key", body["publicKey"])
	assert.EqualValues(t, 1075, body["amountINR"])
	order := body["order"].(map[string]interface{})
	assert.EqualValues(t, 107500, order["amount"])
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t, true)
	sid := "sid_remove"

	w := env.do(t, call{method: http.MethodPost, path: "/api/cart", sid: sid, body: map[string]interface{}{"title": "Tee", "price": 399}})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := decode(t, w)["item"].(map[string]interface{})["id"].(string)

	w = env.do(t, call{method: http.MethodDelete, path: "/api/cart", sid: sid})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, call{method: http.MethodDelete, path: "/api/cart", sid: sid, body: map[string]interface{}{"itemId": itemID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["count"])

	w = env.do(t, call{method: http.MethodDelete, path: "/api/cart", sid: sid, body: map[string]interface{}{"clear": true}})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentOrderErrors(t *testing.T) {
	env := newTestEnv(t, true)

	env.provider.configured = false
	w := env.do(t, call{method: http.MethodPost, path: "/api/razorpay/order", sid: "sid_x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing Razorpay keys", decode(t, w)["error"])

	env.provider.configured = true
	env.provider.err = &razorpay.APIError{StatusCode: http.StatusBadRequest, Body: `{"error":"bad amount"}`}
	w = env.do(t, call{method: http.MethodPost, path: "/api/razorpay/order", sid: "sid_x"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Razorpay order failed", body["error"])
	assert.NotEmpty(t, body["detail"])
}

func TestCompletePaymentClearsCart(t *testing.T) {
	env := newTestEnv(t, true)
	sid := "sid_pay"

	w := env.do(t, call{method: http.MethodPost, path: "/api/cart", sid: sid, body: map[string]interface{}{"title": "Tee", "price": 399}})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/payments/complete", sid: sid, body: map[string]interface{}{
		"orderId": "order_test", "amountINR": 458,
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["notified"])

	w = env.do(t, call{method: http.MethodGet, path: "/api/cart", sid: sid})
	assert.EqualValues(t, 0, decode(t, w)["count"])

	orders, err := env.store.Orders().List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order_test", orders[0].ExternalOrderID)
	assert.EqualValues(t, 458, orders[0].AmountINR)
}

func TestRecordOrder(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodPost, path: "/api/orders", sid: "sid_o", body: map[string]interface{}{"amountINR": 10}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/orders", sid: "sid_o", body: map[string]interface{}{
		"orderId": "order_1", "amountINR": 458, "items": []interface{}{},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["status"])
	assert.Equal(t, "order_1", data["orderId"])
}

func TestFallbackFlag(t *testing.T) {
	env := newTestEnv(t, false)
	sid := "sid_degraded"

	w := env.do(t, call{method: http.MethodPost, path: "/api/cart", sid: sid, body: map[string]interface{}{"title": "Tee", "price": 399}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["fallback"])
	assert.Equal(t, "true", w.Header().Get("X-Storefront-Fallback"))

	w = env.do(t, call{method: http.MethodGet, path: "/api/cart", sid: sid})
	body = decode(t, w)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, true, body["fallback"])

	w = env.do(t, call{method: http.MethodGet, path: "/api/products"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Storefront-Fallback"))
}

func TestDesignsAndReviews(t *testing.T) {
	env := newTestEnv(t, true)
	sid := "sid_designer"

	w := env.do(t, call{method: http.MethodPost, path: "/api/designs", sid: sid, body: map[string]interface{}{"title": "Only title"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/designs", sid: sid, body: map[string]interface{}{
		"title": "Sunset", "description": "Warm tones", "frontImage": "data:image/png;base64,AAA", "price": 617,
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	designID, _ := decode(t, w)["id"].(string)
	assert.Regexp(t, `^dsg_`, designID)

	w = env.do(t, call{method: http.MethodGet, path: "/api/designs/" + designID, sid: sid})
	require.Equal(t, http.StatusOK, w.Code)
	item := decode(t, w)["item"].(map[string]interface{})
	assert.Equal(t, "Sunset", item["title"])
	assert.EqualValues(t, 617, item["price"])

	w = env.do(t, call{method: http.MethodGet, path: "/api/designs/dsg_missing", sid: sid})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/designs", sid: sid})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = env.do(t, call{method: http.MethodPost, path: "/api/reviews", body: map[string]interface{}{"productId": "p1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])

	w = env.do(t, call{method: http.MethodPost, path: "/api/reviews", body: map[string]interface{}{"productId": "p1", "rating": 9, "text": "Great fit"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/reviews?productId=p1"})
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.EqualValues(t, 5, reviews[0]["rating"])
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodGet, path: "/api/products"})
	require.Equal(t, http.StatusOK, w.Code)
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, len(seed.DemoProducts()))
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodPost, path: "/api/auth/register", body: map[string]interface{}{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = env.do(t, call{method: http.MethodPost, path: "/api/auth/register", body: map[string]interface{}{
		"name": "Asha", "email": "ASHA@example.com", "password": "secret1",
	}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/auth/login", body: map[string]interface{}{
		"email": "asha@example.com", "password": "wrong-pass",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/auth/login", body: map[string]interface{}{
		"email": "asha@example.com", "password": "secret1",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	token = decode(t, w)["token"].(string)

	w = env.do(t, call{method: http.MethodGet, path: "/api/auth/me", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, "asha@example.com", me["email"])
	assert.Equal(t, false, me["isAdmin"])

	w = env.do(t, call{method: http.MethodGet, path: "/api/auth/me"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/admin/orders", token: token})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOrders(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, call{method: http.MethodPost, path: "/api/auth/register", body: map[string]interface{}{
		"name": "Admin", "email": "admin@budgetthreads.in", "password": "secret1",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = env.do(t, call{method: http.MethodPost, path: "/api/orders", sid: "sid_a", body: map[string]interface{}{"orderId": "order_9", "amountINR": 1}})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/admin/orders", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestNewRequiresServices(t *testing.T) {
	_, err := New(":0", nil, nil, Deps{})
	assert.Error(t, err)
}

type unreachableUsers struct{}

func (unreachableUsers) Create(context.Context, domain.User) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) GetByToken(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) SetToken(context.Context, string, string) error {
	return errors.New("connection refused")
}

func TestAuthDuringDurableOutage(t *testing.T) {
	env := newTestEnv(t, true)
	users := userrepo.NewResilient(unreachableUsers{}, env.store.Users(), resilience.NewPolicy("users", true, resilience.Settings{}, nil))
	env.deps.AccountSvc = accountsvc.New(users, accountsvc.AdminEmail("admin@budgetthreads.in"))
	router, err := buildRouter(zap.NewNop(), nil, env.deps)
	require.NoError(t, err)
	env.router = router

	w := env.do(t, call{method: http.MethodPost, path: "/api/auth/register", body: map[string]interface{}{
		"name": "Mallory", "email": "admin@budgetthreads.in", "password": "secret1",
	}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Nil(t, decode(t, w)["token"])

	w = env.do(t, call{method: http.MethodGet, path: "/api/admin/orders", token: "forged"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("X-Storefront-Fallback"))
}
