package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"budgetthreads/internal/domain"
	accountsvc "budgetthreads/internal/service/account"
	cartsvc "budgetthreads/internal/service/cart"
	checkoutsvc "budgetthreads/internal/service/checkout"
	designsvc "budgetthreads/internal/service/design"
	ordersvc "budgetthreads/internal/service/order"
	reviewsvc "budgetthreads/internal/service/review"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type SessionResolver interface {
	Resolve(marker string) (string, bool)
}

type CartService interface {
	Read(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	Add(ctx context.Context, sessionID string, d cartsvc.Draft) (*domain.LineItem, int, error)
	Remove(ctx context.Context, sessionID string, in cartsvc.RemoveInput) ([]domain.LineItem, error)
}

type CheckoutService interface {
	Quote(ctx context.Context, sessionID string) (*checkoutsvc.Quote, error)
	CreatePaymentOrder(ctx context.Context, sessionID string) (*checkoutsvc.PaymentOrder, error)
	CompletePayment(ctx context.Context, sessionID string, in checkoutsvc.CompleteInput) (*checkoutsvc.Completion, error)
}

type OrderService interface {
	Record(ctx context.Context, in ordersvc.RecordInput) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type DesignService interface {
	Create(ctx context.Context, sessionID string, in designsvc.CreateInput) (*domain.Design, error)
	Get(ctx context.Context, id string) (*domain.Design, error)
	List(ctx context.Context) ([]domain.Design, error)
}

type ReviewService interface {
	Create(ctx context.Context, in reviewsvc.CreateInput) (*domain.Review, error)
	List(ctx context.Context, productID string) ([]domain.Review, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type AccountService interface {
	Register(ctx context.Context, in accountsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	RequireAdmin(ctx context.Context, token string) (*domain.User, error)
	IsAdmin(u *domain.User) bool
}

// SessionConfig controls the anonymous visitor cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
}

// Deps groups the services the router dispatches to.
type Deps struct {
	Sessions    SessionResolver
	Session     SessionConfig
	CORSOrigins []string

	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	DesignSvc   DesignService
	ReviewSvc   ReviewService
	CatalogSvc  CatalogService
	AccountSvc  AccountService
}

func (d Deps) validate() error {
	switch {
	case d.Sessions == nil:
		return errors.New("httpserver: session resolver required")
	case d.CartSvc == nil, d.CheckoutSvc == nil, d.OrderSvc == nil:
		return errors.New("httpserver: cart, checkout and order services required")
	case d.DesignSvc == nil, d.ReviewSvc == nil, d.CatalogSvc == nil, d.AccountSvc == nil:
		return errors.New("httpserver: design, review, catalog and account services required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Session.CookieName == "" {
		deps.Session.CookieName = "bt_sid"
	}

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api", markerMiddleware())
	api.GET("/products", h.listProducts)
	api.GET("/reviews", h.listReviews)
	api.POST("/reviews", h.createReview)

	auth := api.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.GET("/me", h.me)

	api.GET("/admin/orders", h.adminOrders)

	visitor := api.Group("", sessionMiddleware(deps.Sessions, deps.Session))
	visitor.GET("/cart", h.getCart)
	visitor.POST("/cart", h.addToCart)
	visitor.DELETE("/cart", h.removeFromCart)
	visitor.POST("/checkout", h.checkout)
	visitor.POST("/razorpay/order", h.createPaymentOrder)
	visitor.POST("/payments/complete", h.completePayment)
	visitor.POST("/orders", h.recordOrder)
	visitor.GET("/designs", h.listDesigns)
	visitor.POST("/designs", h.createDesign)
	visitor.GET("/designs/:id", h.getDesign)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
