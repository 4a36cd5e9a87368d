package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/events"
	"budgetthreads/internal/payment/razorpay"
	"budgetthreads/internal/resilience"
	"budgetthreads/internal/service/order"
	"budgetthreads/internal/service/pricing"
	"go.uber.org/zap"
)

const Currency = "INR"

// ErrProviderNotConfigured is returned before any network call when the
// payment provider credentials are missing.
var ErrProviderNotConfigured = errors.New("payment provider credentials missing")

// PaymentProviderError wraps a failed provider call. Detail carries the
// provider's response body, or the transport error text.
type PaymentProviderError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *PaymentProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("payment provider order failed (status %d)", e.StatusCode)
	}
	return "payment provider order failed"
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }

type Provider interface {
	Configured() bool
	PublicKey() string
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
}

type Carts interface {
	Read(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	Clear(ctx context.Context, sessionID string) error
}

type Orders interface {
	Record(ctx context.Context, in order.RecordInput) (*domain.Order, error)
}

type Service struct {
	carts     Carts
	orders    Orders
	provider  Provider
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func New(carts Carts, orders Orders, provider Provider, publisher events.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Quote is the display total of a cart. It is not floored.
type Quote struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Items    []domain.LineItem `json:"items"`
	Shipment int64             `json:"shipment"`
}

func (s *Service) Quote(ctx context.Context, sessionID string) (*Quote, error) {
	items, err := s.carts.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Amount:   pricing.CartTotal(items),
		Currency: Currency,
		Items:    items,
		Shipment: pricing.ShipmentFor(items),
	}, nil
}

// PaymentOrder is what the browser needs to open the provider's checkout.
type PaymentOrder struct {
	Order     razorpay.Order `json:"order"`
	PublicKey string         `json:"publicKey"`
	AmountINR int64          `json:"amountINR"`
	Shipment  int64          `json:"shipment"`
}

// CreatePaymentOrder prices the session cart and opens a provider order for
// the payable amount. An empty cart still produces an order for the
// provider minimum.
func (s *Service) CreatePaymentOrder(ctx context.Context, sessionID string) (*PaymentOrder, error) {
	if s.provider == nil || !s.provider.Configured() {
		return nil, ErrProviderNotConfigured
	}
	items, err := s.carts.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amount := pricing.PayableTotal(items)
	req := razorpay.OrderRequest{
		Amount:   pricing.ToPaise(amount),
		Currency: Currency,
		Receipt:  "bt_" + strconv.FormatInt(s.now().UnixMilli(), 10),
		Notes: map[string]string{
			"source": "BudgetThreads",
			"items":  strconv.Itoa(len(items)),
		},
	}
	providerOrder, err := s.provider.CreateOrder(ctx, req)
	if err != nil {
		perr := &PaymentProviderError{Detail: err.Error(), Err: err}
		var apiErr *razorpay.APIError
		if errors.As(err, &apiErr) {
			perr.StatusCode = apiErr.StatusCode
			perr.Detail = apiErr.Body
		}
		s.logger.Error("payment provider order failed",
			zap.String("session_id", sessionID),
			zap.String("receipt", req.Receipt),
			zap.Int("status", perr.StatusCode),
			zap.String("detail", perr.Detail),
		)
		return nil, perr
	}

	s.logger.Info("payment order created",
		zap.String("session_id", sessionID),
		zap.String("provider_order_id", providerOrder.ID),
		zap.Int64("amount_inr", amount),
	)
	return &PaymentOrder{
		Order:     *providerOrder,
		PublicKey: s.provider.PublicKey(),
		AmountINR: amount,
		Shipment:  pricing.ShipmentFor(items),
	}, nil
}

// CompleteInput is the client callback after a successful payment.
type CompleteInput struct {
	OrderID   string `json:"orderId"`
	AmountINR int64  `json:"amountINR"`
}

type Completion struct {
	Order    *domain.Order `json:"order"`
	Notified bool          `json:"notified"`
}

// CompletePayment reads the cart, records the order, clears the cart and
// publishes order.placed, in that order. A publish failure is logged and
// reported through Notified only.
func (s *Service) CompletePayment(ctx context.Context, sessionID string, in CompleteInput) (*Completion, error) {
	if in.OrderID == "" {
		return nil, fmt.Errorf("%w: orderId required", domain.ErrInvalidInput)
	}
	items, err := s.carts.Read(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	sid := sessionID
	recorded, err := s.orders.Record(ctx, order.RecordInput{
		SessionID:       &sid,
		ExternalOrderID: in.OrderID,
		AmountINR:       in.AmountINR,
		Items:           items,
		Status:          domain.OrderStatusPaid,
		Meta:            map[string]interface{}{"source": "payment-callback"},
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	evt := events.OrderPlaced{
		OrderID:         recorded.ID,
		ExternalOrderID: recorded.ExternalOrderID,
		SessionID:       sessionID,
		AmountINR:       recorded.AmountINR,
		ItemCount:       len(recorded.Items),
		Fallback:        resilience.Degraded(ctx),
		PlacedAt:        recorded.CreatedAt,
	}
	notified := true
	if err := s.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		notified = false
		s.logger.Warn("order.placed publish failed", zap.String("order_id", recorded.ID), zap.Error(err))
	}
	return &Completion{Order: recorded, Notified: notified}, nil
}
