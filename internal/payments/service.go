package payments

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

// ErrNotConfigured marks the degraded payments state when the hosted
// processor publishable key is missing or malformed. The view shows an
// explicit "not configured" message instead of crashing.
var ErrNotConfigured = errors.New("card payments are not configured")

// ErrInvalidAmount rejects non-positive payment amounts before any call.
var ErrInvalidAmount = errors.New("payment amount must be positive")

// Confirmer performs the client-side confirmation step against the hosted
// processor for instant methods. In production this is the browser-side card
// element; tests provide fakes.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret string) (transactionID string, err error)
}

// Service is the commission payments view: a read-only server-computed
// summary plus the five payment affordances. Every attempt, instant or not,
// results in exactly one payment record creation call.
type Service struct {
	gw             *api.Gateway
	publishableKey string
}

func NewService(gw *api.Gateway, publishableKey string) *Service {
	return &Service{gw: gw, publishableKey: publishableKey}
}

// Configured reports whether the hosted processor can be used at all.
func (s *Service) Configured() bool {
	return ValidPublishableKey(s.publishableKey)
}

// ValidPublishableKey applies the same prefix/length sanity check the source
// runs before initializing the processor SDK.
func ValidPublishableKey(key string) bool {
	return strings.HasPrefix(key, "pk_") && len(key) >= 20
}

// PublishableKey exposes the key to the browser-side card element.
func (s *Service) PublishableKey() string {
	if !s.Configured() {
		return ""
	}
	return s.publishableKey
}

func (s *Service) Summary() (*domain.CommissionStatus, error) {
	return s.gw.CommissionStatus()
}

func (s *Service) History() ([]domain.CommissionPayment, error) {
	return s.gw.PaymentHistory()
}

// CreateIntent is the first half of the hosted-card flow, exposed separately
// because the confirmation step runs in the browser against the processor.
func (s *Service) CreateIntent(amount float64, method domain.PaymentMethod) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	if !method.Instant() {
		return "", errors.Errorf("payment method %s does not use an intent", method)
	}
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	return s.gw.CreatePaymentIntent(amount, method)
}

// Record creates the single commission payment record for one attempt.
// Instant methods must carry the processor transaction ID from the completed
// confirmation; non-instant methods are recorded as pending verification.
func (s *Service) Record(amount float64, method domain.PaymentMethod, txID, notes string) (*domain.CommissionPayment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if method.Instant() && txID == "" {
		return nil, errors.New("missing processor transaction for card payment")
	}
	return s.gw.CreateCommissionPayment(api.CommissionPaymentRequest{
		Amount:              amount,
		PaymentMethod:       method,
		StripeTransactionID: txID,
		Notes:               notes,
	})
}

type PayRequest struct {
	Amount float64
	Method domain.PaymentMethod
	Notes  string
}

// Pay executes one payment attempt. Instant methods require a prior payment
// intent and a processor confirmation before the record is created;
// non-instant methods (cash, PayPal) are recorded immediately and await
// manual backend verification.
func (s *Service) Pay(ctx context.Context, req PayRequest, confirmer Confirmer) (*domain.CommissionPayment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	txID := ""
	if req.Method.Instant() {
		secret, err := s.CreateIntent(req.Amount, req.Method)
		if err != nil {
			return nil, err
		}
		txID, err = confirmer.Confirm(ctx, secret)
		if err != nil {
			return nil, errors.Wrap(err, "card confirmation failed")
		}
	}

	payment, err := s.Record(req.Amount, req.Method, txID, req.Notes)
	if err != nil {
		return nil, err
	}
	zap.L().Info("commission payment recorded",
		zap.String("method", string(req.Method)), zap.Float64("amount", req.Amount),
		zap.String("status", string(payment.Status)))
	return payment, nil
}
