package api

import (
	"github.com/guonaihong/gout"

	"github.com/florelia/floraladmin/internal/domain"
)

// LoginResult is the payload of POST /admin/login.
type LoginResult struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

func (g *Gateway) Login(username, password string) (*LoginResult, error) {
	var out LoginResult
	err := g.postJSON("/admin/login", gout.H{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify fetches the identity behind the current token. A disabled account
// comes back as a failure whose message contains "disabled".
func (g *Gateway) Verify() (*domain.Admin, error) {
	var out domain.Admin
	if err := g.getJSON("/admin/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword updates the admin password. On success the caller must
// clear the session and force a re-login.
func (g *Gateway) ChangePassword(current, next string) error {
	return g.putJSON("/admin/change-password", gout.H{
		"currentPassword": current,
		"newPassword":     next,
	}, nil)
}

func (g *Gateway) Stats() (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := g.getJSON("/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) Analytics(r domain.AnalyticsRange) (*domain.AnalyticsReport, error) {
	var out domain.AnalyticsReport
	err := g.getJSON("/admin/analytics", gout.H{"range": string(r)}, &out)
	if err != nil {
		return nil, err
	}
	if out.Range == "" {
		out.Range = r
	}
	return &out, nil
}

func (g *Gateway) Sellers() ([]domain.Seller, error) {
	var out []domain.Seller
	if err := g.getJSON("/admin/sellers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) Notifications() ([]domain.Notification, error) {
	var out []domain.Notification
	if err := g.getJSON("/admin/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) MarkNotificationRead(id string) error {
	return g.putJSON("/admin/notifications/"+id+"/read", nil, nil)
}

func (g *Gateway) DeleteNotification(id string) error {
	return g.deleteJSON("/admin/notifications/"+id, nil)
}

func (g *Gateway) Products() ([]domain.Product, error) {
	var out []domain.Product
	if err := g.getJSON("/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProduct edits an existing listing as plain JSON; only creation goes
// through the multipart upload pipeline.
func (g *Gateway) UpdateProduct(id string, p *domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := g.putJSON("/products/"+id, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) DeleteProduct(id string) error {
	return g.deleteJSON("/products/"+id, nil)
}

func (g *Gateway) Orders() ([]domain.Order, error) {
	var out []domain.Order
	if err := g.getJSON("/orders/admin/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus issues a transition command and returns whatever status
// the backend settled on. The client never validates the transition graph.
func (g *Gateway) UpdateOrderStatus(id string, status domain.OrderStatus) (domain.OrderStatus, error) {
	var out struct {
		OrderStatus domain.OrderStatus `json:"orderStatus"`
	}
	err := g.putJSON("/orders/"+id+"/status", gout.H{"orderStatus": string(status)}, &out)
	if err != nil {
		return "", err
	}
	if out.OrderStatus == "" {
		out.OrderStatus = status
	}
	return out.OrderStatus, nil
}

// CreatePaymentIntent asks the backend for a hosted-processor client secret.
// Only instant payment methods call this.
func (g *Gateway) CreatePaymentIntent(amount float64, method domain.PaymentMethod) (string, error) {
	var out struct {
		ClientSecret string `json:"clientSecret"`
	}
	err := g.postJSON("/admin/commission-payments/create-intent", gout.H{
		"amount":        amount,
		"paymentMethod": string(method),
	}, &out)
	if err != nil {
		return "", err
	}
	return out.ClientSecret, nil
}

// CommissionPaymentRequest creates one payment record per attempt, instant
// or not.
type CommissionPaymentRequest struct {
	Amount              float64              `json:"amount"`
	PaymentMethod       domain.PaymentMethod `json:"paymentMethod"`
	StripeTransactionID string               `json:"stripeTransactionId,omitempty"`
	Notes               string               `json:"notes,omitempty"`
}

func (g *Gateway) CreateCommissionPayment(req CommissionPaymentRequest) (*domain.CommissionPayment, error) {
	var out domain.CommissionPayment
	if err := g.postJSON("/admin/commission-payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) CommissionStatus() (*domain.CommissionStatus, error) {
	var out domain.CommissionStatus
	if err := g.getJSON("/admin/commission-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) PaymentHistory() ([]domain.CommissionPayment, error) {
	var out []domain.CommissionPayment
	if err := g.getJSON("/admin/commission-payments/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
