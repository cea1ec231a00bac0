package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/domain"
	"github.com/florelia/floraladmin/internal/webserver"
)

func registerPaymentRoutes() {
	webserver.ApiGET("/payments/summary", paymentSummary)
	webserver.ApiGET("/payments/history", paymentHistory)
	webserver.ApiPOST("/payments/intent", createPaymentIntent)
	webserver.ApiPOST("/payments/record", recordPayment)
}

// paymentSummary returns the server-computed commission status plus the
// processor configuration the browser-side card element needs.
func paymentSummary(c echo.Context) error {
	svc := webserver.GetApp(c).Payments()
	status, err := svc.Summary()
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"status":         status,
		"configured":     svc.Configured(),
		"publishableKey": svc.PublishableKey(),
	})
}

func paymentHistory(c echo.Context) error {
	history, err := webserver.GetApp(c).Payments().History()
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, history)
}

type intentPayload struct {
	Amount        float64              `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

func createPaymentIntent(c echo.Context) error {
	var payload intentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse payment intent request")
	}
	secret, err := webserver.GetApp(c).Payments().CreateIntent(payload.Amount, payload.PaymentMethod)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]string{"clientSecret": secret})
}

type recordPayload struct {
	Amount              float64              `json:"amount"`
	PaymentMethod       domain.PaymentMethod `json:"paymentMethod"`
	StripeTransactionID string               `json:"stripeTransactionId"`
	Notes               string               `json:"notes"`
}

// recordPayment creates the single commission payment record for one
// attempt. Cash and PayPal come straight here; card payments arrive after
// the browser finished the processor confirmation.
func recordPayment(c echo.Context) error {
	var payload recordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse payment")
	}
	payment, err := webserver.GetApp(c).Payments().Record(
		payload.Amount, payload.PaymentMethod, payload.StripeTransactionID, payload.Notes)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, payment)
}
