package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

const testKey = "pk_test_51H0000000000000000"

type fakeConfirmer struct {
	gotSecret string
	txID      string
	err       error
}

func (f *fakeConfirmer) Confirm(_ context.Context, secret string) (string, error) {
	f.gotSecret = secret
	return f.txID, f.err
}

func TestValidPublishableKey(t *testing.T) {
	assert.True(t, ValidPublishableKey(testKey))
	assert.False(t, ValidPublishableKey(""))
	assert.False(t, ValidPublishableKey("sk_test_51H0000000000000000"))
	assert.False(t, ValidPublishableKey("pk_short"))
}

func TestPublishableKeyHiddenWhenInvalid(t *testing.T) {
	svc := NewService(nil, "not-a-key")
	assert.False(t, svc.Configured())
	assert.Empty(t, svc.PublishableKey())

	svc = NewService(nil, testKey)
	assert.True(t, svc.Configured())
	assert.Equal(t, testKey, svc.PublishableKey())
}

func TestCreateIntentGuards(t *testing.T) {
	svc := NewService(nil, testKey)

	_, err := svc.CreateIntent(0, domain.MethodVisa)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateIntent(100, domain.MethodCash)
	assert.Error(t, err, "non-instant methods have no intent step")

	unconfigured := NewService(nil, "")
	_, err = unconfigured.CreateIntent(100, domain.MethodVisa)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPayInstantFlow(t *testing.T) {
	var recorded api.CommissionPaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/commission-payments/create-intent":
			w.Write([]byte(`{"success":true,"data":{"clientSecret":"cs_test_abc"}}`))
		case "/admin/commission-payments":
			require.NoError(t, jsoniter.NewDecoder(r.Body).Decode(&recorded))
			w.Write([]byte(`{"success":true,"data":{"id":"cp1","amount":120,"paymentMethod":"visa","status":"paid"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	svc := NewService(api.NewGateway(srv.URL, nil), testKey)
	confirmer := &fakeConfirmer{txID: "txn_123"}

	payment, err := svc.Pay(context.Background(), PayRequest{Amount: 120, Method: domain.MethodVisa}, confirmer)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", confirmer.gotSecret)
	assert.Equal(t, "txn_123", recorded.StripeTransactionID)
	assert.Equal(t, domain.PaymentPaid, payment.Status)
}

func TestPayNonInstantSkipsIntent(t *testing.T) {
	intentCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/commission-payments/create-intent":
			intentCalled = true
			w.Write([]byte(`{"success":true}`))
		case "/admin/commission-payments":
			w.Write([]byte(`{"success":true,"data":{"id":"cp2","paymentMethod":"cash","status":"pending_verification"}}`))
		}
	}))
	defer srv.Close()

	svc := NewService(api.NewGateway(srv.URL, nil), testKey)
	payment, err := svc.Pay(context.Background(), PayRequest{Amount: 50, Method: domain.MethodCash}, nil)
	require.NoError(t, err)
	assert.False(t, intentCalled)
	assert.Equal(t, domain.PaymentPendingVerification, payment.Status)
}

func TestPayConfirmationFailureCreatesNoRecord(t *testing.T) {
	recordCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/commission-payments/create-intent":
			w.Write([]byte(`{"success":true,"data":{"clientSecret":"cs_test_abc"}}`))
		case "/admin/commission-payments":
			recordCalled = true
		}
	}))
	defer srv.Close()

	svc := NewService(api.NewGateway(srv.URL, nil), testKey)
	confirmer := &fakeConfirmer{err: assert.AnError}

	_, err := svc.Pay(context.Background(), PayRequest{Amount: 75, Method: domain.MethodMastercard}, confirmer)
	require.Error(t, err)
	assert.False(t, recordCalled, "no payment record without a completed confirmation")
}

func TestRecordRequiresTransactionForInstant(t *testing.T) {
	svc := NewService(nil, testKey)
	_, err := svc.Record(100, domain.MethodCard, "", "")
	assert.Error(t, err)

	_, err = svc.Record(-5, domain.MethodCash, "", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
