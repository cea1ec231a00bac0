package domain

// PaymentStatus is the lifecycle of a commission payment record.
type PaymentStatus string

const (
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentPaid                PaymentStatus = "paid"
	PaymentVerified            PaymentStatus = "verified"
	PaymentRejected            PaymentStatus = "rejected"
)

// PaymentMethod identifies one of the five payment affordances. The two
// card-brand buttons differ visually only and share the hosted-card flow.
type PaymentMethod string

const (
	MethodVisa       PaymentMethod = "visa"
	MethodMastercard PaymentMethod = "mastercard"
	MethodCard       PaymentMethod = "card"
	MethodCash       PaymentMethod = "cash"
	MethodPaypal     PaymentMethod = "paypal"
)

// Instant reports whether the method completes synchronously through the
// hosted processor. Non-instant methods await manual backend verification.
func (m PaymentMethod) Instant() bool {
	switch m {
	case MethodVisa, MethodMastercard, MethodCard:
		return true
	}
	return false
}

// CommissionPayment records one admin payment attempt toward platform
// commission fees.
type CommissionPayment struct {
	ID                  string        `json:"id"`
	Amount              float64       `json:"amount"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	Status              PaymentStatus `json:"status"`
	StripeTransactionID string        `json:"stripeTransactionId,omitempty"`
	ReceiptURL          string        `json:"receiptUrl,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	CreatedAt           string        `json:"createdAt"`
	VerifiedAt          string        `json:"verifiedAt,omitempty"`
}

// CommissionStatus is the server-computed payments summary. Client read-only.
type CommissionStatus struct {
	AmountDue      float64 `json:"amountDue"`
	LifetimeSales  float64 `json:"lifetimeSales"`
	CommissionRate float64 `json:"commissionRate"`
}
