package domain

// OrderStatus is the backend's order state enum. The console never enforces
// the transition graph locally; the backend is the authority.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID            string       `json:"id"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	Items         []OrderItem  `json:"items"`
	OrderStatus   OrderStatus  `json:"orderStatus"`
	Total         float64      `json:"total"`
	Subtotal      float64      `json:"subtotal"`
	Tax           float64      `json:"tax"`
	Shipping      float64      `json:"shipping"`
	Discount      float64      `json:"discount"`
	CreatedAt     string       `json:"createdAt"`
	PaymentMethod string       `json:"paymentMethod"`
}
