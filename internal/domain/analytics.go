package domain

// DashboardStats is the server-side aggregate shown on the landing view.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingOrders int     `json:"pendingOrders"`
	TotalSellers  int     `json:"totalSellers"`
}

// AnalyticsRange is the backend range selector: 7d, 30d, 90d or 1y.
type AnalyticsRange string

const (
	RangeWeek    AnalyticsRange = "7d"
	RangeMonth   AnalyticsRange = "30d"
	RangeQuarter AnalyticsRange = "90d"
	RangeYear    AnalyticsRange = "1y"
)

func (r AnalyticsRange) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeQuarter, RangeYear:
		return true
	}
	return false
}

type AnalyticsPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type AnalyticsReport struct {
	Range  AnalyticsRange   `json:"range"`
	Points []AnalyticsPoint `json:"points"`
}

type Seller struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int     `json:"orderCount"`
	Rating     float64 `json:"rating"`
}
