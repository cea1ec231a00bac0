package domain

// Category determines which nested sub-structures of a product are active.
type Category string

const (
	CategoryFresh      Category = "fresh"
	CategoryArtificial Category = "artificial"
	CategoryMixed      Category = "mixed"
	CategoryBears      Category = "bears"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFresh, CategoryArtificial, CategoryMixed, CategoryBears:
		return true
	}
	return false
}

// Dimensions in centimeters.
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// SizeEntry is a named product variant carrying its own price and dimensions.
type SizeEntry struct {
	Size        string     `json:"size"`
	FlowerCount int        `json:"flowerCount,omitempty"`
	Price       float64    `json:"price"`
	OldPrice    float64    `json:"oldPrice,omitempty"`
	Dimensions  Dimensions `json:"dimensions"`
}

// DiscountPercent derives the discount from price/oldPrice. Zero when no
// valid discount applies (oldPrice absent or below price).
func (s SizeEntry) DiscountPercent() int {
	if s.OldPrice <= 0 || s.OldPrice < s.Price {
		return 0
	}
	return int((s.OldPrice - s.Price) / s.OldPrice * 100)
}

// FlowerSelection pairs one flower type with its chosen color set.
type FlowerSelection struct {
	Flower string   `json:"flower"`
	Colors []string `json:"colors"`
	Count  int      `json:"count"`
}

// BearDetails holds the variant data for the bears category. Sizes are
// toggled rather than capped.
type BearDetails struct {
	Sizes  []SizeEntry `json:"sizes"`
	Colors []string    `json:"colors"`
}

// Product is the server-owned persisted listing as returned by the backend.
type Product struct {
	ID                string            `json:"_id"`
	AdminID           string            `json:"adminId"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          Category          `json:"category"`
	Occasion          string            `json:"occasion"`
	Sizes             []SizeEntry       `json:"sizes,omitempty"`
	FreshFlowers      []FlowerSelection `json:"freshFlowerSelections,omitempty"`
	ArtificialFlowers []FlowerSelection `json:"artificialFlowerSelections,omitempty"`
	BearDetails       *BearDetails      `json:"bearDetails,omitempty"`
	Dimensions        Dimensions        `json:"dimensions"`
	Images            []string          `json:"images"`
	Models3D          []string          `json:"models3d,omitempty"`
	Price             float64           `json:"price"`
	Featured          bool              `json:"featured"`
	CareInstructions  string            `json:"care_instructions"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}
