package draft

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/florelia/floraladmin/internal/domain"
)

// MaxSizes caps the size variants of a non-bear product.
const MaxSizes = 4

// Seeded when a bear size is toggled on; the admin adjusts price afterwards.
var defaultBearSize = domain.SizeEntry{
	Price:      15,
	Dimensions: domain.Dimensions{Height: 25, Width: 20, Depth: 15},
}

// FlowerKind selects one of the two flower-selection collections.
type FlowerKind string

const (
	KindFresh      FlowerKind = "fresh"
	KindArtificial FlowerKind = "artificial"
)

// ValidationError is a client-local rule violation. It blocks submission and
// never results in a network call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Draft is the in-memory, not-yet-persisted product configuration. Every
// operation is a discrete state transition applied in user order.
type Draft struct {
	Name              string                   `json:"name"`
	Description       string                   `json:"description"`
	Category          domain.Category          `json:"category"`
	Occasion          string                   `json:"occasion"`
	CareInstructions  string                   `json:"care_instructions"`
	Featured          bool                     `json:"featured"`
	Sizes             []domain.SizeEntry       `json:"sizes"`
	FreshFlowers      []domain.FlowerSelection `json:"freshFlowerSelections"`
	ArtificialFlowers []domain.FlowerSelection `json:"artificialFlowerSelections"`
	Bear              domain.BearDetails       `json:"bearDetails"`
	Dimensions        domain.Dimensions        `json:"dimensions"`
}

// View is the category-scoped projection of the draft. Switching category
// does not clear data entered under the previous category; that data stays in
// memory, hidden from this projection and from submission. All read sites go
// through here so the retention quirk lives in one place.
type View struct {
	Sizes      []domain.SizeEntry
	Fresh      []domain.FlowerSelection
	Artificial []domain.FlowerSelection
	Bear       *domain.BearDetails
}

// ActiveView returns the substructures that the current category exposes.
func (d *Draft) ActiveView() View {
	switch d.Category {
	case domain.CategoryBears:
		return View{Bear: &d.Bear}
	case domain.CategoryFresh:
		return View{Sizes: d.Sizes, Fresh: d.FreshFlowers}
	case domain.CategoryArtificial:
		return View{Sizes: d.Sizes, Artificial: d.ArtificialFlowers}
	case domain.CategoryMixed:
		return View{Sizes: d.Sizes, Fresh: d.FreshFlowers, Artificial: d.ArtificialFlowers}
	}
	return View{}
}

func (d *Draft) SetCategory(c domain.Category) error {
	if !c.Valid() {
		return ValidationError(fmt.Sprintf("unknown category %q", c))
	}
	d.Category = c
	return nil
}

// AddSize appends a new size entry. Rejected when the label already exists or
// the collection is full.
func (d *Draft) AddSize(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ValidationError("size name cannot be empty")
	}
	if len(d.Sizes) >= MaxSizes {
		return ValidationError(fmt.Sprintf("a product can have at most %d sizes", MaxSizes))
	}
	for _, s := range d.Sizes {
		if s.Size == label {
			return ValidationError(fmt.Sprintf("size %q is already added", label))
		}
	}
	d.Sizes = append(d.Sizes, domain.SizeEntry{Size: label})
	return nil
}

// UpdateSize sets one field of a size entry. Dotted paths address nested
// dimensions, e.g. "dimensions.height".
func (d *Draft) UpdateSize(index int, field string, value interface{}) error {
	if index < 0 || index >= len(d.Sizes) {
		return ValidationError("size entry does not exist")
	}
	return applySizeField(&d.Sizes[index], field, value)
}

func (d *Draft) RemoveSize(index int) error {
	if index < 0 || index >= len(d.Sizes) {
		return ValidationError("size entry does not exist")
	}
	d.Sizes = append(d.Sizes[:index], d.Sizes[index+1:]...)
	return nil
}

// AddFlowerSelection adds a flower to the fresh or artificial collection.
// Duplicate flowers within one kind are rejected.
func (d *Draft) AddFlowerSelection(kind FlowerKind, flower string) error {
	flower = strings.TrimSpace(flower)
	if flower == "" {
		return ValidationError("flower name cannot be empty")
	}
	list := d.selections(kind)
	if list == nil {
		return ValidationError(fmt.Sprintf("unknown flower kind %q", kind))
	}
	for _, sel := range *list {
		if sel.Flower == flower {
			return ValidationError(fmt.Sprintf("%s is already selected", flower))
		}
	}
	*list = append(*list, domain.FlowerSelection{Flower: flower, Count: 1})
	return nil
}

// ToggleFlowerColor adds the color when absent and removes it when present.
// Toggling repeatedly is not an error.
func (d *Draft) ToggleFlowerColor(kind FlowerKind, index int, color string) error {
	list := d.selections(kind)
	if list == nil {
		return ValidationError(fmt.Sprintf("unknown flower kind %q", kind))
	}
	if index < 0 || index >= len(*list) {
		return ValidationError("flower selection does not exist")
	}
	(*list)[index].Colors = toggleString((*list)[index].Colors, color)
	return nil
}

func (d *Draft) UpdateFlowerCount(kind FlowerKind, index int, count int) error {
	list := d.selections(kind)
	if list == nil {
		return ValidationError(fmt.Sprintf("unknown flower kind %q", kind))
	}
	if index < 0 || index >= len(*list) {
		return ValidationError("flower selection does not exist")
	}
	(*list)[index].Count = count
	return nil
}

func (d *Draft) RemoveFlowerSelection(kind FlowerKind, index int) error {
	list := d.selections(kind)
	if list == nil {
		return ValidationError(fmt.Sprintf("unknown flower kind %q", kind))
	}
	if index < 0 || index >= len(*list) {
		return ValidationError("flower selection does not exist")
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	return nil
}

// ToggleBearSize toggles presence of a bear size. Adding seeds the default
// price and dimensions; bear sizes are not capped.
func (d *Draft) ToggleBearSize(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ValidationError("size name cannot be empty")
	}
	for i, s := range d.Bear.Sizes {
		if s.Size == label {
			d.Bear.Sizes = append(d.Bear.Sizes[:i], d.Bear.Sizes[i+1:]...)
			return nil
		}
	}
	entry := defaultBearSize
	entry.Size = label
	d.Bear.Sizes = append(d.Bear.Sizes, entry)
	return nil
}

// UpdateBearSize edits a seeded bear size entry; same field paths as
// UpdateSize.
func (d *Draft) UpdateBearSize(index int, field string, value interface{}) error {
	if index < 0 || index >= len(d.Bear.Sizes) {
		return ValidationError("bear size entry does not exist")
	}
	return applySizeField(&d.Bear.Sizes[index], field, value)
}

func (d *Draft) ToggleBearColor(color string) {
	d.Bear.Colors = toggleString(d.Bear.Colors, color)
}

func (d *Draft) selections(kind FlowerKind) *[]domain.FlowerSelection {
	switch kind {
	case KindFresh:
		return &d.FreshFlowers
	case KindArtificial:
		return &d.ArtificialFlowers
	}
	return nil
}

func applySizeField(s *domain.SizeEntry, field string, value interface{}) error {
	switch field {
	case "size":
		s.Size = cast.ToString(value)
	case "flowerCount":
		s.FlowerCount = cast.ToInt(value)
	case "price":
		s.Price = cast.ToFloat64(value)
	case "oldPrice":
		s.OldPrice = cast.ToFloat64(value)
	case "dimensions.height":
		s.Dimensions.Height = cast.ToFloat64(value)
	case "dimensions.width":
		s.Dimensions.Width = cast.ToFloat64(value)
	case "dimensions.depth":
		s.Dimensions.Depth = cast.ToFloat64(value)
	default:
		return ValidationError(fmt.Sprintf("unknown size field %q", field))
	}
	return nil
}

func toggleString(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, v)
}
