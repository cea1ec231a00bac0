package draft

import (
	"strings"

	"github.com/florelia/floraladmin/internal/domain"
)

// ValidateForSubmit checks the form in a fixed order and returns only the
// first violated rule: name, category, category-specific structure, assets.
func (f *Form) ValidateForSubmit() error {
	d := &f.Draft
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError("please enter a product name")
	}
	if !d.Category.Valid() {
		return ValidationError("please select a category")
	}

	if d.Category == domain.CategoryBears {
		if err := validateBear(&d.Bear); err != nil {
			return err
		}
	} else {
		if err := validateSizes(d.Sizes); err != nil {
			return err
		}
		if d.Category == domain.CategoryFresh || d.Category == domain.CategoryMixed {
			if err := validateSelections(d.FreshFlowers, "fresh"); err != nil {
				return err
			}
		}
		if d.Category == domain.CategoryArtificial || d.Category == domain.CategoryMixed {
			if err := validateSelections(d.ArtificialFlowers, "artificial"); err != nil {
				return err
			}
		}
	}

	if len(f.Attachments) == 0 {
		return ValidationError("please attach at least one image or 3D model")
	}
	return nil
}

func validateBear(b *domain.BearDetails) error {
	if len(b.Sizes) == 0 {
		return ValidationError("please select at least one bear size")
	}
	for _, s := range b.Sizes {
		if s.Price <= 0 {
			return ValidationError("please set a price for every bear size")
		}
	}
	if len(b.Colors) == 0 {
		return ValidationError("please select at least one bear color")
	}
	return nil
}

func validateSizes(sizes []domain.SizeEntry) error {
	if len(sizes) == 0 {
		return ValidationError("please add at least one size")
	}
	for _, s := range sizes {
		if strings.TrimSpace(s.Size) == "" || s.FlowerCount <= 0 || s.Price <= 0 {
			return ValidationError("please complete size, flower count and price for every size")
		}
	}
	return nil
}

func validateSelections(sels []domain.FlowerSelection, kind string) error {
	if len(sels) == 0 {
		return ValidationError("please add at least one " + kind + " flower")
	}
	for _, sel := range sels {
		if len(sel.Colors) == 0 {
			return ValidationError("please select at least one color for every flower")
		}
	}
	return nil
}
