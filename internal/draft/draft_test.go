package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florelia/floraladmin/internal/domain"
)

func TestAddSizeCapAndDuplicates(t *testing.T) {
	d := &Draft{}
	for _, label := range []string{"Small", "Medium", "Large", "XL"} {
		require.NoError(t, d.AddSize(label))
	}
	require.Len(t, d.Sizes, 4)

	err := d.AddSize("XXL")
	assert.IsType(t, ValidationError(""), err)
	assert.Len(t, d.Sizes, 4, "rejected add must not mutate")

	d2 := &Draft{}
	require.NoError(t, d2.AddSize("Small"))
	err = d2.AddSize("Small")
	assert.IsType(t, ValidationError(""), err)
	assert.Len(t, d2.Sizes, 1)
}

func TestUpdateSizeDottedPaths(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddSize("Small"))

	require.NoError(t, d.UpdateSize(0, "price", 49.99))
	require.NoError(t, d.UpdateSize(0, "flowerCount", "12"))
	require.NoError(t, d.UpdateSize(0, "dimensions.height", 40))

	assert.Equal(t, 49.99, d.Sizes[0].Price)
	assert.Equal(t, 12, d.Sizes[0].FlowerCount)
	assert.Equal(t, 40.0, d.Sizes[0].Dimensions.Height)

	assert.Error(t, d.UpdateSize(0, "bogus", 1))
	assert.Error(t, d.UpdateSize(5, "price", 1))
}

func TestToggleFlowerColorIdempotentPairs(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddFlowerSelection(KindFresh, "Roses"))

	require.NoError(t, d.ToggleFlowerColor(KindFresh, 0, "Red"))
	assert.Equal(t, []string{"Red"}, d.FreshFlowers[0].Colors)

	require.NoError(t, d.ToggleFlowerColor(KindFresh, 0, "Red"))
	assert.Empty(t, d.FreshFlowers[0].Colors)

	// toggling twice more lands back in the same place
	require.NoError(t, d.ToggleFlowerColor(KindFresh, 0, "White"))
	require.NoError(t, d.ToggleFlowerColor(KindFresh, 0, "Red"))
	require.NoError(t, d.ToggleFlowerColor(KindFresh, 0, "White"))
	assert.Equal(t, []string{"Red"}, d.FreshFlowers[0].Colors)
}

func TestDuplicateFlowerRejectedPerKind(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddFlowerSelection(KindFresh, "Roses"))
	assert.Error(t, d.AddFlowerSelection(KindFresh, "Roses"))

	// the same flower may exist in the other collection
	assert.NoError(t, d.AddFlowerSelection(KindArtificial, "Roses"))
}

func TestToggleBearSizeSeedsDefaults(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.ToggleBearSize("Medium"))
	require.Len(t, d.Bear.Sizes, 1)
	assert.Equal(t, "Medium", d.Bear.Sizes[0].Size)
	assert.Equal(t, 15.0, d.Bear.Sizes[0].Price)
	assert.Equal(t, domain.Dimensions{Height: 25, Width: 20, Depth: 15}, d.Bear.Sizes[0].Dimensions)

	// toggling off removes it again
	require.NoError(t, d.ToggleBearSize("Medium"))
	assert.Empty(t, d.Bear.Sizes)
}

func TestCategorySwitchRetainsHiddenState(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.SetCategory(domain.CategoryFresh))
	require.NoError(t, d.AddSize("Small"))
	require.NoError(t, d.AddFlowerSelection(KindFresh, "Tulips"))

	require.NoError(t, d.SetCategory(domain.CategoryBears))
	view := d.ActiveView()
	assert.Nil(t, view.Sizes)
	assert.Nil(t, view.Fresh)
	require.NotNil(t, view.Bear)

	// data is hidden, not lost
	require.NoError(t, d.SetCategory(domain.CategoryFresh))
	view = d.ActiveView()
	assert.Len(t, view.Sizes, 1)
	assert.Len(t, view.Fresh, 1)
}

func TestValidateOrderAndFirstFailureOnly(t *testing.T) {
	f := &Form{}

	err := f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product name")

	f.Draft.Name = "Spring Bouquet"
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")

	require.NoError(t, f.Draft.SetCategory(domain.CategoryFresh))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one size")

	require.NoError(t, f.Draft.AddSize("Small"))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flower count and price")

	require.NoError(t, f.Draft.UpdateSize(0, "flowerCount", 10))
	require.NoError(t, f.Draft.UpdateSize(0, "price", 35.0))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fresh flower")

	require.NoError(t, f.Draft.AddFlowerSelection(KindFresh, "Roses"))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")

	require.NoError(t, f.Draft.ToggleFlowerColor(KindFresh, 0, "Red"))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attach")

	_, err = f.Attach("bouquet.jpg", []byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	assert.NoError(t, f.ValidateForSubmit())
}

func TestValidateBearsIgnoresFlowerStructures(t *testing.T) {
	f := &Form{}
	f.Draft.Name = "Teddy"
	require.NoError(t, f.Draft.SetCategory(domain.CategoryBears))

	err := f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bear size")

	require.NoError(t, f.Draft.ToggleBearSize("Large"))
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bear color")

	f.Draft.ToggleBearColor("Brown")
	err = f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attach")

	_, err = f.Attach("bear.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.NoError(t, f.ValidateForSubmit())
}

func TestValidateMixedRequiresBothKinds(t *testing.T) {
	f := &Form{}
	f.Draft.Name = "Mixed Delight"
	require.NoError(t, f.Draft.SetCategory(domain.CategoryMixed))
	require.NoError(t, f.Draft.AddSize("Medium"))
	require.NoError(t, f.Draft.UpdateSize(0, "flowerCount", 15))
	require.NoError(t, f.Draft.UpdateSize(0, "price", 60.0))
	require.NoError(t, f.Draft.AddFlowerSelection(KindFresh, "Roses"))
	require.NoError(t, f.Draft.ToggleFlowerColor(KindFresh, 0, "Red"))

	err := f.ValidateForSubmit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artificial flower")
}

func TestAttachCapAndKinds(t *testing.T) {
	f := &Form{}
	_, err := f.Attach("photo.jpg", []byte{1})
	require.NoError(t, err)
	_, err = f.Attach("model.glb", []byte{2})
	require.NoError(t, err)
	assert.Equal(t, AssetImage, f.Attachments[0].Kind)
	assert.Equal(t, AssetModel3D, f.Attachments[1].Kind)

	_, err = f.Attach("a.png", []byte{3})
	require.NoError(t, err)
	_, err = f.Attach("b.stl", []byte{4})
	require.NoError(t, err)

	_, err = f.Attach("overflow.png", []byte{5})
	assert.Error(t, err)
	assert.Len(t, f.Attachments, MaxAttachments)

	_, err = f.Attach("empty.png", nil)
	assert.Error(t, err)
}

func TestAttachReturnsDetachedCopy(t *testing.T) {
	f := &Form{}
	first, err := f.Attach("a.png", []byte{1})
	require.NoError(t, err)

	// later appends may reallocate the backing array; the returned copy
	// must stay valid
	for _, name := range []string{"b.png", "c.png", "d.png"} {
		_, err := f.Attach(name, []byte{2})
		require.NoError(t, err)
	}
	assert.Equal(t, first.ID, f.Attachments[0].ID)

	f.SetPreview(first.ID, "data:image/png;base64,AAAA")
	assert.Empty(t, first.Preview, "copy is not aliased to form state")
	assert.NotEmpty(t, f.Attachments[0].Preview)
}

func TestRemoveAttachmentAndStalePreview(t *testing.T) {
	f := &Form{}
	att, err := f.Attach("photo.jpg", []byte{1})
	require.NoError(t, err)
	id := att.ID

	assert.True(t, f.RemoveAttachment(id))
	assert.False(t, f.RemoveAttachment(id))

	// a preview arriving after removal is dropped without panic
	f.SetPreview(id, "data:image/jpeg;base64,AAAA")
	assert.Empty(t, f.Attachments)
}

func TestResetClearsEverything(t *testing.T) {
	f := &Form{}
	f.Draft.Name = "X"
	require.NoError(t, f.Draft.SetCategory(domain.CategoryFresh))
	_, err := f.Attach("photo.jpg", []byte{1})
	require.NoError(t, err)

	f.Reset()
	assert.Equal(t, Draft{}, f.Draft)
	assert.Empty(t, f.Attachments)
}
