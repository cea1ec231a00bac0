package draft

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestGeneratePreviewForImage(t *testing.T) {
	p, err := NewPreviewer(1)
	require.NoError(t, err)
	defer p.Release()

	f := &Form{}
	att, err := f.Attach("photo.png", pngBytes(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	p.Generate(att, func(id, preview string, perr error) {
		defer wg.Done()
		assert.NoError(t, perr)
		assert.Equal(t, att.ID, id)
		assert.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))
	})
	wg.Wait()
}

func TestGenerateSkipsModels(t *testing.T) {
	p, err := NewPreviewer(1)
	require.NoError(t, err)
	defer p.Release()

	called := false
	p.Generate(Attachment{ID: "x", Kind: AssetModel3D}, func(id, preview string, perr error) {
		called = true
		assert.Empty(t, preview)
		assert.NoError(t, perr)
	})
	assert.True(t, called, "non-images complete synchronously")
}

func TestGenerateRejectsCorruptImage(t *testing.T) {
	p, err := NewPreviewer(1)
	require.NoError(t, err)
	defer p.Release()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Generate(Attachment{ID: "x", Kind: AssetImage, Data: []byte("not an image")},
		func(id, preview string, perr error) {
			defer wg.Done()
			assert.Error(t, perr)
			assert.Empty(t, preview)
		})
	wg.Wait()
}
