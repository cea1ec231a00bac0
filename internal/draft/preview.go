package draft

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

// Previewer decodes image attachments off the caller's goroutine and
// delivers a data-URL preview through a one-shot callback, matching the
// asynchronous file-reader behavior of the original form.
type Previewer struct {
	pool *ants.Pool
}

func NewPreviewer(workers int) (*Previewer, error) {
	if workers <= 0 {
		workers = 2
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create preview pool")
	}
	return &Previewer{pool: pool}, nil
}

// Generate schedules preview generation. Non-image attachments complete
// immediately with an empty preview; images must decode or the callback
// receives an error.
func (p *Previewer) Generate(att Attachment, done func(id, preview string, err error)) {
	if att.Kind != AssetImage {
		done(att.ID, "", nil)
		return
	}
	data := att.Data
	id := att.ID
	err := p.pool.Submit(func() {
		if _, _, derr := image.DecodeConfig(bytes.NewReader(data)); derr != nil {
			done(id, "", errors.Wrap(derr, "not a decodable image"))
			return
		}
		mime := http.DetectContentType(data)
		done(id, "data:"+mime+";base64,"+base64.StdEncoding.EncodeToString(data), nil)
	})
	if err != nil {
		done(id, "", errors.Wrap(err, "schedule preview"))
	}
}

func (p *Previewer) Release() {
	p.pool.Release()
}
