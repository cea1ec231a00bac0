package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/draft"
)

// TopicProgress is the bus topic carrying Progress snapshots.
const TopicProgress = "upload.progress"

// TransportTimeout bounds the whole multipart submission; exceeding it is
// treated identically to a network failure.
const TransportTimeout = 5 * time.Minute

// ErrInFlight rejects a second submit while one is running; the submit
// affordance is disabled for the duration, never queued.
var ErrInFlight = errors.New("an upload is already in progress")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormSource serializes access to the product form; the application's
// WithForm implements it. Every form read or write inside the pipeline goes
// through here so submissions and console handlers never touch the form
// concurrently.
type FormSource interface {
	WithForm(fn func(*draft.Form) error) error
}

// Pipeline serializes a validated form into one multipart request, reports
// byte-level progress on the bus, and ends in a single terminal outcome: full
// form reset on success, untouched form on any failure.
type Pipeline struct {
	gw     *api.Gateway
	bus    EventBus.Bus
	client *http.Client

	inflight int32

	mu   sync.Mutex
	last *Progress
}

func NewPipeline(gw *api.Gateway, bus EventBus.Bus) *Pipeline {
	return &Pipeline{
		gw:     gw,
		bus:    bus,
		client: &http.Client{Timeout: TransportTimeout},
	}
}

// InFlight reports whether a submission is currently running.
func (p *Pipeline) InFlight() bool {
	return atomic.LoadInt32(&p.inflight) == 1
}

// LastProgress returns the most recent snapshot of the current or previous
// upload.
func (p *Pipeline) LastProgress() (Progress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Progress{}, false
	}
	return *p.last, true
}

// Submit validates the form, posts it to POST /products and resets the form
// on explicit success. Validation failures never reach the network; any other
// failure leaves draft and assets byte-for-byte unchanged for a retry.
// Validation, encoding and the final reset run under the form lock; only the
// network exchange happens outside it, against the encoded snapshot.
func (p *Pipeline) Submit(ctx context.Context, forms FormSource) error {
	if !atomic.CompareAndSwapInt32(&p.inflight, 0, 1) {
		return ErrInFlight
	}
	defer atomic.StoreInt32(&p.inflight, 0)

	var body []byte
	var contentType string
	err := forms.WithForm(func(form *draft.Form) error {
		if verr := form.ValidateForSubmit(); verr != nil {
			return verr
		}
		var eerr error
		body, contentType, eerr = encodeForm(form)
		if eerr != nil {
			return errors.Wrap(eerr, "encode product form")
		}
		return nil
	})
	if err != nil {
		return err
	}
	total := int64(len(body))
	start := time.Now()
	reader := &countingReader{
		r: bytes.NewReader(body),
		fn: func(sent int64) {
			p.publish(computeProgress(sent, total, time.Since(start)))
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gw.BaseURL()+"/products", reader)
	if err != nil {
		return errors.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total
	if bearer := p.gw.BearerToken(); bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		zap.L().Warn("product upload transport failure", zap.Error(err))
		return &api.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &api.TransportError{Err: err}
	}
	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if jerr := json.Unmarshal(raw, &env); jerr != nil {
		return &api.TransportError{Err: errors.Wrap(jerr, "malformed upload response")}
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return api.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &api.ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	_ = forms.WithForm(func(form *draft.Form) error {
		form.Reset()
		return nil
	})
	p.publish(computeProgress(total, total, time.Since(start)))
	zap.L().Info("product uploaded", zap.Int64("bytes", total))
	return nil
}

func (p *Pipeline) publish(prog Progress) {
	p.mu.Lock()
	p.last = &prog
	p.mu.Unlock()
	if p.bus != nil {
		p.bus.Publish(TopicProgress, prog)
	}
}

// encodeForm flattens the draft into multipart fields. Scalars become named
// fields; nested collections are JSON-encoded strings under their own field
// name, which the backend parses server-side. Only the active-category
// substructures are submitted. Image files repeat under "images", 3D model
// files under "models3d".
func encodeForm(form *draft.Form) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	d := &form.Draft

	fields := map[string]string{
		"name":              d.Name,
		"description":       d.Description,
		"category":          string(d.Category),
		"occasion":          d.Occasion,
		"care_instructions": d.CareInstructions,
		"featured":          strconv.FormatBool(d.Featured),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	view := d.ActiveView()
	if view.Bear != nil {
		if err := writeJSONField(w, "bearDetails", view.Bear); err != nil {
			return nil, "", err
		}
	} else {
		if err := writeJSONField(w, "sizes", view.Sizes); err != nil {
			return nil, "", err
		}
		if view.Fresh != nil {
			if err := writeJSONField(w, "freshFlowerSelections", view.Fresh); err != nil {
				return nil, "", err
			}
		}
		if view.Artificial != nil {
			if err := writeJSONField(w, "artificialFlowerSelections", view.Artificial); err != nil {
				return nil, "", err
			}
		}
	}
	if err := writeJSONField(w, "dimensions", d.Dimensions); err != nil {
		return nil, "", err
	}

	for _, att := range form.Attachments {
		field := "images"
		if att.Kind == draft.AssetModel3D {
			field = "models3d"
		}
		fw, err := w.CreateFormFile(field, att.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(att.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeJSONField(w *multipart.Writer, name string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return w.WriteField(name, string(encoded))
}
