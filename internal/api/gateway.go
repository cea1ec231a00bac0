package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every JSON request. The multipart product upload has
// its own 5-minute bound in the upload package.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the current bearer token; the session store implements it.
type TokenSource interface {
	Token() string
}

// Gateway is the single point of outbound HTTP calls to the platform backend.
// It attaches the bearer token, unwraps the {success,data,message} envelope
// and normalizes failures into the console error taxonomy.
type Gateway struct {
	baseURL string
	tokens  TokenSource
	timeout time.Duration
}

func NewGateway(baseURL string, tokens TokenSource) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		timeout: DefaultTimeout,
	}
}

// BaseURL returns the backend root, used by the upload pipeline which drives
// its own transport.
func (g *Gateway) BaseURL() string { return g.baseURL }

// BearerToken returns the current Authorization header value, empty when
// logged out.
func (g *Gateway) BearerToken() string {
	if g.tokens == nil {
		return ""
	}
	if t := g.tokens.Token(); t != "" {
		return "Bearer " + t
	}
	return ""
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func (g *Gateway) url(path string) string {
	return g.baseURL + path
}

func (g *Gateway) headers() gout.H {
	h := gout.H{"Content-Type": "application/json"}
	if bearer := g.BearerToken(); bearer != "" {
		h["Authorization"] = bearer
	}
	return h
}

// getJSON performs a GET and decodes the envelope data into out (may be nil).
func (g *Gateway) getJSON(path string, query gout.H, out interface{}) error {
	df := gout.GET(g.url(path))
	if query != nil {
		df = df.SetQuery(query)
	}
	return g.exchange(path, df, out)
}

func (g *Gateway) postJSON(path string, body interface{}, out interface{}) error {
	df := gout.POST(g.url(path))
	if body != nil {
		df = df.SetJSON(body)
	}
	return g.exchange(path, df, out)
}

func (g *Gateway) putJSON(path string, body interface{}, out interface{}) error {
	df := gout.PUT(g.url(path))
	if body != nil {
		df = df.SetJSON(body)
	}
	return g.exchange(path, df, out)
}

func (g *Gateway) deleteJSON(path string, out interface{}) error {
	return g.exchange(path, gout.DELETE(g.url(path)), out)
}

// exchange runs the request and applies the uniform failure policy: any
// transport error, non-2xx status or success:false is a failure, with the
// backend message surfaced verbatim when present.
func (g *Gateway) exchange(path string, df *dataflow.DataFlow, out interface{}) error {
	var env envelope
	code := 0
	err := df.
		SetHeader(g.headers()).
		SetTimeout(g.timeout).
		Code(&code).
		BindJSON(&env).
		Do()
	if err != nil {
		zap.L().Warn("backend request failed", zap.String("path", path), zap.Error(err))
		return &TransportError{Err: err}
	}
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		if env.Message != "" {
			return errors.Wrap(ErrUnauthorized, env.Message)
		}
		return ErrUnauthorized
	}
	if code < 200 || code >= 300 || !env.Success {
		zap.L().Debug("backend reported failure",
			zap.String("path", path), zap.Int("code", code), zap.String("message", env.Message))
		return &ServerError{StatusCode: code, Message: env.Message}
	}
	if out == nil || env.Data == nil {
		return nil
	}
	return decodeData(env.Data, out)
}

// decodeData maps the loosely-typed envelope payload onto a typed struct.
func decodeData(data interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "build decoder")
	}
	if err := dec.Decode(data); err != nil {
		return &TransportError{Err: errors.Wrap(err, "malformed response data")}
	}
	return nil
}
