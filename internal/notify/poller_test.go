package notify

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

type backend struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (b *backend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case r.URL.Path == "/admin/notifications" && r.Method == http.MethodGet:
			w.Write([]byte(`{"success":true,"data":` + encode(t, b.notes) + `}`))
		case r.Method == http.MethodPut:
			for i := range b.notes {
				if "/admin/notifications/"+b.notes[i].ID+"/read" == r.URL.Path {
					b.notes[i].Read = true
				}
			}
			w.Write([]byte(`{"success":true}`))
		case r.Method == http.MethodDelete:
			kept := b.notes[:0]
			for _, n := range b.notes {
				if "/admin/notifications/"+n.ID != r.URL.Path {
					kept = append(kept, n)
				}
			}
			b.notes = kept
			w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}
}

func encode(t *testing.T, notes []domain.Notification) string {
	t.Helper()
	out := "["
	for i, n := range notes {
		if i > 0 {
			out += ","
		}
		read := "false"
		if n.Read {
			read = "true"
		}
		out += `{"id":"` + n.ID + `","title":"` + n.Title + `","read":` + read + `}`
	}
	return out + "]"
}

func TestPollAndUnreadCount(t *testing.T) {
	b := &backend{notes: []domain.Notification{
		{ID: "n1", Title: "New order"},
		{ID: "n2", Title: "Payment verified", Read: true},
	}}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	p := NewPoller(api.NewGateway(srv.URL, nil), nil)
	p.poll()

	assert.Len(t, p.Latest(), 2)
	assert.Equal(t, 1, p.Unread())
}

func TestMarkReadRefreshesImmediately(t *testing.T) {
	b := &backend{notes: []domain.Notification{{ID: "n1", Title: "New order"}}}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	bus := EventBus.New()
	published := 0
	require.NoError(t, bus.Subscribe(TopicNotifications, func([]domain.Notification) {
		published++
	}))

	p := NewPoller(api.NewGateway(srv.URL, nil), bus)
	p.poll()
	require.Equal(t, 1, p.Unread())

	require.NoError(t, p.MarkRead("n1"))
	assert.Equal(t, 0, p.Unread(), "mutation refreshes without waiting for the tick")
	assert.Equal(t, 2, published)
}

func TestDeleteRemovesEntry(t *testing.T) {
	b := &backend{notes: []domain.Notification{{ID: "n1"}, {ID: "n2"}}}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	p := NewPoller(api.NewGateway(srv.URL, nil), nil)
	p.poll()
	require.Len(t, p.Latest(), 2)

	require.NoError(t, p.Delete("n1"))
	latest := p.Latest()
	require.Len(t, latest, 1)
	assert.Equal(t, "n2", latest[0].ID)
}

func TestFailedPollKeepsLastGoodList(t *testing.T) {
	fail := false
	b := &backend{notes: []domain.Notification{{ID: "n1"}}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"success":false,"message":"upstream down"}`))
			return
		}
		b.handler(t)(w, r)
	}))
	defer srv.Close()

	p := NewPoller(api.NewGateway(srv.URL, nil), nil)
	p.poll()
	require.Len(t, p.Latest(), 1)

	fail = true
	p.poll()
	assert.Len(t, p.Latest(), 1, "failure waits for the next tick, list untouched")
}
