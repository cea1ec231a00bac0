package orders

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

// Service is the orders view: admin-wide order list with client-side search,
// status filtering and fire-and-forget status transition commands.
type Service struct {
	gw *api.Gateway

	gen uint64

	mu     sync.RWMutex
	orders []domain.Order
}

func NewService(gw *api.Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) Refresh() error {
	gen := atomic.AddUint64(&s.gen, 1)
	list, err := s.gw.Orders()
	if err != nil {
		return err
	}
	if atomic.LoadUint64(&s.gen) != gen {
		zap.L().Debug("discarding stale order refresh")
		return nil
	}
	s.mu.Lock()
	s.orders = list
	s.mu.Unlock()
	return nil
}

func (s *Service) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

type Filter struct {
	Status domain.OrderStatus
	Search string
}

func (s *Service) Filtered(f Filter) []domain.Order {
	return Apply(s.Orders(), f)
}

// Apply searches across customer name, email and order identifier.
func Apply(list []domain.Order, f Filter) []domain.Order {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		if f.Status != "" && o.OrderStatus != f.Status {
			continue
		}
		if needle != "" && !matches(o, needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o domain.Order, needle string) bool {
	return strings.Contains(strings.ToLower(o.CustomerInfo.Name), needle) ||
		strings.Contains(strings.ToLower(o.CustomerInfo.Email), needle) ||
		strings.Contains(strings.ToLower(o.ID), needle)
}

// UpdateStatus issues the transition command without validating the graph.
// On success the backend's returned status is reflected into local state; on
// failure local state is untouched and the error surfaces.
func (s *Service) UpdateStatus(id string, status domain.OrderStatus) (domain.OrderStatus, error) {
	applied, err := s.gw.UpdateOrderStatus(id, status)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].OrderStatus = applied
			break
		}
	}
	s.mu.Unlock()
	return applied, nil
}

// CreatedTime parses the backend's createdAt timestamp tolerantly; zero time
// when unparseable.
func CreatedTime(o domain.Order) time.Time {
	if o.CreatedAt == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(o.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
