package catalog

import (
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

// IdentitySource yields the decoded admin identity used for ownership
// narrowing; the session store implements it.
type IdentitySource interface {
	Identity() string
}

// Service is the product list view: it fetches the catalog, narrows it to
// the authenticated admin's own listings, and applies client-side category
// and search filtering.
type Service struct {
	gw    *api.Gateway
	ident IdentitySource

	gen uint64

	mu       sync.RWMutex
	products []domain.Product
}

func NewService(gw *api.Gateway, ident IdentitySource) *Service {
	return &Service{gw: gw, ident: ident}
}

// Refresh refetches the product list. Responses from superseded refreshes
// are discarded, so a slow fetch can never overwrite a newer one.
func (s *Service) Refresh() error {
	gen := atomic.AddUint64(&s.gen, 1)
	list, err := s.gw.Products()
	if err != nil {
		return err
	}
	owned := OwnedBy(list, s.ident.Identity())
	if atomic.LoadUint64(&s.gen) != gen {
		zap.L().Debug("discarding stale product refresh")
		return nil
	}
	s.mu.Lock()
	s.products = owned
	s.mu.Unlock()
	return nil
}

// Products returns the owned set before display filtering.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Filter is recomputed on every change to the list, category or search term.
type Filter struct {
	Category domain.Category
	Search   string
}

func (s *Service) Filtered(f Filter) []domain.Product {
	return Apply(s.Products(), f)
}

// OwnedBy narrows the fetched catalog to products whose ownership field
// matches the given admin identity. Mandatory before any display or
// filtering; an empty identity owns nothing.
func OwnedBy(list []domain.Product, adminID string) []domain.Product {
	out := make([]domain.Product, 0, len(list))
	if adminID == "" {
		return out
	}
	for _, p := range list {
		if p.AdminID == adminID {
			out = append(out, p)
		}
	}
	return out
}

// Apply runs the category filter and the case-insensitive substring search
// over name, description and category.
func Apply(list []domain.Product, f Filter) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(string(p.Category)), needle)
}

// Delete removes a listing and refreshes the local set.
func (s *Service) Delete(id string) error {
	if err := s.gw.DeleteProduct(id); err != nil {
		return err
	}
	return s.Refresh()
}

// Update edits a listing in place (JSON, not multipart) and refreshes.
func (s *Service) Update(id string, p *domain.Product) (*domain.Product, error) {
	updated, err := s.gw.UpdateProduct(id, p)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(); err != nil {
		zap.L().Warn("refresh after product update failed", zap.Error(err))
	}
	return updated, nil
}
