package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

type staticIdentity string

func (s staticIdentity) Identity() string { return string(s) }

var sample = []domain.Product{
	{ID: "p1", AdminID: "a1", Name: "Red Rose Bouquet", Description: "a dozen red roses", Category: domain.CategoryFresh},
	{ID: "p2", AdminID: "a1", Name: "Silk Tulips", Description: "forever flowers", Category: domain.CategoryArtificial},
	{ID: "p3", AdminID: "a2", Name: "Brown Bear", Category: domain.CategoryBears},
	{ID: "p4", AdminID: "a1", Name: "Teddy", Description: "soft bear", Category: domain.CategoryBears},
}

func TestOwnedBy(t *testing.T) {
	owned := OwnedBy(sample, "a1")
	require.Len(t, owned, 3)
	for _, p := range owned {
		assert.Equal(t, "a1", p.AdminID)
	}

	assert.Empty(t, OwnedBy(sample, ""), "no identity means no visible products")
	assert.Empty(t, OwnedBy(sample, "a3"))
}

func TestApplyCategoryAndSearch(t *testing.T) {
	list := OwnedBy(sample, "a1")

	out := Apply(list, Filter{Category: domain.CategoryBears})
	require.Len(t, out, 1)
	assert.Equal(t, "p4", out[0].ID)

	// search is case-insensitive and covers name, description, category
	out = Apply(list, Filter{Search: "ROSE"})
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)

	out = Apply(list, Filter{Search: "forever"})
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)

	out = Apply(list, Filter{Search: "artificial"})
	require.Len(t, out, 1)

	// both narrow together
	out = Apply(list, Filter{Category: domain.CategoryBears, Search: "rose"})
	assert.Empty(t, out)

	// blank search is no filter
	out = Apply(list, Filter{Search: "   "})
	assert.Len(t, out, 3)
}

func TestRefreshNarrowsToOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[
			{"_id":"p1","adminId":"a1","name":"Red Rose Bouquet","category":"fresh"},
			{"_id":"p3","adminId":"a2","name":"Brown Bear","category":"bears"}
		]}`))
	}))
	defer srv.Close()

	svc := NewService(api.NewGateway(srv.URL, nil), staticIdentity("a1"))
	require.NoError(t, svc.Refresh())

	list := svc.Products()
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].ID)
}

func TestRefreshErrorLeavesListUntouched(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"success":false,"message":"upstream down"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"p1","adminId":"a1","name":"Roses"}]}`))
	}))
	defer srv.Close()

	svc := NewService(api.NewGateway(srv.URL, nil), staticIdentity("a1"))
	require.NoError(t, svc.Refresh())
	require.Len(t, svc.Products(), 1)

	assert.Error(t, svc.Refresh())
	assert.Len(t, svc.Products(), 1, "failed refresh keeps previous list")
}
