package dashboard

import (
	"context"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

// Snapshot is one load of the read-mostly dashboards. When the backend is
// unreachable or the session is invalid the snapshot comes back Degraded with
// empty data; the view labels it offline instead of showing fabricated
// numbers.
type Snapshot struct {
	Stats          *domain.DashboardStats
	Analytics      *domain.AnalyticsReport
	Sellers        []domain.Seller
	Aggregates     Aggregates
	Degraded       bool
	DegradedReason string
}

// Aggregates are client-side derivations over the analytics points.
type Aggregates struct {
	MeanDailyRevenue   float64
	MedianDailyRevenue float64
	PeakDailyRevenue   float64
	RevenueTrend       float64
}

// Service fetches stats, analytics and seller performance.
type Service struct {
	gw *api.Gateway
}

func NewService(gw *api.Gateway) *Service {
	return &Service{gw: gw}
}

// Load fetches the three feeds in parallel. Authentication and transport
// failures degrade; server-reported business failures propagate.
func (s *Service) Load(ctx context.Context, r domain.AnalyticsRange) (*Snapshot, error) {
	if !r.Valid() {
		r = domain.RangeMonth
	}

	snap := &Snapshot{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.gw.Stats()
		if err != nil {
			return err
		}
		snap.Stats = st
		return nil
	})
	g.Go(func() error {
		rep, err := s.gw.Analytics(r)
		if err != nil {
			return err
		}
		snap.Analytics = rep
		return nil
	})
	g.Go(func() error {
		sellers, err := s.gw.Sellers()
		if err != nil {
			return err
		}
		snap.Sellers = sellers
		return nil
	})

	if err := g.Wait(); err != nil {
		if api.IsUnauthorized(err) || api.IsTransport(err) {
			zap.L().Warn("dashboard degraded", zap.Error(err))
			return &Snapshot{Degraded: true, DegradedReason: err.Error()}, nil
		}
		return nil, err
	}

	if snap.Analytics != nil {
		snap.Aggregates = ComputeAggregates(snap.Analytics.Points)
	}
	return snap, nil
}

// ComputeAggregates derives summary numbers from the daily revenue series.
// RevenueTrend is the mean day-over-day revenue delta: positive means the
// period trended up.
func ComputeAggregates(points []domain.AnalyticsPoint) Aggregates {
	if len(points) == 0 {
		return Aggregates{}
	}
	revenue := make([]float64, 0, len(points))
	for _, p := range points {
		revenue = append(revenue, p.Revenue)
	}

	var agg Aggregates
	agg.MeanDailyRevenue, _ = stats.Mean(revenue)
	agg.MedianDailyRevenue, _ = stats.Median(revenue)
	agg.PeakDailyRevenue, _ = stats.Max(revenue)

	if len(revenue) > 1 {
		deltas := make([]float64, 0, len(revenue)-1)
		for i := 1; i < len(revenue); i++ {
			deltas = append(deltas, revenue[i]-revenue[i-1])
		}
		agg.RevenueTrend, _ = stats.Mean(deltas)
	}
	return agg
}
