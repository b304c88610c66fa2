package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
)

const dashboardSummaryKey = "dash:summary"

// DashboardStatStore reads the legacy dashboard_stats table.
type DashboardStatStore interface {
	LatestDashboardStat(ctx context.Context) (*models.DashboardStat, error)
}

// ChannelTotalsStore sums the per-channel columns of the register.
type ChannelTotalsStore interface {
	ChannelTotals(ctx context.Context) (*dto.ChannelTotals, error)
}

// DashboardService composes the flat dashboard summary, cache-aside.
type DashboardService struct {
	stats    DashboardStatStore
	register ChannelTotalsStore
	cache    *CacheService
	metrics  *MetricsService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(stats DashboardStatStore, register ChannelTotalsStore, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{stats: stats, register: register, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Summary returns the flat dashboard payload: overall totals from the newest
// dashboard_stats row and per-channel sums from the register. An empty stats
// table yields zeroes rather than an error.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	var cached dto.DashboardSummary
	if hit, err := s.cache.Get(ctx, dashboardSummaryKey, &cached); err == nil && hit {
		return &cached, nil
	}

	summary := &dto.DashboardSummary{}

	start := time.Now()
	stat, err := s.stats.LatestDashboardStat(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	} else {
		summary.TotalComplaints = stat.TotalComplaints
		summary.Pending = stat.Pending
		summary.Resolved = stat.Resolved
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_stats", time.Since(start))
	}

	start = time.Now()
	totals, err := s.register.ChannelTotals(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("channel_totals", time.Since(start))
	}
	summary.CM = totals.CM
	summary.Collector = totals.Collector
	summary.Post = totals.Post
	summary.Web = totals.Web
	summary.PG = totals.PG
	summary.CallCenter = totals.CallCenter

	if err := s.cache.Set(ctx, dashboardSummaryKey, summary, s.ttl); err != nil && s.logger != nil {
		s.logger.Warn("dashboard summary cache write failed", zap.Error(err))
	}
	return summary, nil
}
