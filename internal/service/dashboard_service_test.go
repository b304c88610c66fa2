package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// memoryCache is an in-process CacheRepository used to exercise the
// cache-aside path without Redis.
type memoryCache struct {
	mu    sync.Mutex
	store map[string]interface{}
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string]interface{}{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if summary, ok := value.(*dto.DashboardSummary); ok {
		if target, ok := dest.(*dto.DashboardSummary); ok {
			*target = *summary
			return nil
		}
	}
	return appErrors.ErrCacheMiss
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *memoryCache) DeleteByPattern(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = map[string]interface{}{}
	return nil
}

func TestDashboardServiceSummaryComposesFlatShape(t *testing.T) {
	snapshots := &fakeSnapshotStore{dashboardStat: &models.DashboardStat{
		TotalComplaints: 120, Pending: 80, Resolved: 40,
	}}
	register := &fakeAggregateStore{totals: &dto.ChannelTotals{
		CM: 10, Collector: 20, Post: 5, Web: 7, PG: 3, CallCenter: 9,
	}}
	svc := NewDashboardService(snapshots, register, nil, nil, time.Minute, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, summary.TotalComplaints)
	assert.Equal(t, 80, summary.Pending)
	assert.Equal(t, 40, summary.Resolved)
	assert.Equal(t, 10, summary.CM)
	assert.Equal(t, 9, summary.CallCenter)
}

func TestDashboardServiceSummaryEmptyStatsYieldsZeroes(t *testing.T) {
	snapshots := &fakeSnapshotStore{dashboardErr: sql.ErrNoRows}
	register := &fakeAggregateStore{totals: &dto.ChannelTotals{Web: 4}}
	svc := NewDashboardService(snapshots, register, nil, nil, time.Minute, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalComplaints)
	assert.Equal(t, 0, summary.Pending)
	assert.Equal(t, 4, summary.Web)
}

func TestDashboardServiceSummaryServesFromCache(t *testing.T) {
	snapshots := &fakeSnapshotStore{dashboardStat: &models.DashboardStat{TotalComplaints: 1}}
	register := &fakeAggregateStore{totals: &dto.ChannelTotals{}}
	cacheSvc := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewDashboardService(snapshots, register, cacheSvc, nil, time.Minute, nil)

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalComplaints)

	// The second read comes from the cache even after the store changes.
	snapshots.dashboardStat = &models.DashboardStat{TotalComplaints: 99}
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalComplaints)
}

func TestDashboardServiceSummaryTimesQueries(t *testing.T) {
	snapshots := &fakeSnapshotStore{dashboardStat: &models.DashboardStat{TotalComplaints: 3}}
	register := &fakeAggregateStore{totals: &dto.ChannelTotals{}}
	metrics := NewMetricsService()
	svc := NewDashboardService(snapshots, register, nil, metrics, time.Minute, nil)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)

	body := scrapeMetrics(t, metrics)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="dashboard_stats"} 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="channel_totals"} 1`)
}

func TestCacheServiceDisabledNeverHits(t *testing.T) {
	cacheSvc := NewCacheService(nil, nil, time.Minute, nil, false)

	var out dto.DashboardSummary
	hit, err := cacheSvc.Get(context.Background(), dashboardSummaryKey, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cacheSvc.Set(context.Background(), dashboardSummaryKey, &out, 0))
	assert.NoError(t, cacheSvc.Invalidate(context.Background(), dashboardCachePattern))
}
