package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// Time range selectors accepted by the series endpoints.
const (
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
	RangeAll     = "all"
)

const seriesPointCount = 6

// SnapshotStore is the persistence surface for the per-channel snapshot
// tables and the legacy aggregate tables.
type SnapshotStore interface {
	AppendAll(ctx context.Context, counts map[models.Channel]dto.PendingResolve) error
	RefreshLegacy(ctx context.Context, channel models.Channel, pair dto.PendingResolve) error
	EnsureSeed(ctx context.Context, channel models.Channel) error
	Latest(ctx context.Context, channel models.Channel) (*models.ChannelSnapshot, error)
	SeriesAll(ctx context.Context, channel models.Channel, limit int) ([]dto.SeriesPoint, error)
	SeriesWeekly(ctx context.Context, channel models.Channel) ([]dto.SeriesPoint, error)
	SeriesMonthly(ctx context.Context, channel models.Channel) ([]dto.SeriesPoint, error)
	LatestBucket(ctx context.Context, channel models.Channel, monthly bool) (*dto.SeriesPoint, error)
}

// HistoryStore reads the complaint history trail.
type HistoryStore interface {
	ByOriginal(ctx context.Context, originalID int64) ([]models.ComplaintHistoryEntry, error)
	RecentByMainDepartment(ctx context.Context, mainDepartment string, limit int) ([]models.ComplaintHistoryEntry, error)
	AllJoined(ctx context.Context, limit int) ([]dto.HistoryJoinedRow, error)
	DepartmentTotals(ctx context.Context) ([]dto.DepartmentChannelTotals, error)
	DepartmentHistory(ctx context.Context, mainDepartment string) ([]dto.DepartmentNamePoint, error)
	DepartmentNameSeries(ctx context.Context, departmentName string, limit int) ([]dto.DepartmentNamePoint, error)
	DepartmentNameBuckets(ctx context.Context, departmentName string, monthly bool) ([]dto.DepartmentNameBucket, error)
}

// AggregateStore exposes the register-wide aggregations.
type AggregateStore interface {
	ChannelTotals(ctx context.Context) (*dto.ChannelTotals, error)
	Realtime(ctx context.Context) (*dto.RealtimeStats, error)
	PortalDepartments(ctx context.Context, channel models.Channel, limit int) ([]dto.PortalDepartmentRow, error)
	TopDepartments(ctx context.Context, channel models.Channel, limit int) ([]dto.TopDepartmentRow, error)
}

// StatsService implements the snapshot submissions, the per-channel series
// and the history projections behind the dashboard charts.
type StatsService struct {
	snapshots   SnapshotStore
	history     HistoryStore
	register    AggregateStore
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	placeholder bool
}

// NewStatsService constructs the service. When placeholder is true, empty
// series reads fabricate bounded demonstration points instead of returning
// empty charts.
func NewStatsService(snapshots SnapshotStore, history HistoryStore, register AggregateStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger, placeholder bool) *StatsService {
	return &StatsService{
		snapshots:   snapshots,
		history:     history,
		register:    register,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		placeholder: placeholder,
	}
}

// UpdateStats validates and stores one snapshot submission. Validation is
// all-or-nothing: any channel with a missing or incomplete pair rejects the
// whole batch before anything is written. The legacy aggregate rows are
// refreshed best effort afterwards.
func (s *StatsService) UpdateStats(ctx context.Context, req dto.UpdateStatsRequest) (map[models.Channel]dto.PendingResolve, error) {
	counts, err := req.Normalize()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	start := time.Now()
	if err := s.snapshots.AppendAll(ctx, counts); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("snapshot_append", time.Since(start))
	}

	for _, channel := range models.AllChannels() {
		if err := s.snapshots.RefreshLegacy(ctx, channel, counts[channel]); err != nil && s.logger != nil {
			s.logger.Warn("legacy stats refresh failed", zap.String("channel", string(channel)), zap.Error(err))
		}
	}

	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	if s.logger != nil {
		s.logger.Info("channel snapshots stored", zap.Int("channels", len(counts)))
	}
	return counts, nil
}

// PortalSeries returns the bucketed or raw series for one channel. An
// unrecognized portal parameter is rejected; an empty result fabricates
// placeholder points when enabled.
func (s *StatsService) PortalSeries(ctx context.Context, portal, timeRange string) (*dto.ChannelSeries, error) {
	channel, ok := models.ChannelFromParam(portal)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidPortal, fmt.Sprintf("invalid portal name: %s", portal))
	}

	if err := s.snapshots.EnsureSeed(ctx, channel); err != nil {
		return nil, err
	}

	start := time.Now()
	var points []dto.SeriesPoint
	var err error
	switch timeRange {
	case RangeWeekly:
		points, err = s.snapshots.SeriesWeekly(ctx, channel)
	case RangeMonthly:
		points, err = s.snapshots.SeriesMonthly(ctx, channel)
	default:
		points, err = s.snapshots.SeriesAll(ctx, channel, seriesPointCount)
	}
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("portal_series", time.Since(start))
	}

	if len(points) == 0 && s.placeholder {
		return &dto.ChannelSeries{
			Source: dto.SeriesSourcePlaceholder,
			Points: placeholderSeries(timeRange, time.Now()),
		}, nil
	}
	if points == nil {
		points = []dto.SeriesPoint{}
	}
	return &dto.ChannelSeries{Source: dto.SeriesSourceLive, Points: points}, nil
}

// LatestAll returns the newest snapshot of every channel.
func (s *StatsService) LatestAll(ctx context.Context) ([]dto.LatestChannelRow, error) {
	rows := make([]dto.LatestChannelRow, 0, len(models.AllChannels()))
	for _, channel := range models.AllChannels() {
		if err := s.snapshots.EnsureSeed(ctx, channel); err != nil {
			return nil, err
		}
		snap, err := s.snapshots.Latest(ctx, channel)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				rows = append(rows, dto.LatestChannelRow{Portal: channel.Table()})
				continue
			}
			return nil, err
		}
		rows = append(rows, dto.LatestChannelRow{
			Portal:    channel.Table(),
			Pending:   snap.Pending,
			Resolve:   snap.Resolve,
			Total:     snap.Total,
			CreatedAt: snap.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows, nil
}

// SummaryGraph returns the newest weekly or monthly bucket of every channel,
// keyed by the canonical channel name. Channels with no data in the window
// fall back to a fabricated point when placeholders are enabled.
func (s *StatsService) SummaryGraph(ctx context.Context, timeRange string) (map[string]dto.SummaryGraphEntry, error) {
	monthly := timeRange == RangeMonthly
	out := make(map[string]dto.SummaryGraphEntry, len(models.AllChannels()))
	for _, channel := range models.AllChannels() {
		if err := s.snapshots.EnsureSeed(ctx, channel); err != nil {
			return nil, err
		}
		point, err := s.snapshots.LatestBucket(ctx, channel, monthly)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if s.placeholder {
					out[channel.Table()] = dto.SummaryGraphEntry{
						SeriesPoint: placeholderBucket(timeRange, time.Now()),
						Source:      dto.SeriesSourcePlaceholder,
					}
				} else {
					out[channel.Table()] = dto.SummaryGraphEntry{Source: dto.SeriesSourceLive}
				}
				continue
			}
			return nil, err
		}
		out[channel.Table()] = dto.SummaryGraphEntry{SeriesPoint: *point, Source: dto.SeriesSourceLive}
	}
	return out, nil
}

// Departments lists departments with their complaint count for one channel,
// selected by its dashboard display label.
func (s *StatsService) Departments(ctx context.Context, portalLabel string, limit int) ([]dto.PortalDepartmentRow, error) {
	channel, ok := models.ChannelFromPortalLabel(portalLabel)
	if !ok {
		if channel, ok = models.ChannelFromParam(portalLabel); !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidPortal, fmt.Sprintf("invalid portal name: %s", portalLabel))
		}
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.register.PortalDepartments(ctx, channel, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.PortalDepartmentRow{}
	}
	return rows, nil
}

// Realtime returns the cross-channel aggregate snapshot of the register.
func (s *StatsService) Realtime(ctx context.Context) (*dto.RealtimeStats, error) {
	start := time.Now()
	stats, err := s.register.Realtime(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("realtime_totals", time.Since(start))
	}
	return stats, nil
}

// TopDepartments ranks records by one channel column, or by the grand total
// when no portal is given.
func (s *StatsService) TopDepartments(ctx context.Context, portal string, limit int) ([]dto.TopDepartmentRow, error) {
	var channel models.Channel
	if portal != "" {
		var ok bool
		if channel, ok = models.ChannelFromParam(portal); !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidPortal, fmt.Sprintf("invalid portal name: %s", portal))
		}
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.register.TopDepartments(ctx, channel, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.TopDepartmentRow{}
	}
	return rows, nil
}

// DepartmentGraphResult is the per-office trend in the shape of the
// requested time range.
type DepartmentGraphResult struct {
	Range   string                     `json:"range"`
	Points  []dto.DepartmentNamePoint  `json:"points,omitempty"`
	Buckets []dto.DepartmentNameBucket `json:"buckets,omitempty"`
}

// DepartmentGraph returns the history trend for one named office, raw or
// bucketed depending on the time range.
func (s *StatsService) DepartmentGraph(ctx context.Context, departmentName, timeRange string) (*DepartmentGraphResult, error) {
	switch timeRange {
	case RangeWeekly, RangeMonthly:
		buckets, err := s.history.DepartmentNameBuckets(ctx, departmentName, timeRange == RangeMonthly)
		if err != nil {
			return nil, err
		}
		if buckets == nil {
			buckets = []dto.DepartmentNameBucket{}
		}
		return &DepartmentGraphResult{Range: timeRange, Buckets: buckets}, nil
	default:
		points, err := s.history.DepartmentNameSeries(ctx, departmentName, 100)
		if err != nil {
			return nil, err
		}
		if points == nil {
			points = []dto.DepartmentNamePoint{}
		}
		return &DepartmentGraphResult{Range: RangeAll, Points: points}, nil
	}
}

// MainGraph groups the full history by main department.
func (s *StatsService) MainGraph(ctx context.Context) ([]dto.DepartmentChannelTotals, error) {
	rows, err := s.history.DepartmentTotals(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.DepartmentChannelTotals{}
	}
	return rows, nil
}

// DepartmentHistory returns the full trend for one main department.
func (s *StatsService) DepartmentHistory(ctx context.Context, mainDepartment string) ([]dto.DepartmentNamePoint, error) {
	if mainDepartment == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "main_department is required")
	}
	rows, err := s.history.DepartmentHistory(ctx, mainDepartment)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.DepartmentNamePoint{}
	}
	return rows, nil
}

// HistoryByID returns every history entry for one record, newest first.
func (s *StatsService) HistoryByID(ctx context.Context, originalID int64) ([]models.ComplaintHistoryEntry, error) {
	entries, err := s.history.ByOriginal(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ComplaintHistoryEntry{}
	}
	return entries, nil
}

// AllHistory returns history entries joined to their current record.
func (s *StatsService) AllHistory(ctx context.Context, limit int) ([]dto.HistoryJoinedRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.history.AllJoined(ctx, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.HistoryJoinedRow{}
	}
	return rows, nil
}

// RecentHistory returns the newest history entries, optionally filtered to a
// main department.
func (s *StatsService) RecentHistory(ctx context.Context, mainDepartment string, limit int) ([]models.ComplaintHistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.history.RecentByMainDepartment(ctx, mainDepartment, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ComplaintHistoryEntry{}
	}
	return entries, nil
}

// placeholderSeries fabricates six bounded pseudo-random points for an empty
// channel, oldest first. Bounds differ per range so the demo charts look like
// plausible weekly, monthly or daily readings.
func placeholderSeries(timeRange string, now time.Time) []dto.SeriesPoint {
	points := make([]dto.SeriesPoint, 0, seriesPointCount)
	for i := seriesPointCount - 1; i >= 0; i-- {
		points = append(points, placeholderPoint(timeRange, now, i, seriesPointCount-i))
	}
	return points
}

// placeholderBucket fabricates the single newest bucket for the summary graph.
func placeholderBucket(timeRange string, now time.Time) dto.SeriesPoint {
	return placeholderPoint(timeRange, now, 0, 1)
}

func placeholderPoint(timeRange string, now time.Time, stepsBack, seq int) dto.SeriesPoint {
	var p dto.SeriesPoint
	switch timeRange {
	case RangeWeekly:
		t := now.AddDate(0, 0, -7*stepsBack)
		year, week := t.ISOWeek()
		p.ID = fmt.Sprintf("%d-W%02d", year, week)
		p.Year = year
		p.Week = week
		p.PeriodStart = t.AddDate(0, 0, -6).Format("2006-01-02")
		p.PeriodEnd = t.Format("2006-01-02")
		p.Pending = randomBetween(10, 59)
		p.Resolve = randomBetween(5, 34)
		p.Total = randomBetween(20, 99)
	case RangeMonthly:
		t := now.AddDate(0, -stepsBack, 0)
		p.ID = t.Format("2006-01")
		p.Year = t.Year()
		p.Month = int(t.Month())
		p.PeriodStart = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
		p.PeriodEnd = t.Format("2006-01-02")
		p.Pending = randomBetween(20, 119)
		p.Resolve = randomBetween(10, 69)
		p.Total = randomBetween(40, 199)
	default:
		t := now.AddDate(0, 0, -stepsBack)
		p.ID = strconv.Itoa(seq)
		p.CreatedAt = t.Format("2006-01-02")
		p.Pending = randomBetween(5, 34)
		p.Resolve = randomBetween(3, 22)
		p.Total = randomBetween(10, 59)
	}
	return p
}

func randomBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}
