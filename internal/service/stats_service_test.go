package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

type fakeSnapshotStore struct {
	appended      map[models.Channel]dto.PendingResolve
	appendErr     error
	refreshed     []models.Channel
	refreshErr    error
	seeded        []models.Channel
	latest        map[models.Channel]*models.ChannelSnapshot
	series        []dto.SeriesPoint
	seriesErr     error
	bucket        *dto.SeriesPoint
	bucketErr     error
	dashboardStat *models.DashboardStat
	dashboardErr  error
}

func (f *fakeSnapshotStore) AppendAll(_ context.Context, counts map[models.Channel]dto.PendingResolve) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = counts
	return nil
}

func (f *fakeSnapshotStore) RefreshLegacy(_ context.Context, channel models.Channel, _ dto.PendingResolve) error {
	f.refreshed = append(f.refreshed, channel)
	return f.refreshErr
}

func (f *fakeSnapshotStore) EnsureSeed(_ context.Context, channel models.Channel) error {
	f.seeded = append(f.seeded, channel)
	return nil
}

func (f *fakeSnapshotStore) Latest(_ context.Context, channel models.Channel) (*models.ChannelSnapshot, error) {
	if snap, ok := f.latest[channel]; ok {
		return snap, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSnapshotStore) SeriesAll(context.Context, models.Channel, int) ([]dto.SeriesPoint, error) {
	return f.series, f.seriesErr
}

func (f *fakeSnapshotStore) SeriesWeekly(context.Context, models.Channel) ([]dto.SeriesPoint, error) {
	return f.series, f.seriesErr
}

func (f *fakeSnapshotStore) SeriesMonthly(context.Context, models.Channel) ([]dto.SeriesPoint, error) {
	return f.series, f.seriesErr
}

func (f *fakeSnapshotStore) LatestBucket(context.Context, models.Channel, bool) (*dto.SeriesPoint, error) {
	if f.bucketErr != nil {
		return nil, f.bucketErr
	}
	return f.bucket, nil
}

func (f *fakeSnapshotStore) LatestDashboardStat(context.Context) (*models.DashboardStat, error) {
	return f.dashboardStat, f.dashboardErr
}

type fakeHistoryStore struct {
	entries []models.ComplaintHistoryEntry
	joined  []dto.HistoryJoinedRow
	totals  []dto.DepartmentChannelTotals
	points  []dto.DepartmentNamePoint
	buckets []dto.DepartmentNameBucket
}

func (f *fakeHistoryStore) ByOriginal(context.Context, int64) ([]models.ComplaintHistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeHistoryStore) RecentByMainDepartment(context.Context, string, int) ([]models.ComplaintHistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeHistoryStore) AllJoined(context.Context, int) ([]dto.HistoryJoinedRow, error) {
	return f.joined, nil
}

func (f *fakeHistoryStore) DepartmentTotals(context.Context) ([]dto.DepartmentChannelTotals, error) {
	return f.totals, nil
}

func (f *fakeHistoryStore) DepartmentHistory(context.Context, string) ([]dto.DepartmentNamePoint, error) {
	return f.points, nil
}

func (f *fakeHistoryStore) DepartmentNameSeries(context.Context, string, int) ([]dto.DepartmentNamePoint, error) {
	return f.points, nil
}

func (f *fakeHistoryStore) DepartmentNameBuckets(context.Context, string, bool) ([]dto.DepartmentNameBucket, error) {
	return f.buckets, nil
}

type fakeAggregateStore struct {
	totals      *dto.ChannelTotals
	realtime    *dto.RealtimeStats
	departments []dto.PortalDepartmentRow
	top         []dto.TopDepartmentRow
	lastChannel models.Channel
	lastLimit   int
}

func (f *fakeAggregateStore) ChannelTotals(context.Context) (*dto.ChannelTotals, error) {
	return f.totals, nil
}

func (f *fakeAggregateStore) Realtime(context.Context) (*dto.RealtimeStats, error) {
	return f.realtime, nil
}

func (f *fakeAggregateStore) PortalDepartments(_ context.Context, channel models.Channel, limit int) ([]dto.PortalDepartmentRow, error) {
	f.lastChannel = channel
	f.lastLimit = limit
	return f.departments, nil
}

func (f *fakeAggregateStore) TopDepartments(_ context.Context, channel models.Channel, limit int) ([]dto.TopDepartmentRow, error) {
	f.lastChannel = channel
	f.lastLimit = limit
	return f.top, nil
}

func pair(p, r float64) *dto.ChannelPair {
	return &dto.ChannelPair{Pending: &p, Resolve: &r}
}

func fullStatsRequest() dto.UpdateStatsRequest {
	return dto.UpdateStatsRequest{
		CallCenter:     pair(4, 2),
		CMJandarshan:   pair(5, 3),
		CollJandarshan: pair(6, 1),
		PostMail:       pair(2, 2),
		Web:            pair(3, 0),
		PGPortal:       pair(1, 1),
	}
}

func TestStatsServiceUpdateStatsStoresAllChannels(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	stored, err := svc.UpdateStats(context.Background(), fullStatsRequest())
	require.NoError(t, err)
	assert.Len(t, stored, 6)
	assert.Len(t, snapshots.appended, 6)
	assert.Len(t, snapshots.refreshed, 6)
	assert.Equal(t, dto.PendingResolve{Pending: 4, Resolve: 2}, stored[models.ChannelCallCenter])
}

func TestStatsServiceUpdateStatsRejectsIncompleteBatch(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	req := fullStatsRequest()
	req.Web = nil

	_, err := svc.UpdateStats(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "jansikayatweb")
	assert.Nil(t, snapshots.appended)
}

func TestStatsServiceUpdateStatsToleratesLegacyFailures(t *testing.T) {
	snapshots := &fakeSnapshotStore{refreshErr: errors.New("row gone")}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	_, err := svc.UpdateStats(context.Background(), fullStatsRequest())
	require.NoError(t, err)
	assert.Len(t, snapshots.refreshed, 6)
}

func TestStatsServicePortalSeriesRejectsUnknownPortal(t *testing.T) {
	svc := NewStatsService(&fakeSnapshotStore{}, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	_, err := svc.PortalSeries(context.Background(), "not-a-portal", RangeWeekly)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPortal.Code, appErrors.FromError(err).Code)
}

func TestStatsServicePortalSeriesAcceptsLegacyParam(t *testing.T) {
	snapshots := &fakeSnapshotStore{series: []dto.SeriesPoint{{ID: "2026-W30", Pending: 3}}}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	series, err := svc.PortalSeries(context.Background(), "cmJandarshan", RangeWeekly)
	require.NoError(t, err)
	assert.Equal(t, dto.SeriesSourceLive, series.Source)
	require.Len(t, series.Points, 1)
	assert.Equal(t, []models.Channel{models.ChannelCMJandarshan}, snapshots.seeded)
}

func TestStatsServicePortalSeriesFabricatesPlaceholder(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	series, err := svc.PortalSeries(context.Background(), "callcenter", RangeWeekly)
	require.NoError(t, err)
	assert.Equal(t, dto.SeriesSourcePlaceholder, series.Source)
	require.Len(t, series.Points, 6)
	for _, p := range series.Points {
		assert.GreaterOrEqual(t, p.Pending, 10)
		assert.LessOrEqual(t, p.Pending, 59)
		assert.GreaterOrEqual(t, p.Resolve, 5)
		assert.LessOrEqual(t, p.Resolve, 34)
		assert.GreaterOrEqual(t, p.Total, 20)
		assert.LessOrEqual(t, p.Total, 99)
		assert.NotEmpty(t, p.ID)
	}
}

func TestStatsServicePortalSeriesEmptyWithoutPlaceholder(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, false)

	series, err := svc.PortalSeries(context.Background(), "callcenter", RangeMonthly)
	require.NoError(t, err)
	assert.Equal(t, dto.SeriesSourceLive, series.Source)
	assert.Empty(t, series.Points)
}

func TestStatsServiceLatestAllSeedsEveryChannel(t *testing.T) {
	snapshots := &fakeSnapshotStore{latest: map[models.Channel]*models.ChannelSnapshot{
		models.ChannelCallCenter: {Pending: 4, Resolve: 2, Total: 6},
	}}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	rows, err := svc.LatestAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Len(t, snapshots.seeded, 6)
	assert.Equal(t, "callcenter", rows[0].Portal)
	assert.Equal(t, 6, rows[0].Total)
}

func TestStatsServiceSummaryGraphFallsBackPerChannel(t *testing.T) {
	snapshots := &fakeSnapshotStore{bucketErr: sql.ErrNoRows}
	svc := NewStatsService(snapshots, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	entries, err := svc.SummaryGraph(context.Background(), RangeMonthly)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
	for _, entry := range entries {
		assert.Equal(t, dto.SeriesSourcePlaceholder, entry.Source)
		assert.GreaterOrEqual(t, entry.Pending, 20)
		assert.LessOrEqual(t, entry.Pending, 119)
	}
}

func TestStatsServiceDepartmentsResolvesPortalLabel(t *testing.T) {
	register := &fakeAggregateStore{departments: []dto.PortalDepartmentRow{{MainDepartment: "Revenue"}}}
	svc := NewStatsService(&fakeSnapshotStore{}, &fakeHistoryStore{}, register, nil, nil, nil, true)

	rows, err := svc.Departments(context.Background(), "MukhyaMantri Jandarshan", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ChannelCMJandarshan, register.lastChannel)
	assert.Equal(t, 10, register.lastLimit)
}

func TestStatsServiceDepartmentsRejectsUnknownLabel(t *testing.T) {
	svc := NewStatsService(&fakeSnapshotStore{}, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	_, err := svc.Departments(context.Background(), "Unknown Portal", 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPortal.Code, appErrors.FromError(err).Code)
}

func TestStatsServiceDepartmentHistoryRequiresDepartment(t *testing.T) {
	svc := NewStatsService(&fakeSnapshotStore{}, &fakeHistoryStore{}, &fakeAggregateStore{}, nil, nil, nil, true)

	_, err := svc.DepartmentHistory(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStatsServiceDepartmentGraphPicksShapeByRange(t *testing.T) {
	history := &fakeHistoryStore{
		points:  []dto.DepartmentNamePoint{{DepartmentName: "Tehsil Office Raipur"}},
		buckets: []dto.DepartmentNameBucket{{Year: 2026, Week: 33}},
	}
	svc := NewStatsService(&fakeSnapshotStore{}, history, &fakeAggregateStore{}, nil, nil, nil, true)

	weekly, err := svc.DepartmentGraph(context.Background(), "Tehsil Office Raipur", RangeWeekly)
	require.NoError(t, err)
	assert.Len(t, weekly.Buckets, 1)
	assert.Empty(t, weekly.Points)

	all, err := svc.DepartmentGraph(context.Background(), "Tehsil Office Raipur", "")
	require.NoError(t, err)
	assert.Len(t, all.Points, 1)
	assert.Empty(t, all.Buckets)
}
