package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
)

// SnapshotRepository persists the six per-channel snapshot tables, the
// legacy aggregate table and the legacy dashboard_stats table. Table names
// only ever come from models.Channel, never from request input.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs the repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// AppendAll inserts one snapshot row per channel inside a single
// transaction, so a failing channel leaves no partial submission behind.
func (r *SnapshotRepository) AppendAll(ctx context.Context, counts map[models.Channel]dto.PendingResolve) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, channel := range models.AllChannels() {
		pair, ok := counts[channel]
		if !ok {
			return fmt.Errorf("missing counts for channel %s", channel)
		}
		query := fmt.Sprintf(`INSERT INTO %s (pending, resolve, total, created_at) VALUES ($1, $2, $3, NOW())`, channel.Table())
		if _, err := tx.ExecContext(ctx, query, pair.Pending, pair.Resolve, pair.Pending+pair.Resolve); err != nil {
			return fmt.Errorf("append snapshot for %s: %w", channel, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// RefreshLegacy updates the legacy aggregate row for a channel in place.
// Missing rows are deliberately left missing: this table is update-only.
func (r *SnapshotRepository) RefreshLegacy(ctx context.Context, channel models.Channel, pair dto.PendingResolve) error {
	const query = `UPDATE legacy_channel_stats SET pending = $1, resolve = $2, updated_at = NOW() WHERE source = $3`
	if _, err := r.db.ExecContext(ctx, query, pair.Pending, pair.Resolve, channel.Table()); err != nil {
		return fmt.Errorf("refresh legacy stats for %s: %w", channel, err)
	}
	return nil
}

// EnsureSeed guarantees the channel table holds at least one row, inserting
// a zero-valued baseline when empty. Every latest/bucketed read goes through
// this first so "not yet initialized" never surfaces as an error.
func (r *SnapshotRepository) EnsureSeed(ctx context.Context, channel models.Channel) error {
	var count int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, channel.Table())
	if err := r.db.GetContext(ctx, &count, countQuery); err != nil {
		return fmt.Errorf("count snapshots for %s: %w", channel, err)
	}
	if count > 0 {
		return nil
	}
	seedQuery := fmt.Sprintf(`INSERT INTO %s (pending, resolve, total, created_at) VALUES (0, 0, 0, NOW())`, channel.Table())
	if _, err := r.db.ExecContext(ctx, seedQuery); err != nil {
		return fmt.Errorf("seed snapshots for %s: %w", channel, err)
	}
	return nil
}

// Latest returns the most recent snapshot for a channel.
func (r *SnapshotRepository) Latest(ctx context.Context, channel models.Channel) (*models.ChannelSnapshot, error) {
	query := fmt.Sprintf(`SELECT id, pending, resolve, total, created_at FROM %s ORDER BY created_at DESC LIMIT 1`, channel.Table())
	var snap models.ChannelSnapshot
	if err := r.db.GetContext(ctx, &snap, query); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SeriesAll returns the last limit raw rows, oldest first.
func (r *SnapshotRepository) SeriesAll(ctx context.Context, channel models.Channel, limit int) ([]dto.SeriesPoint, error) {
	query := fmt.Sprintf(`SELECT id::text AS id, pending, resolve, total, created_at
FROM (
  SELECT id,
         COALESCE(pending, 0) AS pending,
         COALESCE(resolve, 0) AS resolve,
         COALESCE(total, 0) AS total,
         to_char(created_at, 'YYYY-MM-DD') AS created_at,
         created_at AS created_at_raw
  FROM %s
  ORDER BY created_at DESC
  LIMIT $1
) sub
ORDER BY created_at_raw ASC`, channel.Table())
	var points []dto.SeriesPoint
	if err := r.db.SelectContext(ctx, &points, query, limit); err != nil {
		return nil, fmt.Errorf("series for %s: %w", channel, err)
	}
	return points, nil
}

// SeriesWeekly buckets the trailing sixteen ISO weeks, oldest first.
func (r *SnapshotRepository) SeriesWeekly(ctx context.Context, channel models.Channel) ([]dto.SeriesPoint, error) {
	query := fmt.Sprintf(`SELECT id, year, week, period_start, period_end, pending, resolve, total FROM (
  SELECT to_char(created_at, 'IYYY-"W"IW') AS id,
         EXTRACT(ISOYEAR FROM created_at)::int AS year,
         EXTRACT(WEEK FROM created_at)::int AS week,
         to_char(MIN(created_at), 'YYYY-MM-DD') AS period_start,
         to_char(MAX(created_at), 'YYYY-MM-DD') AS period_end,
         COALESCE(SUM(pending), 0)::int AS pending,
         COALESCE(SUM(resolve), 0)::int AS resolve,
         COALESCE(SUM(total), 0)::int AS total
  FROM %s
  WHERE created_at >= NOW() - INTERVAL '16 weeks'
  GROUP BY 1, 2, 3
  ORDER BY MIN(created_at) DESC
  LIMIT 16
) sub
ORDER BY period_start ASC`, channel.Table())
	var points []dto.SeriesPoint
	if err := r.db.SelectContext(ctx, &points, query); err != nil {
		return nil, fmt.Errorf("weekly series for %s: %w", channel, err)
	}
	return points, nil
}

// SeriesMonthly buckets the trailing twelve months, oldest first.
func (r *SnapshotRepository) SeriesMonthly(ctx context.Context, channel models.Channel) ([]dto.SeriesPoint, error) {
	query := fmt.Sprintf(`SELECT id, year, month, period_start, period_end, pending, resolve, total FROM (
  SELECT to_char(created_at, 'YYYY-MM') AS id,
         EXTRACT(YEAR FROM created_at)::int AS year,
         EXTRACT(MONTH FROM created_at)::int AS month,
         to_char(MIN(created_at), 'YYYY-MM-DD') AS period_start,
         to_char(MAX(created_at), 'YYYY-MM-DD') AS period_end,
         COALESCE(SUM(pending), 0)::int AS pending,
         COALESCE(SUM(resolve), 0)::int AS resolve,
         COALESCE(SUM(total), 0)::int AS total
  FROM %s
  WHERE created_at >= NOW() - INTERVAL '12 months'
  GROUP BY 1, 2, 3
  ORDER BY MIN(created_at) DESC
  LIMIT 12
) sub
ORDER BY period_start ASC`, channel.Table())
	var points []dto.SeriesPoint
	if err := r.db.SelectContext(ctx, &points, query); err != nil {
		return nil, fmt.Errorf("monthly series for %s: %w", channel, err)
	}
	return points, nil
}

// LatestBucket returns the newest weekly or monthly bucket for the summary
// graph. sql.ErrNoRows passes through when the window is empty.
func (r *SnapshotRepository) LatestBucket(ctx context.Context, channel models.Channel, monthly bool) (*dto.SeriesPoint, error) {
	var query string
	if monthly {
		query = fmt.Sprintf(`SELECT to_char(created_at, 'YYYY-MM') AS id,
       EXTRACT(YEAR FROM created_at)::int AS year,
       EXTRACT(MONTH FROM created_at)::int AS month,
       to_char(MIN(created_at), 'YYYY-MM-DD') AS created_at,
       COALESCE(SUM(pending), 0)::int AS pending,
       COALESCE(SUM(resolve), 0)::int AS resolve,
       COALESCE(SUM(total), 0)::int AS total
FROM %s
WHERE created_at >= NOW() - INTERVAL '3 months'
GROUP BY 1, 2, 3
ORDER BY year DESC, month DESC
LIMIT 1`, channel.Table())
	} else {
		query = fmt.Sprintf(`SELECT to_char(created_at, 'IYYY-"W"IW') AS id,
       EXTRACT(ISOYEAR FROM created_at)::int AS year,
       EXTRACT(WEEK FROM created_at)::int AS week,
       to_char(MIN(created_at), 'YYYY-MM-DD') AS created_at,
       COALESCE(SUM(pending), 0)::int AS pending,
       COALESCE(SUM(resolve), 0)::int AS resolve,
       COALESCE(SUM(total), 0)::int AS total
FROM %s
WHERE created_at >= NOW() - INTERVAL '4 weeks'
GROUP BY 1, 2, 3
ORDER BY year DESC, week DESC
LIMIT 1`, channel.Table())
	}
	var point dto.SeriesPoint
	if err := r.db.GetContext(ctx, &point, query); err != nil {
		return nil, err
	}
	return &point, nil
}

// LatestDashboardStat returns the newest legacy dashboard_stats row.
// sql.ErrNoRows passes through when the table is empty.
func (r *SnapshotRepository) LatestDashboardStat(ctx context.Context) (*models.DashboardStat, error) {
	const query = `SELECT total_complaints, pending, resolved, created_at FROM dashboard_stats ORDER BY created_at DESC LIMIT 1`
	var stat models.DashboardStat
	if err := r.db.GetContext(ctx, &stat, query); err != nil {
		return nil, err
	}
	return &stat, nil
}
