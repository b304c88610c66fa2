package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
)

// HistoryRepository reads the append-only complaint_history trail.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository constructs the repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const historyColumns = `history_id, original_id, main_department, department_name, officer_designation,
cm_jandarshan, collector_jandarshan, call_center, pg_portal, jansikayat_post_mail, jansikayat_web,
total_complaints, snapshot_date`

// ByOriginal returns all history entries for one record, newest first.
func (r *HistoryRepository) ByOriginal(ctx context.Context, originalID int64) ([]models.ComplaintHistoryEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaint_history WHERE original_id = $1 ORDER BY snapshot_date DESC`, historyColumns)
	var entries []models.ComplaintHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, originalID); err != nil {
		return nil, fmt.Errorf("history by original: %w", err)
	}
	return entries, nil
}

// RecentByMainDepartment returns the last entries for one main department,
// or the newest entries overall when the department is empty.
func (r *HistoryRepository) RecentByMainDepartment(ctx context.Context, mainDepartment string, limit int) ([]models.ComplaintHistoryEntry, error) {
	var entries []models.ComplaintHistoryEntry
	if mainDepartment != "" {
		query := fmt.Sprintf(`SELECT %s FROM complaint_history WHERE main_department = $1 ORDER BY snapshot_date DESC LIMIT $2`, historyColumns)
		if err := r.db.SelectContext(ctx, &entries, query, mainDepartment, limit); err != nil {
			return nil, fmt.Errorf("history by main department: %w", err)
		}
		return entries, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM complaint_history ORDER BY snapshot_date DESC LIMIT $1`, historyColumns)
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	return entries, nil
}

// AllJoined returns history entries joined to their current record.
func (r *HistoryRepository) AllJoined(ctx context.Context, limit int) ([]dto.HistoryJoinedRow, error) {
	const query = `SELECT
  h.history_id, h.original_id, h.main_department, h.department_name, h.officer_designation,
  h.cm_jandarshan, h.collector_jandarshan, h.call_center, h.pg_portal, h.jansikayat_post_mail, h.jansikayat_web,
  h.total_complaints,
  to_char(h.snapshot_date, 'YYYY-MM-DD') AS snapshot_date,
  cr.main_department AS current_main_department,
  cr.total_complaints AS current_total
FROM complaint_history h
LEFT JOIN complaint_records cr ON h.original_id = cr.id
ORDER BY h.snapshot_date DESC
LIMIT $1`
	var rows []dto.HistoryJoinedRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("all history: %w", err)
	}
	return rows, nil
}

// DepartmentTotals groups the full history by main department.
func (r *HistoryRepository) DepartmentTotals(ctx context.Context) ([]dto.DepartmentChannelTotals, error) {
	const query = `SELECT
  main_department,
  COALESCE(SUM(cm_jandarshan), 0) AS cm_jandarshan,
  COALESCE(SUM(collector_jandarshan), 0) AS collector_jandarshan,
  COALESCE(SUM(call_center), 0) AS call_center,
  COALESCE(SUM(pg_portal), 0) AS pg_portal,
  COALESCE(SUM(jansikayat_post_mail), 0) AS jansikayat_post_mail,
  COALESCE(SUM(jansikayat_web), 0) AS jansikayat_web,
  COALESCE(SUM(total_complaints), 0) AS total_complaints
FROM complaint_history
GROUP BY main_department
ORDER BY total_complaints DESC`
	var rows []dto.DepartmentChannelTotals
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("department totals: %w", err)
	}
	return rows, nil
}

// DepartmentHistory returns the full trend for one main department,
// oldest first.
func (r *HistoryRepository) DepartmentHistory(ctx context.Context, mainDepartment string) ([]dto.DepartmentNamePoint, error) {
	const query = `SELECT
  department_name,
  to_char(snapshot_date, 'YYYY-MM-DD') AS snapshot_date,
  cm_jandarshan, collector_jandarshan, call_center, pg_portal, jansikayat_post_mail, jansikayat_web,
  total_complaints
FROM complaint_history
WHERE main_department = $1
ORDER BY snapshot_date ASC`
	var rows []dto.DepartmentNamePoint
	if err := r.db.SelectContext(ctx, &rows, query, mainDepartment); err != nil {
		return nil, fmt.Errorf("department history: %w", err)
	}
	return rows, nil
}

// DepartmentNameSeries returns raw history points by office name, oldest
// first. An empty name matches every named office.
func (r *HistoryRepository) DepartmentNameSeries(ctx context.Context, departmentName string, limit int) ([]dto.DepartmentNamePoint, error) {
	query := `SELECT
  department_name,
  to_char(snapshot_date, 'YYYY-MM-DD') AS snapshot_date,
  cm_jandarshan, collector_jandarshan, call_center, pg_portal, jansikayat_post_mail, jansikayat_web,
  total_complaints
FROM complaint_history
WHERE department_name IS NOT NULL AND department_name != ''`
	args := []interface{}{}
	if departmentName != "" {
		query += ` AND department_name = $1`
		args = append(args, departmentName)
	}
	query += fmt.Sprintf(` ORDER BY snapshot_date ASC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	var rows []dto.DepartmentNamePoint
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("department name series: %w", err)
	}
	return rows, nil
}

// DepartmentNameBuckets groups history points by ISO week or by month over
// the corresponding trailing window. The newest buckets win the limit, then
// the slice is re-sorted ascending for charting.
func (r *HistoryRepository) DepartmentNameBuckets(ctx context.Context, departmentName string, monthly bool) ([]dto.DepartmentNameBucket, error) {
	var bucketCols, outerCols, window string
	var limit int
	if monthly {
		bucketCols = `EXTRACT(YEAR FROM snapshot_date)::int AS year,
  EXTRACT(MONTH FROM snapshot_date)::int AS month`
		outerCols = `year, month`
		window = `'12 months'`
		limit = 12
	} else {
		bucketCols = `EXTRACT(ISOYEAR FROM snapshot_date)::int AS year,
  EXTRACT(WEEK FROM snapshot_date)::int AS week`
		outerCols = `year, week`
		window = `'16 weeks'`
		limit = 16
	}

	query := fmt.Sprintf(`SELECT %s, period_start, period_end, cm_pending, collector_pending, web_pending, post_pending, pg_pending, call_pending, total_complaints
FROM (
  SELECT
  %s,
  to_char(MIN(snapshot_date), 'YYYY-MM-DD') AS period_start,
  to_char(MAX(snapshot_date), 'YYYY-MM-DD') AS period_end,
  COALESCE(SUM(cm_jandarshan), 0)::int AS cm_pending,
  COALESCE(SUM(collector_jandarshan), 0)::int AS collector_pending,
  COALESCE(SUM(jansikayat_web), 0)::int AS web_pending,
  COALESCE(SUM(jansikayat_post_mail), 0)::int AS post_pending,
  COALESCE(SUM(pg_portal), 0)::int AS pg_pending,
  COALESCE(SUM(call_center), 0)::int AS call_pending,
  COALESCE(SUM(total_complaints), 0)::int AS total_complaints
  FROM complaint_history
  WHERE department_name IS NOT NULL
  AND snapshot_date >= NOW() - INTERVAL %s`, outerCols, bucketCols, window)

	args := []interface{}{}
	if departmentName != "" {
		query += ` AND department_name = $1`
		args = append(args, departmentName)
	}
	query += fmt.Sprintf(`
  GROUP BY 1, 2
  ORDER BY MIN(snapshot_date) DESC
  LIMIT $%d
) sub
ORDER BY period_start ASC`, len(args)+1)
	args = append(args, limit)

	var rows []dto.DepartmentNameBucket
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("department name buckets: %w", err)
	}
	return rows, nil
}
