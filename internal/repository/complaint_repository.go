package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
)

// ComplaintRepository persists complaint records, their officer contacts and
// the append-only history trail.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository constructs the repository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Upsert applies a record against its natural key in one transaction: the
// record itself via ON CONFLICT, the officer contact, and the history entry
// that the legacy schema produced with database triggers. It reports whether
// the record was newly inserted.
func (r *ComplaintRepository) Upsert(ctx context.Context, record *models.ComplaintRecord, officerName, officerMobile string) (int64, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const upsertQuery = `INSERT INTO complaint_records
(main_department, department_name, officer_designation,
 cm_jandarshan, collector_jandarshan, call_center, pg_portal, jansikayat_post_mail, jansikayat_web,
 total_complaints, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
ON CONFLICT (main_department, department_name, officer_designation)
DO UPDATE SET cm_jandarshan = EXCLUDED.cm_jandarshan,
              collector_jandarshan = EXCLUDED.collector_jandarshan,
              call_center = EXCLUDED.call_center,
              pg_portal = EXCLUDED.pg_portal,
              jansikayat_post_mail = EXCLUDED.jansikayat_post_mail,
              jansikayat_web = EXCLUDED.jansikayat_web,
              total_complaints = EXCLUDED.total_complaints,
              updated_at = NOW()
RETURNING id, (xmax = 0) AS inserted`

	var result struct {
		ID       int64 `db:"id"`
		Inserted bool  `db:"inserted"`
	}
	if err := tx.GetContext(ctx, &result, upsertQuery,
		record.MainDepartment, record.DepartmentName, record.OfficerDesignation,
		record.CMJandarshan, record.CollectorJandarshan, record.CallCenter,
		record.PGPortal, record.PostMail, record.Web,
		record.TotalComplaints,
	); err != nil {
		return 0, false, fmt.Errorf("upsert complaint record: %w", err)
	}

	const officerQuery = `INSERT INTO officer_contacts (complaint_id, name, contact_no)
VALUES ($1, $2, $3)
ON CONFLICT (complaint_id)
DO UPDATE SET name = EXCLUDED.name, contact_no = EXCLUDED.contact_no`
	if _, err := tx.ExecContext(ctx, officerQuery, result.ID, officerName, officerMobile); err != nil {
		return 0, false, fmt.Errorf("upsert officer contact: %w", err)
	}

	const historyQuery = `INSERT INTO complaint_history
(original_id, main_department, department_name, officer_designation,
 cm_jandarshan, collector_jandarshan, call_center, pg_portal, jansikayat_post_mail, jansikayat_web,
 total_complaints, snapshot_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())`
	if _, err := tx.ExecContext(ctx, historyQuery,
		result.ID,
		record.MainDepartment, record.DepartmentName, record.OfficerDesignation,
		record.CMJandarshan, record.CollectorJandarshan, record.CallCenter,
		record.PGPortal, record.PostMail, record.Web,
		record.TotalComplaints,
	); err != nil {
		return 0, false, fmt.Errorf("append complaint history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit upsert tx: %w", err)
	}
	return result.ID, result.Inserted, nil
}

// Recent returns the renamed-field register projection. When all is false
// the result is capped to the top rows by total.
func (r *ComplaintRepository) Recent(ctx context.Context, all bool, limit int) ([]dto.RecentComplaintRow, error) {
	query := `SELECT
  main_department AS department,
  department_name AS office,
  officer_designation AS officer_post,
  cm_jandarshan AS cm_jan_darshan,
  collector_jandarshan AS collector_jan_darshan,
  jansikayat_post_mail AS post_mail,
  jansikayat_web AS web,
  pg_portal,
  call_center,
  total_complaints AS total
FROM complaint_records`
	args := []interface{}{}
	if !all {
		query += ` ORDER BY total_complaints DESC LIMIT $1`
		args = append(args, limit)
	}
	var rows []dto.RecentComplaintRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent complaints: %w", err)
	}
	return rows, nil
}

// Suggestions returns the distinct natural-key triples for autocomplete.
func (r *ComplaintRepository) Suggestions(ctx context.Context) ([]dto.Suggestion, error) {
	const query = `SELECT DISTINCT main_department, department_name, officer_designation FROM complaint_records`
	var rows []dto.Suggestion
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return rows, nil
}

// CountsByKey returns the stored channel counts for a natural key.
// sql.ErrNoRows passes through untouched.
func (r *ComplaintRepository) CountsByKey(ctx context.Context, key models.NaturalKey) (*dto.ComplaintCounts, error) {
	const query = `SELECT cm_jandarshan, collector_jandarshan, jansikayat_post_mail, jansikayat_web, pg_portal, call_center, total_complaints
FROM complaint_records
WHERE main_department = $1 AND department_name = $2 AND officer_designation = $3`
	var counts dto.ComplaintCounts
	if err := r.db.GetContext(ctx, &counts, query, key.MainDepartment, key.DepartmentName, key.OfficerDesignation); err != nil {
		return nil, err
	}
	return &counts, nil
}

// OfficerByKey returns the officer contact attached to a natural key.
func (r *ComplaintRepository) OfficerByKey(ctx context.Context, key models.NaturalKey) (*dto.OfficerDetails, error) {
	const query = `SELECT oc.name, oc.contact_no
FROM officer_contacts oc
JOIN complaint_records cr ON oc.complaint_id = cr.id
WHERE cr.main_department = $1 AND cr.department_name = $2 AND cr.officer_designation = $3`
	var details dto.OfficerDetails
	if err := r.db.GetContext(ctx, &details, query, key.MainDepartment, key.DepartmentName, key.OfficerDesignation); err != nil {
		return nil, err
	}
	return &details, nil
}

// ChannelTotals sums each channel column across the register.
func (r *ComplaintRepository) ChannelTotals(ctx context.Context) (*dto.ChannelTotals, error) {
	const query = `SELECT
  COALESCE(SUM(cm_jandarshan), 0) AS cm,
  COALESCE(SUM(collector_jandarshan), 0) AS collector,
  COALESCE(SUM(jansikayat_post_mail), 0) AS post,
  COALESCE(SUM(jansikayat_web), 0) AS web,
  COALESCE(SUM(pg_portal), 0) AS pg,
  COALESCE(SUM(call_center), 0) AS call_center
FROM complaint_records`
	var totals dto.ChannelTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("sum channel totals: %w", err)
	}
	return &totals, nil
}

// Realtime returns the cross-channel aggregate snapshot.
func (r *ComplaintRepository) Realtime(ctx context.Context) (*dto.RealtimeStats, error) {
	const query = `SELECT
  COUNT(*) AS total_records,
  COALESCE(SUM(cm_jandarshan), 0) AS total_cm,
  COALESCE(SUM(collector_jandarshan), 0) AS total_collector,
  COALESCE(SUM(call_center), 0) AS total_call_center,
  COALESCE(SUM(pg_portal), 0) AS total_pg_portal,
  COALESCE(SUM(jansikayat_post_mail), 0) AS total_post_mail,
  COALESCE(SUM(jansikayat_web), 0) AS total_web,
  COALESCE(SUM(total_complaints), 0) AS grand_total,
  COALESCE(AVG(total_complaints), 0) AS avg_complaints
FROM complaint_records`
	var stats dto.RealtimeStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("realtime stats: %w", err)
	}
	return &stats, nil
}

// PortalDepartments lists departments with their count for one channel,
// busiest first.
func (r *ComplaintRepository) PortalDepartments(ctx context.Context, channel models.Channel, limit int) ([]dto.PortalDepartmentRow, error) {
	column := channel.RecordColumn()
	if column == "" {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}
	query := fmt.Sprintf(`SELECT main_department, department_name, %s AS complaints, total_complaints
FROM complaint_records
ORDER BY complaints DESC
LIMIT $1`, column)
	var rows []dto.PortalDepartmentRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("portal departments: %w", err)
	}
	return rows, nil
}

// TopDepartments ranks records by a channel column, or by the grand total
// when no channel is given. Columns come from the closed channel whitelist.
func (r *ComplaintRepository) TopDepartments(ctx context.Context, channel models.Channel, limit int) ([]dto.TopDepartmentRow, error) {
	column := "total_complaints"
	if col := channel.RecordColumn(); col != "" {
		column = col
	}
	query := fmt.Sprintf(`SELECT
  main_department, department_name, officer_designation,
  %s AS complaint_count, total_complaints
FROM complaint_records
WHERE %s > 0
ORDER BY %s DESC
LIMIT $1`, column, column, column)
	var rows []dto.TopDepartmentRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("top departments: %w", err)
	}
	return rows, nil
}
