package models

import "time"

// NaturalKey identifies a complaint record in lieu of its surrogate id.
type NaturalKey struct {
	MainDepartment     string `db:"main_department" json:"main_department"`
	DepartmentName     string `db:"department_name" json:"department_name"`
	OfficerDesignation string `db:"officer_designation" json:"officer_designation"`
}

// ChannelCounts carries the six per-channel complaint counts.
type ChannelCounts struct {
	CMJandarshan        int `db:"cm_jandarshan" json:"cm_jandarshan"`
	CollectorJandarshan int `db:"collector_jandarshan" json:"collector_jandarshan"`
	CallCenter          int `db:"call_center" json:"call_center"`
	PGPortal            int `db:"pg_portal" json:"pgPortal"`
	PostMail            int `db:"jansikayat_post_mail" json:"jansikayatPostMail"`
	Web                 int `db:"jansikayat_web" json:"jansikayatWEB"`
}

// Sum returns the derived total across the six channels.
func (c ChannelCounts) Sum() int {
	return c.CMJandarshan + c.CollectorJandarshan + c.CallCenter + c.PGPortal + c.PostMail + c.Web
}

// ComplaintRecord is one row of complaint_records, keyed by the natural key.
type ComplaintRecord struct {
	ID int64 `db:"id" json:"id"`
	NaturalKey
	ChannelCounts
	TotalComplaints int       `db:"total_complaints" json:"total_complaints"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// OfficerContact is the one-to-one contact attached to a complaint record.
type OfficerContact struct {
	ID          int64  `db:"id" json:"id"`
	ComplaintID int64  `db:"complaint_id" json:"complaint_id"`
	Name        string `db:"name" json:"name"`
	ContactNo   string `db:"contact_no" json:"contact_no"`
}

// ComplaintHistoryEntry is an immutable copy of a record taken on every
// insert or update. The application appends it inside the upsert transaction.
type ComplaintHistoryEntry struct {
	HistoryID  int64 `db:"history_id" json:"history_id"`
	OriginalID int64 `db:"original_id" json:"original_id"`
	NaturalKey
	ChannelCounts
	TotalComplaints int       `db:"total_complaints" json:"total_complaints"`
	SnapshotDate    time.Time `db:"snapshot_date" json:"snapshot_date"`
}
