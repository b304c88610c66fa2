package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Count decodes a complaint count that may arrive as a JSON number, a
// numeric string, or be absent. Anything non-numeric coerces to zero, which
// matches how the intake form has always submitted empty fields.
type Count int

// UnmarshalJSON implements the lenient coercion.
func (c *Count) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*c = 0
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*c = 0
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*c = 0
			return nil
		}
		*c = Count(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		*c = 0
		return nil
	}
	*c = Count(n)
	return nil
}

// Int returns the count clamped to zero or above.
func (c Count) Int() int {
	if c < 0 {
		return 0
	}
	return int(c)
}

// UpsertComplaintRequest is the add-complaint payload. Field names follow
// the intake form. The caller-supplied total is accepted but never trusted.
type UpsertComplaintRequest struct {
	MainDepartment      string `json:"main_department" validate:"required"`
	DepartmentName      string `json:"department_name" validate:"required"`
	OfficerDesignation  string `json:"officer_designation" validate:"required"`
	OfficerName         string `json:"officer_name"`
	OfficerMobile       string `json:"officer_mobile"`
	CMJandarshan        Count  `json:"cm_jandarshan"`
	CollectorJandarshan Count  `json:"collector_jandarshan"`
	CallCenter          Count  `json:"call_center"`
	PGPortal            Count  `json:"pgPortal"`
	PostMail            Count  `json:"jansikayatPostMail"`
	Web                 Count  `json:"jansikayatWEB"`
	TotalComplaints     *Count `json:"total_complaints"`
}

// NaturalKeyRequest selects a record by its natural key. The camel-case
// field names come from the complaint form's prefill calls.
type NaturalKeyRequest struct {
	MainDepartment     string `json:"mainDepartment" validate:"required"`
	DepartmentName     string `json:"departmentName" validate:"required"`
	OfficerDesignation string `json:"officerDesignation" validate:"required"`
}

// RecentComplaintRow is the renamed-field projection served by /recent.
type RecentComplaintRow struct {
	Department          string `db:"department" json:"department"`
	Office              string `db:"office" json:"office"`
	OfficerPost         string `db:"officer_post" json:"officerPost"`
	CMJanDarshan        int    `db:"cm_jan_darshan" json:"cmJanDarshan"`
	CollectorJanDarshan int    `db:"collector_jan_darshan" json:"collectorJanDarshan"`
	PostMail            int    `db:"post_mail" json:"postMail"`
	Web                 int    `db:"web" json:"web"`
	PGPortal            int    `db:"pg_portal" json:"pgPortal"`
	CallCenter          int    `db:"call_center" json:"callCenter"`
	Total               int    `db:"total" json:"total"`
}

// Suggestion is one distinct natural-key triple for form autocomplete.
type Suggestion struct {
	MainDepartment     string `db:"main_department" json:"main_department"`
	DepartmentName     string `db:"department_name" json:"department_name"`
	OfficerDesignation string `db:"officer_designation" json:"officer_designation"`
}

// ComplaintCounts is the prefill payload returned for a natural key.
type ComplaintCounts struct {
	CMJandarshan        int `db:"cm_jandarshan" json:"cm_jandarshan"`
	CollectorJandarshan int `db:"collector_jandarshan" json:"collector_jandarshan"`
	PostMail            int `db:"jansikayat_post_mail" json:"jansikayatPostMail"`
	Web                 int `db:"jansikayat_web" json:"jansikayatWEB"`
	PGPortal            int `db:"pg_portal" json:"pgPortal"`
	CallCenter          int `db:"call_center" json:"call_center"`
	TotalComplaints     int `db:"total_complaints" json:"total_complaints"`
}

// OfficerDetails is the officer-contact projection for a natural key.
type OfficerDetails struct {
	Name      string `db:"name" json:"name"`
	ContactNo string `db:"contact_no" json:"contact_no"`
}
