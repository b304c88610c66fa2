package dto

import (
	"fmt"

	"github.com/samadhan-cg/samadhan-api/internal/models"
)

// ChannelPair is one channel's pending/resolve submission. Pointer fields
// distinguish absent values from explicit zeroes; non-numeric JSON fails the
// bind outright.
type ChannelPair struct {
	Pending *float64 `json:"pending"`
	Resolve *float64 `json:"resolve"`
}

// PendingResolve is a validated pending/resolve pair.
type PendingResolve struct {
	Pending int `json:"pending"`
	Resolve int `json:"resolve"`
}

// UpdateStatsRequest carries pending/resolve pairs for all six channels.
// Each channel accepts its canonical key plus the legacy aliases older
// dashboard builds still submit.
type UpdateStatsRequest struct {
	CallCenter        *ChannelPair `json:"callcenter"`
	CallCenterAlt     *ChannelPair `json:"callCenter"`
	CMJandarshan      *ChannelPair `json:"cm_jandarshan"`
	CMJandarshanAlt   *ChannelPair `json:"cmJandarshan"`
	CollJandarshan    *ChannelPair `json:"coll_jandarshan"`
	CollJandarshanAlt *ChannelPair `json:"collectorJandarshan"`
	PostMail          *ChannelPair `json:"jansikayatpostmail"`
	PostMailAlt       *ChannelPair `json:"jansikayatPostMail"`
	PostMailAlt2      *ChannelPair `json:"jansikayatPost"`
	PostMailAlt3      *ChannelPair `json:"postMail"`
	Web               *ChannelPair `json:"jansikayatweb"`
	WebAlt            *ChannelPair `json:"jansikayatWeb"`
	PGPortal          *ChannelPair `json:"pgportal"`
	PGPortalAlt       *ChannelPair `json:"pgPortal"`
}

// Normalize coalesces aliases and validates that every channel carries a
// complete numeric pair. Validation is all-or-nothing: the first incomplete
// channel fails the whole submission.
func (r UpdateStatsRequest) Normalize() (map[models.Channel]PendingResolve, error) {
	coalesced := map[models.Channel]*ChannelPair{
		models.ChannelCallCenter:          firstPair(r.CallCenter, r.CallCenterAlt),
		models.ChannelCMJandarshan:        firstPair(r.CMJandarshan, r.CMJandarshanAlt),
		models.ChannelCollectorJandarshan: firstPair(r.CollJandarshan, r.CollJandarshanAlt),
		models.ChannelPostMail:            firstPair(r.PostMail, r.PostMailAlt, r.PostMailAlt2, r.PostMailAlt3),
		models.ChannelWeb:                 firstPair(r.Web, r.WebAlt),
		models.ChannelPGPortal:            firstPair(r.PGPortal, r.PGPortalAlt),
	}

	out := make(map[models.Channel]PendingResolve, len(coalesced))
	for _, channel := range models.AllChannels() {
		pair := coalesced[channel]
		if pair == nil || pair.Pending == nil || pair.Resolve == nil {
			return nil, fmt.Errorf("invalid or missing data for %s", channel)
		}
		out[channel] = PendingResolve{
			Pending: int(*pair.Pending),
			Resolve: int(*pair.Resolve),
		}
	}
	return out, nil
}

func firstPair(pairs ...*ChannelPair) *ChannelPair {
	for _, p := range pairs {
		if p != nil {
			return p
		}
	}
	return nil
}

// Series data sources, surfaced so callers can tell fabricated demo points
// from rows that exist in the store.
const (
	SeriesSourceLive        = "live"
	SeriesSourcePlaceholder = "placeholder"
)

// SeriesPoint is one raw or bucketed reading of a channel snapshot table.
type SeriesPoint struct {
	ID          string `db:"id" json:"id"`
	Year        int    `db:"year" json:"year,omitempty"`
	Week        int    `db:"week" json:"week,omitempty"`
	Month       int    `db:"month" json:"month,omitempty"`
	PeriodStart string `db:"period_start" json:"period_start,omitempty"`
	PeriodEnd   string `db:"period_end" json:"period_end,omitempty"`
	Pending     int    `db:"pending" json:"pending"`
	Resolve     int    `db:"resolve" json:"resolve"`
	Total       int    `db:"total" json:"total"`
	CreatedAt   string `db:"created_at" json:"createdAt,omitempty"`
}

// ChannelSeries pairs a series with its provenance tag.
type ChannelSeries struct {
	Source string
	Points []SeriesPoint
}

// SummaryGraphEntry is one channel's newest bucket, tagged with provenance.
type SummaryGraphEntry struct {
	SeriesPoint
	Source string `json:"source"`
}

// LatestChannelRow is the most recent snapshot of one channel.
type LatestChannelRow struct {
	Portal    string `json:"portal"`
	Pending   int    `json:"pending"`
	Resolve   int    `json:"resolve"`
	Total     int    `json:"total"`
	CreatedAt string `json:"createdAt"`
}

// PortalDepartmentRow is the per-portal department leaderboard row.
type PortalDepartmentRow struct {
	MainDepartment  string `db:"main_department" json:"main_department"`
	DepartmentName  string `db:"department_name" json:"department_name"`
	Complaints      int    `db:"complaints" json:"complaints"`
	TotalComplaints int    `db:"total_complaints" json:"total_complaints"`
}

// TopDepartmentRow ranks departments by a chosen channel column.
type TopDepartmentRow struct {
	MainDepartment     string `db:"main_department" json:"main_department"`
	DepartmentName     string `db:"department_name" json:"department_name"`
	OfficerDesignation string `db:"officer_designation" json:"officer_designation"`
	ComplaintCount     int    `db:"complaint_count" json:"complaint_count"`
	TotalComplaints    int    `db:"total_complaints" json:"total_complaints"`
}

// RealtimeStats is the cross-channel aggregate snapshot.
type RealtimeStats struct {
	TotalRecords    int     `db:"total_records" json:"total_records"`
	TotalCM         int     `db:"total_cm" json:"total_cm"`
	TotalCollector  int     `db:"total_collector" json:"total_collector"`
	TotalCallCenter int     `db:"total_call_center" json:"total_call_center"`
	TotalPGPortal   int     `db:"total_pg_portal" json:"total_pg_portal"`
	TotalPostMail   int     `db:"total_post_mail" json:"total_post_mail"`
	TotalWeb        int     `db:"total_web" json:"total_web"`
	GrandTotal      int     `db:"grand_total" json:"grand_total"`
	AvgComplaints   float64 `db:"avg_complaints" json:"avg_complaints"`
}

// DepartmentChannelTotals groups history rows by main department.
type DepartmentChannelTotals struct {
	MainDepartment      string `db:"main_department" json:"main_department"`
	CMJandarshan        int    `db:"cm_jandarshan" json:"cm_jandarshan"`
	CollectorJandarshan int    `db:"collector_jandarshan" json:"collector_jandarshan"`
	CallCenter          int    `db:"call_center" json:"call_center"`
	PGPortal            int    `db:"pg_portal" json:"pgPortal"`
	PostMail            int    `db:"jansikayat_post_mail" json:"jansikayatPostMail"`
	Web                 int    `db:"jansikayat_web" json:"jansikayatWEB"`
	TotalComplaints     int    `db:"total_complaints" json:"total_complaints"`
}

// DepartmentNamePoint is one raw history reading for a named office.
type DepartmentNamePoint struct {
	DepartmentName      string `db:"department_name" json:"department_name"`
	SnapshotDate        string `db:"snapshot_date" json:"snapshot_date"`
	CMJandarshan        int    `db:"cm_jandarshan" json:"cm_jandarshan"`
	CollectorJandarshan int    `db:"collector_jandarshan" json:"collector_jandarshan"`
	CallCenter          int    `db:"call_center" json:"call_center"`
	PGPortal            int    `db:"pg_portal" json:"pgPortal"`
	PostMail            int    `db:"jansikayat_post_mail" json:"jansikayatPostMail"`
	Web                 int    `db:"jansikayat_web" json:"jansikayatWEB"`
	TotalComplaints     int    `db:"total_complaints" json:"total_complaints"`
}

// DepartmentNameBucket is one weekly or monthly bucket of history readings.
type DepartmentNameBucket struct {
	Year             int    `db:"year" json:"year"`
	Week             int    `db:"week" json:"week,omitempty"`
	Month            int    `db:"month" json:"month,omitempty"`
	PeriodStart      string `db:"period_start" json:"period_start"`
	PeriodEnd        string `db:"period_end" json:"period_end"`
	CMPending        int    `db:"cm_pending" json:"cm_pending"`
	CollectorPending int    `db:"collector_pending" json:"collector_pending"`
	WebPending       int    `db:"web_pending" json:"web_pending"`
	PostPending      int    `db:"post_pending" json:"post_pending"`
	PGPending        int    `db:"pg_pending" json:"pg_pending"`
	CallPending      int    `db:"call_pending" json:"call_pending"`
	TotalComplaints  int    `db:"total_complaints" json:"total_complaints"`
}

// HistoryJoinedRow is a history entry joined to its current record.
type HistoryJoinedRow struct {
	HistoryID             int64   `db:"history_id" json:"history_id"`
	OriginalID            int64   `db:"original_id" json:"original_id"`
	MainDepartment        string  `db:"main_department" json:"main_department"`
	DepartmentName        string  `db:"department_name" json:"department_name"`
	OfficerDesignation    string  `db:"officer_designation" json:"officer_designation"`
	CMJandarshan          int     `db:"cm_jandarshan" json:"cm_jandarshan"`
	CollectorJandarshan   int     `db:"collector_jandarshan" json:"collector_jandarshan"`
	CallCenter            int     `db:"call_center" json:"call_center"`
	PGPortal              int     `db:"pg_portal" json:"pgPortal"`
	PostMail              int     `db:"jansikayat_post_mail" json:"jansikayatPostMail"`
	Web                   int     `db:"jansikayat_web" json:"jansikayatWEB"`
	TotalComplaints       int     `db:"total_complaints" json:"total_complaints"`
	SnapshotDate          string  `db:"snapshot_date" json:"snapshot_date"`
	CurrentMainDepartment *string `db:"current_main_department" json:"current_main_department"`
	CurrentTotal          *int    `db:"current_total" json:"current_total"`
}

// DashboardSummary is the flat legacy dashboard shape.
type DashboardSummary struct {
	TotalComplaints int `json:"total_complaints"`
	Pending         int `json:"pending"`
	Resolved        int `json:"resolved"`
	CM              int `json:"cm"`
	Collector       int `json:"collector"`
	Post            int `json:"post"`
	Web             int `json:"web"`
	PG              int `json:"pg"`
	CallCenter      int `json:"call_center"`
}

// ChannelTotals carries the per-channel SUMs over complaint records.
type ChannelTotals struct {
	CM         int `db:"cm" json:"cm"`
	Collector  int `db:"collector" json:"collector"`
	Post       int `db:"post" json:"post"`
	Web        int `db:"web" json:"web"`
	PG         int `db:"pg" json:"pg"`
	CallCenter int `db:"call_center" json:"call_center"`
}
