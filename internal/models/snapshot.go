package models

import "time"

// ChannelSnapshot is one timestamped pending/resolved reading for a channel.
type ChannelSnapshot struct {
	ID        int64     `db:"id" json:"id"`
	Pending   int       `db:"pending" json:"pending"`
	Resolve   int       `db:"resolve" json:"resolve"`
	Total     int       `db:"total" json:"total"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// LegacyChannelStat is one row of the legacy aggregate table. On snapshot
// submission matching rows are refreshed in place; missing rows are never
// inserted.
type LegacyChannelStat struct {
	ID        int64     `db:"id" json:"id"`
	Source    string    `db:"source" json:"source"`
	Pending   int       `db:"pending" json:"pending"`
	Resolve   int       `db:"resolve" json:"resolve"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DashboardStat is one row of the legacy dashboard_stats table.
type DashboardStat struct {
	TotalComplaints int       `db:"total_complaints" json:"total_complaints"`
	Pending         int       `db:"pending" json:"pending"`
	Resolved        int       `db:"resolved" json:"resolved"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}
