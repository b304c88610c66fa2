package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"year", "week", "period_start", "period_end",
		"cm_pending", "collector_pending", "web_pending", "post_pending", "pg_pending", "call_pending",
		"total_complaints",
	}).
		AddRow(2026, 31, "2026-07-27", "2026-08-02", 3, 1, 0, 0, 2, 4, 10).
		AddRow(2026, 32, "2026-08-03", "2026-08-09", 5, 2, 1, 0, 0, 6, 14)
}

func TestHistoryRepositoryDepartmentNameBucketsKeepsNewestWeeks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	// The newest buckets must win the row cap before the ascending resort,
	// so the inner query orders newest-first and the outer one re-sorts.
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY MIN(snapshot_date) DESC")).
		WithArgs("Tehsil Office Raipur", 16).
		WillReturnRows(bucketRows())

	buckets, err := repo.DepartmentNameBuckets(context.Background(), "Tehsil Office Raipur", false)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-07-27", buckets[0].PeriodStart)
	assert.Equal(t, 32, buckets[1].Week)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryDepartmentNameBucketsResortsAscending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(") sub\nORDER BY period_start ASC")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{
			"year", "month", "period_start", "period_end",
			"cm_pending", "collector_pending", "web_pending", "post_pending", "pg_pending", "call_pending",
			"total_complaints",
		}).AddRow(2026, 8, "2026-08-01", "2026-08-28", 7, 3, 2, 1, 0, 5, 18))

	buckets, err := repo.DepartmentNameBuckets(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 8, buckets[0].Month)
	assert.NoError(t, mock.ExpectationsWereMet())
}
