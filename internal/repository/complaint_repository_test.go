package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhan-cg/samadhan-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func sampleRecord() *models.ComplaintRecord {
	return &models.ComplaintRecord{
		NaturalKey: models.NaturalKey{
			MainDepartment:     "Revenue",
			DepartmentName:     "Tehsil Office Raipur",
			OfficerDesignation: "Tehsildar",
		},
		ChannelCounts: models.ChannelCounts{
			CMJandarshan:        3,
			CollectorJandarshan: 2,
		},
		TotalComplaints: 5,
	}
}

func TestComplaintRepositoryUpsertInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	record := sampleRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO complaint_records")).
		WithArgs("Revenue", "Tehsil Office Raipur", "Tehsildar", 3, 2, 0, 0, 0, 0, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow(int64(11), true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO officer_contacts")).
		WithArgs(int64(11), "Shri Verma", "9876500000").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO complaint_history")).
		WithArgs(int64(11), "Revenue", "Tehsil Office Raipur", "Tehsildar", 3, 2, 0, 0, 0, 0, 5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, inserted, err := repo.Upsert(context.Background(), record, "Shri Verma", "9876500000")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepositoryUpsertUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO complaint_records")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow(int64(7), false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO officer_contacts")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO complaint_history")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, inserted, err := repo.Upsert(context.Background(), sampleRecord(), "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepositoryUpsertHistoryFailureRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO complaint_records")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow(int64(7), true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO officer_contacts")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO complaint_history")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err := repo.Upsert(context.Background(), sampleRecord(), "", "")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepositoryRecentLimited(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	rows := sqlmock.NewRows([]string{
		"department", "office", "officer_post",
		"cm_jan_darshan", "collector_jan_darshan", "post_mail", "web", "pg_portal", "call_center", "total",
	}).AddRow("Revenue", "Tehsil Office Raipur", "Tehsildar", 3, 2, 0, 0, 0, 0, 5)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total_complaints DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(rows)

	out, err := repo.Recent(context.Background(), false, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Revenue", out[0].Department)
	assert.Equal(t, 5, out[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepositoryCountsByKeyMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM complaint_records")).
		WithArgs("Revenue", "Tehsil Office Raipur", "Tehsildar").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.CountsByKey(context.Background(), models.NaturalKey{
		MainDepartment:     "Revenue",
		DepartmentName:     "Tehsil Office Raipur",
		OfficerDesignation: "Tehsildar",
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestComplaintRepositoryTopDepartmentsDefaultsToTotal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewComplaintRepository(db)

	rows := sqlmock.NewRows([]string{
		"main_department", "department_name", "officer_designation", "complaint_count", "total_complaints",
	}).AddRow("Revenue", "Tehsil Office Raipur", "Tehsildar", 5, 5)

	mock.ExpectQuery(regexp.QuoteMeta("total_complaints AS complaint_count")).
		WithArgs(10).
		WillReturnRows(rows)

	out, err := repo.TopDepartments(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 5, out[0].ComplaintCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
