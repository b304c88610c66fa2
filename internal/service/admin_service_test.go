package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

func createReq() dto.CreateAdminRequest {
	return dto.CreateAdminRequest{
		Name:     "Admin",
		Email:    "admin@samadhan.cg.gov.in",
		Phone:    "070012345",
		Username: "admin",
		Password: "secret123",
	}
}

func TestAdminServiceCreateHashesPassword(t *testing.T) {
	store := &fakeAdminStore{findErr: sql.ErrNoRows}
	svc := NewAdminService(store, nil)

	info, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.ID)

	require.NotNil(t, store.created)
	assert.NotEqual(t, "secret123", store.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.created.PasswordHash), []byte("secret123")))

	require.Len(t, store.auditLogs, 1)
	assert.Equal(t, models.AuditActionCreateAdmin, store.auditLogs[0].Action)
}

func TestAdminServiceCreateRejectsDuplicateEmail(t *testing.T) {
	store := &fakeAdminStore{admin: &models.Admin{ID: 1, Email: "admin@samadhan.cg.gov.in"}}
	svc := NewAdminService(store, nil)

	_, err := svc.Create(context.Background(), createReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, store.created)
}

func TestAdminServiceCreateRejectsShortPassword(t *testing.T) {
	svc := NewAdminService(&fakeAdminStore{}, nil)

	req := createReq()
	req.Password = "abc"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func updateReq() dto.UpdateProfileRequest {
	return dto.UpdateProfileRequest{
		ID:       3,
		Name:     "Admin",
		Email:    "admin@samadhan.cg.gov.in",
		Phone:    "070012345",
		Username: "admin",
	}
}

func TestAdminServiceUpdateProfileRejectsTakenEmail(t *testing.T) {
	store := &fakeAdminStore{emailTaken: true}
	svc := NewAdminService(store, nil)

	_, err := svc.UpdateProfile(context.Background(), updateReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAdminServiceUpdateProfileRejectsTakenUsername(t *testing.T) {
	store := &fakeAdminStore{usernameTaken: true}
	svc := NewAdminService(store, nil)

	_, err := svc.UpdateProfile(context.Background(), updateReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAdminServiceUpdateProfileUnknownID(t *testing.T) {
	store := &fakeAdminStore{affected: 0}
	svc := NewAdminService(store, nil)

	_, err := svc.UpdateProfile(context.Background(), updateReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdminServiceUpdateProfileSuccess(t *testing.T) {
	store := &fakeAdminStore{affected: 1}
	svc := NewAdminService(store, nil)

	resp, err := svc.UpdateProfile(context.Background(), updateReq())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	require.Len(t, store.auditLogs, 1)
	assert.Equal(t, models.AuditActionUpdateProfile, store.auditLogs[0].Action)
}

func TestAdminServiceGetFallsBackToFirst(t *testing.T) {
	store := &fakeAdminStore{admin: &models.Admin{ID: 1, Username: "admin"}}
	svc := NewAdminService(store, nil)

	info, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "admin", info.Username)
	assert.False(t, store.findCalled)
}

func TestAdminServiceGetUnknownEmail(t *testing.T) {
	store := &fakeAdminStore{findErr: sql.ErrNoRows}
	svc := NewAdminService(store, nil)

	_, err := svc.Get(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
