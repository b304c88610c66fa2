package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// AdminService manages administrative accounts.
type AdminService struct {
	admins AdminStore
	logger *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(admins AdminStore, logger *zap.Logger) *AdminService {
	return &AdminService{admins: admins, logger: logger}
}

// Create registers a new account. The email must be unused; the password is
// stored only as a bcrypt hash.
func (s *AdminService) Create(ctx context.Context, req dto.CreateAdminRequest) (*models.AdminInfo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name, email, phone, username and password are required")
	}

	if _, err := s.admins.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "admin with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "hash password")
	}

	admin := &models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.audit(ctx, admin.Email, models.AuditActionCreateAdmin, admin.ID)

	info := admin.Info()
	return &info, nil
}

// Get returns the account matching the email, or the oldest account when no
// email is given.
func (s *AdminService) Get(ctx context.Context, email string) (*models.AdminInfo, error) {
	var admin *models.Admin
	var err error
	if email != "" {
		admin, err = s.admins.FindByEmail(ctx, email)
	} else {
		admin, err = s.admins.First(ctx)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, err
	}
	info := admin.Info()
	return &info, nil
}

// UpdateProfile updates profile fields for one account. Email and username
// must stay unique across the other accounts; the password changes only when
// a non-empty value is supplied.
func (s *AdminService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id, name, email, phone and username are required")
	}

	taken, err := s.admins.EmailTaken(ctx, req.Email, req.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
	}

	taken, err = s.admins.UsernameTaken(ctx, req.Username, req.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already in use")
	}

	var passwordHash string
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "hash password")
		}
		passwordHash = string(hash)
	}

	affected, err := s.admins.UpdateProfile(ctx, req.ID, req.Name, req.Email, req.Phone, req.Username, passwordHash)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
	}

	s.audit(ctx, req.Email, models.AuditActionUpdateProfile, req.ID)

	return &dto.UpdateProfileResponse{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Username: req.Username,
	}, nil
}

func (s *AdminService) audit(ctx context.Context, actor, action string, adminID int64) {
	id := strconv.FormatInt(adminID, 10)
	log := &models.AuditLog{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		Resource:   "admin",
		ResourceID: &id,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.admins.CreateAuditLog(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}
