package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// dashboardCachePattern covers every cached dashboard payload. Complaint
// writes invalidate it so the summary never serves stale totals past the TTL.
const dashboardCachePattern = "dash:*"

var validate = validator.New()

// ComplaintStore is the persistence surface the complaint service needs.
type ComplaintStore interface {
	Upsert(ctx context.Context, record *models.ComplaintRecord, officerName, officerMobile string) (int64, bool, error)
	Recent(ctx context.Context, all bool, limit int) ([]dto.RecentComplaintRow, error)
	Suggestions(ctx context.Context) ([]dto.Suggestion, error)
	CountsByKey(ctx context.Context, key models.NaturalKey) (*dto.ComplaintCounts, error)
	OfficerByKey(ctx context.Context, key models.NaturalKey) (*dto.OfficerDetails, error)
}

// ComplaintService implements the complaint register operations.
type ComplaintService struct {
	repo        ComplaintStore
	cache       *CacheService
	logger      *zap.Logger
	recentLimit int
}

// NewComplaintService constructs the service.
func NewComplaintService(repo ComplaintStore, cache *CacheService, logger *zap.Logger, recentLimit int) *ComplaintService {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &ComplaintService{repo: repo, cache: cache, logger: logger, recentLimit: recentLimit}
}

// Upsert normalizes the submitted counts, recomputes the total and applies
// the record against its natural key. It reports whether a new record was
// created. The caller-supplied total is ignored: the stored total is always
// the sum of the six channel counts.
func (s *ComplaintService) Upsert(ctx context.Context, req dto.UpsertComplaintRequest) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, "main_department, department_name and officer_designation are required")
	}

	record := &models.ComplaintRecord{
		NaturalKey: models.NaturalKey{
			MainDepartment:     req.MainDepartment,
			DepartmentName:     req.DepartmentName,
			OfficerDesignation: req.OfficerDesignation,
		},
		ChannelCounts: models.ChannelCounts{
			CMJandarshan:        req.CMJandarshan.Int(),
			CollectorJandarshan: req.CollectorJandarshan.Int(),
			CallCenter:          req.CallCenter.Int(),
			PGPortal:            req.PGPortal.Int(),
			PostMail:            req.PostMail.Int(),
			Web:                 req.Web.Int(),
		},
	}
	record.TotalComplaints = record.ChannelCounts.Sum()

	id, inserted, err := s.repo.Upsert(ctx, record, req.OfficerName, req.OfficerMobile)
	if err != nil {
		return false, err
	}
	record.ID = id

	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	if s.logger != nil {
		s.logger.Info("complaint record upserted",
			zap.Int64("id", id),
			zap.Bool("created", inserted),
			zap.String("main_department", record.MainDepartment),
			zap.Int("total", record.TotalComplaints))
	}
	return inserted, nil
}

// Recent returns the renamed-field register projection, capped to the
// configured limit unless the caller asks for everything.
func (s *ComplaintService) Recent(ctx context.Context, all bool) ([]dto.RecentComplaintRow, error) {
	rows, err := s.repo.Recent(ctx, all, s.recentLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.RecentComplaintRow{}
	}
	return rows, nil
}

// Suggestions returns the distinct natural-key triples for the intake form.
func (s *ComplaintService) Suggestions(ctx context.Context) ([]dto.Suggestion, error) {
	rows, err := s.repo.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.Suggestion{}
	}
	return rows, nil
}

// Lookup returns the stored channel counts for a natural key.
func (s *ComplaintService) Lookup(ctx context.Context, req dto.NaturalKeyRequest) (*dto.ComplaintCounts, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mainDepartment, departmentName and officerDesignation are required")
	}
	counts, err := s.repo.CountsByKey(ctx, naturalKey(req))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no existing data found")
		}
		return nil, err
	}
	return counts, nil
}

// Officer returns the officer contact attached to a natural key.
func (s *ComplaintService) Officer(ctx context.Context, req dto.NaturalKeyRequest) (*dto.OfficerDetails, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mainDepartment, departmentName and officerDesignation are required")
	}
	details, err := s.repo.OfficerByKey(ctx, naturalKey(req))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no officer details found")
		}
		return nil, err
	}
	return details, nil
}

func naturalKey(req dto.NaturalKeyRequest) models.NaturalKey {
	return models.NaturalKey{
		MainDepartment:     req.MainDepartment,
		DepartmentName:     req.DepartmentName,
		OfficerDesignation: req.OfficerDesignation,
	}
}
