package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/service"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
	"github.com/samadhan-cg/samadhan-api/pkg/response"
)

type complaintService interface {
	Upsert(ctx context.Context, req dto.UpsertComplaintRequest) (bool, error)
	Recent(ctx context.Context, all bool) ([]dto.RecentComplaintRow, error)
	Suggestions(ctx context.Context) ([]dto.Suggestion, error)
	Lookup(ctx context.Context, req dto.NaturalKeyRequest) (*dto.ComplaintCounts, error)
	Officer(ctx context.Context, req dto.NaturalKeyRequest) (*dto.OfficerDetails, error)
}

type exportService interface {
	Register(ctx context.Context, format string) (*service.ExportFile, error)
}

// ComplaintHandler wires the complaint register endpoints.
type ComplaintHandler struct {
	service complaintService
	export  exportService
}

// NewComplaintHandler constructs the handler.
func NewComplaintHandler(service complaintService, export exportService) *ComplaintHandler {
	return &ComplaintHandler{service: service, export: export}
}

// Add godoc
// @Summary Add or update a complaint record
// @Tags Complaints
// @Accept json
// @Produce json
// @Param body body dto.UpsertComplaintRequest true "Complaint"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /complaints/add-complaint [post]
func (h *ComplaintHandler) Add(c *gin.Context) {
	var req dto.UpsertComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	created, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Complaint added successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint updated successfully"})
}

// Lookup godoc
// @Summary Fetch stored counts for a natural key
// @Tags Complaints
// @Accept json
// @Produce json
// @Param body body dto.NaturalKeyRequest true "Natural key"
// @Success 200 {object} map[string]interface{}
// @Router /complaints/lookup [post]
func (h *ComplaintHandler) Lookup(c *gin.Context) {
	var req dto.NaturalKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	counts, err := h.service.Lookup(c.Request.Context(), req)
	if err != nil {
		// A missing record is an empty form, not an error page.
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": appErr.Message})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// Officer godoc
// @Summary Fetch the officer contact for a natural key
// @Tags Complaints
// @Accept json
// @Produce json
// @Param body body dto.NaturalKeyRequest true "Natural key"
// @Success 200 {object} map[string]interface{}
// @Router /complaints/officer [post]
func (h *ComplaintHandler) Officer(c *gin.Context) {
	var req dto.NaturalKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	details, err := h.service.Officer(c.Request.Context(), req)
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": appErr.Message})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, details)
}

// Recent godoc
// @Summary List complaint register rows
// @Tags Complaints
// @Produce json
// @Param all query bool false "Return every row instead of the top five"
// @Success 200 {array} dto.RecentComplaintRow
// @Router /recent [get]
func (h *ComplaintHandler) Recent(c *gin.Context) {
	all := strings.EqualFold(c.Query("all"), "true")
	rows, err := h.service.Recent(c.Request.Context(), all)
	if err != nil {
		response.PlainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Suggestions godoc
// @Summary List distinct natural-key triples for the intake form
// @Tags Complaints
// @Produce json
// @Success 200 {array} dto.Suggestion
// @Router /api/suggestions [get]
func (h *ComplaintHandler) Suggestions(c *gin.Context) {
	rows, err := h.service.Suggestions(c.Request.Context())
	if err != nil {
		response.PlainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Export godoc
// @Summary Download the complaint register
// @Tags Complaints
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Router /recent/export [get]
func (h *ComplaintHandler) Export(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	switch format {
	case "", service.ExportFormatCSV, service.ExportFormatPDF:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format)))
		return
	}
	file, err := h.export.Register(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
