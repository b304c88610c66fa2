package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	"github.com/samadhan-cg/samadhan-api/internal/service"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
	"github.com/samadhan-cg/samadhan-api/pkg/response"
)

type statsService interface {
	UpdateStats(ctx context.Context, req dto.UpdateStatsRequest) (map[models.Channel]dto.PendingResolve, error)
	PortalSeries(ctx context.Context, portal, timeRange string) (*dto.ChannelSeries, error)
	LatestAll(ctx context.Context) ([]dto.LatestChannelRow, error)
	SummaryGraph(ctx context.Context, timeRange string) (map[string]dto.SummaryGraphEntry, error)
	Departments(ctx context.Context, portalLabel string, limit int) ([]dto.PortalDepartmentRow, error)
	Realtime(ctx context.Context) (*dto.RealtimeStats, error)
	TopDepartments(ctx context.Context, portal string, limit int) ([]dto.TopDepartmentRow, error)
	DepartmentGraph(ctx context.Context, departmentName, timeRange string) (*service.DepartmentGraphResult, error)
	MainGraph(ctx context.Context) ([]dto.DepartmentChannelTotals, error)
	DepartmentHistory(ctx context.Context, mainDepartment string) ([]dto.DepartmentNamePoint, error)
	HistoryByID(ctx context.Context, originalID int64) ([]models.ComplaintHistoryEntry, error)
	AllHistory(ctx context.Context, limit int) ([]dto.HistoryJoinedRow, error)
	RecentHistory(ctx context.Context, mainDepartment string, limit int) ([]models.ComplaintHistoryEntry, error)
}

// StatsHandler wires the snapshot, series and history endpoints.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Update godoc
// @Summary Store one snapshot per channel
// @Tags Stats
// @Accept json
// @Produce json
// @Param body body dto.UpdateStatsRequest true "Pending/resolve pairs for all six channels"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /updateStats [post]
func (h *StatsHandler) Update(c *gin.Context) {
	var req dto.UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	stored, err := h.service.UpdateStats(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Message: "Stats updated successfully",
		Extra:   map[string]interface{}{"stored": stored},
	})
}

// Portal godoc
// @Summary Snapshot series for one channel
// @Tags Stats
// @Produce json
// @Param name path string true "Channel name"
// @Param timeRange query string false "all (default), weekly or monthly"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /stats/portal/{name} [get]
func (h *StatsHandler) Portal(c *gin.Context) {
	portal := c.Param("name")
	timeRange := strings.TrimSpace(c.Query("timeRange"))
	series, err := h.service.PortalSeries(c.Request.Context(), portal, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Data:    series.Points,
		Extra: map[string]interface{}{
			"portal": portal,
			"source": series.Source,
		},
	})
}

// Latest godoc
// @Summary Newest snapshot of every channel
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats/latest [get]
func (h *StatsHandler) Latest(c *gin.Context) {
	rows, err := h.service.LatestAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// SummaryGraph godoc
// @Summary Newest bucket of every channel
// @Tags Stats
// @Produce json
// @Param timeRange query string false "weekly (default) or monthly"
// @Success 200 {object} map[string]interface{}
// @Router /stats/summary-graph [get]
func (h *StatsHandler) SummaryGraph(c *gin.Context) {
	timeRange := strings.TrimSpace(c.Query("timeRange"))
	if timeRange == "" {
		timeRange = service.RangeWeekly
	}
	entries, err := h.service.SummaryGraph(c.Request.Context(), timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Data:    entries,
		Extra:   map[string]interface{}{"timeRange": timeRange},
	})
}

// Departments godoc
// @Summary Department leaderboard for one portal
// @Tags Stats
// @Produce json
// @Param portal query string true "Portal display label"
// @Param limit query int false "Row cap, default 10"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /stats/departments [get]
func (h *StatsHandler) Departments(c *gin.Context) {
	portal := strings.TrimSpace(c.Query("portal"))
	rows, err := h.service.Departments(c.Request.Context(), portal, queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Data:    rows,
		Extra:   map[string]interface{}{"portal": portal},
	})
}

// Realtime godoc
// @Summary Cross-channel aggregate totals
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats/realtime [get]
func (h *StatsHandler) Realtime(c *gin.Context) {
	stats, err := h.service.Realtime(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// TopDepartments godoc
// @Summary Departments ranked by one channel column
// @Tags Stats
// @Produce json
// @Param portal query string false "Channel name; grand total when omitted"
// @Param limit query int false "Row cap, default 10"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /stats/top-departments [get]
func (h *StatsHandler) TopDepartments(c *gin.Context) {
	portal := strings.TrimSpace(c.Query("portal"))
	rows, err := h.service.TopDepartments(c.Request.Context(), portal, queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// DepartmentGraph godoc
// @Summary History totals grouped by main department
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats/department-graph [get]
func (h *StatsHandler) DepartmentGraph(c *gin.Context) {
	rows, err := h.service.MainGraph(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// DepartmentNameGraph godoc
// @Summary History trend for one named office
// @Tags Stats
// @Produce json
// @Param department_name query string false "Office name; every named office when omitted"
// @Param timeRange query string false "all (default), weekly or monthly"
// @Success 200 {object} map[string]interface{}
// @Router /stats/department-name-graph [get]
func (h *StatsHandler) DepartmentNameGraph(c *gin.Context) {
	name := strings.TrimSpace(c.Query("department_name"))
	timeRange := strings.TrimSpace(c.Query("timeRange"))
	result, err := h.service.DepartmentGraph(c.Request.Context(), name, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// DepartmentHistory godoc
// @Summary Full history trend for one main department
// @Tags Stats
// @Produce json
// @Param main_department query string true "Main department"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /stats/department-history [get]
func (h *StatsHandler) DepartmentHistory(c *gin.Context) {
	main := strings.TrimSpace(c.Query("main_department"))
	rows, err := h.service.DepartmentHistory(c.Request.Context(), main)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// MainDepartmentGraph godoc
// @Summary Recent history rows, optionally filtered to a main department
// @Tags Stats
// @Produce json
// @Param main_department query string false "Main department"
// @Success 200 {object} map[string]interface{}
// @Router /stats/main-department-graph [get]
func (h *StatsHandler) MainDepartmentGraph(c *gin.Context) {
	main := strings.TrimSpace(c.Query("main_department"))
	limit := 5
	if main != "" {
		limit = 7
	}
	entries, err := h.service.RecentHistory(c.Request.Context(), main, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// History godoc
// @Summary History entries for one record
// @Tags Stats
// @Produce json
// @Param id path int true "Record id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /stats/history/{id} [get]
func (h *StatsHandler) History(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record id"))
		return
	}
	entries, err := h.service.HistoryByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Data:    entries,
		Extra:   map[string]interface{}{"total": len(entries)},
	})
}

// AllHistory godoc
// @Summary History entries joined to their current record
// @Tags Stats
// @Produce json
// @Param limit query int false "Row cap, default 100"
// @Success 200 {object} map[string]interface{}
// @Router /stats/all-history [get]
func (h *StatsHandler) AllHistory(c *gin.Context) {
	rows, err := h.service.AllHistory(c.Request.Context(), queryInt(c, "limit", 100))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
