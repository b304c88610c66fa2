package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}

// DashboardHandler wires the dashboard summary endpoint.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Flat dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummary
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
