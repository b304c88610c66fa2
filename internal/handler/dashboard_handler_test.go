package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

type fakeDashboardSrv struct {
	summary *dto.DashboardSummary
	err     error
}

func (f *fakeDashboardSrv) Summary(context.Context) (*dto.DashboardSummary, error) {
	return f.summary, f.err
}

func TestDashboardHandlerSummaryFlatShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(&fakeDashboardSrv{summary: &dto.DashboardSummary{
		TotalComplaints: 120, Pending: 80, Resolved: 40, CM: 10, CallCenter: 9,
	}})

	rec, c := getRequest(t, "/dashboard")
	h.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Flat legacy shape: totals at the top level, no data envelope.
	assert.Equal(t, float64(120), body["total_complaints"])
	assert.Equal(t, float64(9), body["call_center"])
	assert.NotContains(t, body, "data")
}

func TestDashboardHandlerSummaryError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.ErrInternal})

	rec, c := getRequest(t, "/dashboard")
	h.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
