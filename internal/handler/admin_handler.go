package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
	"github.com/samadhan-cg/samadhan-api/pkg/response"
)

type adminService interface {
	Create(ctx context.Context, req dto.CreateAdminRequest) (*models.AdminInfo, error)
	Get(ctx context.Context, email string) (*models.AdminInfo, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
}

// AdminHandler wires administrative account endpoints.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Get godoc
// @Summary Fetch an admin account
// @Tags Admin
// @Produce json
// @Param email query string false "Email; the oldest account when omitted"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin [get]
func (h *AdminHandler) Get(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	info, err := h.service.Get(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// Create godoc
// @Summary Create an admin account
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.CreateAdminRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/admin/create [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	info, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, response.Body{
		Success: true,
		Message: "Admin created successfully",
		Data:    info,
	})
}

// UpdateProfile godoc
// @Summary Update an admin profile
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/admin/update-profile [put]
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.service.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Body{
		Success: true,
		Message: "Profile updated successfully",
		Data:    resp,
	})
}
