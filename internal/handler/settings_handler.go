package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/service"
)

// SettingsHandler serves the settings singletons, permissions and system logs.
type SettingsHandler struct {
	Permissions *CRUD[model.UserPermission, projection.PermissionInput, projection.PermissionView]
	Logs        *ReadOnly[model.SystemLog, projection.SystemLogView]

	svc *service.SettingsService
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		Permissions: NewCRUD[model.UserPermission, projection.PermissionInput](svc.Permissions, projection.NewPermissionView),
		Logs:        NewReadOnly(svc.Logs, projection.NewSystemLogView),
		svc:         svc,
	}
}

// GetCompany godoc
// @Summary Company profile
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CompanySettings
// @Failure 401 {object} errors.ErrorResponse
// @Router /settings/company/ [get]
func (h *SettingsHandler) GetCompany(c echo.Context) error {
	company, err := h.svc.Company(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany godoc
// @Summary Update company profile
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body projection.CompanySettingsInput true "Company fields"
// @Success 200 {object} model.CompanySettings
// @Failure 400 {object} errors.ErrorResponse
// @Router /settings/company/ [put]
func (h *SettingsHandler) UpdateCompany(c echo.Context) error {
	var in projection.CompanySettingsInput
	if err := bind(c, &in); err != nil {
		return err
	}
	company, err := h.svc.UpdateCompany(requestContext(c), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// GetSystem godoc
// @Summary Operational settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SystemSettings
// @Failure 403 {object} errors.ErrorResponse
// @Router /settings/system/ [get]
func (h *SettingsHandler) GetSystem(c echo.Context) error {
	system, err := h.svc.System(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, system)
}

// UpdateSystem godoc
// @Summary Update operational settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body projection.SystemSettingsInput true "System fields"
// @Success 200 {object} model.SystemSettings
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /settings/system/ [put]
func (h *SettingsHandler) UpdateSystem(c echo.Context) error {
	var in projection.SystemSettingsInput
	if err := bind(c, &in); err != nil {
		return err
	}
	system, err := h.svc.UpdateSystem(requestContext(c), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, system)
}

// Health godoc
// @Summary Database and cache health
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Health
// @Failure 403 {object} errors.ErrorResponse
// @Router /settings/system/health/ [get]
func (h *SettingsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health(requestContext(c)))
}

// UserPermissions godoc
// @Summary Granted permissions of a user
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {array} projection.PermissionView
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings/users/{user_id}/permissions/ [get]
func (h *SettingsHandler) UserPermissions(c echo.Context) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	perms, err := h.svc.UserPermissions(requestContext(c), CurrentPrincipal(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.Views(perms, projection.NewPermissionView))
}
