package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// UserHandler serves user account management.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary List users
// @Description Non-admin users only see their own account.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search username, email and names"
// @Param ordering query string false "Ordering, e.g. -created_at"
// @Param role query string false "Filter by role"
// @Success 200 {object} repository.Page[projection.UserView]
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.svc.List(requestContext(c), CurrentPrincipal(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewUserView))
}

// Create godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body projection.UserInput true "User payload"
// @Success 201 {object} projection.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var in projection.UserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.PasswordValue() == "" {
		return apperrors.NewValidationError("password", "This field is required.")
	}

	created, err := h.svc.Create(requestContext(c), CurrentPrincipal(c), in.PasswordValue(), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, projection.NewUserView(created))
}

// Get godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} projection.UserView
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/users/{id}/ [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.Get(requestContext(c), CurrentPrincipal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewUserView(user))
}

// Update godoc
// @Summary Update user
// @Description PUT and PATCH both merge the submitted fields onto the account.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body projection.UserInput true "User fields"
// @Success 200 {object} projection.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/users/{id}/ [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in projection.UserInput
	if err := bind(c, &in); err != nil {
		return err
	}

	updated, err := h.svc.Update(requestContext(c), CurrentPrincipal(c), id, in.PasswordValue(), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewUserView(updated))
}

// Delete godoc
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/users/{id}/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(requestContext(c), CurrentPrincipal(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
