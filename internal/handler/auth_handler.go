package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// AuthHandler handles authentication and profile endpoints.
type AuthHandler struct {
	authService service.AuthService
	users       service.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, users service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, users: users}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request. The refresh token is optional.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token,omitempty"`
	SessionKey   string               `json:"session_key,omitempty"`
	User         *projection.UserView `json:"user,omitempty"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login godoc
// @Summary Authenticate user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(requestContext(c), req.Username, req.Password)
	if err != nil {
		return err
	}

	user := projection.NewUserView(result.User)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		SessionKey:   result.SessionKey,
		User:         &user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.Refresh(requestContext(c), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Logout and end the current session
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if c.Request().ContentLength > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	if err := h.authService.Logout(requestContext(c), CurrentClaims(c), req.RefreshToken); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} projection.UserView
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/profile/ [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	p := CurrentPrincipal(c)
	user, err := h.users.Get(requestContext(c), p, p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewUserView(user))
}

// UpdateProfile godoc
// @Summary Update current user profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projection.ProfileInput true "Profile fields"
// @Success 200 {object} projection.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/profile/ [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var in projection.ProfileInput
	if err := bind(c, &in); err != nil {
		return err
	}

	p := CurrentPrincipal(c)
	user, err := h.users.Update(requestContext(c), p, p.UserID, "", in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewUserView(user))
}

// ChangePassword godoc
// @Summary Change current user password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/change-password/ [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(requestContext(c), CurrentPrincipal(c).UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// Sessions godoc
// @Summary List login sessions
// @Description Non-admin users only see their own sessions.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} repository.Page[projection.SessionView]
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/sessions/ [get]
func (h *AuthHandler) Sessions(c echo.Context) error {
	page, err := h.users.Sessions(requestContext(c), CurrentPrincipal(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewSessionView))
}
