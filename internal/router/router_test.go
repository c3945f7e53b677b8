package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/auth"
	"sheba-admin/internal/config"
	"sheba-admin/internal/db/dbtest"
	"sheba-admin/internal/handler"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb := dbtest.New(t)

	jwtService := auth.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	users := service.NewUserService(gdb, nil, nil, 0)
	authService := service.NewAuthService(
		repository.NewUserRepository(gdb),
		repository.NewSessionRepository(gdb),
		users,
		jwtService,
		auth.NewTokenStore(nil),
		nil,
	)
	projects := service.NewProjectService(gdb, nil)
	clients := service.NewClientService(gdb, nil)
	careers := service.NewCareersService(gdb, nil)
	content := service.NewContentService(gdb, nil)
	communication := service.NewCommunicationService(gdb, nil)

	e := echo.New()
	Register(e, config.Default(), Handlers{
		Auth:          handler.NewAuthHandler(authService, users),
		Users:         handler.NewUserHandler(users),
		Projects:      handler.NewProjectHandler(projects),
		Clients:       handler.NewClientHandler(clients),
		Careers:       handler.NewCareersHandler(careers),
		Content:       handler.NewContentHandler(content),
		Communication: handler.NewCommunicationHandler(communication),
		Dashboard:     handler.NewDashboardHandler(service.NewDashboardService(gdb, nil, nil, time.Minute)),
		Settings:      handler.NewSettingsHandler(service.NewSettingsService(gdb, nil, nil)),
		Public:        handler.NewPublicHandler(careers, content, projects, communication),
	}, authService, jwtService, (*audit.Log)(nil))

	return &testServer{e: e, db: gdb}
}

func (s *testServer) createUser(t *testing.T, username string, role policy.Role) *model.User {
	t.Helper()
	users := service.NewUserService(s.db, nil, nil, 0)
	bootstrap := &policy.Principal{Role: policy.RoleAdmin, IsStaff: true}
	u, err := users.Create(context.Background(), bootstrap, "secret-password", func(u *model.User) {
		u.Username = username
		u.Email = username + "@example.com"
		u.Role = string(role)
	})
	require.NoError(t, err)
	return u
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"username": username,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/clients/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, rec)["code"])

	rec = s.do(t, http.MethodGet, "/api/clients/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "abebe", policy.RoleDeveloper)

	rec := s.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{"username": "abebe", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, rec)["code"])
}

func TestRouter_LogoutEndsSession(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "abebe", policy.RoleDeveloper)
	token := s.login(t, "abebe")

	rec := s.do(t, http.MethodPost, "/api/auth/logout/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/auth/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ClientRoundTrip(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "manager", policy.RoleManager)
	token := s.login(t, "manager")

	rec := s.do(t, http.MethodPost, "/api/clients/", token, map[string]interface{}{
		"name":  "abay",
		"email": "abay@example.com",
		"phone": "+251911000000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := uint(created["id"].(float64))
	assert.Equal(t, "individual", created["client_type"])

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/clients/%d/", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abay@example.com", decode(t, rec)["email"])

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/clients/%d/", id), token, map[string]interface{}{"notes": "prefers email"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "prefers email", decode(t, rec)["notes"])

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/clients/%d/", id), token, map[string]interface{}{"notes": "missing required"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/clients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/clients/%d/", id), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/clients/%d/", id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NestedCreateTakesParentFromPath(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "manager", policy.RoleManager)
	token := s.login(t, "manager")

	create := func(path string, body map[string]interface{}) map[string]interface{} {
		t.Helper()
		rec := s.do(t, http.MethodPost, path, token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decode(t, rec)
	}
	abay := create("/api/clients/", map[string]interface{}{"name": "abay", "email": "abay@example.com", "phone": "0911"})
	awash := create("/api/clients/", map[string]interface{}{"name": "awash", "email": "awash@example.com", "phone": "0912"})
	abayID, awashID := uint(abay["id"].(float64)), uint(awash["id"].(float64))

	contact := create(fmt.Sprintf("/api/clients/%d/contacts/", abayID), map[string]interface{}{
		"client_id": awashID,
		"name":      "Tsion",
		"email":     "tsion@example.com",
	})
	assert.Equal(t, float64(abayID), contact["client_id"])

	// client_id may be left out of the body entirely
	contact = create(fmt.Sprintf("/api/clients/%d/contacts/", awashID), map[string]interface{}{
		"name":  "Dawit",
		"email": "dawit@example.com",
	})
	assert.Equal(t, float64(awashID), contact["client_id"])

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/clients/%d/contacts/", abayID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = s.do(t, http.MethodPost, "/api/clients/999/contacts/", token, map[string]interface{}{"name": "x", "email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	first := create("/api/projects/", map[string]interface{}{"name": "Portal", "client_id": abayID})
	second := create("/api/projects/", map[string]interface{}{"name": "Mobile", "client_id": abayID})
	firstID, secondID := uint(first["id"].(float64)), uint(second["id"].(float64))

	task := create(fmt.Sprintf("/api/projects/%d/tasks/", firstID), map[string]interface{}{
		"project_id": secondID,
		"title":      "Wireframes",
	})
	assert.Equal(t, float64(firstID), task["project_id"])

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks/", secondID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", firstID), token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", firstID), "", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "manager", policy.RoleManager)
	token := s.login(t, "manager")

	rec := s.do(t, http.MethodPost, "/api/clients/contacts/", token, map[string]interface{}{
		"client_id": 999,
		"name":      "Tsion",
		"email":     "tsion@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "client_id")
}

func TestRouter_UserAdministrationIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "dev", policy.RoleDeveloper)
	s.createUser(t, "admin", policy.RoleAdmin)

	payload := map[string]interface{}{
		"username": "newhire",
		"email":    "newhire@example.com",
		"password": "secret-password",
	}
	rec := s.do(t, http.MethodPost, "/api/auth/users/", s.login(t, "dev"), payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/users/", s.login(t, "admin"), payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, decode(t, rec), "password")
}

func TestRouter_NotificationsAreOwnerScoped(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "owner", policy.RoleDeveloper)
	s.createUser(t, "other", policy.RoleDeveloper)
	s.createUser(t, "admin", policy.RoleAdmin)

	n := &model.Notification{Title: "Deploy", Message: "Release is out", NotificationType: "info", RecipientID: owner.ID}
	require.NoError(t, s.db.Create(n).Error)
	path := fmt.Sprintf("/api/communication/notifications/%d/", n.ID)

	rec := s.do(t, http.MethodGet, path, s.login(t, "other"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, path+"mark-read/", s.login(t, "other"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ownerToken := s.login(t, "owner")
	rec = s.do(t, http.MethodPost, path+"mark-read/", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Notification marked as read", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["is_read"])

	rec = s.do(t, http.MethodGet, path, s.login(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SettingsSingletonAndRestrictions(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "dev", policy.RoleDeveloper)
	s.createUser(t, "admin", policy.RoleAdmin)
	dev := s.login(t, "dev")
	admin := s.login(t, "admin")

	rec := s.do(t, http.MethodGet, "/api/settings/company/", dev, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(model.SingletonID), decode(t, rec)["id"])

	rec = s.do(t, http.MethodPatch, "/api/settings/company/", admin, map[string]interface{}{"tagline": "Built in Addis"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/settings/company/", dev, nil)
	body := decode(t, rec)
	assert.Equal(t, float64(model.SingletonID), body["id"])
	assert.Equal(t, "Built in Addis", body["tagline"])

	rec = s.do(t, http.MethodGet, "/api/settings/system/", dev, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/settings/system/health/", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "disabled", decode(t, rec)["cache"])
}

func TestRouter_PublicApply(t *testing.T) {
	s := newTestServer(t)
	poster := s.createUser(t, "hr", policy.RoleManager)
	job := &model.JobPosting{
		Title:           "Backend Engineer",
		Department:      "engineering",
		Location:        "Addis Ababa",
		JobType:         "full_time",
		ExperienceLevel: "mid",
		Description:     "Build things.",
		SalaryCurrency:  "ETB",
		Status:          model.StatusPublished,
		PostedByID:      poster.ID,
	}
	require.NoError(t, s.db.Create(job).Error)

	rec := s.do(t, http.MethodGet, "/api/public/careers/jobs/backend-engineer/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	application := map[string]interface{}{
		"job_id":     job.ID,
		"first_name": "Hana",
		"last_name":  "Bekele",
		"email":      "hana@example.com",
		"phone":      "+251911111111",
		"status":     "hired",
	}
	rec = s.do(t, http.MethodPost, "/api/public/careers/apply/", "", application)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/public/careers/apply/", "", application)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "email")

	var stored model.JobApplication
	require.NoError(t, s.db.First(&stored).Error)
	assert.Equal(t, "submitted", stored.Status)
}

func TestRouter_HealthzAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/nowhere/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
