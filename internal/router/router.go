package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/auth"
	"sheba-admin/internal/config"
	"sheba-admin/internal/handler"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/service"
)

// ServiceName identifies the API in traces.
const ServiceName = "sheba-admin"

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Projects      *handler.ProjectHandler
	Clients       *handler.ClientHandler
	Careers       *handler.CareersHandler
	Content       *handler.ContentHandler
	Communication *handler.CommunicationHandler
	Dashboard     *handler.DashboardHandler
	Settings      *handler.SettingsHandler
	Public        *handler.PublicHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	h Handlers,
	authService service.AuthService,
	jwtService *auth.JWTService,
	auditLog *audit.Log,
) {
	e.HTTPErrorHandler = errorHandler(auditLog)
	e.Validator = NewValidator()

	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{Skipper: skipTrailingSlash}))
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware(ServiceName))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(auditContext())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login/", h.Auth.Login)
	api.POST("/auth/refresh/", h.Auth.Refresh)

	public := api.Group("/public")
	public.GET("/careers/jobs/", h.Public.Jobs)
	public.GET("/careers/jobs/:slug/", h.Public.Job)
	public.POST("/careers/apply/", h.Public.Apply)
	public.GET("/blog/", h.Public.Posts)
	public.GET("/blog/:slug/", h.Public.Post)
	public.GET("/projects/", h.Public.Projects)
	public.GET("/projects/:id/", h.Public.Project)
	public.POST("/contact/", h.Public.Contact)

	// Secured routes (require JWT authentication)
	secured := api.Group("", jwtMiddleware(jwtService), authenticate(authService))

	secured.POST("/auth/logout/", h.Auth.Logout)
	secured.GET("/auth/profile/", h.Auth.Profile)
	secured.PUT("/auth/profile/", h.Auth.UpdateProfile)
	secured.PATCH("/auth/profile/", h.Auth.UpdateProfile)
	secured.POST("/auth/change-password/", h.Auth.ChangePassword)
	secured.GET("/auth/sessions/", h.Auth.Sessions, authorize(policy.ActionView, policy.ResourceSessions))
	resources(secured, "/auth/users/", policy.ResourceUsers, h.Users)

	// Projects
	secured.GET("/projects/summary/", h.Projects.Summary, authorize(policy.ActionView, policy.ResourceProjects))
	secured.GET("/projects/stats/", h.Projects.Stats, authorize(policy.ActionView, policy.ResourceProjects))
	secured.GET("/projects/statistics/", h.Projects.Stats, authorize(policy.ActionView, policy.ResourceProjects))
	secured.GET("/projects/:project_id/tasks/", h.Projects.ProjectTasks, authorize(policy.ActionView, policy.ResourceProjects))
	secured.POST("/projects/:project_id/tasks/", h.Projects.CreateProjectTask, authorize(policy.ActionAdd, policy.ResourceProjects))
	resources(secured, "/projects/tasks/", policy.ResourceProjects, h.Projects.Tasks)
	resources(secured, "/projects/", policy.ResourceProjects, h.Projects.Projects)

	// Clients
	secured.GET("/clients/summary/", h.Clients.Summary, authorize(policy.ActionView, policy.ResourceClients))
	secured.GET("/clients/stats/", h.Clients.Stats, authorize(policy.ActionView, policy.ResourceClients))
	secured.GET("/clients/:client_id/contacts/", h.Clients.ClientContacts, authorize(policy.ActionView, policy.ResourceClients))
	secured.POST("/clients/:client_id/contacts/", h.Clients.CreateClientContact, authorize(policy.ActionAdd, policy.ResourceClients))
	resources(secured, "/clients/contacts/", policy.ResourceClients, h.Clients.Contacts)
	resources(secured, "/clients/", policy.ResourceClients, h.Clients.Clients)

	// Content
	resources(secured, "/content/website/", policy.ResourceContent, h.Content.Website)
	secured.GET("/content/blog/summary/", h.Content.BlogSummary, authorize(policy.ActionView, policy.ResourceContent))
	resources(secured, "/content/blog/", policy.ResourceContent, h.Content.Blog)
	resources(secured, "/content/portfolio/", policy.ResourceContent, h.Content.Portfolio)
	resources(secured, "/content/services/", policy.ResourceContent, h.Content.Services)
	resources(secured, "/content/team/", policy.ResourceContent, h.Content.Team)
	secured.GET("/content/stats/", h.Content.Stats, authorize(policy.ActionView, policy.ResourceContent))

	// Communication
	resources(secured, "/communication/contacts/", policy.ResourceCommunication, h.Communication.Submissions)
	resources(secured, "/communication/email-templates/", policy.ResourceCommunication, h.Communication.Templates)
	resources(secured, "/communication/newsletters/", policy.ResourceCommunication, h.Communication.Newsletters)
	resources(secured, "/communication/subscribers/", policy.ResourceCommunication, h.Communication.Subscribers)
	resources(secured, "/communication/notifications/", policy.ResourceNotifications, h.Communication.Notifications)
	secured.POST("/communication/notifications/:id/mark-read/", h.Communication.MarkRead, authorize(policy.ActionChange, policy.ResourceNotifications))
	secured.GET("/communication/stats/", h.Communication.Stats, authorize(policy.ActionView, policy.ResourceCommunication))

	// Careers
	secured.GET("/careers/jobs/summary/", h.Careers.JobSummary, authorize(policy.ActionView, policy.ResourceCareers))
	resources(secured, "/careers/jobs/", policy.ResourceCareers, h.Careers.Jobs)
	secured.GET("/careers/applications/summary/", h.Careers.ApplicationsSummary, authorize(policy.ActionView, policy.ResourceCareers))
	secured.GET("/careers/applications/export/", h.Careers.Export, authorize(policy.ActionView, policy.ResourceCareers))
	resources(secured, "/careers/applications/", policy.ResourceCareers, h.Careers.Applications)
	secured.GET("/careers/stats/", h.Careers.Stats, authorize(policy.ActionView, policy.ResourceCareers))

	// Dashboard
	secured.GET("/dashboard/metrics/chart/", h.Dashboard.Chart, authorize(policy.ActionView, policy.ResourceDashboard))
	resources(secured, "/dashboard/metrics/", policy.ResourceDashboard, h.Dashboard.Metrics)
	secured.GET("/dashboard/activities/recent/", h.Dashboard.Recent, authorize(policy.ActionView, policy.ResourceDashboard))
	resources(secured, "/dashboard/activities/", policy.ResourceDashboard, h.Dashboard.Activities)
	secured.GET("/dashboard/overview/", h.Dashboard.Overview, authorize(policy.ActionView, policy.ResourceDashboard))
	secured.GET("/dashboard/combined/", h.Dashboard.Combined, authorize(policy.ActionView, policy.ResourceDashboard))

	// Settings
	secured.GET("/settings/company/", h.Settings.GetCompany, authorize(policy.ActionView, policy.ResourceCompanySettings))
	secured.PUT("/settings/company/", h.Settings.UpdateCompany, authorize(policy.ActionChange, policy.ResourceCompanySettings))
	secured.PATCH("/settings/company/", h.Settings.UpdateCompany, authorize(policy.ActionChange, policy.ResourceCompanySettings))
	secured.GET("/settings/system/", h.Settings.GetSystem, authorize(policy.ActionView, policy.ResourceSystemSettings))
	secured.PUT("/settings/system/", h.Settings.UpdateSystem, authorize(policy.ActionChange, policy.ResourceSystemSettings))
	secured.PATCH("/settings/system/", h.Settings.UpdateSystem, authorize(policy.ActionChange, policy.ResourceSystemSettings))
	secured.GET("/settings/system/health/", h.Settings.Health, authorize(policy.ActionView, policy.ResourceSystemSettings))
	resources(secured, "/settings/permissions/", policy.ResourcePermissions, h.Settings.Permissions)
	secured.GET("/settings/users/:user_id/permissions/", h.Settings.UserPermissions)
	readOnly(secured, "/settings/logs/", policy.ResourceSystemLogs, h.Settings.Logs)
}

type readHandler interface {
	List(echo.Context) error
	Get(echo.Context) error
}

type writeHandler interface {
	readHandler
	Create(echo.Context) error
	Update(echo.Context) error
	Delete(echo.Context) error
}

// resources mounts list, create, retrieve, update and delete under path.
func resources(g *echo.Group, path string, resource policy.Resource, h writeHandler) {
	readOnly(g, path, resource, h)
	g.POST(path, h.Create, authorize(policy.ActionAdd, resource))
	g.PUT(path+":id/", h.Update, authorize(policy.ActionChange, resource))
	g.PATCH(path+":id/", h.Update, authorize(policy.ActionChange, resource))
	g.DELETE(path+":id/", h.Delete, authorize(policy.ActionDelete, resource))
}

// readOnly mounts list and retrieve under path.
func readOnly(g *echo.Group, path string, resource policy.Resource, h readHandler) {
	g.GET(path, h.List, authorize(policy.ActionView, resource))
	g.GET(path+":id/", h.Get, authorize(policy.ActionView, resource))
}
