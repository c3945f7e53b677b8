package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// ProjectHandler serves projects and their tasks.
type ProjectHandler struct {
	Projects *CRUD[model.Project, projection.ProjectInput, projection.ProjectView]
	Tasks    *CRUD[model.ProjectTask, projection.TaskInput, projection.TaskView]
	Summary  echo.HandlerFunc

	svc *service.ProjectService
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		Projects: NewCRUD[model.Project, projection.ProjectInput](svc.Projects, projection.NewProjectView),
		Tasks:    NewCRUD[model.ProjectTask, projection.TaskInput](svc.Tasks, projection.NewTaskView),
		Summary:  ListAs(svc.Projects, service.ProjectSummarySpec, projection.NewProjectSummary),
		svc:      svc,
	}
}

// Stats godoc
// @Summary Project statistics
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProjectStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects/stats/ [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ProjectTasks godoc
// @Summary List the tasks of a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param project_id path int true "Project ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Success 200 {object} repository.Page[projection.TaskView]
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects/{project_id}/tasks/ [get]
func (h *ProjectHandler) ProjectTasks(c echo.Context) error {
	projectID, err := parseID(c, "project_id")
	if err != nil {
		return err
	}
	page, err := h.svc.ListForProject(requestContext(c), CurrentPrincipal(c), projectID, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewTaskView))
}

// CreateProjectTask godoc
// @Summary Create a task in a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project_id path int true "Project ID"
// @Param request body projection.TaskInput true "Task; project_id is taken from the path"
// @Success 201 {object} projection.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /projects/{project_id}/tasks/ [post]
func (h *ProjectHandler) CreateProjectTask(c echo.Context) error {
	projectID, err := parseID(c, "project_id")
	if err != nil {
		return err
	}
	var in projection.TaskInput
	if err := bindWith(c, &in, func() { in.ProjectID = &projectID }); err != nil {
		return err
	}
	task, err := h.svc.CreateForProject(requestContext(c), CurrentPrincipal(c), projectID, in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, projection.NewTaskView(task))
}
