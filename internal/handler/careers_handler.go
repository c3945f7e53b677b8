package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CareersHandler serves job postings and applications.
type CareersHandler struct {
	Jobs                *CRUD[model.JobPosting, projection.JobInput, projection.JobView]
	Applications        *CRUD[model.JobApplication, projection.ApplicationInput, projection.ApplicationView]
	JobSummary          echo.HandlerFunc
	ApplicationsSummary echo.HandlerFunc

	svc *service.CareersService
}

// NewCareersHandler creates a careers handler.
func NewCareersHandler(svc *service.CareersService) *CareersHandler {
	return &CareersHandler{
		Jobs:                NewCRUD[model.JobPosting, projection.JobInput](svc.Jobs, projection.NewJobView),
		Applications:        NewCRUD[model.JobApplication, projection.ApplicationInput](svc.Applications, projection.NewApplicationView),
		JobSummary:          ListAs(svc.Jobs, service.JobSummarySpec, projection.NewJobSummary),
		ApplicationsSummary: ListAs(svc.Applications, service.ApplicationSummarySpec, projection.NewApplicationSummary),
		svc:                 svc,
	}
}

// Stats godoc
// @Summary Careers statistics with a per-department breakdown
// @Tags careers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CareersStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /careers/stats/ [get]
func (h *CareersHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Export godoc
// @Summary Export job applications as a spreadsheet
// @Description Accepts the same filters, search and ordering as the application list.
// @Tags careers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param job query int false "Filter by job posting"
// @Param status query string false "Filter by status"
// @Success 200 {file} file
// @Failure 401 {object} errors.ErrorResponse
// @Router /careers/applications/export/ [get]
func (h *CareersHandler) Export(c echo.Context) error {
	f, err := h.svc.ExportApplications(requestContext(c), CurrentPrincipal(c), listQuery(c))
	if err != nil {
		return err
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=job_applications.xlsx")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
