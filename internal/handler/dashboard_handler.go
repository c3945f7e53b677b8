package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/service"
)

// DashboardHandler serves metrics, the activity log and the aggregates.
type DashboardHandler struct {
	Metrics    *CRUD[model.DashboardMetric, projection.MetricInput, projection.MetricView]
	Activities *CRUD[model.ActivityLog, projection.ActivityInput, projection.ActivityView]

	svc *service.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		Metrics:    NewCRUD[model.DashboardMetric, projection.MetricInput](svc.Metrics, projection.NewMetricView),
		Activities: NewCRUD[model.ActivityLog, projection.ActivityInput](svc.Activities, projection.NewActivityView),
		svc:        svc,
	}
}

// CombinedResponse is the dashboard in one round trip.
type CombinedResponse struct {
	Overview         *service.Overview         `json:"overview"`
	RecentActivities []projection.ActivityView `json:"recent_activities"`
	MetricsChart     []projection.MetricView   `json:"metrics_chart"`
}

// Chart godoc
// @Summary Metric values over time
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param type query string false "Metric type" default(projects_total)
// @Param days query int false "Number of days back" default(30)
// @Success 200 {array} projection.MetricView
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/metrics/chart/ [get]
func (h *DashboardHandler) Chart(c echo.Context) error {
	metrics, err := h.svc.Chart(requestContext(c), c.QueryParam("type"), queryInt(c, "days"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.Views(metrics, projection.NewMetricView))
}

// Recent godoc
// @Summary Most recent activities
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {array} projection.ActivityView
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/activities/recent/ [get]
func (h *DashboardHandler) Recent(c echo.Context) error {
	rows, err := h.svc.Recent(requestContext(c), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.Views(rows, projection.NewActivityView))
}

// Overview godoc
// @Summary Headline figures across the backend
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Overview
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/overview/ [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.svc.Overview(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Combined godoc
// @Summary Overview, recent activities and revenue chart
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of recent activities" default(10)
// @Success 200 {object} CombinedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/combined/ [get]
func (h *DashboardHandler) Combined(c echo.Context) error {
	combined, err := h.svc.Combined(requestContext(c), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CombinedResponse{
		Overview:         combined.Overview,
		RecentActivities: projection.Views(combined.RecentActivities, projection.NewActivityView),
		MetricsChart:     projection.Views(combined.MetricsChart, projection.NewMetricView),
	})
}
