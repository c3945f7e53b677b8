package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/cache"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

const (
	overviewCacheKey     = "dashboard:overview"
	defaultChartType     = "projects_total"
	defaultChartDays     = 30
	defaultRecentLimit   = 10
	combinedChartType    = "revenue_monthly"
	recentActivityWindow = 7 * 24 * time.Hour
)

var (
	metricListSpec = repository.ListSpec{
		Filters:         map[string]string{"metric_type": "metric_type", "date": "date"},
		Ordering:        map[string]string{"date": "date", "created_at": "created_at", "value": "value"},
		DefaultOrdering: []string{"-date", "-created_at"},
	}

	activityListSpec = repository.ListSpec{
		Filters:         map[string]string{"action": "action", "model_name": "model_name", "user": "user_id"},
		Kinds:           map[string]repository.FilterKind{"user": repository.FilterInt},
		Search:          []string{"description", "model_name"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"User"},
	}
)

// Overview aggregates headline figures across the admin backend.
type Overview struct {
	Projects struct {
		Total          int64   `json:"total"`
		Active         int64   `json:"active"`
		Completed      int64   `json:"completed"`
		CompletionRate float64 `json:"completion_rate"`
	} `json:"projects"`
	Clients struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"clients"`
	Content struct {
		BlogPosts      int64 `json:"blog_posts"`
		PublishedPosts int64 `json:"published_posts"`
	} `json:"content"`
	Communication struct {
		PendingContacts int64 `json:"pending_contacts"`
	} `json:"communication"`
	Activity struct {
		RecentActivities int64 `json:"recent_activities"`
	} `json:"activity"`
}

// Combined is the overview plus recent activity and a revenue chart in one response.
type Combined struct {
	Overview         *Overview               `json:"overview"`
	RecentActivities []model.ActivityLog     `json:"recent_activities"`
	MetricsChart     []model.DashboardMetric `json:"metrics_chart"`
}

// DashboardService serves metrics, the activity log and dashboard aggregates.
type DashboardService struct {
	Metrics    *Resource[model.DashboardMetric]
	Activities *Resource[model.ActivityLog]

	db          *gorm.DB
	cache       *cache.Client
	overviewTTL time.Duration
	now         func() time.Time
}

// NewDashboardService wires the dashboard resources. The overview is cached
// for overviewTTL.
func NewDashboardService(db *gorm.DB, c *cache.Client, log *audit.Log, overviewTTL time.Duration) *DashboardService {
	return &DashboardService{
		Metrics: NewResource(repository.NewStore[model.DashboardMetric](db), log, ResourceConfig[model.DashboardMetric]{
			AuditAs:  "DashboardMetric",
			Resource: policy.ResourceDashboard,
			List:     metricListSpec,
			Check: func(ctx context.Context, m *model.DashboardMetric) error {
				return newChecker(ctx, db).
					unique("non_field_errors", "The fields metric_type, date must make a unique set.",
						&model.DashboardMetric{}, m.ID, "metric_type = ? AND date = ?", m.MetricType, m.Date).
					result()
			},
		}),
		Activities: NewResource(repository.NewStore[model.ActivityLog](db), log, ResourceConfig[model.ActivityLog]{
			Resource: policy.ResourceDashboard,
			List:     activityListSpec,
			Preloads: activityListSpec.Preloads,
			Check: func(ctx context.Context, a *model.ActivityLog) error {
				return newChecker(ctx, db).optionalRef("user_id", &model.User{}, a.UserID).result()
			},
		}),
		db:          db,
		cache:       c,
		overviewTTL: overviewTTL,
		now:         time.Now,
	}
}

// Chart returns the metrics of metricType from the last days days, oldest first.
func (s *DashboardService) Chart(ctx context.Context, metricType string, days int) ([]model.DashboardMetric, error) {
	if metricType == "" {
		metricType = defaultChartType
	}
	if days <= 0 {
		days = defaultChartDays
	}
	since := model.DateOf(s.now().AddDate(0, 0, -days))

	metrics, err := s.Metrics.Store().Find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("metric_type = ? AND date >= ?", metricType, since).Order("date")
	})
	if err != nil {
		return nil, fmt.Errorf("metrics chart: %w", err)
	}
	return metrics, nil
}

// Recent returns the newest limit activity log rows.
func (s *DashboardService) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}
	rows, err := s.Activities.Store().Find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Order("created_at DESC").Order("id DESC").Limit(limit)
	})
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	return rows, nil
}

// Overview returns the headline figures, served from cache when fresh.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var cached Overview
	if cache.GetJSON(ctx, s.cache, overviewCacheKey, &cached) {
		return &cached, nil
	}

	o, err := s.computeOverview(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, overviewCacheKey, o, s.overviewTTL)
	return o, nil
}

// Combined returns the overview, the newest limit activities and the
// monthly revenue chart of the last 30 days.
func (s *DashboardService) Combined(ctx context.Context, limit int) (*Combined, error) {
	o, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	chart, err := s.Chart(ctx, combinedChartType, defaultChartDays)
	if err != nil {
		return nil, err
	}
	return &Combined{Overview: o, RecentActivities: recent, MetricsChart: chart}, nil
}

func (s *DashboardService) computeOverview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	o := &Overview{}

	counts := []struct {
		dst   *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&o.Projects.Total, &model.Project{}, "", nil},
		{&o.Projects.Active, &model.Project{}, "status = ?", []interface{}{"in_progress"}},
		{&o.Projects.Completed, &model.Project{}, "status = ?", []interface{}{"completed"}},
		{&o.Clients.Total, &model.Client{}, "", nil},
		{&o.Clients.Active, &model.Client{}, "is_active = ?", []interface{}{true}},
		{&o.Content.BlogPosts, &model.BlogPost{}, "", nil},
		{&o.Content.PublishedPosts, &model.BlogPost{}, "status = ?", []interface{}{model.StatusPublished}},
		{&o.Communication.PendingContacts, &model.ContactSubmission{}, "status = ?", []interface{}{"new"}},
		{&o.Activity.RecentActivities, &model.ActivityLog{}, "created_at >= ?", []interface{}{s.now().Add(-recentActivityWindow)}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("dashboard overview: %w", err)
		}
	}

	o.Projects.CompletionRate = CompletionRate(o.Projects.Completed, o.Projects.Total)
	return o, nil
}
