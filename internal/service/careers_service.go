package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

const applicationsSheet = "Applications"

var (
	jobListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "department": "department", "job_type": "job_type", "experience_level": "experience_level"},
		Search:          []string{"title", "description", "location"},
		Ordering:        map[string]string{"created_at": "created_at", "published_at": "published_at", "views": "views", "applications_count": "applications_count"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"PostedBy"},
	}

	// JobSummarySpec drives the lightweight job posting list.
	JobSummarySpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "department": "department", "job_type": "job_type"},
		Search:          []string{"title", "location"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"PostedBy"},
	}

	publicJobSpec = repository.ListSpec{
		Filters:         map[string]string{"department": "department", "job_type": "job_type", "experience_level": "experience_level", "location": "location"},
		Search:          []string{"title", "description", "location"},
		Ordering:        map[string]string{"published_at": "published_at", "created_at": "created_at"},
		DefaultOrdering: []string{"-published_at", "-created_at"},
	}

	applicationListSpec = repository.ListSpec{
		Filters: map[string]string{
			"status":          "status",
			"job":             "job_id",
			"job__department": "job_id IN (SELECT id FROM job_postings WHERE department = ?)",
		},
		Kinds: map[string]repository.FilterKind{"job": repository.FilterInt},
		Search: []string{
			"first_name", "last_name", "email",
			"(SELECT title FROM job_postings WHERE job_postings.id = job_applications.job_id)",
		},
		Ordering:        map[string]string{"submitted_at": "submitted_at", "years_of_experience": "years_of_experience"},
		DefaultOrdering: []string{"-submitted_at"},
		Preloads:        []string{"Job", "Job.PostedBy"},
	}

	// ApplicationSummarySpec drives the lightweight application list.
	ApplicationSummarySpec = repository.ListSpec{
		Filters:         applicationListSpec.Filters,
		Kinds:           applicationListSpec.Kinds,
		Search:          applicationListSpec.Search,
		Ordering:        applicationListSpec.Ordering,
		DefaultOrdering: applicationListSpec.DefaultOrdering,
		Preloads:        []string{"Job"},
	}
)

// DepartmentStats breaks careers figures down for one department.
type DepartmentStats struct {
	Jobs          int64 `json:"jobs"`
	PublishedJobs int64 `json:"published_jobs"`
	Applications  int64 `json:"applications"`
}

// CareersStats is the response of the careers statistics endpoint.
type CareersStats struct {
	TotalJobs           int64                      `json:"total_jobs"`
	PublishedJobs       int64                      `json:"published_jobs"`
	TotalApplications   int64                      `json:"total_applications"`
	PendingApplications int64                      `json:"pending_applications"`
	DepartmentStats     map[string]DepartmentStats `json:"department_stats"`
}

// CareersService serves job postings, applications and the public careers page.
type CareersService struct {
	Jobs         *Resource[model.JobPosting]
	Applications *Resource[model.JobApplication]

	db    *gorm.DB
	apps  repository.ApplicationRepository
	audit *audit.Log
}

// NewCareersService wires the job posting and application resources.
func NewCareersService(db *gorm.DB, log *audit.Log) *CareersService {
	apps := repository.NewApplicationRepository(db)

	jobs := NewResource(repository.NewStore[model.JobPosting](db), log, ResourceConfig[model.JobPosting]{
		AuditAs:  "JobPosting",
		Resource: policy.ResourceCareers,
		List:     jobListSpec,
		Preloads: jobListSpec.Preloads,
		Counters: []string{"views", "applications_count"},
		Prepare: func(_ context.Context, p *policy.Principal, job *model.JobPosting, creating bool) {
			if creating && job.PostedByID == 0 && p != nil {
				job.PostedByID = p.UserID
			}
			job.EnsureSlug()
		},
		Check: func(ctx context.Context, job *model.JobPosting) error {
			return newChecker(ctx, db).
				ref("posted_by_id", &model.User{}, job.PostedByID).
				unique("slug", "job posting with this slug already exists.", &model.JobPosting{}, job.ID, "slug = ?", job.Slug).
				result()
		},
	})

	applications := NewResource[model.JobApplication](apps, log, ResourceConfig[model.JobApplication]{
		AuditAs:  "JobApplication",
		Resource: policy.ResourceCareers,
		List:     applicationListSpec,
		Preloads: applicationListSpec.Preloads,
		Check: func(ctx context.Context, app *model.JobApplication) error {
			return checkApplication(ctx, db, app)
		},
	})

	return &CareersService{Jobs: jobs, Applications: applications, db: db, apps: apps, audit: log}
}

func checkApplication(ctx context.Context, db *gorm.DB, app *model.JobApplication) error {
	return newChecker(ctx, db).
		ref("job_id", &model.JobPosting{}, app.JobID).
		unique("email", "You have already applied for this job.", &model.JobApplication{}, app.ID, "job_id = ? AND email = ?", app.JobID, app.Email).
		result()
}

// Stats counts postings and applications overall and per department.
func (s *CareersService) Stats(ctx context.Context) (*CareersStats, error) {
	jobs := s.Jobs.Store()

	byDepartment, err := jobs.CountBy(ctx, "department")
	if err != nil {
		return nil, fmt.Errorf("careers stats: %w", err)
	}
	publishedByDepartment, err := jobs.CountBy(ctx, "department", where("status = ?", model.StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("careers stats: %w", err)
	}
	appsByDepartment, err := s.apps.CountBy(ctx, "job_postings.department", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN job_postings ON job_postings.id = job_applications.job_id")
	})
	if err != nil {
		return nil, fmt.Errorf("careers stats: %w", err)
	}
	appsByStatus, err := s.apps.CountBy(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("careers stats: %w", err)
	}

	stats := &CareersStats{
		TotalJobs:           sum(byDepartment),
		PublishedJobs:       sum(publishedByDepartment),
		TotalApplications:   sum(appsByStatus),
		PendingApplications: appsByStatus["submitted"],
		DepartmentStats:     make(map[string]DepartmentStats, len(byDepartment)),
	}
	for dept, n := range byDepartment {
		stats.DepartmentStats[dept] = DepartmentStats{
			Jobs:          n,
			PublishedJobs: publishedByDepartment[dept],
			Applications:  appsByDepartment[dept],
		}
	}
	return stats, nil
}

// PublicJobs lists published postings.
func (s *CareersService) PublicJobs(ctx context.Context, q repository.ListQuery) (*repository.Page[model.JobPosting], error) {
	return s.Jobs.Store().List(ctx, publicJobSpec, q, where("status = ?", model.StatusPublished))
}

// PublicJob returns the published posting with slug and counts the view.
func (s *CareersService) PublicJob(ctx context.Context, slug string) (*model.JobPosting, error) {
	jobs := s.Jobs.Store()
	job, err := jobs.FindOne(ctx, where("slug = ? AND status = ?", slug, model.StatusPublished))
	if err != nil {
		return nil, notFound(err)
	}
	views, err := jobs.Increment(ctx, job.ID, "views", 1)
	if err != nil {
		return nil, notFound(err)
	}
	job.Views = views
	return job, nil
}

// Apply stores an anonymous application for a published posting and counts
// it on the posting. Status and notes always start from their defaults.
func (s *CareersService) Apply(ctx context.Context, apply func(*model.JobApplication)) (*model.JobApplication, error) {
	app := &model.JobApplication{}
	apply(app)
	app.SetDefaults()
	app.AdminNotes = ""

	if err := apperrors.FromOzzo(app.Validate()); err != nil {
		return nil, err
	}
	published, err := s.Jobs.Store().Exists(ctx, where("id = ? AND status = ?", app.JobID, model.StatusPublished))
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, apperrors.NewValidationError("job_id", "This job is not accepting applications.")
	}

	if err := s.apps.Submit(ctx, app); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.NewValidationError("email", "You have already applied for this job.")
		}
		return nil, fmt.Errorf("submit application: %w", err)
	}
	s.audit.Activity(ctx, "create", "JobApplication", app.ID, fmt.Sprintf("Application from %s", app.FullName()))

	return s.apps.FindByID(ctx, app.ID, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Job").Preload("Job.PostedBy")
	})
}

// ExportApplications writes every application matching q to a spreadsheet.
func (s *CareersService) ExportApplications(ctx context.Context, p *policy.Principal, q repository.ListQuery) (*excelize.File, error) {
	q.PageSize = repository.MaxPageSize
	var rows []model.JobApplication
	for q.Page = 1; ; q.Page++ {
		page, err := s.Applications.ListWith(ctx, p, ApplicationSummarySpec, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Results...)
		if int64(len(rows)) >= page.Count || len(page.Results) == 0 {
			break
		}
	}
	return buildApplicationsFile(rows)
}

func buildApplicationsFile(rows []model.JobApplication) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Job", "Full Name", "Email", "Phone", "Years of Experience",
		"Current Position", "Current Company", "Status", "Submitted At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(applicationsSheet, cell, header); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(applicationsSheet, "A1", last, style)
	}

	for i, app := range rows {
		jobTitle := ""
		if app.Job != nil {
			jobTitle = app.Job.Title
		}
		values := []interface{}{
			app.ID,
			jobTitle,
			strings.TrimSpace(app.FullName()),
			app.Email,
			app.Phone,
			app.YearsOfExperience,
			app.CurrentPosition,
			app.CurrentCompany,
			model.ApplicationStatuses.Label(app.Status),
			app.SubmittedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(applicationsSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
