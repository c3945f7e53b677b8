package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"sheba-admin/internal/model"
)

// JobView is the full job posting.
type JobView struct {
	ID                  uint             `json:"id"`
	Title               string           `json:"title"`
	Slug                string           `json:"slug"`
	Department          string           `json:"department"`
	Location            string           `json:"location"`
	JobType             string           `json:"job_type"`
	ExperienceLevel     string           `json:"experience_level"`
	Description         string           `json:"description"`
	Requirements        []string         `json:"requirements"`
	Responsibilities    []string         `json:"responsibilities"`
	Benefits            []string         `json:"benefits"`
	SalaryMin           *decimal.Decimal `json:"salary_min"`
	SalaryMax           *decimal.Decimal `json:"salary_max"`
	SalaryCurrency      string           `json:"salary_currency"`
	SalaryDisplay       string           `json:"salary_display"`
	SalaryRange         string           `json:"salary_range"`
	Status              string           `json:"status"`
	PostedBy            *UserProfile     `json:"posted_by"`
	PostedByID          uint             `json:"posted_by_id"`
	ApplicationDeadline *model.Date      `json:"application_deadline"`
	ApplicationEmail    string           `json:"application_email"`
	ApplicationURL      string           `json:"application_url"`
	Views               int64            `json:"views"`
	ApplicationsCount   int64            `json:"applications_count"`
	IsPublished         bool             `json:"is_published"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	PublishedAt         *time.Time       `json:"published_at"`
}

func NewJobView(j *model.JobPosting) JobView {
	return JobView{
		ID:                  j.ID,
		Title:               j.Title,
		Slug:                j.Slug,
		Department:          j.Department,
		Location:            j.Location,
		JobType:             j.JobType,
		ExperienceLevel:     j.ExperienceLevel,
		Description:         j.Description,
		Requirements:        list(j.Requirements),
		Responsibilities:    list(j.Responsibilities),
		Benefits:            list(j.Benefits),
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryCurrency:      j.SalaryCurrency,
		SalaryDisplay:       j.SalaryDisplay,
		SalaryRange:         j.SalaryRange(),
		Status:              j.Status,
		PostedBy:            NewUserProfile(j.PostedBy),
		PostedByID:          j.PostedByID,
		ApplicationDeadline: j.ApplicationDeadline,
		ApplicationEmail:    j.ApplicationEmail,
		ApplicationURL:      j.ApplicationURL,
		Views:               j.Views,
		ApplicationsCount:   j.ApplicationsCount,
		IsPublished:         j.IsPublished(),
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
		PublishedAt:         j.PublishedAt,
	}
}

// JobSummary is the list row of the job summary endpoint.
type JobSummary struct {
	ID                  uint        `json:"id"`
	Title               string      `json:"title"`
	Slug                string      `json:"slug"`
	Department          string      `json:"department"`
	Location            string      `json:"location"`
	JobType             string      `json:"job_type"`
	ExperienceLevel     string      `json:"experience_level"`
	SalaryRange         string      `json:"salary_range"`
	Status              string      `json:"status"`
	PostedByName        string      `json:"posted_by_name"`
	ApplicationDeadline *model.Date `json:"application_deadline"`
	Views               int64       `json:"views"`
	ApplicationsCount   int64       `json:"applications_count"`
	PublishedAt         *time.Time  `json:"published_at"`
}

func NewJobSummary(j *model.JobPosting) JobSummary {
	return JobSummary{
		ID:                  j.ID,
		Title:               j.Title,
		Slug:                j.Slug,
		Department:          j.Department,
		Location:            j.Location,
		JobType:             j.JobType,
		ExperienceLevel:     j.ExperienceLevel,
		SalaryRange:         j.SalaryRange(),
		Status:              j.Status,
		PostedByName:        fullName(j.PostedBy),
		ApplicationDeadline: j.ApplicationDeadline,
		Views:               j.Views,
		ApplicationsCount:   j.ApplicationsCount,
		PublishedAt:         j.PublishedAt,
	}
}

// PublicJob is a published posting as shown on the careers page.
type PublicJob struct {
	ID                  uint        `json:"id"`
	Title               string      `json:"title"`
	Slug                string      `json:"slug"`
	Department          string      `json:"department"`
	Location            string      `json:"location"`
	JobType             string      `json:"job_type"`
	ExperienceLevel     string      `json:"experience_level"`
	Description         string      `json:"description"`
	Requirements        []string    `json:"requirements"`
	Responsibilities    []string    `json:"responsibilities"`
	Benefits            []string    `json:"benefits"`
	SalaryRange         string      `json:"salary_range"`
	ApplicationDeadline *model.Date `json:"application_deadline"`
	ApplicationEmail    string      `json:"application_email"`
	ApplicationURL      string      `json:"application_url"`
	PublishedAt         *time.Time  `json:"published_at"`
}

func NewPublicJob(j *model.JobPosting) PublicJob {
	return PublicJob{
		ID:                  j.ID,
		Title:               j.Title,
		Slug:                j.Slug,
		Department:          j.Department,
		Location:            j.Location,
		JobType:             j.JobType,
		ExperienceLevel:     j.ExperienceLevel,
		Description:         j.Description,
		Requirements:        list(j.Requirements),
		Responsibilities:    list(j.Responsibilities),
		Benefits:            list(j.Benefits),
		SalaryRange:         j.SalaryRange(),
		ApplicationDeadline: j.ApplicationDeadline,
		ApplicationEmail:    j.ApplicationEmail,
		ApplicationURL:      j.ApplicationURL,
		PublishedAt:         j.PublishedAt,
	}
}

// ApplicationView is the full job application with its posting.
type ApplicationView struct {
	ID                uint        `json:"id"`
	Job               *JobSummary `json:"job"`
	JobID             uint        `json:"job_id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	FullName          string      `json:"full_name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	CoverLetter       string      `json:"cover_letter"`
	Resume            string      `json:"resume"`
	PortfolioURL      string      `json:"portfolio_url"`
	LinkedinURL       string      `json:"linkedin_url"`
	YearsOfExperience int         `json:"years_of_experience"`
	CurrentPosition   string      `json:"current_position"`
	CurrentCompany    string      `json:"current_company"`
	Status            string      `json:"status"`
	AdminNotes        string      `json:"admin_notes"`
	SubmittedAt       time.Time   `json:"submitted_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func NewApplicationView(a *model.JobApplication) ApplicationView {
	var job *JobSummary
	if a.Job != nil {
		s := NewJobSummary(a.Job)
		job = &s
	}
	return ApplicationView{
		ID:                a.ID,
		Job:               job,
		JobID:             a.JobID,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		FullName:          a.FullName(),
		Email:             a.Email,
		Phone:             a.Phone,
		CoverLetter:       a.CoverLetter,
		Resume:            a.Resume,
		PortfolioURL:      a.PortfolioURL,
		LinkedinURL:       a.LinkedinURL,
		YearsOfExperience: a.YearsOfExperience,
		CurrentPosition:   a.CurrentPosition,
		CurrentCompany:    a.CurrentCompany,
		Status:            a.Status,
		AdminNotes:        a.AdminNotes,
		SubmittedAt:       a.SubmittedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ApplicationSummary is the list row of the application summary endpoint.
type ApplicationSummary struct {
	ID                uint      `json:"id"`
	JobTitle          string    `json:"job_title"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	YearsOfExperience int       `json:"years_of_experience"`
	CurrentPosition   string    `json:"current_position"`
	Status            string    `json:"status"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

func NewApplicationSummary(a *model.JobApplication) ApplicationSummary {
	title := ""
	if a.Job != nil {
		title = a.Job.Title
	}
	return ApplicationSummary{
		ID:                a.ID,
		JobTitle:          title,
		FullName:          a.FullName(),
		Email:             a.Email,
		Phone:             a.Phone,
		YearsOfExperience: a.YearsOfExperience,
		CurrentPosition:   a.CurrentPosition,
		Status:            a.Status,
		SubmittedAt:       a.SubmittedAt,
	}
}

// PublicApplicationReceipt acknowledges an anonymous application.
type PublicApplicationReceipt struct {
	ID          uint      `json:"id"`
	JobTitle    string    `json:"job_title"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewPublicApplicationReceipt(a *model.JobApplication) PublicApplicationReceipt {
	s := NewApplicationSummary(a)
	return PublicApplicationReceipt{
		ID:          s.ID,
		JobTitle:    s.JobTitle,
		FullName:    s.FullName,
		Email:       s.Email,
		Status:      s.Status,
		SubmittedAt: s.SubmittedAt,
	}
}

// JobInput is the writable part of a job posting. Views and the application
// counter are read-only.
type JobInput struct {
	Title               *string                   `json:"title" validate:"required,max=200"`
	Slug                *string                   `json:"slug"`
	Department          *string                   `json:"department" validate:"required"`
	Location            *string                   `json:"location" validate:"required,max=100"`
	JobType             *string                   `json:"job_type" validate:"required"`
	ExperienceLevel     *string                   `json:"experience_level" validate:"required"`
	Description         *string                   `json:"description" validate:"required"`
	Requirements        *[]string                 `json:"requirements"`
	Responsibilities    *[]string                 `json:"responsibilities"`
	Benefits            *[]string                 `json:"benefits"`
	SalaryMin           Nullable[decimal.Decimal] `json:"salary_min"`
	SalaryMax           Nullable[decimal.Decimal] `json:"salary_max"`
	SalaryCurrency      *string                   `json:"salary_currency"`
	SalaryDisplay       *string                   `json:"salary_display"`
	Status              *string                   `json:"status"`
	PostedByID          *uint                     `json:"posted_by_id"`
	ApplicationDeadline Nullable[model.Date]      `json:"application_deadline"`
	ApplicationEmail    *string                   `json:"application_email" validate:"omitempty,email"`
	ApplicationURL      *string                   `json:"application_url" validate:"omitempty,url"`
	PublishedAt         Nullable[time.Time]       `json:"published_at"`
}

func (in JobInput) Apply(j *model.JobPosting) {
	set(&j.Title, in.Title)
	set(&j.Slug, in.Slug)
	set(&j.Department, in.Department)
	set(&j.Location, in.Location)
	set(&j.JobType, in.JobType)
	set(&j.ExperienceLevel, in.ExperienceLevel)
	set(&j.Description, in.Description)
	setList(&j.Requirements, in.Requirements)
	setList(&j.Responsibilities, in.Responsibilities)
	setList(&j.Benefits, in.Benefits)
	setNullable(&j.SalaryMin, in.SalaryMin)
	setNullable(&j.SalaryMax, in.SalaryMax)
	set(&j.SalaryCurrency, in.SalaryCurrency)
	set(&j.SalaryDisplay, in.SalaryDisplay)
	set(&j.Status, in.Status)
	set(&j.PostedByID, in.PostedByID)
	setNullable(&j.ApplicationDeadline, in.ApplicationDeadline)
	set(&j.ApplicationEmail, in.ApplicationEmail)
	set(&j.ApplicationURL, in.ApplicationURL)
	// an explicit timestamp is honoured on first publication only
	if in.PublishedAt.Valid && j.PublishedAt == nil {
		j.PublishedAt = in.PublishedAt.Ptr()
	}
}

// ApplicationInput is the writable part of a job application.
type ApplicationInput struct {
	JobID             *uint   `json:"job_id" validate:"required"`
	FirstName         *string `json:"first_name" validate:"required,max=100"`
	LastName          *string `json:"last_name" validate:"required,max=100"`
	Email             *string `json:"email" validate:"required,email"`
	Phone             *string `json:"phone" validate:"required,max=20"`
	CoverLetter       *string `json:"cover_letter"`
	Resume            *string `json:"resume"`
	PortfolioURL      *string `json:"portfolio_url" validate:"omitempty,url"`
	LinkedinURL       *string `json:"linkedin_url" validate:"omitempty,url"`
	YearsOfExperience *int    `json:"years_of_experience" validate:"omitempty,min=0"`
	CurrentPosition   *string `json:"current_position"`
	CurrentCompany    *string `json:"current_company"`
	Status            *string `json:"status"`
	AdminNotes        *string `json:"admin_notes"`
}

func (in ApplicationInput) Apply(a *model.JobApplication) {
	set(&a.JobID, in.JobID)
	set(&a.FirstName, in.FirstName)
	set(&a.LastName, in.LastName)
	set(&a.Email, in.Email)
	set(&a.Phone, in.Phone)
	set(&a.CoverLetter, in.CoverLetter)
	set(&a.Resume, in.Resume)
	set(&a.PortfolioURL, in.PortfolioURL)
	set(&a.LinkedinURL, in.LinkedinURL)
	set(&a.YearsOfExperience, in.YearsOfExperience)
	set(&a.CurrentPosition, in.CurrentPosition)
	set(&a.CurrentCompany, in.CurrentCompany)
	set(&a.Status, in.Status)
	set(&a.AdminNotes, in.AdminNotes)
}
