package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var numberPrinter = message.NewPrinter(language.English)

// JobPosting is an open position advertised on the careers page.
type JobPosting struct {
	ID                  uint                        `json:"id" gorm:"primaryKey"`
	Title               string                      `json:"title" gorm:"size:200;not null"`
	Slug                string                      `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Department          string                      `json:"department" gorm:"size:20;not null;index"`
	Location            string                      `json:"location" gorm:"size:100;not null"`
	JobType             string                      `json:"job_type" gorm:"size:20;not null;index"`
	ExperienceLevel     string                      `json:"experience_level" gorm:"size:20;not null;index"`
	Description         string                      `json:"description" gorm:"type:text;not null"`
	Requirements        datatypes.JSONSlice[string] `json:"requirements"`
	Responsibilities    datatypes.JSONSlice[string] `json:"responsibilities"`
	Benefits            datatypes.JSONSlice[string] `json:"benefits"`
	SalaryMin           *decimal.Decimal            `json:"salary_min" gorm:"type:decimal(10,2)"`
	SalaryMax           *decimal.Decimal            `json:"salary_max" gorm:"type:decimal(10,2)"`
	SalaryCurrency      string                      `json:"salary_currency" gorm:"size:10;not null"`
	SalaryDisplay       string                      `json:"salary_display" gorm:"size:50"`
	Status              string                      `json:"status" gorm:"size:20;not null;index"`
	PostedByID          uint                        `json:"posted_by_id" gorm:"not null;index"`
	PostedBy            *User                       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ApplicationDeadline *Date                       `json:"application_deadline"`
	ApplicationEmail    string                      `json:"application_email" gorm:"size:254"`
	ApplicationURL      string                      `json:"application_url" gorm:"size:200"`
	Views               int64                       `json:"views" gorm:"not null"`
	ApplicationsCount   int64                       `json:"applications_count" gorm:"not null"`
	Applications        []JobApplication            `json:"-" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
	PublishedAt         *time.Time                  `json:"published_at"`
}

// SetDefaults fills the values a new posting starts with.
func (j *JobPosting) SetDefaults() {
	j.SalaryCurrency = "ETB"
	j.SalaryDisplay = "Competitive"
	j.Status = StatusDraft
	j.Requirements = emptyList()
	j.Responsibilities = emptyList()
	j.Benefits = emptyList()
}

// SalaryRange renders "min - max CUR" with thousands separators when both
// bounds are present, and the free text display otherwise.
func (j *JobPosting) SalaryRange() string {
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return j.SalaryDisplay
	}
	return numberPrinter.Sprintf("%d - %d %s",
		j.SalaryMin.RoundBank(0).IntPart(),
		j.SalaryMax.RoundBank(0).IntPart(),
		j.SalaryCurrency,
	)
}

// IsPublished reports whether the posting is visible on the public site.
func (j *JobPosting) IsPublished() bool {
	return j.Status == StatusPublished
}

// EnsureSlug derives the slug from the title when none was given.
func (j *JobPosting) EnsureSlug() {
	if j.Slug == "" {
		j.Slug = slug.Make(j.Title)
	}
}

// BeforeSave generates a missing slug and stamps the first publication time.
func (j *JobPosting) BeforeSave(tx *gorm.DB) error {
	j.EnsureSlug()
	j.PublishedAt = stampOnce(j.PublishedAt, j.Status == StatusPublished)
	return nil
}

// Validate checks field constraints.
func (j *JobPosting) Validate() error {
	return validation.ValidateStruct(j,
		validation.Field(&j.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&j.Slug, validation.Length(0, 200), validation.Match(slugPattern).Error("enter a valid slug")),
		validation.Field(&j.Department, validation.Required, Departments.Rule()),
		validation.Field(&j.Location, validation.Required, validation.Length(1, 100)),
		validation.Field(&j.JobType, validation.Required, JobTypes.Rule()),
		validation.Field(&j.ExperienceLevel, validation.Required, ExperienceLevels.Rule()),
		validation.Field(&j.Description, validation.Required),
		validation.Field(&j.SalaryMin, validation.By(nonNegativeDecimal)),
		validation.Field(&j.SalaryMax, validation.By(nonNegativeDecimal)),
		validation.Field(&j.SalaryCurrency, validation.Required, validation.Length(1, 10)),
		validation.Field(&j.SalaryDisplay, validation.Length(0, 50)),
		validation.Field(&j.Status, validation.Required, JobStatuses.Rule()),
		validation.Field(&j.ApplicationEmail, validation.Length(0, 254), is.EmailFormat),
		validation.Field(&j.ApplicationURL, validation.Length(0, 200), is.URL),
	)
}

// JobApplication is a candidate's submission for a posting.
type JobApplication struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	JobID             uint        `json:"job_id" gorm:"not null;uniqueIndex:idx_application_job_email"`
	Job               *JobPosting `json:"-"`
	FirstName         string      `json:"first_name" gorm:"size:100;not null"`
	LastName          string      `json:"last_name" gorm:"size:100;not null"`
	Email             string      `json:"email" gorm:"size:254;not null;uniqueIndex:idx_application_job_email"`
	Phone             string      `json:"phone" gorm:"size:20;not null"`
	CoverLetter       string      `json:"cover_letter" gorm:"type:text"`
	Resume            string      `json:"resume" gorm:"size:255"`
	PortfolioURL      string      `json:"portfolio_url" gorm:"size:200"`
	LinkedinURL       string      `json:"linkedin_url" gorm:"size:200"`
	YearsOfExperience int         `json:"years_of_experience" gorm:"not null"`
	CurrentPosition   string      `json:"current_position" gorm:"size:200"`
	CurrentCompany    string      `json:"current_company" gorm:"size:200"`
	Status            string      `json:"status" gorm:"size:20;not null;index"`
	AdminNotes        string      `json:"admin_notes" gorm:"type:text"`
	SubmittedAt       time.Time   `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// SetDefaults fills the values a new application starts with.
func (a *JobApplication) SetDefaults() {
	a.Status = "submitted"
}

// FullName joins first and last name with a single space.
func (a *JobApplication) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Validate checks field constraints.
func (a *JobApplication) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.JobID, validation.Required),
		validation.Field(&a.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.Email, validation.Required, validation.Length(1, 254), is.EmailFormat),
		validation.Field(&a.Phone, validation.Required, validation.Length(1, 20)),
		validation.Field(&a.PortfolioURL, validation.Length(0, 200), is.URL),
		validation.Field(&a.LinkedinURL, validation.Length(0, 200), is.URL),
		validation.Field(&a.YearsOfExperience, validation.Min(0)),
		validation.Field(&a.CurrentPosition, validation.Length(0, 200)),
		validation.Field(&a.CurrentCompany, validation.Length(0, 200)),
		validation.Field(&a.Status, validation.Required, ApplicationStatuses.Rule()),
	)
}

// stampOnce returns the existing timestamp, or now when none is set and the
// record has just entered its stamped state.
func stampOnce(current *time.Time, entered bool) *time.Time {
	if current != nil || !entered {
		return current
	}
	now := time.Now()
	return &now
}
