package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Project is a client engagement delivered by assigned staff.
type Project struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	Name          string                      `json:"name" gorm:"size:200;not null"`
	Description   string                      `json:"description" gorm:"type:text"`
	ClientID      uint                        `json:"client_id" gorm:"not null;index"`
	Client        *Client                     `json:"-"`
	AssignedTo    []User                      `json:"-" gorm:"many2many:project_assignments;constraint:OnDelete:CASCADE"`
	Status        string                      `json:"status" gorm:"size:20;not null;index"`
	Priority      string                      `json:"priority" gorm:"size:10;not null;index"`
	StartDate     *Date                       `json:"start_date"`
	EndDate       *Date                       `json:"end_date"`
	Budget        *decimal.Decimal            `json:"budget" gorm:"type:decimal(12,2)"`
	Progress      int                         `json:"progress" gorm:"not null"`
	Technologies  datatypes.JSONSlice[string] `json:"technologies"`
	RepositoryURL string                      `json:"repository_url" gorm:"size:200"`
	LiveURL       string                      `json:"live_url" gorm:"size:200"`
	Tasks         []ProjectTask               `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	// AssignedToIDs, when non-nil, replaces the assignment set on save.
	AssignedToIDs []uint `json:"-" gorm:"-"`
}

// SetDefaults fills the values a new project starts with.
func (p *Project) SetDefaults() {
	p.Status = "planning"
	p.Priority = "medium"
	p.Technologies = emptyList()
}

// DurationDays is the number of days between start and end date, or nil if
// either is missing.
func (p *Project) DurationDays() *int {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}
	days := p.StartDate.DaysUntil(*p.EndDate)
	return &days
}

// CompletedTasks counts loaded tasks with status completed.
func (p *Project) CompletedTasks() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Status == "completed" {
			n++
		}
	}
	return n
}

// Validate checks field constraints.
func (p *Project) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.ClientID, validation.Required),
		validation.Field(&p.Status, validation.Required, ProjectStatuses.Rule()),
		validation.Field(&p.Priority, validation.Required, ProjectPriorities.Rule()),
		validation.Field(&p.Progress, validation.Min(0), validation.Max(100)),
		validation.Field(&p.Budget, validation.By(nonNegativeDecimal)),
		validation.Field(&p.RepositoryURL, validation.Length(0, 200), is.URL),
		validation.Field(&p.LiveURL, validation.Length(0, 200), is.URL),
		validation.Field(&p.EndDate, validation.By(notBefore(p.StartDate))),
	)
}

// ProjectTask is a unit of work inside a project.
type ProjectTask struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	ProjectID      uint             `json:"project_id" gorm:"not null;index"`
	Project        *Project         `json:"-"`
	Title          string           `json:"title" gorm:"size:200;not null"`
	Description    string           `json:"description" gorm:"type:text"`
	AssignedToID   *uint            `json:"assigned_to_id" gorm:"index"`
	AssignedTo     *User            `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Status         string           `json:"status" gorm:"size:20;not null;index"`
	DueDate        *Date            `json:"due_date"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours" gorm:"type:decimal(6,2)"`
	ActualHours    *decimal.Decimal `json:"actual_hours" gorm:"type:decimal(6,2)"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SetDefaults fills the values a new task starts with.
func (t *ProjectTask) SetDefaults() {
	t.Status = "todo"
}

// Validate checks field constraints.
func (t *ProjectTask) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.ProjectID, validation.Required),
		validation.Field(&t.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&t.Status, validation.Required, TaskStatuses.Rule()),
		validation.Field(&t.EstimatedHours, validation.By(nonNegativeDecimal)),
		validation.Field(&t.ActualHours, validation.By(nonNegativeDecimal)),
	)
}
