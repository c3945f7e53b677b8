package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"sheba-admin/internal/model"
)

// ProjectView is the full project with its client, team and task counts.
type ProjectView struct {
	ID                  uint             `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Client              *ClientBrief     `json:"client"`
	ClientID            uint             `json:"client_id"`
	AssignedTo          []UserProfile    `json:"assigned_to"`
	AssignedToIDs       []uint           `json:"assigned_to_ids"`
	Status              string           `json:"status"`
	Priority            string           `json:"priority"`
	StartDate           *model.Date      `json:"start_date"`
	EndDate             *model.Date      `json:"end_date"`
	Budget              *decimal.Decimal `json:"budget"`
	Progress            int              `json:"progress"`
	Technologies        []string         `json:"technologies"`
	RepositoryURL       string           `json:"repository_url"`
	LiveURL             string           `json:"live_url"`
	TasksCount          int              `json:"tasks_count"`
	CompletedTasksCount int              `json:"completed_tasks_count"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func NewProjectView(p *model.Project) ProjectView {
	ids := make([]uint, 0, len(p.AssignedTo))
	for _, u := range p.AssignedTo {
		ids = append(ids, u.ID)
	}
	return ProjectView{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Client:              NewClientBrief(p.Client),
		ClientID:            p.ClientID,
		AssignedTo:          userProfiles(p.AssignedTo),
		AssignedToIDs:       ids,
		Status:              p.Status,
		Priority:            p.Priority,
		StartDate:           p.StartDate,
		EndDate:             p.EndDate,
		Budget:              p.Budget,
		Progress:            p.Progress,
		Technologies:        list(p.Technologies),
		RepositoryURL:       p.RepositoryURL,
		LiveURL:             p.LiveURL,
		TasksCount:          len(p.Tasks),
		CompletedTasksCount: p.CompletedTasks(),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ProjectSummary is the list row of the project summary endpoint.
type ProjectSummary struct {
	ID         uint        `json:"id"`
	Name       string      `json:"name"`
	ClientName string      `json:"client_name"`
	Status     string      `json:"status"`
	Priority   string      `json:"priority"`
	Progress   int         `json:"progress"`
	StartDate  *model.Date `json:"start_date"`
	EndDate    *model.Date `json:"end_date"`
	TasksCount int         `json:"tasks_count"`
}

func NewProjectSummary(p *model.Project) ProjectSummary {
	return ProjectSummary{
		ID:         p.ID,
		Name:       p.Name,
		ClientName: clientName(p.Client),
		Status:     p.Status,
		Priority:   p.Priority,
		Progress:   p.Progress,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		TasksCount: len(p.Tasks),
	}
}

// PublicProject is a finished project shown on the public showcase.
type PublicProject struct {
	ID                  uint        `json:"id"`
	Name                string      `json:"name"`
	Description         string      `json:"description"`
	ClientName          string      `json:"client_name"`
	ClientCompany       string      `json:"client_company"`
	Status              string      `json:"status"`
	Priority            string      `json:"priority"`
	Progress            int         `json:"progress"`
	StartDate           *model.Date `json:"start_date"`
	EndDate             *model.Date `json:"end_date"`
	Technologies        []string    `json:"technologies"`
	RepositoryURL       string      `json:"repository_url"`
	LiveURL             string      `json:"live_url"`
	TasksCount          int         `json:"tasks_count"`
	CompletedTasksCount int         `json:"completed_tasks_count"`
	TeamSize            int         `json:"team_size"`
	DurationDays        *int        `json:"duration_days"`
	CreatedAt           time.Time   `json:"created_at"`
}

func NewPublicProject(p *model.Project) PublicProject {
	company := ""
	if p.Client != nil {
		company = p.Client.Company
	}
	return PublicProject{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		ClientName:          clientName(p.Client),
		ClientCompany:       company,
		Status:              p.Status,
		Priority:            p.Priority,
		Progress:            p.Progress,
		StartDate:           p.StartDate,
		EndDate:             p.EndDate,
		Technologies:        list(p.Technologies),
		RepositoryURL:       p.RepositoryURL,
		LiveURL:             p.LiveURL,
		TasksCount:          len(p.Tasks),
		CompletedTasksCount: p.CompletedTasks(),
		TeamSize:            len(p.AssignedTo),
		DurationDays:        p.DurationDays(),
		CreatedAt:           p.CreatedAt,
	}
}

// ProjectBrief identifies the project a task belongs to.
type ProjectBrief struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"client_name"`
	Status     string `json:"status"`
}

func newProjectBrief(p *model.Project) *ProjectBrief {
	if p == nil {
		return nil
	}
	return &ProjectBrief{ID: p.ID, Name: p.Name, ClientName: clientName(p.Client), Status: p.Status}
}

// TaskView is one project task.
type TaskView struct {
	ID             uint             `json:"id"`
	Project        *ProjectBrief    `json:"project"`
	ProjectID      uint             `json:"project_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	AssignedTo     *UserProfile     `json:"assigned_to"`
	AssignedToID   *uint            `json:"assigned_to_id"`
	Status         string           `json:"status"`
	DueDate        *model.Date      `json:"due_date"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	ActualHours    *decimal.Decimal `json:"actual_hours"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func NewTaskView(t *model.ProjectTask) TaskView {
	return TaskView{
		ID:             t.ID,
		Project:        newProjectBrief(t.Project),
		ProjectID:      t.ProjectID,
		Title:          t.Title,
		Description:    t.Description,
		AssignedTo:     NewUserProfile(t.AssignedTo),
		AssignedToID:   t.AssignedToID,
		Status:         t.Status,
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ProjectInput is the writable part of a project. A present assigned_to_ids
// replaces the whole team.
type ProjectInput struct {
	Name          *string                   `json:"name" validate:"required,max=200"`
	Description   *string                   `json:"description"`
	ClientID      *uint                     `json:"client_id" validate:"required"`
	AssignedToIDs *[]uint                   `json:"assigned_to_ids"`
	Status        *string                   `json:"status"`
	Priority      *string                   `json:"priority"`
	StartDate     Nullable[model.Date]      `json:"start_date"`
	EndDate       Nullable[model.Date]      `json:"end_date"`
	Budget        Nullable[decimal.Decimal] `json:"budget"`
	Progress      *int                      `json:"progress" validate:"omitempty,min=0,max=100"`
	Technologies  *[]string                 `json:"technologies"`
	RepositoryURL *string                   `json:"repository_url" validate:"omitempty,url"`
	LiveURL       *string                   `json:"live_url" validate:"omitempty,url"`
}

func (in ProjectInput) Apply(p *model.Project) {
	set(&p.Name, in.Name)
	set(&p.Description, in.Description)
	set(&p.ClientID, in.ClientID)
	if in.AssignedToIDs != nil {
		p.AssignedToIDs = append([]uint{}, *in.AssignedToIDs...)
	}
	set(&p.Status, in.Status)
	set(&p.Priority, in.Priority)
	setNullable(&p.StartDate, in.StartDate)
	setNullable(&p.EndDate, in.EndDate)
	setNullable(&p.Budget, in.Budget)
	set(&p.Progress, in.Progress)
	setList(&p.Technologies, in.Technologies)
	set(&p.RepositoryURL, in.RepositoryURL)
	set(&p.LiveURL, in.LiveURL)
}

// TaskInput is the writable part of a project task.
type TaskInput struct {
	ProjectID      *uint                     `json:"project_id" validate:"required"`
	Title          *string                   `json:"title" validate:"required,max=200"`
	Description    *string                   `json:"description"`
	AssignedToID   Nullable[uint]            `json:"assigned_to_id"`
	Status         *string                   `json:"status"`
	DueDate        Nullable[model.Date]      `json:"due_date"`
	EstimatedHours Nullable[decimal.Decimal] `json:"estimated_hours"`
	ActualHours    Nullable[decimal.Decimal] `json:"actual_hours"`
}

func (in TaskInput) Apply(t *model.ProjectTask) {
	set(&t.ProjectID, in.ProjectID)
	set(&t.Title, in.Title)
	set(&t.Description, in.Description)
	setNullable(&t.AssignedToID, in.AssignedToID)
	set(&t.Status, in.Status)
	setNullable(&t.DueDate, in.DueDate)
	setNullable(&t.EstimatedHours, in.EstimatedHours)
	setNullable(&t.ActualHours, in.ActualHours)
}
