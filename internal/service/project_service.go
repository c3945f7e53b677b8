package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

// PublicProjectStatus is the project status shown on the public site.
const PublicProjectStatus = "completed"

var (
	projectListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "priority": "priority", "client": "client_id"},
		Kinds:           map[string]repository.FilterKind{"client": repository.FilterInt},
		Search:          []string{"name", "description"},
		Ordering:        map[string]string{"created_at": "created_at", "start_date": "start_date", "end_date": "end_date", "priority": "priority"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Client", "AssignedTo", "Tasks"},
	}

	// ProjectSummarySpec drives the lightweight project list.
	ProjectSummarySpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "priority": "priority"},
		Search:          []string{"name"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Client", "Tasks"},
	}

	publicProjectSpec = repository.ListSpec{
		Filters:         map[string]string{"priority": "priority"},
		Search:          []string{"name", "description"},
		Ordering:        map[string]string{"created_at": "created_at", "end_date": "end_date"},
		DefaultOrdering: []string{"-end_date", "-created_at"},
		Preloads:        []string{"Client", "AssignedTo", "Tasks"},
	}

	taskListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "assigned_to": "assigned_to_id", "project": "project_id"},
		Kinds:           map[string]repository.FilterKind{"assigned_to": repository.FilterInt, "project": repository.FilterInt},
		Search:          []string{"title", "description"},
		Ordering:        map[string]string{"created_at": "created_at", "due_date": "due_date"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Project", "Project.Client", "AssignedTo"},
	}
)

// ProjectStats is the response of the project statistics endpoint.
type ProjectStats struct {
	TotalProjects     int64   `json:"total_projects"`
	ActiveProjects    int64   `json:"active_projects"`
	CompletedProjects int64   `json:"completed_projects"`
	OnHoldProjects    int64   `json:"on_hold_projects"`
	CompletionRate    float64 `json:"completion_rate"`
}

// ProjectService serves projects, their tasks and project statistics.
type ProjectService struct {
	Projects *Resource[model.Project]
	Tasks    *Resource[model.ProjectTask]
}

// NewProjectService wires the project and task resources.
func NewProjectService(db *gorm.DB, log *audit.Log) *ProjectService {
	projects := NewResource(repository.NewStore[model.Project](db), log, ResourceConfig[model.Project]{
		AuditAs:  "Project",
		Resource: policy.ResourceProjects,
		List:     projectListSpec,
		Preloads: projectListSpec.Preloads,
		Prepare: func(_ context.Context, p *policy.Principal, project *model.Project, creating bool) {
			if creating && project.AssignedToIDs == nil && p != nil {
				project.AssignedToIDs = []uint{p.UserID}
			}
		},
		Check: func(ctx context.Context, project *model.Project) error {
			return newChecker(ctx, db).
				ref("client_id", &model.Client{}, project.ClientID).
				refs("assigned_to_ids", &model.User{}, project.AssignedToIDs).
				result()
		},
		AfterSave: func(ctx context.Context, tx *gorm.DB, project *model.Project) error {
			if project.AssignedToIDs == nil {
				return nil
			}
			return repository.NewProjectRepository(tx).ReplaceAssignees(ctx, project, project.AssignedToIDs)
		},
	})

	tasks := NewResource(repository.NewStore[model.ProjectTask](db), log, ResourceConfig[model.ProjectTask]{
		AuditAs:  "ProjectTask",
		Resource: policy.ResourceProjects,
		List:     taskListSpec,
		Preloads: taskListSpec.Preloads,
		Check: func(ctx context.Context, task *model.ProjectTask) error {
			return newChecker(ctx, db).
				ref("project_id", &model.Project{}, task.ProjectID).
				optionalRef("assigned_to_id", &model.User{}, task.AssignedToID).
				result()
		},
	})

	return &ProjectService{Projects: projects, Tasks: tasks}
}

// Stats counts projects by status.
func (s *ProjectService) Stats(ctx context.Context) (*ProjectStats, error) {
	byStatus, err := s.Projects.Store().CountBy(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	total := sum(byStatus)
	completed := byStatus["completed"]
	return &ProjectStats{
		TotalProjects:     total,
		ActiveProjects:    byStatus["in_progress"],
		CompletedProjects: completed,
		OnHoldProjects:    byStatus["on_hold"],
		CompletionRate:    CompletionRate(completed, total),
	}, nil
}

// ListForProject lists the tasks of one project.
func (s *ProjectService) ListForProject(ctx context.Context, p *policy.Principal, projectID uint, q repository.ListQuery) (*repository.Page[model.ProjectTask], error) {
	return s.Tasks.List(ctx, p, q, where("project_id = ?", projectID))
}

// CreateForProject creates a task under projectID. The parent id from the
// route wins over any project_id the caller supplied.
func (s *ProjectService) CreateForProject(ctx context.Context, p *policy.Principal, projectID uint, apply func(*model.ProjectTask)) (*model.ProjectTask, error) {
	return s.Tasks.Create(ctx, p, func(task *model.ProjectTask) {
		apply(task)
		task.ProjectID = projectID
	})
}

// PublicList lists completed projects for the public site.
func (s *ProjectService) PublicList(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Project], error) {
	return s.Projects.Store().List(ctx, publicProjectSpec, q, where("status = ?", PublicProjectStatus))
}

// PublicGet returns a completed project, or ErrNotFound.
func (s *ProjectService) PublicGet(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.Projects.Store().FindByID(ctx, id, where("status = ?", PublicProjectStatus), func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Client").Preload("AssignedTo").Preload("Tasks")
	})
	if err != nil {
		return nil, notFound(err)
	}
	return project, nil
}
