package repository

import (
	"context"

	"gorm.io/gorm"

	"sheba-admin/internal/model"
)

// ProjectRepository adds staff assignment to the generic project store.
type ProjectRepository interface {
	Store[model.Project]
	ReplaceAssignees(ctx context.Context, project *model.Project, userIDs []uint) error
}

type projectRepository struct {
	Store[model.Project]
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{Store: NewStore[model.Project](db), db: db}
}

// ReplaceAssignees sets the assigned staff of project to exactly userIDs.
func (r *projectRepository) ReplaceAssignees(ctx context.Context, project *model.Project, userIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(project).Association("AssignedTo")
		if len(userIDs) == 0 {
			return assoc.Clear()
		}
		var users []model.User
		if err := tx.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return err
		}
		return assoc.Replace(users)
	})
}
