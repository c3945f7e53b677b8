package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sheba-admin/internal/model"
)

// ApplicationRepository adds candidate submission to the generic application store.
type ApplicationRepository interface {
	Store[model.JobApplication]
	Submit(ctx context.Context, app *model.JobApplication) error
}

type applicationRepository struct {
	Store[model.JobApplication]
	db *gorm.DB
}

// NewApplicationRepository builds a GORM-backed application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{Store: NewStore[model.JobApplication](db), db: db}
}

// Submit stores app and bumps the posting's applications_count in one
// transaction. A second application for the same job and email fails with
// gorm.ErrDuplicatedKey and leaves the counter untouched.
func (r *applicationRepository) Submit(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&model.JobApplication{}).
			Where("job_id = ? AND email = ?", app.JobID, app.Email).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		if err := tx.Omit(clause.Associations).Create(app).Error; err != nil {
			return err
		}

		res := tx.Model(&model.JobPosting{}).
			Where("id = ?", app.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IsDuplicate reports whether err means the row already exists.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
