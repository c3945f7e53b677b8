package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "sheba-admin/internal/errors"
)

// checker collects reference and uniqueness problems of one write.
type checker struct {
	ctx  context.Context
	db   *gorm.DB
	errs *apperrors.ValidationError
	err  error
}

func newChecker(ctx context.Context, db *gorm.DB) *checker {
	return &checker{ctx: ctx, db: db, errs: &apperrors.ValidationError{}}
}

// ref requires row id of model to exist. A zero id is left to field validation.
func (c *checker) ref(field string, model interface{}, id uint) *checker {
	if c.err != nil || id == 0 {
		return c
	}
	n, err := c.count(model, "id = ?", id)
	if err != nil {
		c.err = err
		return c
	}
	if n == 0 {
		c.errs.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return c
}

// optionalRef is ref for nullable foreign keys.
func (c *checker) optionalRef(field string, model interface{}, id *uint) *checker {
	if id == nil {
		return c
	}
	return c.ref(field, model, *id)
}

// refs requires every id to exist.
func (c *checker) refs(field string, model interface{}, ids []uint) *checker {
	for _, id := range ids {
		c.ref(field, model, id)
	}
	return c
}

// unique requires no other row of model to match where. selfID excludes the
// row being updated.
func (c *checker) unique(field, message string, model interface{}, selfID uint, where string, args ...interface{}) *checker {
	if c.err != nil {
		return c
	}
	q := c.db.WithContext(c.ctx).Model(model).Where(where, args...)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		c.err = err
		return c
	}
	if n > 0 {
		c.errs.Add(field, message)
	}
	return c
}

func (c *checker) count(model interface{}, where string, args ...interface{}) (int64, error) {
	var n int64
	err := c.db.WithContext(c.ctx).Model(model).Where(where, args...).Count(&n).Error
	return n, err
}

// result returns the collected problems, or a store failure.
func (c *checker) result() error {
	if c.err != nil {
		return c.err
	}
	if c.errs.Empty() {
		return nil
	}
	return c.errs
}
