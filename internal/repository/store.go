package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sheba-admin/internal/model"
)

// Store defines the persistence operations every entity supports.
type Store[T any] interface {
	List(ctx context.Context, spec ListSpec, q ListQuery, scopes ...Scope) (*Page[T], error)
	Find(ctx context.Context, scopes ...Scope) ([]T, error)
	FindByID(ctx context.Context, id uint, scopes ...Scope) (*T, error)
	FindOne(ctx context.Context, scopes ...Scope) (*T, error)
	Exists(ctx context.Context, scopes ...Scope) (bool, error)
	Create(ctx context.Context, entity *T) error
	CreateBatch(ctx context.Context, entities []T) error
	Save(ctx context.Context, entity *T, omit ...string) error
	Delete(ctx context.Context, id uint, scopes ...Scope) error
	Count(ctx context.Context, scopes ...Scope) (int64, error)
	CountBy(ctx context.Context, column string, scopes ...Scope) (map[string]int64, error)
	Increment(ctx context.Context, id uint, column string, by int64) (int64, error)
	GetOrInit(ctx context.Context, defaults *T) (*T, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) Store[T]
}

type gormStore[T any] struct {
	db *gorm.DB
}

// NewStore builds a GORM-backed store for entity type T.
func NewStore[T any](db *gorm.DB) Store[T] {
	return &gormStore[T]{db: db}
}

func (r *gormStore[T]) WithTx(tx *gorm.DB) Store[T] {
	return &gormStore[T]{db: tx}
}

func (r *gormStore[T]) List(ctx context.Context, spec ListSpec, q ListQuery, scopes ...Scope) (*Page[T], error) {
	q.normalize()

	build := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...)
		tx = applyFilters(tx, spec, q.Filters)
		return applySearch(tx, spec.Search, q.Search)
	}

	var count int64
	if err := build().Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	tx := applyOrdering(build(), spec, q.Ordering)
	for _, p := range spec.Preloads {
		tx = tx.Preload(p)
	}
	rows := make([]T, 0, q.PageSize)
	if err := tx.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	return &Page[T]{Count: count, Page: q.Page, PageSize: q.PageSize, Results: rows}, nil
}

func (r *gormStore[T]) Find(ctx context.Context, scopes ...Scope) ([]T, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Scopes(scopes...).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormStore[T]) FindByID(ctx context.Context, id uint, scopes ...Scope) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).Scopes(scopes...).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormStore[T]) FindOne(ctx context.Context, scopes ...Scope) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).Scopes(scopes...).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormStore[T]) Exists(ctx context.Context, scopes ...Scope) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts entity. Associations are written by the caller explicitly.
func (r *gormStore[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// CreateBatch inserts entities in chunks of 100.
func (r *gormStore[T]) CreateBatch(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(entities, 100).Error
}

// Save writes every column of entity except associations and omit.
func (r *gormStore[T]) Save(ctx context.Context, entity *T, omit ...string) error {
	return r.db.WithContext(ctx).Omit(append([]string{clause.Associations}, omit...)...).Save(entity).Error
}

// Delete removes the row with id. Scopes restrict which rows may be hit, so a
// row outside them reports gorm.ErrRecordNotFound.
func (r *gormStore[T]) Delete(ctx context.Context, id uint, scopes ...Scope) error {
	res := r.db.WithContext(ctx).Scopes(scopes...).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormStore[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountBy groups matching rows by column and counts each group.
func (r *gormStore[T]) CountBy(ctx context.Context, column string, scopes ...Scope) (map[string]int64, error) {
	var rows []struct {
		Bucket string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Scopes(scopes...).
		Select(fmt.Sprintf("%s AS bucket, COUNT(*) AS total", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Total
	}
	return out, nil
}

// Increment atomically adds by to column of row id and returns the new value.
// The update is a single "col = col + n" statement, so concurrent callers
// never lose an increment.
func (r *gormStore[T]) Increment(ctx context.Context, id uint, column string, by int64) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(new(T)).
			Where("id = ?", id).
			UpdateColumn(column, gorm.Expr("? + ?", clause.Column{Name: column}, by))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(new(T)).Select(column).Where("id = ?", id).Scan(&value).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// GetOrInit returns the singleton row, creating it from defaults on first
// access. A concurrent creator winning the insert is resolved by reading back.
func (r *gormStore[T]) GetOrInit(ctx context.Context, defaults *T) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"id": model.SingletonID}).
		Attrs(defaults).
		FirstOrCreate(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		row = *new(T)
		err = r.db.WithContext(ctx).First(&row, model.SingletonID).Error
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Transaction runs fn inside a database transaction.
func (r *gormStore[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
