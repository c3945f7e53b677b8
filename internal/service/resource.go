package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

type defaulter interface {
	SetDefaults()
}

type validatable interface {
	Validate() error
}

// ResourceConfig describes how one entity is exposed through the CRUD endpoints.
type ResourceConfig[T any] struct {
	// AuditAs names the entity in activity log rows. Empty disables auditing.
	AuditAs  string
	Resource policy.Resource
	List     repository.ListSpec
	// Preloads are loaded for single-row reads and write responses.
	Preloads []string
	// OwnerColumn holds the user id compared with the caller on owner-scoped resources.
	OwnerColumn string
	// Counters are columns only changed by atomic increments. Updates never write them.
	Counters []string

	// Prepare runs after the request has been applied and before validation.
	Prepare func(ctx context.Context, p *policy.Principal, entity *T, creating bool)
	// Check runs after field validation and reports reference and uniqueness problems.
	Check func(ctx context.Context, entity *T) error
	// AfterSave runs inside the write transaction.
	AfterSave func(ctx context.Context, tx *gorm.DB, entity *T) error
}

// Resource implements list, retrieve, create, update and delete for one entity.
type Resource[T any] struct {
	store repository.Store[T]
	cfg   ResourceConfig[T]
	audit *audit.Log
}

// NewResource builds a Resource over store.
func NewResource[T any](store repository.Store[T], log *audit.Log, cfg ResourceConfig[T]) *Resource[T] {
	return &Resource[T]{store: store, cfg: cfg, audit: log}
}

// Store exposes the underlying store for domain specific queries.
func (r *Resource[T]) Store() repository.Store[T] {
	return r.store
}

// Policy returns the resource family the entity belongs to.
func (r *Resource[T]) Policy() policy.Resource {
	return r.cfg.Resource
}

// List returns one page of rows visible to p.
func (r *Resource[T]) List(ctx context.Context, p *policy.Principal, q repository.ListQuery, scopes ...repository.Scope) (*repository.Page[T], error) {
	return r.ListWith(ctx, p, r.cfg.List, q, scopes...)
}

// ListWith is List with a different filter, search and ordering declaration,
// for summary endpoints.
func (r *Resource[T]) ListWith(ctx context.Context, p *policy.Principal, spec repository.ListSpec, q repository.ListQuery, scopes ...repository.Scope) (*repository.Page[T], error) {
	scopes = append(r.ownerScopes(p), scopes...)
	page, err := r.store.List(ctx, spec, q, scopes...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name(), err)
	}
	return page, nil
}

// Get returns the row id if p may see it.
func (r *Resource[T]) Get(ctx context.Context, p *policy.Principal, id uint) (*T, error) {
	scopes := append(r.ownerScopes(p), r.preload)
	entity, err := r.store.FindByID(ctx, id, scopes...)
	if err != nil {
		return nil, notFound(err)
	}
	return entity, nil
}

// Create builds a new row from its defaults and apply, validates it and stores it.
func (r *Resource[T]) Create(ctx context.Context, p *policy.Principal, apply func(*T)) (*T, error) {
	entity := new(T)
	if d, ok := any(entity).(defaulter); ok {
		d.SetDefaults()
	}
	apply(entity)

	if err := r.write(ctx, p, entity, true); err != nil {
		return nil, err
	}
	id := entityID(entity)
	r.record(ctx, "create", id)
	return r.reload(ctx, id)
}

// Update applies changes to the row id, validates the result and stores it.
// Fields apply leaves untouched keep their stored value.
func (r *Resource[T]) Update(ctx context.Context, p *policy.Principal, id uint, apply func(*T)) (*T, error) {
	entity, err := r.store.FindByID(ctx, id, r.ownerScopes(p)...)
	if err != nil {
		return nil, notFound(err)
	}
	apply(entity)

	if err := r.write(ctx, p, entity, false); err != nil {
		return nil, err
	}
	r.record(ctx, "update", id)
	return r.reload(ctx, id)
}

// Delete removes the row id if p may see it.
func (r *Resource[T]) Delete(ctx context.Context, p *policy.Principal, id uint) error {
	if err := r.store.Delete(ctx, id, r.ownerScopes(p)...); err != nil {
		return notFound(err)
	}
	r.record(ctx, "delete", id)
	return nil
}

func (r *Resource[T]) write(ctx context.Context, p *policy.Principal, entity *T, creating bool) error {
	if r.cfg.Prepare != nil {
		r.cfg.Prepare(ctx, p, entity, creating)
	}
	if v, ok := any(entity).(validatable); ok {
		if err := apperrors.FromOzzo(v.Validate()); err != nil {
			return err
		}
	}
	if r.cfg.Check != nil {
		if err := r.cfg.Check(ctx, entity); err != nil {
			return err
		}
	}

	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		store := r.store.WithTx(tx)
		var err error
		if creating {
			err = store.Create(ctx, entity)
		} else {
			err = store.Save(ctx, entity, r.cfg.Counters...)
		}
		if err != nil {
			return fmt.Errorf("save %s: %w", r.name(), err)
		}
		if r.cfg.AfterSave != nil {
			return r.cfg.AfterSave(ctx, tx, entity)
		}
		return nil
	})
}

func (r *Resource[T]) reload(ctx context.Context, id uint) (*T, error) {
	entity, err := r.store.FindByID(ctx, id, r.preload)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", r.name(), err)
	}
	return entity, nil
}

func (r *Resource[T]) preload(tx *gorm.DB) *gorm.DB {
	for _, p := range r.cfg.Preloads {
		tx = tx.Preload(p)
	}
	return tx
}

func (r *Resource[T]) ownerScopes(p *policy.Principal) []repository.Scope {
	if r.cfg.OwnerColumn == "" || !policy.ScopeToOwner(p, r.cfg.Resource) {
		return nil
	}
	column, userID := r.cfg.OwnerColumn, p.UserID
	return []repository.Scope{func(tx *gorm.DB) *gorm.DB {
		return tx.Where(fmt.Sprintf("%s = ?", column), userID)
	}}
}

func (r *Resource[T]) record(ctx context.Context, action string, id uint) {
	if r.cfg.AuditAs == "" {
		return
	}
	r.audit.Activity(ctx, action, r.cfg.AuditAs, id, audit.Describe(action, r.cfg.AuditAs, id))
}

func (r *Resource[T]) name() string {
	if r.cfg.AuditAs != "" {
		return r.cfg.AuditAs
	}
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

// entityID reads the primary key of a model struct.
func entityID(v interface{}) uint {
	f := reflect.Indirect(reflect.ValueOf(v)).FieldByName("ID")
	if !f.IsValid() || f.Kind() != reflect.Uint {
		return 0
	}
	return uint(f.Uint())
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
