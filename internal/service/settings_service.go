package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/cache"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

const healthTimeout = 2 * time.Second

var (
	permissionListSpec = repository.ListSpec{
		Filters: map[string]string{"user": "user_id", "permission": "permission", "granted": "granted"},
		Kinds:   map[string]repository.FilterKind{"user": repository.FilterInt, "granted": repository.FilterBool},
		Search: []string{
			"(SELECT username FROM users WHERE users.id = user_permissions.user_id)",
			"(SELECT email FROM users WHERE users.id = user_permissions.user_id)",
		},
		Ordering:        map[string]string{"created_at": "created_at", "permission": "permission"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"User", "GrantedBy"},
	}

	systemLogListSpec = repository.ListSpec{
		Filters:         map[string]string{"level": "level", "module": "module", "user": "user_id"},
		Kinds:           map[string]repository.FilterKind{"user": repository.FilterInt},
		Search:          []string{"message", "module"},
		Ordering:        map[string]string{"created_at": "created_at", "level": "level"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"User"},
	}
)

// Health reports whether the backing services answer.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// SettingsService serves the settings singletons, permission grants and system logs.
type SettingsService struct {
	Permissions *Resource[model.UserPermission]
	Logs        *Resource[model.SystemLog]

	company repository.Store[model.CompanySettings]
	system  repository.Store[model.SystemSettings]
	db      *gorm.DB
	cache   *cache.Client
	audit   *audit.Log
}

// NewSettingsService wires the settings resources.
func NewSettingsService(db *gorm.DB, c *cache.Client, log *audit.Log) *SettingsService {
	return &SettingsService{
		Permissions: NewResource(repository.NewStore[model.UserPermission](db), log, ResourceConfig[model.UserPermission]{
			AuditAs:  "UserPermission",
			Resource: policy.ResourcePermissions,
			List:     permissionListSpec,
			Preloads: permissionListSpec.Preloads,
			Prepare: func(_ context.Context, p *policy.Principal, perm *model.UserPermission, creating bool) {
				if creating && perm.GrantedByID == nil && p != nil {
					id := p.UserID
					perm.GrantedByID = &id
				}
			},
			Check: func(ctx context.Context, perm *model.UserPermission) error {
				return newChecker(ctx, db).
					ref("user_id", &model.User{}, perm.UserID).
					optionalRef("granted_by_id", &model.User{}, perm.GrantedByID).
					unique("non_field_errors", "The fields user, permission must make a unique set.",
						&model.UserPermission{}, perm.ID, "user_id = ? AND permission = ?", perm.UserID, perm.Permission).
					result()
			},
		}),
		Logs: NewResource(repository.NewStore[model.SystemLog](db), log, ResourceConfig[model.SystemLog]{
			Resource: policy.ResourceSystemLogs,
			List:     systemLogListSpec,
			Preloads: systemLogListSpec.Preloads,
		}),
		company: repository.NewStore[model.CompanySettings](db),
		system:  repository.NewStore[model.SystemSettings](db),
		db:      db,
		cache:   c,
		audit:   log,
	}
}

// Company returns the company profile, creating it with defaults on first access.
func (s *SettingsService) Company(ctx context.Context) (*model.CompanySettings, error) {
	return s.company.GetOrInit(ctx, model.DefaultCompanySettings())
}

// UpdateCompany applies changes to the company profile.
func (s *SettingsService) UpdateCompany(ctx context.Context, apply func(*model.CompanySettings)) (*model.CompanySettings, error) {
	return updateSingleton(ctx, s, s.company, model.DefaultCompanySettings(), "CompanySettings", apply)
}

// System returns the operational settings, creating them with defaults on first access.
func (s *SettingsService) System(ctx context.Context) (*model.SystemSettings, error) {
	return s.system.GetOrInit(ctx, model.DefaultSystemSettings())
}

// UpdateSystem applies changes to the operational settings.
func (s *SettingsService) UpdateSystem(ctx context.Context, apply func(*model.SystemSettings)) (*model.SystemSettings, error) {
	return updateSingleton(ctx, s, s.system, model.DefaultSystemSettings(), "SystemSettings", apply)
}

func updateSingleton[T any](ctx context.Context, s *SettingsService, store repository.Store[T], defaults *T, name string, apply func(*T)) (*T, error) {
	row, err := store.GetOrInit(ctx, defaults)
	if err != nil {
		return nil, err
	}
	apply(row)
	if v, ok := any(row).(validatable); ok {
		if err := apperrors.FromOzzo(v.Validate()); err != nil {
			return nil, err
		}
	}
	if err := store.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save %s: %w", name, err)
	}
	s.audit.Activity(ctx, "update", name, model.SingletonID, fmt.Sprintf("Updated %s", name))
	return row, nil
}

// UserPermissions lists the granted permissions of userID. Callers other
// than the user and administrators get ErrNotFound.
func (s *SettingsService) UserPermissions(ctx context.Context, p *policy.Principal, userID uint) ([]model.UserPermission, error) {
	if !policy.Can(p, policy.ActionView, policy.ResourceUsers, p != nil && p.UserID == userID) {
		return nil, apperrors.ErrNotFound
	}
	return s.Permissions.Store().Find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Preload("GrantedBy").
			Where("user_id = ? AND granted = ?", userID, true).
			Order("permission")
	})
}

// Health pings the database and the cache.
func (s *SettingsService) Health(ctx context.Context) *Health {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	h := &Health{Status: "healthy", Database: "connected", Cache: "connected"}
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		h.Status, h.Database = "unhealthy", "unavailable"
	}
	if err := s.cache.Ping(ctx); err != nil {
		h.Cache = "unavailable"
		if errors.Is(err, cache.ErrDisabled) {
			h.Cache = "disabled"
		}
	}
	return h
}
