package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sheba-admin/internal/model"
)

// UserRepository adds account lookups to the generic user store.
type UserRepository interface {
	Store[model.User]
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type userRepository struct {
	Store[model.User]
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{Store: NewStore[model.User](db), db: db}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin records a successful login without bumping updated_at.
func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	Store[model.UserSession]
	FindByKey(ctx context.Context, key string) (*model.UserSession, error)
	End(ctx context.Context, key string, at time.Time) error
}

type sessionRepository struct {
	Store[model.UserSession]
	db *gorm.DB
}

// NewSessionRepository builds a GORM-backed session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{Store: NewStore[model.UserSession](db), db: db}
}

func (r *sessionRepository) FindByKey(ctx context.Context, key string) (*model.UserSession, error) {
	var session model.UserSession
	if err := r.db.WithContext(ctx).Where("session_key = ?", key).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// End marks an active session as logged out. Ending an already ended session
// is a no-op.
func (r *sessionRepository) End(ctx context.Context, key string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("session_key = ? AND is_active = ?", key, true).
		Updates(map[string]interface{}{"is_active": false, "logout_time": at}).Error
}
