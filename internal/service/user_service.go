package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/cache"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

const bcryptCost = 10

var (
	userListSpec = repository.ListSpec{
		Filters:         map[string]string{"role": "role", "is_active": "is_active", "is_staff": "is_staff"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool, "is_staff": repository.FilterBool},
		Search:          []string{"username", "email", "first_name", "last_name"},
		Ordering:        map[string]string{"username": "username", "created_at": "created_at", "last_login": "last_login"},
		DefaultOrdering: []string{"-created_at"},
	}

	sessionListSpec = repository.ListSpec{
		Filters:         map[string]string{"is_active": "is_active", "user": "user_id"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool, "user": repository.FilterInt},
		Search:          []string{"ip_address", "user_agent"},
		Ordering:        map[string]string{"login_time": "login_time", "logout_time": "logout_time"},
		DefaultOrdering: []string{"-login_time"},
		Preloads:        []string{"User"},
	}
)

// UserService exposes user accounts and login sessions.
type UserService interface {
	List(ctx context.Context, p *policy.Principal, q repository.ListQuery) (*repository.Page[model.User], error)
	Get(ctx context.Context, p *policy.Principal, id uint) (*model.User, error)
	Create(ctx context.Context, p *policy.Principal, password string, apply func(*model.User)) (*model.User, error)
	Update(ctx context.Context, p *policy.Principal, id uint, password string, apply func(*model.User)) (*model.User, error)
	Delete(ctx context.Context, p *policy.Principal, id uint) error
	Cached(ctx context.Context, id uint) (*model.User, error)
	Sessions(ctx context.Context, p *policy.Principal, q repository.ListQuery) (*repository.Page[model.UserSession], error)
}

type userService struct {
	users    *Resource[model.User]
	sessions *Resource[model.UserSession]
	repo     repository.UserRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(db *gorm.DB, c *cache.Client, log *audit.Log, cacheTTL time.Duration) UserService {
	repo := repository.NewUserRepository(db)
	users := NewResource[model.User](repo, log, ResourceConfig[model.User]{
		AuditAs:     "User",
		Resource:    policy.ResourceUsers,
		List:        userListSpec,
		OwnerColumn: "id",
		Check: func(ctx context.Context, u *model.User) error {
			return newChecker(ctx, db).
				unique("username", "A user with that username already exists.", &model.User{}, u.ID, "username = ?", u.Username).
				result()
		},
	})
	sessions := NewResource(repository.NewStore[model.UserSession](db), log, ResourceConfig[model.UserSession]{
		Resource:    policy.ResourceSessions,
		List:        sessionListSpec,
		OwnerColumn: "user_id",
	})
	return &userService{users: users, sessions: sessions, repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) List(ctx context.Context, p *policy.Principal, q repository.ListQuery) (*repository.Page[model.User], error) {
	return s.users.List(ctx, p, q)
}

func (s *userService) Get(ctx context.Context, p *policy.Principal, id uint) (*model.User, error) {
	return s.users.Get(ctx, p, id)
}

// Create stores a new user with the hashed password.
func (s *userService) Create(ctx context.Context, p *policy.Principal, password string, apply func(*model.User)) (*model.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, p, func(u *model.User) {
		apply(u)
		u.PasswordHash = hash
	})
}

// Update applies changes to a user. Callers without privilege cannot change
// role, staff or active flags, even on their own account. An empty password
// keeps the current one.
func (s *userService) Update(ctx context.Context, p *policy.Principal, id uint, password string, apply func(*model.User)) (*model.User, error) {
	var hash string
	if password != "" {
		var err error
		if hash, err = hashPassword(password); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, p, id, func(u *model.User) {
		role, staff, active := u.Role, u.IsStaff, u.IsActive
		apply(u)
		if !p.Privileged() {
			u.Role, u.IsStaff, u.IsActive = role, staff, active
		}
		if hash != "" {
			u.PasswordHash = hash
		}
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) Delete(ctx context.Context, p *policy.Principal, id uint) error {
	if err := s.users.Delete(ctx, p, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Cached returns the user id, reading through the cache.
func (s *userService) Cached(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if cache.GetJSON(ctx, s.cache, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	cache.SetJSON(ctx, s.cache, s.cacheKey(id), user, s.cacheTTL)
	return user, nil
}

func (s *userService) Sessions(ctx context.Context, p *policy.Principal, q repository.ListQuery) (*repository.Page[model.UserSession], error) {
	return s.sessions.List(ctx, p, q)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
