package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/auth"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	SessionKey   string
	User         *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	Authenticate(ctx context.Context, claims *auth.Claims) (*policy.Principal, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	lookup     UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	audit      *audit.Log
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	lookup UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	log *audit.Log,
) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		lookup:     lookup,
		jwtService: jwtService,
		tokenStore: tokenStore,
		audit:      log,
		now:        time.Now,
	}
}

// Login checks the credentials, opens a session and issues tokens bound to it.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	req := audit.RequestFrom(ctx)
	session := &model.UserSession{
		UserID:     user.ID,
		SessionKey: uuid.NewString(),
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
		IsActive:   true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	user.LastLogin = &now

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role, session.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Role, session.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	rec := auth.RefreshRecord{UserID: user.ID, SessionID: session.SessionKey}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, rec, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.audit.UserActivity(ctx, user.ID, "login", fmt.Sprintf("User %s logged in", user.Username))

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionKey:   session.SessionKey,
		User:         user,
	}, nil
}

// Refresh validates a refresh token and returns a new access token for the
// same session.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	rec, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if rec.UserID != claims.UserID || rec.SessionID != claims.SessionID {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if s.tokenStore.IsSessionRevoked(ctx, claims.SessionID) {
		return "", apperrors.ErrSessionInactive
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Role, claims.SessionID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout ends the session behind claims and revokes its tokens. The refresh
// token is optional.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if err := s.sessions.End(ctx, claims.SessionID, s.now()); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if err := s.tokenStore.RevokeSession(ctx, claims.SessionID, s.jwtService.RefreshTTL()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if refreshToken != "" {
		if rc, err := s.jwtService.ValidateRefreshToken(refreshToken); err == nil && rc.SessionID == claims.SessionID {
			_ = s.tokenStore.DeleteRefreshToken(ctx, rc.ID)
		}
	}

	s.audit.UserActivity(ctx, claims.UserID, "logout", "User logged out")
	return nil
}

// ChangePassword replaces the password of userID after checking the old one.
func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return notFound(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.NewValidationError("old_password", "Old password is incorrect.")
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	s.audit.UserActivity(ctx, userID, "update", "User changed password")
	return nil
}

// Authenticate turns the claims of a valid access token into the request
// principal. The session must still be open and the user active.
func (s *authService) Authenticate(ctx context.Context, claims *auth.Claims) (*policy.Principal, error) {
	if s.tokenStore.IsSessionRevoked(ctx, claims.SessionID) {
		return nil, apperrors.ErrSessionInactive
	}
	session, err := s.sessions.FindByKey(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionInactive
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if !session.IsActive || session.UserID != claims.UserID {
		return nil, apperrors.ErrSessionInactive
	}

	user, err := s.lookup.Cached(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return &policy.Principal{UserID: user.ID, Role: policy.Role(user.Role), IsStaff: user.IsStaff}, nil
}
