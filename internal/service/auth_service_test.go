package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sheba-admin/internal/auth"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	repository.UserRepository
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint, _ ...repository.Scope) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User, _ ...string) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	repository.SessionRepository
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.UserSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByKey(ctx context.Context, key string) (*model.UserSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSession), args.Error(1)
}

func (m *MockSessionRepository) End(ctx context.Context, key string, at time.Time) error {
	args := m.Called(ctx, key, at)
	return args.Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	UserService
	mock.Mock
}

func (m *MockUserService) Cached(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, rec auth.RefreshRecord, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, rec, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*auth.RefreshRecord, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RefreshRecord), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsSessionRevoked(ctx context.Context, sessionID string) bool {
	args := m.Called(ctx, sessionID)
	return args.Bool(0)
}

type authFixture struct {
	users    *MockUserRepository
	sessions *MockSessionRepository
	lookup   *MockUserService
	tokens   *MockTokenStore
	jwt      *auth.JWTService
	svc      AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(MockUserRepository),
		sessions: new(MockSessionRepository),
		lookup:   new(MockUserService),
		tokens:   new(MockTokenStore),
		jwt:      auth.NewJWTService("test-secret", time.Hour, 24*time.Hour),
	}
	f.svc = NewAuthService(f.users, f.sessions, f.lookup, f.jwt, f.tokens, nil)
	return f
}

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: 3, Username: "selam", Role: "manager", IsActive: true, PasswordHash: string(hash)}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "s3cret-pass")

	f.users.On("FindByUsername", ctx, "selam").Return(user, nil)
	f.sessions.On("Create", ctx, mock.AnythingOfType("*model.UserSession")).Return(nil)
	f.users.On("TouchLastLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.tokens.On("StoreRefreshToken", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("auth.RefreshRecord"), 24*time.Hour).Return(nil)

	res, err := f.svc.Login(ctx, "selam", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionKey)
	assert.NotNil(t, res.User.LastLogin)

	claims, err := f.jwt.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, res.SessionKey, claims.SessionID)

	refresh, err := f.jwt.ValidateRefreshToken(res.RefreshToken)
	require.NoError(t, err)
	f.tokens.AssertCalled(t, "StoreRefreshToken", ctx, refresh.ID, auth.RefreshRecord{UserID: user.ID, SessionID: res.SessionKey}, 24*time.Hour)

	session := f.sessions.Calls[0].Arguments.Get(1).(*model.UserSession)
	assert.True(t, session.IsActive)
	assert.Equal(t, user.ID, session.UserID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByUsername", ctx, "selam").Return(testUser(t, "right"), nil)

		_, err := f.svc.Login(ctx, "selam", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newAuthFixture()
		user := testUser(t, "right")
		user.IsActive = false
		f.users.On("FindByUsername", ctx, "selam").Return(user, nil)

		_, err := f.svc.Login(ctx, "selam", "right")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues access token for the same session", func(t *testing.T) {
		f := newAuthFixture()
		tokenID, refresh, err := f.jwt.GenerateRefreshToken(3, "manager", "sess-1")
		require.NoError(t, err)
		f.tokens.On("GetRefreshToken", ctx, tokenID).Return(&auth.RefreshRecord{UserID: 3, SessionID: "sess-1"}, nil)
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(false)

		access, err := f.svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		claims, err := f.jwt.ValidateAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", claims.SessionID)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture()
		tokenID, refresh, err := f.jwt.GenerateRefreshToken(3, "manager", "sess-1")
		require.NoError(t, err)
		f.tokens.On("GetRefreshToken", ctx, tokenID).Return(nil, auth.ErrRefreshTokenNotFound)

		_, err = f.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newAuthFixture()
		tokenID, refresh, err := f.jwt.GenerateRefreshToken(3, "manager", "sess-1")
		require.NoError(t, err)
		f.tokens.On("GetRefreshToken", ctx, tokenID).Return(&auth.RefreshRecord{UserID: 3, SessionID: "sess-1"}, nil)
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(true)

		_, err = f.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, apperrors.ErrSessionInactive)
	})

	t.Run("access token rejected", func(t *testing.T) {
		f := newAuthFixture()
		access, err := f.jwt.GenerateAccessToken(3, "manager", "sess-1")
		require.NoError(t, err)

		_, err = f.svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tokenID, refresh, err := f.jwt.GenerateRefreshToken(3, "manager", "sess-1")
	require.NoError(t, err)

	f.sessions.On("End", ctx, "sess-1", mock.AnythingOfType("time.Time")).Return(nil)
	f.tokens.On("RevokeSession", ctx, "sess-1", 24*time.Hour).Return(nil)
	f.tokens.On("DeleteRefreshToken", ctx, tokenID).Return(nil)

	claims := &auth.Claims{UserID: 3, SessionID: "sess-1"}
	require.NoError(t, f.svc.Logout(ctx, claims, refresh))

	f.sessions.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	claims := &auth.Claims{UserID: 3, SessionID: "sess-1"}

	t.Run("active session and user", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(false)
		f.sessions.On("FindByKey", ctx, "sess-1").Return(&model.UserSession{UserID: 3, IsActive: true}, nil)
		f.lookup.On("Cached", ctx, uint(3)).Return(&model.User{ID: 3, Role: "developer", IsActive: true}, nil)

		p, err := f.svc.Authenticate(ctx, claims)
		require.NoError(t, err)
		assert.Equal(t, &policy.Principal{UserID: 3, Role: policy.RoleDeveloper}, p)
	})

	t.Run("revoked in cache", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(true)

		_, err := f.svc.Authenticate(ctx, claims)
		assert.ErrorIs(t, err, apperrors.ErrSessionInactive)
		f.sessions.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
	})

	t.Run("ended session", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(false)
		f.sessions.On("FindByKey", ctx, "sess-1").Return(&model.UserSession{UserID: 3, IsActive: false}, nil)

		_, err := f.svc.Authenticate(ctx, claims)
		assert.ErrorIs(t, err, apperrors.ErrSessionInactive)
	})

	t.Run("disabled user", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("IsSessionRevoked", ctx, "sess-1").Return(false)
		f.sessions.On("FindByKey", ctx, "sess-1").Return(&model.UserSession{UserID: 3, IsActive: true}, nil)
		f.lookup.On("Cached", ctx, uint(3)).Return(&model.User{ID: 3, IsActive: false}, nil)

		_, err := f.svc.Authenticate(ctx, claims)
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong old password", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByID", ctx, uint(3)).Return(testUser(t, "old-pass"), nil)

		err := f.svc.ChangePassword(ctx, 3, "nope", "new-pass-123")
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "old_password")
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("stores new hash", func(t *testing.T) {
		f := newAuthFixture()
		user := testUser(t, "old-pass")
		f.users.On("FindByID", ctx, uint(3)).Return(user, nil)
		f.users.On("Save", ctx, user).Return(nil)

		require.NoError(t, f.svc.ChangePassword(ctx, 3, "old-pass", "new-pass-123"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-pass-123")))
	})
}
