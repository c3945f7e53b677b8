package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sheba-admin/internal/cache"
)

const (
	refreshTokenKeyPrefix   = "refresh_token:"
	revokedSessionKeyPrefix = "revoked_session:"
)

// ErrRefreshTokenNotFound is returned when a refresh token was never stored, expired or was deleted.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshRecord is what is remembered about an issued refresh token.
type RefreshRecord struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id"`
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, rec RefreshRecord, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, sessionID string) bool
}

// TokenStore handles storage and retrieval of tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, rec RefreshRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error) {
	data, _ := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if data == nil {
		return nil, ErrRefreshTokenNotFound
	}

	var rec RefreshRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	return &rec, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

// RevokeSession marks a login session as ended until its tokens expire.
func (s *TokenStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedSessionKeyPrefix+sessionID, []byte("1"), ttl)
}

// IsSessionRevoked is the fast path of session checks. A miss, including an
// unreachable redis, is answered by the session table.
func (s *TokenStore) IsSessionRevoked(ctx context.Context, sessionID string) bool {
	data, _ := s.cache.Get(ctx, revokedSessionKeyPrefix+sessionID)
	return data != nil
}
