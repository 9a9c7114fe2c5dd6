package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("token:user:%s", userID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("token:lookup:%s", token)
}

// StoreToken saves the session under the user and a reverse token -> user lookup.
// A previous session of the same user is replaced.
func (r *TokenRepository) StoreToken(ctx context.Context, session domain.TokenSession, ttl time.Duration) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	if previous, err := r.GetTokenData(ctx, session.UserID); err == nil && previous.Token != session.Token {
		if err := r.client.Del(ctx, lookupKey(previous.Token)).Err(); err != nil {
			return fmt.Errorf("failed to drop previous token: %w", err)
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.UserID), jsonData, ttl)
	pipe.Set(ctx, lookupKey(session.Token), session.UserID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// GetTokenData retrieve token data by user ID
func (r *TokenRepository) GetTokenData(ctx context.Context, userID string) (*domain.TokenSession, error) {
	val, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var session domain.TokenSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &session, nil
}

// ValidateToken checks if a token exists and is valid
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

// RevokeToken removes the active session of a user together with its lookup key.
func (r *TokenRepository) RevokeToken(ctx context.Context, userID string) error {
	session, err := r.GetTokenData(ctx, userID)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, sessionKey(userID), lookupKey(session.Token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
