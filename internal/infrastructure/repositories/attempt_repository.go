package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uwcirg/waverify-auth/domain"
)

// AttemptRepositoryImpl implements domain.AttemptRepository using Redis.
// Attempts are ephemeral; Redis TTL bounds how long an interrupted flow can
// be resumed.
type AttemptRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(client *redis.Client, ttl time.Duration) domain.AttemptRepository {
	return &AttemptRepositoryImpl{
		client: client,
		prefix: "attempt:",
		ttl:    ttl,
	}
}

// Create implements domain.AttemptRepository
func (r *AttemptRepositoryImpl) Create(ctx context.Context, attempt *domain.AuthenticationAttempt) error {
	return r.write(ctx, attempt)
}

// FindByID implements domain.AttemptRepository
func (r *AttemptRepositoryImpl) FindByID(ctx context.Context, attemptID string) (*domain.AuthenticationAttempt, error) {
	key := r.prefix + attemptID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, err
	}

	var attempt domain.AuthenticationAttempt
	if err := json.Unmarshal([]byte(data), &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}
	return &attempt, nil
}

// Save implements domain.AttemptRepository. The TTL is reset on every save so
// an active flow keeps its full window.
func (r *AttemptRepositoryImpl) Save(ctx context.Context, attempt *domain.AuthenticationAttempt) error {
	return r.write(ctx, attempt)
}

// Delete implements domain.AttemptRepository
func (r *AttemptRepositoryImpl) Delete(ctx context.Context, attemptID string) error {
	key := r.prefix + attemptID
	return r.client.Del(ctx, key).Err()
}

func (r *AttemptRepositoryImpl) write(ctx context.Context, attempt *domain.AuthenticationAttempt) error {
	key := r.prefix + attempt.ID
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}
