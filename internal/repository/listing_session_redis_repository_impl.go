package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const RedisListingSessionKeyPrefix = "listing:session:"

type listingSessionRedisRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewListingSessionRedisRepository stores each session as a JSON document
// whose TTL is refreshed on every save.
func NewListingSessionRedisRepository(redisClient *redis.Client, ttl time.Duration) domainRepo.ListingSessionRepository {
	return &listingSessionRedisRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func listingSessionKey(id uuid.UUID) string {
	return RedisListingSessionKeyPrefix + id.String()
}

func (r *listingSessionRedisRepository) Save(ctx context.Context, session *entity.ListingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal listing session %s: %w", session.ID, err)
	}

	if err := r.redisClient.Set(ctx, listingSessionKey(session.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save listing session %s: %w", session.ID, err)
	}
	return nil
}

func (r *listingSessionRedisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ListingSession, error) {
	payload, err := r.redisClient.Get(ctx, listingSessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing session %s: %w", id, err)
	}

	var session entity.ListingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal listing session %s: %w", id, err)
	}
	return &session, nil
}

func (r *listingSessionRedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, listingSessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete listing session %s: %w", id, err)
	}
	return nil
}
