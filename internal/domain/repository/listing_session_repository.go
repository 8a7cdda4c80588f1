package repository

import (
	"context"

	"doctor-directory/internal/domain/entity"

	"github.com/google/uuid"
)

type ListingSessionRepository interface {
	Save(ctx context.Context, session *entity.ListingSession) error
	// FindByID returns nil, nil when the session does not exist or has expired.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ListingSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
