package repository

import (
	"context"
	"sync"
	"time"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"github.com/google/uuid"
)

// Expired sessions are swept at most once per interval.
const listingSessionSweepInterval = time.Minute

type memoryListingSession struct {
	session   entity.ListingSession
	expiresAt time.Time
}

type listingSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]memoryListingSession
	ttl      time.Duration
	now      func() time.Time

	sweepInterval time.Duration
	lastSweep     time.Time
}

// NewListingSessionRepository keeps sessions in process memory. Sessions
// expire ttl after their last save.
func NewListingSessionRepository(ttl time.Duration) domainRepo.ListingSessionRepository {
	return &listingSessionRepository{
		sessions: make(map[uuid.UUID]memoryListingSession),
		ttl:      ttl,
		now:      time.Now,

		sweepInterval: listingSessionSweepInterval,
	}
}

func (r *listingSessionRepository) Save(ctx context.Context, session *entity.ListingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sessions[session.ID] = memoryListingSession{
		session:   *session,
		expiresAt: now.Add(r.ttl),
	}

	if now.Sub(r.lastSweep) >= r.sweepInterval {
		r.sweepExpired(now)
	}
	return nil
}

// sweepExpired drops expired sessions. The caller holds the write lock.
func (r *listingSessionRepository) sweepExpired(now time.Time) {
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
		}
	}
	r.lastSweep = now
}

func (r *listingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ListingSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok || r.now().After(s.expiresAt) {
		return nil, nil
	}
	session := s.session
	return &session, nil
}

func (r *listingSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
