package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	sessionLockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	sessionLockStaleThreshold = 10 * time.Minute
)

// SessionLockService serializes work on a single listing session. Every
// read-reduce-save cycle for a session runs under that session's mutex, so
// events for one session are applied one at a time while different sessions
// proceed in parallel.
//
// Call Stop() during graceful shutdown.
type SessionLockService struct {
	log *logrus.Logger

	sessionMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	cleanupInterval time.Duration
	staleThreshold  time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix nanoseconds
}

// NewSessionLockService starts the background cleanup goroutine.
func NewSessionLockService(log *logrus.Logger) *SessionLockService {
	return newSessionLockService(log, sessionLockCleanupInterval, sessionLockStaleThreshold)
}

func newSessionLockService(log *logrus.Logger, cleanupInterval, staleThreshold time.Duration) *SessionLockService {
	svc := &SessionLockService{
		log:             log,
		cleanupInterval: cleanupInterval,
		staleThreshold:  staleThreshold,
		stopChan:        make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// Stop is safe to call multiple times.
func (s *SessionLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SessionLockService stopped")
	}
}

// Lock acquires the session's mutex and returns its unlock func.
func (s *SessionLockService) Lock(sessionID uuid.UUID) func() {
	mt := s.getSessionMutex(sessionID)
	mt.mu.Lock()
	return func() {
		mt.lastUsed.Store(time.Now().UnixNano())
		mt.mu.Unlock()
	}
}

// Forget drops the session's mutex immediately. The caller must hold the lock.
func (s *SessionLockService) Forget(sessionID uuid.UUID) {
	s.sessionMu.Delete(sessionID)
}

func (s *SessionLockService) getSessionMutex(sessionID uuid.UUID) *mutexWithTimestamp {
	mt, _ := s.sessionMu.LoadOrStore(sessionID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().UnixNano())
	return result
}

func (s *SessionLockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Session lock cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes only removes mutexes it can TryLock; lastUsed is
// checked while holding the lock.
func (s *SessionLockService) cleanupStaleMutexes() int {
	cutoff := time.Now().Add(-s.staleThreshold).UnixNano()
	var cleaned int

	s.sessionMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff {
				s.sessionMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale session locks", cleaned)
	}
	return cleaned
}
