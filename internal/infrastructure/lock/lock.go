package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const lockTimeout = 5 * time.Second

// UserLockManager serializes mutating sequences per user. Every collect,
// tap and upgrade takes this lock before opening its database transaction,
// so the read-check-write sequence is never interleaved for one user.
type UserLockManager struct {
	locks  sync.Map // map[int64]*sync.Mutex
	logger *logger.Logger
}

func NewUserLockManager(logger *logger.Logger) *UserLockManager {
	return &UserLockManager{logger: logger}
}

// Lock acquires the lock for the given userID with timeout
func (m *UserLockManager) Lock(ctx context.Context, userID int64) error {
	mu := m.getOrCreateMutex(userID)

	lockChan := make(chan struct{})
	go func() {
		mu.Lock()
		close(lockChan)
	}()

	select {
	case <-lockChan:
		m.logger.Debug("Acquired user lock", zap.Int64("userID", userID))
		return nil
	case <-ctx.Done():
		m.logger.Error("Failed to acquire user lock: context cancelled", zap.Int64("userID", userID), zap.Error(ctx.Err()))
		return fmt.Errorf("failed to acquire lock for user %d: %w", userID, ctx.Err())
	case <-time.After(lockTimeout):
		m.logger.Error("Failed to acquire user lock: timeout", zap.Int64("userID", userID), zap.Duration("timeout", lockTimeout))
		return fmt.Errorf("failed to acquire lock for user %d: timeout", userID)
	}
}

// Unlock releases the lock for the given userID
func (m *UserLockManager) Unlock(userID int64) {
	muInterface, ok := m.locks.Load(userID)
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.Int64("userID", userID))
		return
	}
	muInterface.(*sync.Mutex).Unlock()
	m.logger.Debug("Released user lock", zap.Int64("userID", userID))
}

// TryLock attempts to acquire the lock without blocking
func (m *UserLockManager) TryLock(userID int64) bool {
	return m.getOrCreateMutex(userID).TryLock()
}

func (m *UserLockManager) getOrCreateMutex(userID int64) *sync.Mutex {
	mu, ok := m.locks.Load(userID)
	if ok {
		return mu.(*sync.Mutex)
	}

	newMu := &sync.Mutex{}
	actual, _ := m.locks.LoadOrStore(userID, newMu)
	return actual.(*sync.Mutex)
}
