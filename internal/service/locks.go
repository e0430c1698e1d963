package service

import (
	"sync"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

// lockTable hands out one exclusive token per intent id. An id is present
// only while its token is held, so the table never outgrows the work in flight.
type lockTable struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newLockTable() *lockTable {
	return &lockTable{held: make(map[string]struct{})}
}

func (t *lockTable) tryAcquire(id string) (func(), bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, busy := t.held[id]; busy {
		return nil, false
	}
	t.held[id] = struct{}{}

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.held, id)
	}, true
}

// withIntentLock runs fn while holding the intent's token. A transition
// already in flight for the same intent yields a ConflictError.
func (s *PaymentService) withIntentLock(intentID string, fn func() error) error {
	release, ok := s.locks.tryAcquire(intentID)
	if !ok {
		return &models.ConflictError{IntentID: intentID, Reason: "another transition is in progress"}
	}
	defer release()
	return fn()
}
