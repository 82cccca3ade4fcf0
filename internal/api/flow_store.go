package api

import (
	"sync"
	"time"

	"github.com/conectarapak/conectar/internal/services"
	"github.com/google/uuid"
)

// flowEntry is one live onboarding session. The completion callback fills
// completedUser and recoveryCode synchronously during the terminal submit,
// on the goroutine that triggered it.
type flowEntry struct {
	machine       *services.OnboardingMachine
	completedUser *completedOnboarding
	expiresAt     time.Time
}

type completedOnboarding struct {
	userID       uint
	identity     services.Identity
	recoveryCode string
}

type flowStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*flowEntry
	now     func() time.Time
}

func newFlowStore(ttl time.Duration) *flowStore {
	return &flowStore{
		ttl:     ttl,
		entries: make(map[string]*flowEntry),
		now:     time.Now,
	}
}

func (store *flowStore) Create(entry *flowEntry) string {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sweepLocked()
	flowID := uuid.NewString()
	entry.expiresAt = store.now().Add(store.ttl)
	store.entries[flowID] = entry
	return flowID
}

func (store *flowStore) Get(flowID string) (*flowEntry, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sweepLocked()
	entry, exists := store.entries[flowID]
	if !exists {
		return nil, false
	}
	entry.expiresAt = store.now().Add(store.ttl)
	return entry, true
}

func (store *flowStore) Remove(flowID string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.entries, flowID)
}

func (store *flowStore) sweepLocked() {
	now := store.now()
	for flowID, entry := range store.entries {
		if entry.expiresAt.Before(now) {
			delete(store.entries, flowID)
		}
	}
}
