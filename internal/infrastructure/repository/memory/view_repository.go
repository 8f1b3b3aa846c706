package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/sport-search/internal/domain/view"
)

type ViewRepository struct {
	mu    sync.RWMutex
	items map[string]view.State
}

func NewViewRepository() *ViewRepository {
	return &ViewRepository{
		items: make(map[string]view.State),
	}
}

func (r *ViewRepository) Get(_ context.Context, sessionID string) (view.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.items[sessionID]
	if !ok {
		return view.State{}, false, nil
	}

	return state, true, nil
}

func (r *ViewRepository) Save(_ context.Context, state view.State) error {
	if state.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	r.mu.Lock()
	r.items[state.SessionID] = state
	r.mu.Unlock()

	return nil
}
