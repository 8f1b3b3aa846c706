package view

import "context"

// Repository stores view states by session. States are ephemeral; nothing
// outlives the process.
type Repository interface {
	Get(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, state State) error
}
