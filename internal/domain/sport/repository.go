package sport

import "context"

// Repository describes catalog lookups needed by use cases.
type Repository interface {
	List(ctx context.Context) ([]Sport, error)
	GetByID(ctx context.Context, sportID string) (Sport, bool, error)
}
