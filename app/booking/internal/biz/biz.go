package biz

import (
	"context"
)

// CatalogLoader supplies the trains and users present at startup.
type CatalogLoader interface {
	LoadTrains(ctx context.Context) ([]*TrainState, error)
	LoadUsers(ctx context.Context) ([]*UserState, error)
}

// StateWriter durably persists the full current state.
type StateWriter interface {
	SaveTrains(ctx context.Context, trains []*TrainState) error
	SaveUsers(ctx context.Context, users []*UserState) error
}

// StateRepo is implemented by every persistence backend in data.
type StateRepo interface {
	CatalogLoader
	StateWriter
}
