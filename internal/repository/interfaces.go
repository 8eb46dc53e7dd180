package repository

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
)

// KVRepo is the opaque key-value store the editor persists into.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Entry(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// State is everything planboard persists. A nil Plan or Categories means
// the key was absent (or unreadable, see Corrupt).
type State struct {
	Plan       *domain.Plan
	Categories []domain.Category
	History    []domain.Snapshot
	Cursor     int
	// Corrupt lists keys whose stored value could not be decoded. They
	// are treated as absent and overwritten by the next save.
	Corrupt []string
}

// PlanStateRepo loads and saves the typed editor state.
type PlanStateRepo interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}
