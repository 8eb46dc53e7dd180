package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/planboard/internal/repository"
)

// ErrStorageDown is returned by FailingStateRepo once failures are enabled.
var ErrStorageDown = errors.New("storage unavailable")

// FailingStateRepo wraps a PlanStateRepo and fails every Save while Fail is
// set. Loads pass through unless FailLoad is set.
type FailingStateRepo struct {
	Inner    repository.PlanStateRepo
	Fail     atomic.Bool
	FailLoad atomic.Bool
	Saves    atomic.Int32
}

func (f *FailingStateRepo) Load(ctx context.Context) (repository.State, error) {
	if f.FailLoad.Load() {
		return repository.State{}, ErrStorageDown
	}
	return f.Inner.Load(ctx)
}

func (f *FailingStateRepo) Save(ctx context.Context, s repository.State) error {
	f.Saves.Add(1)
	if f.Fail.Load() {
		return ErrStorageDown
	}
	return f.Inner.Save(ctx, s)
}
