package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

// SQLitePlanStateRepo stores the plan, the categories and the history log
// as JSON values under KeyPlan, KeyCategories and KeyHistory. Saves run in
// one transaction.
type SQLitePlanStateRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLitePlanStateRepo creates a new SQLitePlanStateRepo.
func NewSQLitePlanStateRepo(conn db.DBTX, uow db.UnitOfWork) *SQLitePlanStateRepo {
	return &SQLitePlanStateRepo{db: conn, uow: uow}
}

type snapshotDoc struct {
	Plan       domain.Plan       `json:"plan"`
	Categories []domain.Category `json:"categories"`
}

type historyDoc struct {
	Cursor  int           `json:"cursor"`
	Entries []snapshotDoc `json:"entries"`
}

func (r *SQLitePlanStateRepo) Load(ctx context.Context) (State, error) {
	kv := NewSQLiteKVRepo(r.db)
	var s State

	var plan domain.Plan
	switch ok, err := loadJSON(ctx, kv, KeyPlan, &plan, &s.Corrupt); {
	case err != nil:
		return State{}, err
	case ok:
		if plan.Activities == nil {
			plan.Activities = map[string]domain.Activity{}
		}
		plan = plan.WithDays()
		s.Plan = &plan
	}

	var categories []domain.Category
	switch ok, err := loadJSON(ctx, kv, KeyCategories, &categories, &s.Corrupt); {
	case err != nil:
		return State{}, err
	case ok:
		s.Categories = categories
		if s.Categories == nil {
			s.Categories = []domain.Category{}
		}
	}

	var hist historyDoc
	switch ok, err := loadJSON(ctx, kv, KeyHistory, &hist, &s.Corrupt); {
	case err != nil:
		return State{}, err
	case ok:
		s.Cursor = hist.Cursor
		for _, e := range hist.Entries {
			p := e.Plan
			if p.Activities == nil {
				p.Activities = map[string]domain.Activity{}
			}
			s.History = append(s.History, domain.Snapshot{Plan: p.WithDays(), Categories: e.Categories})
		}
	}

	return s, nil
}

// loadJSON decodes key into v. It reports false for a missing key and for
// a value that does not decode; the latter is recorded in corrupt.
func loadJSON(ctx context.Context, kv KVRepo, key string, v any, corrupt *[]string) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		*corrupt = append(*corrupt, key)
		return false, nil
	}
	return true, nil
}

// Save writes the whole state. An empty plan (no name, no activities)
// removes the plan key.
func (r *SQLitePlanStateRepo) Save(ctx context.Context, s State) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := NewSQLiteKVRepo(tx)

		if s.Plan == nil || (s.Plan.Name == "" && len(s.Plan.Activities) == 0) {
			if err := kv.Delete(ctx, KeyPlan); err != nil {
				return err
			}
		} else if err := putJSON(ctx, kv, KeyPlan, s.Plan); err != nil {
			return err
		}

		if s.Categories != nil {
			if err := putJSON(ctx, kv, KeyCategories, s.Categories); err != nil {
				return err
			}
		}

		hist := historyDoc{Cursor: s.Cursor, Entries: make([]snapshotDoc, len(s.History))}
		for i, e := range s.History {
			hist.Entries[i] = snapshotDoc{Plan: e.Plan, Categories: e.Categories}
		}
		return putJSON(ctx, kv, KeyHistory, hist)
	})
}

func putJSON(ctx context.Context, kv KVRepo, key string, v any) error {
	value, err := encode(key, v)
	if err != nil {
		return err
	}
	if err := kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
