package service

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/export"
	"github.com/alexanderramin/planboard/internal/importer"
	"github.com/alexanderramin/planboard/internal/timeline"
)

// Editor is the plan store surface used by the CLI and the board.
type Editor interface {
	Load(ctx context.Context) error

	SetPlanInfo(ctx context.Context, name, startDate string, numberOfDays int) (Result, error)
	AddOrUpdateActivity(ctx context.Context, a domain.Activity) (domain.Activity, Result, error)
	UpdateMultipleActivities(ctx context.Context, activities []domain.Activity) (Result, error)
	DeleteActivities(ctx context.Context, ids []string) (Result, error)
	DuplicateActivity(ctx context.Context, id string) (domain.Activity, Result, error)
	SetCategories(ctx context.Context, categories []domain.Category) (Result, error)
	ClearPlan(ctx context.Context) (Result, error)
	ImportPlan(ctx context.Context, f *importer.PlanFile) (Result, error)
	ImportPlanJSON(ctx context.Context, data []byte) (Result, error)
	Undo(ctx context.Context) (Result, error)
	Redo(ctx context.Context) (Result, error)
	CanUndo() bool
	CanRedo() bool

	Select(id string, mode SelectMode) error
	ClearSelection()
	Selection() []string
	IsSelected(id string) bool

	Snapshot() domain.Snapshot
	Plan() domain.Plan
	Categories() []domain.Category
	Activity(id string) (domain.Activity, bool)
	Days() []domain.PlanDay
	SegmentsByDay() map[string][]timeline.Segment
	Summary() export.Summary
}

var _ Editor = (*PlanStore)(nil)
