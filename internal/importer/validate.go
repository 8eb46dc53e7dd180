package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

// ValidatePlanFile checks an import document before conversion. It
// returns every problem found, not just the first.
func ValidatePlanFile(f *PlanFile) []error {
	var errs []error

	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if f.Activities == nil && f.PlanData == nil {
		errs = append(errs, fmt.Errorf("activities is required"))
	}
	if f.StartDate != "" {
		if _, err := domain.ParseDate(f.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("startDate: %w", err))
		}
	}
	if f.NumberOfDays.Set && (f.NumberOfDays.Value < 1 || f.NumberOfDays.Value > domain.MaxPlanDays) {
		errs = append(errs, fmt.Errorf("numberOfDays: %d is not between 1 and %d", f.NumberOfDays.Value, domain.MaxPlanDays))
	}

	for key, a := range f.Activities {
		if a.ID != "" && a.ID != key {
			errs = append(errs, fmt.Errorf("activities[%s]: id %q does not match its key", key, a.ID))
		}
		if err := a.Validate(); err != nil {
			errs = append(errs, activityError(fmt.Sprintf("activities[%s]", key), err))
		}
	}
	for i, day := range f.PlanData {
		for j, a := range day.Activities {
			if err := a.Validate(); err != nil {
				errs = append(errs, activityError(fmt.Sprintf("planData[%d].activities[%d]", i, j), err))
			}
		}
	}

	seen := map[string]bool{}
	for i, c := range f.Categories {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("categories[%d].id is required", i))
		} else if seen[c.ID] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = true
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("categories[%d]: %w", i, err))
		}
	}

	return errs
}

func activityError(path string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("%s.%s: %s", path, ve.Field, ve.Message)
	}
	return fmt.Errorf("%s: %w", path, err)
}
