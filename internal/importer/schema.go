package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

// PlanFile is the top-level JSON structure of an exported plan. Files
// written by early builds nest activities under planData days instead of
// the activities map; both shapes are accepted.
type PlanFile struct {
	Name         string                     `json:"name"`
	StartDate    string                     `json:"startDate"`
	NumberOfDays FlexInt                    `json:"numberOfDays"`
	Activities   map[string]domain.Activity `json:"activities"`
	PlanData     []DayImport                `json:"planData,omitempty"`
	Categories   []domain.Category          `json:"categories,omitempty"`
}

// DayImport is one day of the legacy nested layout.
type DayImport struct {
	ISODate    string            `json:"isoDate"`
	Activities []domain.Activity `json:"activities"`
}

// FlexInt decodes a JSON number or a numeric string. Set is false when the
// field was absent or null.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	var n json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = FlexInt{}
			return nil
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return fmt.Errorf("numberOfDays: %q is not a whole number", n.String())
	}
	*f = FlexInt{Value: v, Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// ParsePlanFile decodes an import document.
func ParsePlanFile(data []byte) (*PlanFile, error) {
	var f PlanFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}

// LoadPlanFile reads and parses a plan JSON file.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlanFile(data)
}
