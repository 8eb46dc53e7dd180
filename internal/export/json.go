package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/planboard/internal/domain"
)

// WriteJSON writes the plan object, indented by two spaces, in the shape
// the importer reads back.
func WriteJSON(w io.Writer, p domain.Plan) error {
	if p.Activities == nil {
		p.Activities = map[string]domain.Activity{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return nil
}
