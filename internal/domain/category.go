package domain

import (
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category groups activities under a shared color.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate checks that the category has a name and a #rrggbb color.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("category.name", "name is required")
	}
	if !hexColorPattern.MatchString(c.Color) {
		return invalid("category.color", "color %q must be #rrggbb", c.Color)
	}
	return nil
}

// DefaultCategories returns the categories a fresh plan starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-1", Name: "Preparation", Color: "#ffc107"},
		{ID: "cat-2", Name: "Meals", Color: "#dc3545"},
		{ID: "cat-3", Name: "Transit", Color: "#17a2b8"},
		{ID: "cat-4", Name: "Free time", Color: "#28a745"},
		{ID: "cat-5", Name: "Tasks", Color: "#6c757d"},
	}
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
