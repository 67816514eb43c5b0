package domain

import (
	"regexp"
	"strings"
)

const (
	CategoryAll       = "all"
	CategoryPersonal  = "personal"
	CategoryWork      = "work"
	CategoryShopping  = "shopping"
	CategoryImportant = "important"
)

type Category struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Default bool   `yaml:"-"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DefaultCategories returns the built-in categories in sidebar order.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryAll, Label: "Dashboard", Default: true},
		{ID: CategoryPersonal, Label: "Personal", Default: true},
		{ID: CategoryWork, Label: "Work", Default: true},
		{ID: CategoryShopping, Label: "Shopping", Default: true},
		{ID: CategoryImportant, Label: "Important", Default: true},
	}
}

// IsVirtualCategory reports whether id names a filter rule rather than a storable category.
func IsVirtualCategory(id string) bool {
	return id == CategoryAll || id == CategoryImportant
}

// CategoryID derives the id of a category from its label.
func CategoryID(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
}

// AddCustomCategory appends a category built from label. The input slice is not modified.
func AddCustomCategory(custom []Category, label string) ([]Category, Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return custom, Category{}, ErrInvalidCategory
	}

	category := Category{ID: CategoryID(label), Label: label}
	if categoryExists(custom, category.ID) {
		return custom, Category{}, ErrCategoryExists
	}

	out := make([]Category, 0, len(custom)+1)
	out = append(out, custom...)
	out = append(out, category)
	return out, category, nil
}

// AllCategories is what the sidebar shows: defaults followed by custom categories.
func AllCategories(custom []Category) []Category {
	return append(DefaultCategories(), custom...)
}

// AssignableCategories lists the categories a task can be filed under.
func AssignableCategories(custom []Category) []Category {
	out := make([]Category, 0, len(custom)+3)
	for _, c := range DefaultCategories() {
		if IsVirtualCategory(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return append(out, custom...)
}

func categoryExists(custom []Category, id string) bool {
	for _, c := range DefaultCategories() {
		if c.ID == id {
			return true
		}
	}
	for _, c := range custom {
		if c.ID == id {
			return true
		}
	}
	return false
}
