package catalog

import (
	"slices"
	"strings"

	"github.com/matzehuels/phpgen/pkg/errors"
)

// Dependency describes one Composer package offered by the selector.
type Dependency struct {
	ID          string `json:"id"`          // Composer package name, e.g. "laravel/sanctum"
	Name        string `json:"name"`        // Display name, e.g. "Laravel Sanctum"
	Description string `json:"description"` // One-line summary
}

// Category groups dependencies under a tab of the selector.
type Category struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Dependencies []Dependency `json:"dependencies"`
}

// Framework is a supported PHP framework and its dependency catalog.
type Framework struct {
	ID         string     // Identifier used in forms and URLs, e.g. "codeigniter"
	Name       string     // Display name, e.g. "CodeIgniter"
	categories []Category // Ordered; the first one is the default tab
}

// Categories returns a copy of the framework's dependency categories.
func (f *Framework) Categories() []Category {
	out := make([]Category, len(f.categories))
	for i, c := range f.categories {
		out[i] = Category{ID: c.ID, Name: c.Name, Dependencies: slices.Clone(c.Dependencies)}
	}
	return out
}

// Frameworks returns all supported frameworks in display order.
func Frameworks() []*Framework {
	return slices.Clone(all)
}

// IDs returns the identifiers of all supported frameworks in display order.
func IDs() []string {
	ids := make([]string, len(all))
	for i, f := range all {
		ids[i] = f.ID
	}
	return ids
}

// LookupFramework finds a framework by its exact identifier.
func LookupFramework(id string) (*Framework, bool) {
	for _, f := range all {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// ParseFramework resolves user input such as "Laravel" or " slim " to a
// framework. Matching ignores case and surrounding whitespace and accepts
// either the identifier or the display name.
func ParseFramework(s string) (*Framework, error) {
	s = strings.TrimSpace(s)
	for _, f := range all {
		if strings.EqualFold(f.ID, s) || strings.EqualFold(f.Name, s) {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFramework,
		"unknown framework %q (available: %s)", s, strings.Join(IDs(), ", "))
}

// Categories returns the dependency categories for a framework identifier.
// Unknown frameworks have an empty catalog.
func Categories(framework string) []Category {
	f, ok := LookupFramework(framework)
	if !ok {
		return nil
	}
	return f.Categories()
}

// DefaultCategory returns the ID of the tab shown first for a framework,
// or "" when the framework has no categories.
func DefaultCategory(framework string) string {
	f, ok := LookupFramework(framework)
	if !ok || len(f.categories) == 0 {
		return ""
	}
	return f.categories[0].ID
}

// CategoryByID returns one category of a framework by ID.
func CategoryByID(framework, id string) (Category, bool) {
	for _, c := range Categories(framework) {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Lookup finds a dependency descriptor in a framework's catalog.
func Lookup(framework, id string) (Dependency, bool) {
	for _, c := range Categories(framework) {
		for _, d := range c.Dependencies {
			if d.ID == id {
				return d, true
			}
		}
	}
	return Dependency{}, false
}

// LookupAny finds a dependency descriptor in any framework's catalog.
// Selections survive framework switches, so a selected ID may belong to a
// framework other than the current one.
func LookupAny(id string) (Dependency, bool) {
	for _, f := range all {
		if d, ok := Lookup(f.ID, id); ok {
			return d, true
		}
	}
	return Dependency{}, false
}
