package catalog

import (
	"context"
	"strings"

	"github.com/matzehuels/phpgen/pkg/observability"
)

// Result is a dependency matched by [Search] together with the category it
// was found in.
type Result struct {
	Dependency
	Category string `json:"category"`
}

// Search returns the dependencies of framework whose name or description
// contains query, ignoring case. Results keep catalog order: categories
// first, then dependencies within each category.
//
// A query consisting only of whitespace yields no results. Otherwise the
// query is matched as typed, so leading or trailing spaces take part in
// the comparison.
func Search(framework, query string) []Result {
	return SearchContext(context.Background(), framework, query)
}

// SearchContext is [Search] with a context for observability hooks.
func SearchContext(ctx context.Context, framework, query string) []Result {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	q := strings.ToLower(query)
	var out []Result
	for _, c := range Categories(framework) {
		for _, d := range c.Dependencies {
			if matches(d, q) {
				out = append(out, Result{Dependency: d, Category: c.ID})
			}
		}
	}

	observability.Catalog().OnSearch(ctx, framework, query, len(out))
	return out
}

func matches(d Dependency, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(d.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(d.Description), lowerQuery)
}
