// Package catalog holds the static dependency catalog for each supported PHP
// framework.
//
// # Overview
//
// phpgen knows five frameworks: Laravel, Symfony, CodeIgniter, Slim and
// Lumen. Each [Framework] carries an ordered list of [Category] values, and
// each category lists [Dependency] descriptors keyed by their Composer
// package name (e.g. "laravel/sanctum").
//
// The catalog is compiled in. It is never fetched, mutated or persisted, and
// every accessor returns copies so callers cannot alter it.
//
// # Searching
//
// [Search] scans all categories of one framework and matches the query
// case-insensitively against dependency names and descriptions:
//
//	for _, d := range catalog.Search("laravel", "auth") {
//	    fmt.Println(d.ID, d.Name)
//	}
//
// A query that is empty after trimming whitespace returns no results; the
// UI shows the category tabs instead.
package catalog
