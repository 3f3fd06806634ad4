package project

import (
	"slices"
	"strings"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
)

// Form defaults.
const (
	DefaultFramework   = "laravel"
	DefaultPHPVersion  = "8.2"
	DefaultName        = "my-app"
	DefaultDescription = "My PHP application"
)

// phpVersions lists the selectable PHP versions, newest first.
var phpVersions = []string{"8.3", "8.2", "8.1", "8.0", "7.4"}

// PHPVersions returns the supported PHP versions, newest first.
func PHPVersions() []string {
	return slices.Clone(phpVersions)
}

// Config is the state of the project form.
type Config struct {
	Framework    string    `json:"framework"`
	PHPVersion   string    `json:"php_version"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	Dependencies Selection `json:"dependencies"`
	Features     Selection `json:"features"`
}

// Default returns a form in its initial state.
func Default() Config {
	return Config{
		Framework:   DefaultFramework,
		PHPVersion:  DefaultPHPVersion,
		Name:        DefaultName,
		Description: DefaultDescription,
	}
}

// Reset restores every field to its default.
func (c *Config) Reset() {
	*c = Default()
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Dependencies = NewSelection(c.Dependencies.IDs()...)
	out.Features = NewSelection(c.Features.IDs()...)
	return out
}

// SetFramework switches the framework. Features the new framework does not
// offer are unchecked; selected dependencies are kept.
func (c *Config) SetFramework(s string) error {
	f, err := catalog.ParseFramework(s)
	if err != nil {
		return err
	}
	c.Framework = f.ID
	for _, id := range c.Features.IDs() {
		if feat, ok := LookupFeature(id); !ok || !feat.Supports(f.ID) {
			c.Features.Remove(id)
		}
	}
	return nil
}

// SetPHPVersion selects a PHP version. Values may carry a "PHP " prefix as
// shown in the selector.
func (c *Config) SetPHPVersion(v string) error {
	v = normalizePHPVersion(v)
	if !slices.Contains(phpVersions, v) {
		return errors.New(errors.ErrCodeInvalidPHPVersion,
			"unsupported PHP version %q (available: %s)", v, strings.Join(phpVersions, ", "))
	}
	c.PHPVersion = v
	return nil
}

func normalizePHPVersion(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 3 && strings.EqualFold(v[:3], "php") {
		v = strings.TrimSpace(v[3:])
	}
	return v
}

// AddDependency selects a dependency. Adding an already selected package
// leaves the selection unchanged and returns false.
func (c *Config) AddDependency(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if err := errors.ValidateComposerPackageName(id); err != nil {
		return false, err
	}
	return c.Dependencies.Add(id), nil
}

// RemoveDependency deselects a dependency; it reports whether it was selected.
func (c *Config) RemoveDependency(id string) bool {
	return c.Dependencies.Remove(strings.TrimSpace(id))
}

// SetFeature checks or unchecks an optional feature. Features that the
// current framework does not offer cannot be checked.
func (c *Config) SetFeature(id string, on bool) error {
	f, ok := LookupFeature(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFeature, "unknown feature %q", id)
	}
	if !on {
		c.Features.Remove(id)
		return nil
	}
	if !f.Supports(c.Framework) {
		return errors.New(errors.ErrCodeInvalidFeature,
			"feature %q is not available for %s", id, c.Framework)
	}
	c.Features.Add(id)
	return nil
}

// HasFeature reports whether a feature is checked.
func (c Config) HasFeature(id string) bool {
	return c.Features.Has(id)
}

// Validate checks that the form describes a project phpgen knows about.
// Free-text fields are optional; they only must not contain control
// characters.
func (c Config) Validate() error {
	if _, ok := catalog.LookupFramework(c.Framework); !ok {
		return errors.New(errors.ErrCodeInvalidFramework,
			"unknown framework %q (available: %s)", c.Framework, strings.Join(catalog.IDs(), ", "))
	}
	if !slices.Contains(phpVersions, c.PHPVersion) {
		return errors.New(errors.ErrCodeInvalidPHPVersion, "unsupported PHP version %q", c.PHPVersion)
	}

	fields := []struct{ name, value string }{
		{"project name", c.Name},
		{"description", c.Description},
		{"author name", c.AuthorName},
		{"author email", c.AuthorEmail},
	}
	for _, f := range fields {
		if err := errors.ValidateText(f.name, f.value); err != nil {
			return err
		}
	}

	for _, id := range c.Dependencies.IDs() {
		if err := errors.ValidateComposerPackageName(id); err != nil {
			return err
		}
	}
	for _, id := range c.Features.IDs() {
		f, ok := LookupFeature(id)
		if !ok {
			return errors.New(errors.ErrCodeInvalidFeature, "unknown feature %q", id)
		}
		if !f.Supports(c.Framework) {
			return errors.New(errors.ErrCodeInvalidFeature,
				"feature %q is not available for %s", id, c.Framework)
		}
	}
	return nil
}
