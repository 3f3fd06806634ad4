package preview

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/phpgen/pkg/errors"
)

// Requirement is one package constraint from a composer manifest.
type Requirement struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint"`
	Dev        bool   `json:"dev,omitempty"`
}

// Manifest is the decoded composer.json of a preview.
type Manifest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	PHP          string        `json:"php"`          // constraint on the php platform package
	Requirements []Requirement `json:"requirements"` // sorted by name, require before require-dev
}

type composerFile struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Require     map[string]string `json:"require"`
	RequireDev  map[string]string `json:"require-dev"`
}

// ParseManifest decodes a composer.json document. Platform requirements
// (php, extensions, libraries, composer APIs) are left out of
// Requirements; the php constraint is kept separately.
func ParseManifest(data []byte) (*Manifest, error) {
	var comp composerFile
	if err := json.Unmarshal(data, &comp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode composer.json")
	}

	m := &Manifest{
		Name:        comp.Name,
		Description: comp.Description,
		PHP:         comp.Require["php"],
	}
	m.Requirements = append(m.Requirements, requirements(comp.Require, false)...)
	m.Requirements = append(m.Requirements, requirements(comp.RequireDev, true)...)
	return m, nil
}

// ManifestFor decodes the composer.json preview of framework.
func ManifestFor(framework string) (*Manifest, error) {
	p, err := For(framework)
	if err != nil {
		return nil, err
	}
	return ParseManifest([]byte(p.ComposerJSON))
}

// Packages returns the names of all non-platform requirements.
func (m *Manifest) Packages() []string {
	out := make([]string, len(m.Requirements))
	for i, r := range m.Requirements {
		out[i] = r.Name
	}
	return out
}

func requirements(reqs map[string]string, dev bool) []Requirement {
	var out []Requirement
	for _, name := range slices.Sorted(maps.Keys(reqs)) {
		if isPlatformRequirement(name) {
			continue
		}
		out = append(out, Requirement{Name: name, Constraint: reqs[name], Dev: dev})
	}
	return out
}

func isPlatformRequirement(name string) bool {
	ln := strings.ToLower(name)
	switch {
	case ln == "php" || ln == "composer-plugin-api" || ln == "composer-runtime-api":
		return true
	case strings.HasPrefix(ln, "php-") && !strings.Contains(ln, "/"):
		return true
	case strings.HasPrefix(ln, "ext-") || strings.HasPrefix(ln, "lib-"):
		return true
	}
	return false
}
