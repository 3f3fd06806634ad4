package packagist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/phpgen/pkg/buildinfo"
	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/integrations"
)

// DefaultBaseURL is the public Composer repository.
const DefaultBaseURL = "https://repo.packagist.org"

// DefaultTTL is how long package metadata is cached.
const DefaultTTL = 24 * time.Hour

// Namespace scopes Packagist responses in the cache.
const Namespace = "packagist:"

// CacheKey is the cache key under which pkg's metadata is stored.
func CacheKey(pkg string) string {
	return cache.NewDefaultKeyer().HTTPKey(Namespace, integrations.NormalizePkgName(pkg))
}

// PackageInfo holds metadata for the latest stable release of a package.
type PackageInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description,omitempty"`
	Homepage     string            `json:"homepage,omitempty"`
	Repository   string            `json:"repository,omitempty"` // normalized https URL
	License      string            `json:"license,omitempty"`    // first license only
	Authors      []string          `json:"authors,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	ReleasedAt   *time.Time        `json:"released_at,omitempty"`
	Require      map[string]string `json:"require,omitempty"` // platform requirements removed
	PHP          string            `json:"php,omitempty"`     // php constraint of the release
	Versions     int               `json:"versions"`          // number of published versions
	Dependencies []string          `json:"dependencies,omitempty"`
}

// Client provides access to the Packagist p2 metadata API.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Packagist client caching responses in c for ttl.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(c cache.Cache, ttl time.Duration, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(c, Namespace, ttl, map[string]string{"User-Agent": buildinfo.UserAgent()}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage retrieves the latest stable release of pkg ("vendor/name").
// refresh bypasses the cache. Unknown packages yield an error wrapping
// [integrations.ErrNotFound].
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data p2Response
	if err := c.Get(ctx, fmt.Sprintf("%s/p2/%s.json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: packagist package %s", err, pkg)
		}
		return err
	}

	versions, ok := data.Packages[pkg]
	if !ok || len(versions) == 0 {
		return fmt.Errorf("%w: no versions found for %s", integrations.ErrNotFound, pkg)
	}

	v := latestStable(versions)

	var license string
	if len(v.License) > 0 {
		license = v.License[0]
	}
	var authors []string
	for _, a := range v.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	require := filterDeps(v.Require)
	*info = PackageInfo{
		Name:         v.Name,
		Version:      v.Version,
		Description:  v.Description,
		Homepage:     v.Homepage,
		Repository:   integrations.NormalizeRepoURL(v.Source.URL),
		License:      license,
		Authors:      authors,
		Keywords:     v.Keywords,
		ReleasedAt:   v.Time,
		Require:      require,
		PHP:          v.Require["php"],
		Versions:     len(versions),
		Dependencies: slices.Sorted(maps.Keys(require)),
	}
	return nil
}

func filterDeps(require map[string]string) map[string]string {
	deps := make(map[string]string)
	for name, constraint := range require {
		ln := strings.ToLower(name)
		switch {
		case ln == "php" || ln == "composer-plugin-api" || ln == "composer-runtime-api":
			continue
		case strings.HasPrefix(ln, "ext-") || strings.HasPrefix(ln, "lib-"):
			continue
		case !strings.Contains(ln, "/"):
			continue
		}
		deps[ln] = constraint
	}
	return deps
}

// latestStable picks the first non-dev release with a dotted version. p2
// lists versions newest first.
func latestStable(versions []p2Version) p2Version {
	for _, v := range versions {
		lv := strings.ToLower(v.Version)
		if strings.Contains(lv, "dev") {
			continue
		}
		if strings.Contains(strings.TrimPrefix(lv, "v"), ".") {
			return v
		}
	}
	return versions[0]
}

type p2Response struct {
	Packages map[string][]p2Version `json:"packages"`
}

type p2Author struct {
	Name string `json:"name"`
}

type p2Version struct {
	Name        string
	Version     string
	Description string
	Homepage    string
	Keywords    []string
	Time        *time.Time
	License     []string
	Require     map[string]string
	Source      struct {
		URL string `json:"url"`
	}
	Authors []p2Author
}

// UnmarshalJSON tolerates the loose typing of p2 metadata: license may be a
// string or a list, and minified responses use "__unset" for dropped
// fields.
func (v *p2Version) UnmarshalJSON(b []byte) error {
	var r struct {
		Name        string          `json:"name"`
		Version     string          `json:"version"`
		Description string          `json:"description"`
		Homepage    string          `json:"homepage"`
		Keywords    json.RawMessage `json:"keywords"`
		Time        string          `json:"time"`
		License     json.RawMessage `json:"license"`
		Require     json.RawMessage `json:"require"`
		Source      json.RawMessage `json:"source"`
		Authors     json.RawMessage `json:"authors"`
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}

	v.Name = r.Name
	v.Version = r.Version
	v.Description = r.Description
	v.Homepage = r.Homepage

	if t, err := time.Parse(time.RFC3339, r.Time); err == nil {
		v.Time = &t
	}
	if isSet(r.Keywords) {
		_ = json.Unmarshal(r.Keywords, &v.Keywords)
	}
	if isSet(r.Source) {
		_ = json.Unmarshal(r.Source, &v.Source)
	}
	if isSet(r.Authors) {
		_ = json.Unmarshal(r.Authors, &v.Authors)
	}

	if isSet(r.License) {
		if err := json.Unmarshal(r.License, &v.License); err != nil {
			var single string
			if json.Unmarshal(r.License, &single) == nil && single != "" {
				v.License = []string{single}
			}
		}
	}

	if isSet(r.Require) {
		v.Require = make(map[string]string)
		if err := json.Unmarshal(r.Require, &v.Require); err != nil {
			var anyObj map[string]any
			if json.Unmarshal(r.Require, &anyObj) == nil {
				for k, val := range anyObj {
					if s, ok := val.(string); ok {
						v.Require[k] = s
					}
				}
			}
		}
	}
	return nil
}

func isSet(raw json.RawMessage) bool {
	s := string(raw)
	return len(raw) > 0 && s != "null" && s != `"__unset"`
}
