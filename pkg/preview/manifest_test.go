package preview

import (
	"slices"
	"testing"
)

func TestManifestFor_Laravel(t *testing.T) {
	m, err := ManifestFor("laravel")
	if err != nil {
		t.Fatalf("ManifestFor() error: %v", err)
	}
	if m.Name != "laravel/laravel" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.PHP != "^8.2" {
		t.Errorf("PHP = %q, want ^8.2", m.PHP)
	}

	want := []string{
		"laravel/framework", "laravel/sanctum", "laravel/tinker",
		"fakerphp/faker", "laravel/pint", "laravel/sail", "mockery/mockery",
		"nunomaduro/collision", "phpunit/phpunit", "spatie/laravel-ignition",
	}
	if got := m.Packages(); !slices.Equal(got, want) {
		t.Errorf("Packages() = %v, want %v", got, want)
	}
	if m.Requirements[0].Dev || !m.Requirements[3].Dev {
		t.Error("require and require-dev entries not flagged correctly")
	}
	if m.Requirements[1].Constraint != "^3.2" {
		t.Errorf("sanctum constraint = %q", m.Requirements[1].Constraint)
	}
}

func TestManifestFor_FiltersPlatform(t *testing.T) {
	m, err := ManifestFor("symfony")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range m.Packages() {
		if name == "php" || name == "ext-ctype" || name == "ext-iconv" {
			t.Errorf("platform requirement %q was not filtered", name)
		}
	}

	m, err = ManifestFor("slim")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(m.Packages(), "php-di/php-di") {
		t.Error("php-di/php-di is a regular package and must be kept")
	}
}

func TestIsPlatformRequirement(t *testing.T) {
	tests := map[string]bool{
		"php":                  true,
		"PHP":                  true,
		"php-64bit":            true,
		"ext-json":             true,
		"lib-curl":             true,
		"composer-plugin-api":  true,
		"composer-runtime-api": true,
		"php-di/php-di":        false,
		"laravel/framework":    false,
	}
	for name, want := range tests {
		if got := isPlatformRequirement(name); got != want {
			t.Errorf("isPlatformRequirement(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	if _, err := ParseManifest([]byte("{")); err == nil {
		t.Error("ParseManifest() should fail on truncated JSON")
	}
}
