package catalog

import (
	"testing"

	"github.com/matzehuels/phpgen/pkg/errors"
)

func TestFrameworksOrder(t *testing.T) {
	want := []string{"laravel", "symfony", "codeigniter", "slim", "lumen"}
	got := IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"laravel", "laravel", false},
		{"Laravel", "laravel", false},
		{" SLIM ", "slim", false},
		{"CodeIgniter", "codeigniter", false},
		{"rails", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFramework(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFramework(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFramework) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFramework)
				}
				return
			}
			if f.ID != tt.want {
				t.Errorf("ParseFramework(%q) = %q, want %q", tt.input, f.ID, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		framework string
		want      []string
	}{
		{"laravel", []string{"database", "ui", "testing"}},
		{"symfony", []string{"database", "ui", "api"}},
		{"codeigniter", []string{"database", "ui"}},
		{"slim", []string{"core"}},
		{"lumen", []string{"core"}},
		{"unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			cats := Categories(tt.framework)
			if len(cats) != len(tt.want) {
				t.Fatalf("len(Categories) = %d, want %d", len(cats), len(tt.want))
			}
			for i, c := range cats {
				if c.ID != tt.want[i] {
					t.Errorf("category[%d] = %q, want %q", i, c.ID, tt.want[i])
				}
			}
		})
	}
}

func TestDefaultCategory(t *testing.T) {
	if got := DefaultCategory("symfony"); got != "database" {
		t.Errorf("DefaultCategory(symfony) = %q, want database", got)
	}
	if got := DefaultCategory("slim"); got != "core" {
		t.Errorf("DefaultCategory(slim) = %q, want core", got)
	}
	if got := DefaultCategory("zend"); got != "" {
		t.Errorf("DefaultCategory(zend) = %q, want empty", got)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories("laravel")
	cats[0].Dependencies[0].Name = "mutated"
	cats[0].Name = "mutated"

	again := Categories("laravel")
	if again[0].Name != "Database" {
		t.Error("category name was mutated through returned copy")
	}
	if again[0].Dependencies[0].Name != "Laravel Sanctum" {
		t.Error("dependency was mutated through returned copy")
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("symfony", "api-platform/core")
	if !ok {
		t.Fatal("Lookup(symfony, api-platform/core) not found")
	}
	if d.Name != "API Platform" || d.Description != "REST and GraphQL framework" {
		t.Errorf("Lookup() = %+v", d)
	}

	if _, ok := Lookup("laravel", "api-platform/core"); ok {
		t.Error("Lookup should not cross frameworks")
	}

	if d, ok := LookupAny("tymon/jwt-auth"); !ok || d.Name != "JWT Auth" {
		t.Errorf("LookupAny(tymon/jwt-auth) = %+v, %v", d, ok)
	}
}

func TestCategoryByID(t *testing.T) {
	c, ok := CategoryByID("codeigniter", "ui")
	if !ok {
		t.Fatal("CategoryByID(codeigniter, ui) not found")
	}
	if len(c.Dependencies) != 3 || c.Dependencies[0].ID != "codeigniter4/shield" {
		t.Errorf("unexpected category: %+v", c)
	}
	if _, ok := CategoryByID("codeigniter", "testing"); ok {
		t.Error("CategoryByID(codeigniter, testing) should not exist")
	}
}

func TestCatalogIDsUniquePerFramework(t *testing.T) {
	for _, f := range Frameworks() {
		seen := map[string]bool{}
		for _, c := range f.Categories() {
			for _, d := range c.Dependencies {
				if seen[d.ID] {
					t.Errorf("%s: duplicate dependency %q", f.ID, d.ID)
				}
				seen[d.ID] = true
				if errors.ValidateComposerPackageName(d.ID) != nil {
					t.Errorf("%s: %q is not a composer package name", f.ID, d.ID)
				}
			}
		}
	}
}
