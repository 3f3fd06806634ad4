package preview

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
)

func TestFor_AllFrameworks(t *testing.T) {
	for _, id := range catalog.IDs() {
		t.Run(id, func(t *testing.T) {
			p, err := For(id)
			if err != nil {
				t.Fatalf("For(%q) error: %v", id, err)
			}
			if p.Framework != id {
				t.Errorf("Framework = %q, want %q", p.Framework, id)
			}
			if !strings.HasPrefix(p.Structure, "my-app/\n") {
				t.Errorf("Structure does not start with the project root: %q", p.Structure[:20])
			}
			if !strings.HasPrefix(p.MainFile, "<?php\n") {
				t.Errorf("MainFile does not start with <?php")
			}
			if p.MainFilePath == "" {
				t.Error("MainFilePath is empty")
			}
			if !json.Valid([]byte(p.ComposerJSON)) {
				t.Errorf("ComposerJSON is not valid JSON")
			}
		})
	}
}

func TestFor_MainFilePaths(t *testing.T) {
	tests := map[string]string{
		"laravel":     "app/Http/Controllers/HomeController.php",
		"symfony":     "src/Controller/HomeController.php",
		"codeigniter": "app/Controllers/Home.php",
		"slim":        "src/Controller/HomeController.php",
		"lumen":       "app/Http/Controllers/HomeController.php",
	}
	for fw, want := range tests {
		p, err := For(fw)
		if err != nil {
			t.Fatalf("For(%q) error: %v", fw, err)
		}
		if p.MainFilePath != want {
			t.Errorf("For(%q).MainFilePath = %q, want %q", fw, p.MainFilePath, want)
		}
		if got := MainFilePath(fw); got != want {
			t.Errorf("MainFilePath(%q) = %q, want %q", fw, got, want)
		}
	}
}

func TestFor_LiteralContent(t *testing.T) {
	p, err := For("laravel")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.ComposerJSON, `"description": "My PHP application"`) {
		t.Error("laravel composer.json lost its literal description")
	}
	if !strings.Contains(p.MainFile, "namespace App\\Http\\Controllers;") {
		t.Error("laravel main file has wrong namespace")
	}
	if !strings.HasSuffix(p.Structure, "README.md") {
		t.Errorf("laravel structure should end with README.md")
	}

	p, err = For("codeigniter")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.ComposerJSON, `"codeigniter4/framework"`) {
		t.Error("codeigniter composer.json missing framework requirement")
	}
}

func TestFor_Unknown(t *testing.T) {
	_, err := For("django")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("For(django) error = %v, want NOT_FOUND", err)
	}
	if MainFilePath("django") != "" {
		t.Error("MainFilePath(django) should be empty")
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in      string
		want    Tab
		wantErr bool
	}{
		{"", TabStructure, false},
		{"structure", TabStructure, false},
		{"files", TabFiles, false},
		{" Files ", TabFiles, false},
		{"tree", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTab(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTab(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidTab) {
				t.Errorf("ParseTab(%q) code = %s, want INVALID_TAB", tt.in, errors.GetCode(err))
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToggleLabel(t *testing.T) {
	if got := ToggleLabel(TabStructure); got != "View Files" {
		t.Errorf("ToggleLabel(structure) = %q", got)
	}
	if got := ToggleLabel(TabFiles); got != "View Structure" {
		t.Errorf("ToggleLabel(files) = %q", got)
	}
	if TabStructure.Other() != TabFiles || TabFiles.Other() != TabStructure {
		t.Error("Other() should flip between tabs")
	}
}
