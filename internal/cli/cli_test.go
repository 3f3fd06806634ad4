package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/integrations/packagist"
)

// run executes the command line args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, log.InfoLevel).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"frameworks", "deps", "preview", "generate", "tui", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFrameworksCommand(t *testing.T) {
	out, err := run(t, "frameworks", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got []frameworkSummary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 5 {
		t.Fatalf("got %d frameworks, want 5", len(got))
	}
	if got[0].ID != "laravel" || got[0].Dependencies != 10 {
		t.Errorf("laravel summary = %+v", got[0])
	}
	if got[3].ID != "slim" || strings.Join(got[3].Categories, ",") != "core" {
		t.Errorf("slim summary = %+v", got[3])
	}

	table, err := run(t, "frameworks")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range catalog.IDs() {
		if !strings.Contains(table, name) {
			t.Errorf("table output missing %q", name)
		}
	}
}

func TestDepsCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
		want     []string
	}{
		{name: "all categories", args: []string{"deps", "laravel"}, want: []string{"Database", "(default)", "laravel/sanctum", "pestphp/pest"}},
		{name: "display name", args: []string{"deps", "CodeIgniter"}, want: []string{"myth/auth"}},
		{name: "one category", args: []string{"deps", "symfony", "--category", "api"}, want: []string{"api-platform/core"}},
		{name: "search", args: []string{"deps", "laravel", "--search", "AUTH"}, want: []string{"laravel/breeze"}},
		{name: "no results", args: []string{"deps", "slim", "--search", "zzz"}, want: []string{"No dependencies found"}},
		{name: "unknown framework", args: []string{"deps", "rails"}, wantCode: errors.ErrCodeInvalidFramework},
		{name: "unknown category", args: []string{"deps", "slim", "--category", "ui"}, wantCode: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestDepsCommand_SearchJSON(t *testing.T) {
	out, err := run(t, "deps", "laravel", "--search", "   ", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("blank search = %s, want []", out)
	}
}

func TestDepsInfoCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/p2/laravel/sanctum.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"packages":{"laravel/sanctum":[{"name":"laravel/sanctum","version":"v3.3.3","license":["MIT"],"require":{"php":"^8.0.2","illuminate/support":"^10.0"}}]}}`)
	}))
	defer srv.Close()
	t.Setenv("PHPGEN_PACKAGIST_URL", srv.URL)

	out, err := run(t, "deps", "info", "laravel/sanctum", "--no-cache", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info packagist.PackageInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if info.Version != "v3.3.3" || info.PHP != "^8.0.2" {
		t.Errorf("info = %+v", info)
	}

	_, err = run(t, "deps", "info", "laravel/unknown", "--no-cache")
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("err = %v, want PACKAGE_NOT_FOUND", err)
	}

	_, err = run(t, "deps", "info", "../x", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidDependency) {
		t.Errorf("err = %v, want INVALID_DEPENDENCY", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	out, err := run(t, "preview", "codeigniter", "--tab", "files")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"composer.json", "app/Controllers/Home.php", "View Structure"} {
		if !strings.Contains(out, want) {
			t.Errorf("files tab missing %q", want)
		}
	}

	out, err = run(t, "preview", "lumen")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "View Files") {
		t.Errorf("structure tab should offer %q", "View Files")
	}

	if _, err := run(t, "preview", "lumen", "--tab", "tree"); !errors.Is(err, errors.ErrCodeInvalidTab) {
		t.Errorf("err = %v, want INVALID_TAB", err)
	}
}

func TestPreviewCommand_GraphDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slim.dot")
	if _, err := run(t, "preview", "slim", "--graph", path, "--dep", "slim/twig-view"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"digraph", `"slim/slim"`, `"slim/twig-view"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("dot output missing %s:\n%s", want, data)
		}
	}

	if _, err := run(t, "preview", "slim", "--graph", filepath.Join(t.TempDir(), "slim.png")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, "generate", "--framework", "Symfony", "--php", "PHP 8.3", "--name", "shop",
		"--dep", "api-platform/core", "--dep", "api-platform/core", "--feature", "webapp,docker", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var res generate.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.Message != generate.Message {
		t.Errorf("message = %q", res.Message)
	}
	if res.Framework != "symfony" || res.PHPVersion != "8.3" || res.Name != "shop" {
		t.Errorf("result = %+v", res)
	}
	if strings.Join(res.Dependencies, ",") != "api-platform/core" {
		t.Errorf("dependencies = %v, want one entry", res.Dependencies)
	}
	if strings.Join(res.Features, ",") != "webapp,docker" {
		t.Errorf("features = %v", res.Features)
	}

	if _, err := run(t, "generate", "--feature", "webapp"); !errors.Is(err, errors.ErrCodeInvalidFeature) {
		t.Errorf("err = %v, want INVALID_FEATURE for laravel", err)
	}
	if _, err := run(t, "generate", "--php", "5.6"); !errors.Is(err, errors.ErrCodeInvalidPHPVersion) {
		t.Errorf("err = %v, want INVALID_PHP_VERSION", err)
	}
}

func TestGenerateCommand_Preset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	preset := `[project]
framework = "slim"
name = "api"
dependencies = ["slim/csrf"]
`
	if err := os.WriteFile(path, []byte(preset), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "generate", "--preset", path, "--name", "override", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var res generate.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Framework != "slim" || res.Name != "override" || res.PHPVersion != "8.2" {
		t.Errorf("result = %+v", res)
	}
	if strings.Join(res.Dependencies, ",") != "slim/csrf" {
		t.Errorf("dependencies = %v", res.Dependencies)
	}
}
