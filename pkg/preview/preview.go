package preview

import (
	"embed"
	"path"
	"strings"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
)

//go:embed blobs
var blobs embed.FS

// Tab selects what the preview card shows.
type Tab string

const (
	TabStructure Tab = "structure"
	TabFiles     Tab = "files"
)

// ParseTab accepts "structure" or "files"; an empty string selects the
// structure tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabStructure:
		return TabStructure, nil
	case TabFiles:
		return TabFiles, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidTab, "unknown preview tab %q (available: structure, files)", s)
	}
}

// ToggleLabel is the caption of the button that flips between tabs.
func ToggleLabel(active Tab) string {
	if active == TabFiles {
		return "View Structure"
	}
	return "View Files"
}

// Other returns the tab the toggle button switches to.
func (t Tab) Other() Tab {
	if t == TabFiles {
		return TabStructure
	}
	return TabFiles
}

// mainFilePaths maps frameworks to the location of their home controller.
var mainFilePaths = map[string]string{
	"laravel":     "app/Http/Controllers/HomeController.php",
	"symfony":     "src/Controller/HomeController.php",
	"codeigniter": "app/Controllers/Home.php",
	"slim":        "src/Controller/HomeController.php",
	"lumen":       "app/Http/Controllers/HomeController.php",
}

// Preview is the static preview of a freshly generated project.
type Preview struct {
	Framework    string `json:"framework"`
	Structure    string `json:"structure"`
	ComposerJSON string `json:"composer_json"`
	MainFile     string `json:"main_file"`
	MainFilePath string `json:"main_file_path"`
}

// For returns the preview of framework.
func For(framework string) (*Preview, error) {
	if _, ok := catalog.LookupFramework(framework); !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no preview for framework %q", framework)
	}

	structure, err := readBlob(framework, "structure.txt")
	if err != nil {
		return nil, err
	}
	composer, err := readBlob(framework, "composer.json")
	if err != nil {
		return nil, err
	}
	main, err := readBlob(framework, "main.php")
	if err != nil {
		return nil, err
	}

	return &Preview{
		Framework:    framework,
		Structure:    structure,
		ComposerJSON: composer,
		MainFile:     main,
		MainFilePath: mainFilePaths[framework],
	}, nil
}

// MainFilePath returns where the home controller of framework lives,
// or "" for unknown frameworks.
func MainFilePath(framework string) string {
	return mainFilePaths[framework]
}

func readBlob(framework, name string) (string, error) {
	data, err := blobs.ReadFile(path.Join("blobs", framework, name))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read %s preview for %s", name, framework)
	}
	return string(data), nil
}
