package project

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/phpgen/pkg/errors"
)

// presetFile is the TOML layout of a preset:
//
//	[project]
//	framework = "symfony"
//	php_version = "8.3"
//	name = "shop"
//	dependencies = ["api-platform/core"]
//	features = ["docker", "webapp"]
type presetFile struct {
	Project struct {
		Framework    string   `toml:"framework"`
		PHPVersion   string   `toml:"php_version"`
		Name         *string  `toml:"name"`
		Description  *string  `toml:"description"`
		AuthorName   string   `toml:"author_name"`
		AuthorEmail  string   `toml:"author_email"`
		Dependencies []string `toml:"dependencies"`
		Features     []string `toml:"features"`
	} `toml:"project"`
}

// LoadPreset reads a TOML preset file. Fields the preset omits keep their
// defaults.
func LoadPreset(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open preset %s", path)
	}
	defer f.Close()
	return DecodePreset(f)
}

// DecodePreset parses a TOML preset from r.
func DecodePreset(r io.Reader) (Config, error) {
	var p presetFile
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode preset")
	}

	cfg := Default()
	in := p.Project
	if in.Framework != "" {
		if err := cfg.SetFramework(in.Framework); err != nil {
			return Config{}, err
		}
	}
	if in.PHPVersion != "" {
		if err := cfg.SetPHPVersion(in.PHPVersion); err != nil {
			return Config{}, err
		}
	}
	if in.Name != nil {
		cfg.Name = *in.Name
	}
	if in.Description != nil {
		cfg.Description = *in.Description
	}
	cfg.AuthorName = in.AuthorName
	cfg.AuthorEmail = in.AuthorEmail

	for _, id := range in.Dependencies {
		if _, err := cfg.AddDependency(id); err != nil {
			return Config{}, err
		}
	}
	for _, id := range in.Features {
		if err := cfg.SetFeature(id, true); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate()
}
