package project

import "slices"

// Feature is an optional checkbox on the advanced tab.
type Feature struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Frameworks []string `json:"frameworks,omitempty"` // nil means every framework
}

// Supports reports whether the feature is offered for framework.
func (f Feature) Supports(framework string) bool {
	return f.Frameworks == nil || slices.Contains(f.Frameworks, framework)
}

// Feature identifiers.
const (
	FeatureGitignore = "gitignore"
	FeatureReadme    = "readme"
	FeatureDocker    = "docker"
	FeatureCI        = "ci"
	FeatureBreeze    = "breeze"
	FeatureJetstream = "jetstream"
	FeatureWebApp    = "webapp"
)

var features = []Feature{
	{ID: FeatureGitignore, Label: "Generate .gitignore file"},
	{ID: FeatureReadme, Label: "Generate README.md file"},
	{ID: FeatureDocker, Label: "Generate Dockerfile"},
	{ID: FeatureCI, Label: "Generate CI configuration"},
	{ID: FeatureBreeze, Label: "Include Laravel Breeze (Authentication)", Frameworks: []string{"laravel"}},
	{ID: FeatureJetstream, Label: "Include Laravel Jetstream", Frameworks: []string{"laravel"}},
	{ID: FeatureWebApp, Label: "Include Symfony WebApp Bundle", Frameworks: []string{"symfony"}},
}

// Features returns every known feature in display order.
func Features() []Feature {
	return slices.Clone(features)
}

// AvailableFeatures returns the features offered for framework, in display order.
func AvailableFeatures(framework string) []Feature {
	var out []Feature
	for _, f := range features {
		if f.Supports(framework) {
			out = append(out, f)
		}
	}
	return out
}

// LookupFeature finds a feature by identifier.
func LookupFeature(id string) (Feature, bool) {
	for _, f := range features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}
