package server

import (
	"bytes"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/preview"
	"github.com/matzehuels/phpgen/pkg/project"
	"github.com/matzehuels/phpgen/pkg/session"
)

// Form tabs.
const (
	tabProject      = "project"
	tabDependencies = "dependencies"
	tabAdvanced     = "advanced"
)

var formTabs = []string{tabProject, tabDependencies, tabAdvanced}

// NavItem is a link in the page header.
type NavItem struct {
	Title    string
	Href     string
	External bool
}

var navItems = []NavItem{
	{Title: "Documentation", Href: "#"},
	{Title: "Guides", Href: "#"},
	{Title: "GitHub", Href: "https://github.com", External: true},
	{Title: "Login", Href: "/login"},
}

// view is the part of the page state carried in the URL: the open tabs,
// the search query and the preview selector. Form posts echo it back in
// hidden fields so the redirect lands on the same view.
type view struct {
	Tab      string
	Query    string
	Category string
	Preview  string
	PTab     preview.Tab
}

func parseView(v url.Values) (view, error) {
	out := view{
		Tab:      v.Get("tab"),
		Query:    v.Get("q"),
		Category: v.Get("category"),
		Preview:  v.Get("preview"),
	}
	if out.Tab == "" {
		out.Tab = tabProject
	}
	if !slices.Contains(formTabs, out.Tab) {
		return view{}, errors.New(errors.ErrCodeInvalidTab,
			"unknown tab %q (available: %s)", out.Tab, strings.Join(formTabs, ", "))
	}
	if out.Preview == "" {
		out.Preview = project.DefaultFramework
	}
	if _, ok := catalog.LookupFramework(out.Preview); !ok {
		return view{}, errors.New(errors.ErrCodeInvalidFramework,
			"unknown framework %q (available: %s)", out.Preview, strings.Join(catalog.IDs(), ", "))
	}
	tab, err := preview.ParseTab(v.Get("ptab"))
	if err != nil {
		return view{}, err
	}
	out.PTab = tab
	return out, nil
}

// URL renders the view as a page link. Pairs of keys and values in
// overrides replace the current values; defaults are left out.
func (v view) URL(overrides ...string) string {
	vals := map[string]string{
		"tab":      v.Tab,
		"q":        v.Query,
		"category": v.Category,
		"preview":  v.Preview,
		"ptab":     string(v.PTab),
	}
	for i := 0; i+1 < len(overrides); i += 2 {
		vals[overrides[i]] = overrides[i+1]
	}
	defaults := map[string]string{
		"tab":     tabProject,
		"preview": project.DefaultFramework,
		"ptab":    string(preview.TabStructure),
	}

	q := url.Values{}
	for _, k := range []string{"tab", "q", "category", "preview", "ptab"} {
		if val := vals[k]; val != "" && val != defaults[k] {
			q.Set(k, val)
		}
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Searching reports whether the dependency tab shows search results
// instead of category tabs.
func (v view) Searching() bool {
	return strings.TrimSpace(v.Query) != ""
}

type selectedDependency struct {
	ID   string
	Name string
}

// dependencyRow is a catalog entry with its add button.
type dependencyRow struct {
	catalog.Dependency
	Selected bool
	View     view
}

type featureOption struct {
	project.Feature
	Checked bool
}

// pageData is what index.html.tmpl renders.
type pageData struct {
	NavItems       []NavItem
	View           view
	Config         project.Config
	Frameworks     []*catalog.Framework
	PHPVersions    []string
	Results        []dependencyRow
	Categories     []catalog.Category
	ActiveCategory string
	// CategoryDependencies lists the dependencies of the active category.
	CategoryDependencies []dependencyRow
	Selected             []selectedDependency
	Features             []featureOption
	Preview              *preview.Preview
	ToggleLabel          string
	Flash                string
	Year                 int
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v, err := parseView(r.URL.Query())
	if err != nil {
		http.Error(w, errors.UserMessage(err), errors.HTTPStatus(err))
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	flash := sess.TakeFlash()
	if err := s.saveSession(w, r, sess); err != nil {
		s.pageError(w, r, err)
		return
	}

	data, err := buildPage(r, sess.Config, v)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	data.Flash = flash

	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		s.pageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func buildPage(r *http.Request, cfg project.Config, v view) (pageData, error) {
	p, err := preview.For(v.Preview)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		NavItems:    navItems,
		View:        v,
		Config:      cfg,
		Frameworks:  catalog.Frameworks(),
		PHPVersions: project.PHPVersions(),
		Categories:  catalog.Categories(cfg.Framework),
		Preview:     p,
		ToggleLabel: preview.ToggleLabel(v.PTab),
		Year:        time.Now().Year(),
	}

	row := func(d catalog.Dependency) dependencyRow {
		return dependencyRow{Dependency: d, Selected: cfg.Dependencies.Has(d.ID), View: v}
	}
	if v.Searching() {
		for _, res := range catalog.SearchContext(r.Context(), cfg.Framework, v.Query) {
			data.Results = append(data.Results, row(res.Dependency))
		}
	}
	data.ActiveCategory = catalog.DefaultCategory(cfg.Framework)
	if _, ok := catalog.CategoryByID(cfg.Framework, v.Category); ok {
		data.ActiveCategory = v.Category
	}
	if c, ok := catalog.CategoryByID(cfg.Framework, data.ActiveCategory); ok {
		for _, d := range c.Dependencies {
			data.CategoryDependencies = append(data.CategoryDependencies, row(d))
		}
	}

	for _, id := range cfg.Dependencies.IDs() {
		dep := selectedDependency{ID: id, Name: id}
		if d, ok := catalog.LookupAny(id); ok {
			dep.Name = d.Name
		}
		data.Selected = append(data.Selected, dep)
	}
	for _, f := range project.AvailableFeatures(cfg.Framework) {
		data.Features = append(data.Features, featureOption{Feature: f, Checked: cfg.HasFeature(f.ID)})
	}
	return data, nil
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("render page", "path", r.URL.Path, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// formUpdate applies one form post to the session and redirects back to
// the page. Errors from fn are shown to the user as a flash notice.
func (s *Server) formUpdate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v, err := parseView(r.PostForm)
	if err != nil {
		http.Error(w, errors.UserMessage(err), errors.HTTPStatus(err))
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	if err := fn(sess); err != nil {
		if errors.HTTPStatus(err) >= 500 {
			s.pageError(w, r, err)
			return
		}
		sess.Flash = errors.UserMessage(err)
	}
	if err := s.saveSession(w, r, sess); err != nil {
		s.pageError(w, r, err)
		return
	}
	http.Redirect(w, r, v.URL(), http.StatusSeeOther)
}

// handleProjectForm saves the project tab or the advanced tab, depending
// on the "section" field. Changes are applied to a copy so a rejected post
// leaves the stored form untouched.
func (s *Server) handleProjectForm(w http.ResponseWriter, r *http.Request) {
	s.formUpdate(w, r, func(sess *session.Session) error {
		cfg := sess.Config.Clone()
		switch section := r.PostForm.Get("section"); section {
		case tabProject:
			if err := applyProjectFields(&cfg, r.PostForm); err != nil {
				return err
			}
		case tabAdvanced:
			cfg.Features.Clear()
			for _, id := range r.PostForm["feature"] {
				if err := cfg.SetFeature(id, true); err != nil {
					return err
				}
			}
		default:
			return errors.New(errors.ErrCodeInvalidInput, "unknown form section %q", section)
		}
		sess.Config = cfg
		return nil
	})
}

func applyProjectFields(cfg *project.Config, form url.Values) error {
	if err := cfg.SetFramework(form.Get("framework")); err != nil {
		return err
	}
	if err := cfg.SetPHPVersion(form.Get("php_version")); err != nil {
		return err
	}
	fields := []struct {
		key, label string
		dst        *string
	}{
		{"name", "project name", &cfg.Name},
		{"description", "description", &cfg.Description},
		{"author_name", "author name", &cfg.AuthorName},
		{"author_email", "author email", &cfg.AuthorEmail},
	}
	for _, f := range fields {
		val := form.Get(f.key)
		if err := errors.ValidateText(f.label, val); err != nil {
			return err
		}
		*f.dst = val
	}
	return nil
}

func (s *Server) handleAddDependencyForm(w http.ResponseWriter, r *http.Request) {
	s.formUpdate(w, r, func(sess *session.Session) error {
		_, err := sess.Config.AddDependency(r.PostForm.Get("id"))
		return err
	})
}

func (s *Server) handleRemoveDependencyForm(w http.ResponseWriter, r *http.Request) {
	s.formUpdate(w, r, func(sess *session.Session) error {
		sess.Config.RemoveDependency(r.PostForm.Get("id"))
		return nil
	})
}

func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	s.formUpdate(w, r, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
}

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	s.formUpdate(w, r, func(sess *session.Session) error {
		res, err := generate.Generate(r.Context(), sess.Config)
		if err != nil {
			return err
		}
		s.logger.Info("generate", "id", res.ID, "framework", res.Framework, "dependencies", len(res.Dependencies))
		sess.Flash = res.Message
		return nil
	})
}
