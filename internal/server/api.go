package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/preview"
	"github.com/matzehuels/phpgen/pkg/project"
)

type frameworkResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	DefaultCategory string            `json:"default_category"`
	Features        []project.Feature `json:"features"`
}

type previewResponse struct {
	*preview.Preview
	Tab         preview.Tab `json:"tab"`
	ToggleLabel string      `json:"toggle_label"`
}

type selectionResponse struct {
	Changed      bool              `json:"changed"`
	Dependencies project.Selection `json:"dependencies"`
}

// projectRequest is a partial update of the form; omitted fields are kept.
type projectRequest struct {
	Framework    *string   `json:"framework"`
	PHPVersion   *string   `json:"php_version"`
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	AuthorName   *string   `json:"author_name"`
	AuthorEmail  *string   `json:"author_email"`
	Dependencies *[]string `json:"dependencies"`
	Features     *[]string `json:"features"`
}

type dependencyRequest struct {
	ID string `json:"id"`
}

// fail logs unexpected errors and writes the JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.HTTPStatus(err) >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, err)
}

func (s *Server) apiFrameworks(w http.ResponseWriter, _ *http.Request) {
	var out []frameworkResponse
	for _, f := range catalog.Frameworks() {
		out = append(out, frameworkResponse{
			ID:              f.ID,
			Name:            f.Name,
			DefaultCategory: catalog.DefaultCategory(f.ID),
			Features:        project.AvailableFeatures(f.ID),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// frameworkParam resolves the {framework} URL parameter.
func frameworkParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "framework")
	if _, ok := catalog.LookupFramework(id); !ok {
		return "", errors.New(errors.ErrCodeNotFound, "unknown framework %q (available: %s)",
			id, strings.Join(catalog.IDs(), ", "))
	}
	return id, nil
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	fw, err := frameworkParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Categories(fw))
}

func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	fw, err := frameworkParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	results := catalog.SearchContext(r.Context(), fw, r.URL.Query().Get("q"))
	if results == nil {
		results = []catalog.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) apiPreview(w http.ResponseWriter, r *http.Request) {
	fw, err := frameworkParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tab, err := preview.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := preview.For(fw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Preview: p, Tab: tab, ToggleLabel: preview.ToggleLabel(tab)})
}

// apiGraph draws the composer requirements of the framework preview and
// highlights the dependencies selected in the visitor's session.
func (s *Server) apiGraph(w http.ResponseWriter, r *http.Request) {
	fw, err := frameworkParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	svg, err := preview.Graph(r.Context(), fw, preview.GraphOptions{
		Selected:    sess.Config.Dependencies.IDs(),
		Constraints: r.URL.Query().Get("constraints") != "",
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) apiGetProject(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Config)
}

func (s *Server) apiPutProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cfg := sess.Config.Clone()
	if err := applyProjectRequest(&cfg, req); err != nil {
		s.fail(w, r, err)
		return
	}
	sess.Config = cfg
	if err := s.saveSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Config)
}

// applyProjectRequest updates cfg field by field. The framework is applied
// first so that feature checks see the new framework.
func applyProjectRequest(cfg *project.Config, req projectRequest) error {
	if req.Framework != nil {
		if err := cfg.SetFramework(*req.Framework); err != nil {
			return err
		}
	}
	if req.PHPVersion != nil {
		if err := cfg.SetPHPVersion(*req.PHPVersion); err != nil {
			return err
		}
	}
	text := []struct {
		field string
		src   *string
		dst   *string
	}{
		{"project name", req.Name, &cfg.Name},
		{"description", req.Description, &cfg.Description},
		{"author name", req.AuthorName, &cfg.AuthorName},
		{"author email", req.AuthorEmail, &cfg.AuthorEmail},
	}
	for _, t := range text {
		if t.src == nil {
			continue
		}
		if err := errors.ValidateText(t.field, *t.src); err != nil {
			return err
		}
		*t.dst = *t.src
	}
	if req.Dependencies != nil {
		cfg.Dependencies.Clear()
		for _, id := range *req.Dependencies {
			if _, err := cfg.AddDependency(id); err != nil {
				return err
			}
		}
	}
	if req.Features != nil {
		cfg.Features.Clear()
		for _, id := range *req.Features {
			if err := cfg.SetFeature(id, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Server) apiAddDependency(w http.ResponseWriter, r *http.Request) {
	var req dependencyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	added, err := sess.Config.AddDependency(req.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, selectionResponse{Changed: added, Dependencies: sess.Config.Dependencies})
}

func (s *Server) apiRemoveDependency(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidDependency, "missing id parameter"))
		return
	}
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	removed := sess.Config.RemoveDependency(id)
	if err := s.saveSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Changed: removed, Dependencies: sess.Config.Dependencies})
}

func (s *Server) apiReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess.Reset()
	if err := s.saveSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Config)
}

func (s *Server) apiGenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := generate.Generate(r.Context(), sess.Config)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("generate", "id", res.ID, "framework", res.Framework, "dependencies", len(res.Dependencies))
	writeJSON(w, http.StatusOK, res)
}
