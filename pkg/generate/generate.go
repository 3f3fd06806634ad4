// Package generate handles "Generate Project" requests.
//
// Generation is a placeholder: a valid form is acknowledged with a [Result]
// and a fixed message, and nothing is written to disk or sent anywhere.
package generate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/phpgen/pkg/observability"
	"github.com/matzehuels/phpgen/pkg/project"
)

// Message is shown to the user after every successful request.
const Message = "Project generation would happen here in a real application!"

// Result acknowledges a generation request.
type Result struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Framework    string    `json:"framework"`
	PHPVersion   string    `json:"php_version"`
	Name         string    `json:"name"`
	Dependencies []string  `json:"dependencies"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
}

// now is replaced in tests.
var now = time.Now

// Generate validates cfg and acknowledges the request.
func Generate(ctx context.Context, cfg project.Config) (*Result, error) {
	deps := cfg.Dependencies.IDs()
	if err := cfg.Validate(); err != nil {
		observability.Generate().OnGenerate(ctx, cfg.Framework, len(deps), err)
		return nil, err
	}

	res := &Result{
		ID:           uuid.NewString(),
		Message:      Message,
		Framework:    cfg.Framework,
		PHPVersion:   cfg.PHPVersion,
		Name:         cfg.Name,
		Dependencies: deps,
		Features:     cfg.Features.IDs(),
		CreatedAt:    now().UTC(),
	}
	observability.Generate().OnGenerate(ctx, cfg.Framework, len(deps), nil)
	return res, nil
}
