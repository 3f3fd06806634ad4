package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/preview"
	"github.com/matzehuels/phpgen/pkg/project"
)

// frameworkSummary is one row of "phpgen frameworks".
type frameworkSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Categories   []string `json:"categories"`
	Dependencies int      `json:"dependencies"`
	Features     []string `json:"features"`
	MainFile     string   `json:"main_file"`
}

func frameworkSummaries() []frameworkSummary {
	var out []frameworkSummary
	for _, f := range catalog.Frameworks() {
		s := frameworkSummary{ID: f.ID, Name: f.Name, MainFile: preview.MainFilePath(f.ID)}
		for _, c := range f.Categories() {
			s.Categories = append(s.Categories, c.ID)
			s.Dependencies += len(c.Dependencies)
		}
		for _, feat := range project.AvailableFeatures(f.ID) {
			s.Features = append(s.Features, feat.ID)
		}
		out = append(out, s)
	}
	return out
}

func (c *CLI) frameworksCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "frameworks",
		Aliases: []string{"fw"},
		Short:   "List supported PHP frameworks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := frameworkSummaries()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFrameworks(summaries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func renderFrameworks(summaries []frameworkSummary) string {
	t := newTable("ID", "Name", "Categories", "Deps", "Features")
	for _, s := range summaries {
		t.Row(s.ID, s.Name, strings.Join(s.Categories, ", "), strconv.Itoa(s.Dependencies), strings.Join(s.Features, ", "))
	}
	return t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
