package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/preview"
)

type previewOpts struct {
	tab         string
	graph       string
	constraints bool
	deps        []string
}

// previewCommand prints the preview of a freshly generated project.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <framework>",
		Short: "Preview the structure and key files of a new project",
		Long: `Preview the structure and key files of a new project.

The structure tab shows the directory tree; the files tab shows composer.json
and the home controller. --graph writes the Composer requirements of the
project as a Graphviz graph (.dot) or rendered image (.svg).`,
		Example: `  phpgen preview symfony
  phpgen preview laravel --tab files
  phpgen preview slim --graph slim.svg --dep slim/twig-view`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFrameworks,
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := catalog.ParseFramework(args[0])
			if err != nil {
				return err
			}
			tab, err := preview.ParseTab(opts.tab)
			if err != nil {
				return err
			}
			if opts.graph != "" {
				return writeGraph(cmd.Context(), fw.ID, opts)
			}
			p, err := preview.For(fw.ID)
			if err != nil {
				return err
			}
			renderPreview(cmd.OutOrStdout(), fw, p, tab)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.tab, "tab", "t", string(preview.TabStructure), "tab to show: structure or files")
	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "write the requirement graph to a .dot or .svg file")
	cmd.Flags().BoolVar(&opts.constraints, "constraints", false, "label graph edges with version constraints")
	cmd.Flags().StringArrayVar(&opts.deps, "dep", nil, "highlight a selected dependency in the graph (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("tab", cobra.FixedCompletions(
		[]string{string(preview.TabStructure), string(preview.TabFiles)}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func renderPreview(w io.Writer, fw *catalog.Framework, p *preview.Preview, tab preview.Tab) {
	switch tab {
	case preview.TabFiles:
		fmt.Fprintln(w, renderBlock("composer.json", p.ComposerJSON))
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderBlock(p.MainFilePath, p.MainFile))
	default:
		fmt.Fprintln(w, renderBlock(fw.Name+" project structure", p.Structure))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleDim.Render(preview.ToggleLabel(tab)+":")+" "+
		styleCommand.Render(fmt.Sprintf("phpgen preview %s --tab %s", fw.ID, tab.Other())))
}

func writeGraph(ctx context.Context, framework string, opts previewOpts) error {
	graphOpts := preview.GraphOptions{Selected: opts.deps, Constraints: opts.constraints}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(opts.graph)); ext {
	case ".dot", ".gv":
		m, err := preview.ManifestFor(framework)
		if err != nil {
			return err
		}
		data = []byte(preview.ToDOT(m, graphOpts))
	case ".svg":
		render := startStep(loggerFromContext(ctx))
		spinner := newSpinner(ctx, "Rendering graph...")
		spinner.Start()
		svg, err := preview.Graph(ctx, framework, graphOpts)
		spinner.Stop()
		if err != nil {
			return err
		}
		render.done("Rendered requirement graph", "framework", framework, "bytes", len(svg))
		data = svg
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported graph format %q (use .dot or .svg)", ext)
	}

	if err := os.WriteFile(opts.graph, data, 0644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	printSuccess("Wrote requirement graph")
	printFile(opts.graph)
	return nil
}
