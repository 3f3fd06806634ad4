package preview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/phpgen/pkg/errors"
)

// GraphOptions configures the dependency graph drawn for a manifest.
type GraphOptions struct {
	// Selected lists packages picked in the dependency selector. Packages
	// already required by the manifest are highlighted; the rest are added
	// as extra nodes.
	Selected []string

	// Constraints appends the version constraint to each node label.
	Constraints bool
}

const (
	selectedFill = "#dbeafe"
	devFill      = "#f3f4f6"
)

// ToDOT converts a manifest to a Graphviz DOT document: the project is the
// root node with one edge per requirement. require-dev edges are dashed.
func ToDOT(m *Manifest, opts GraphOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [color=\"#6b7280\"];\n")
	buf.WriteString("\n")

	root := m.Name
	if root == "" {
		root = "project"
	}
	rootLabel := root
	if m.PHP != "" {
		rootLabel += "\nphp " + m.PHP
	}
	fmt.Fprintf(&buf, "  %q [label=%q, penwidth=2];\n", root, rootLabel)

	selected := make(map[string]bool, len(opts.Selected))
	for _, id := range opts.Selected {
		selected[id] = true
	}

	required := make(map[string]bool, len(m.Requirements))
	for _, r := range m.Requirements {
		required[r.Name] = true
		label := r.Name
		if opts.Constraints && r.Constraint != "" {
			label += "\n" + r.Constraint
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		switch {
		case selected[r.Name]:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", selectedFill))
		case r.Dev:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", devFill))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", r.Name, strings.Join(attrs, ", "))
	}

	var extra []string
	for _, id := range opts.Selected {
		if !required[id] && !slices.Contains(extra, id) {
			extra = append(extra, id)
		}
	}
	for _, id := range extra {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", id, id, selectedFill)
	}

	buf.WriteString("\n")
	for _, r := range m.Requirements {
		if r.Dev {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", root, r.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, r.Name)
	}
	for _, id := range extra {
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", root, id, "#2563eb")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT document to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Graph draws the composer requirements of framework as SVG.
func Graph(ctx context.Context, framework string, opts GraphOptions) ([]byte, error) {
	m, err := ManifestFor(framework)
	if err != nil {
		return nil, err
	}
	return RenderSVG(ctx, ToDOT(m, opts))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales inside the
// preview card instead of using Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="100%%" preserveAspectRatio="xMidYMin meet">`, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
