package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/autolink/pkg/dag"
	"github.com/matzehuels/autolink/pkg/errors"
)

// Output formats accepted by the graph command.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
}

// Options configures diagram generation.
type Options struct {
	// Order is the resolution order. When set, each label carries the
	// package's 1-based position in it.
	Order []string

	// Highlight names packages drawn with a filled accent, e.g. the scope
	// of an exec command.
	Highlight []string
}

// ToDOT converts g to Graphviz DOT source. Nodes and edges follow graph
// insertion order, so the output is deterministic.
func ToDOT(g *dag.Graph, opts Options) string {
	rank := make(map[string]int, len(opts.Order))
	for i, name := range opts.Order {
		rank[name] = i + 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range g.Packages() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(name, rank[name]))}
		if slices.Contains(opts.Highlight, name) {
			attrs = append(attrs, "fillcolor=\"#b2dfdb\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, name := range g.Packages() {
		for _, dep := range g.Dependencies(name) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(name string, rank int) string {
	if rank == 0 {
		return name
	}
	return fmt.Sprintf("%d. %s", rank, name)
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render produces the graph in the requested format.
func Render(ctx context.Context, g *dag.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(g, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return RenderSVG(ctx, dot)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin with explicit pixel dimensions.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
