// Package render draws the workspace dependency graph.
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source with one box per package and an arrow
// from each package to every local dependency. The source can be saved and
// processed with external Graphviz tools or rendered in-process.
//
//	dot := render.ToDOT(res.Graph, render.Options{Order: res.Order})
//	svg, err := render.RenderSVG(ctx, dot)
//
// The layout runs bottom-to-top (rankdir=BT), so packages without local
// dependencies sit at the bottom and every arrow points down to something
// that is linked earlier.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package render
