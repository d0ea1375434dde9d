// Package io reads and writes the resolution snapshot artifact.
//
// # Format
//
// The snapshot is a single JSON object mapping each package name to the array
// of its local dependency names:
//
//	{
//	  "core": [],
//	  "ui": ["core"],
//	  "app": ["core", "ui"]
//	}
//
// Keys appear in graph insertion order and values keep declaration order, so
// the file diffs cleanly between runs. Output is indented with two spaces.
//
// # Export
//
// Use [ExportSnapshot] to write a graph to a file, or [WriteSnapshot] to write
// to any io.Writer. The file is overwritten on every call.
//
// # Import
//
// Use [ImportSnapshot] or [ReadSnapshot] to rebuild a [dag.Graph] from a
// snapshot. Key order is preserved, so sorting an imported graph yields the
// same order as sorting the graph that was exported.
//
// [dag.Graph]: github.com/matzehuels/autolink/pkg/dag.Graph
package io
