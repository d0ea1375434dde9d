package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/autolink/pkg/dag"
)

const indent = "  "

// WriteSnapshot encodes g as an ordered JSON object and writes it to w.
//
// encoding/json sorts map keys, so the object is assembled by hand to keep
// insertion order. Names and dependency lists are still encoded with
// json.Marshal for correct escaping.
func WriteSnapshot(g *dag.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	pkgs := g.Packages()
	if len(pkgs) == 0 {
		bw.WriteString("{}\n")
		return bw.Flush()
	}

	bw.WriteString("{\n")
	for i, name := range pkgs {
		key, err := json.Marshal(name)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		deps := g.Dependencies(name)
		if deps == nil {
			deps = []string{}
		}
		val, err := json.Marshal(deps)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}

		bw.WriteString(indent)
		bw.Write(key)
		bw.WriteString(": ")
		bw.Write(spaced(val))
		if i < len(pkgs)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// spaced inserts a space after each separating comma of a compact JSON
// string array.
func spaced(arr []byte) []byte {
	out := make([]byte, 0, len(arr)+len(arr)/4)
	inString, escaped := false, false
	for _, c := range arr {
		out = append(out, c)
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case c == ',' && !inString:
			out = append(out, ' ')
		}
	}
	return out
}

// ExportSnapshot writes the snapshot of g to the file at path, replacing any
// previous content.
func ExportSnapshot(g *dag.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
