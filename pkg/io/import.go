package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/autolink/pkg/dag"
)

// ReadSnapshot decodes a snapshot from r into a new Graph.
//
// The input must be a single JSON object whose values are arrays of strings.
// Keys are added to the graph in the order they appear. ReadSnapshot returns
// an error if the JSON is malformed, a key repeats, or a dependency names a
// package missing from the object. ReadSnapshot does not close r.
func ReadSnapshot(r io.Reader) (*dag.Graph, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	g := dag.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode: unexpected %v", tok)
		}
		var deps []string
		if err := dec.Decode(&deps); err != nil {
			return nil, fmt.Errorf("package %s: %w", name, err)
		}
		if err := g.Add(name, deps...); err != nil {
			return nil, fmt.Errorf("package %s: %w", name, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("decode: expected %q, got %v", want, tok)
	}
	return nil
}

// ImportSnapshot reads the snapshot file at path.
func ImportSnapshot(path string) (*dag.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
