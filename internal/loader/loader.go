package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msalah0e/cxgraph/internal/graph"
	"golang.org/x/sync/errgroup"
)

// Table names used in LoadError.
const (
	TableConstructions = "constructions"
	TableRelations     = "relations"
)

// Source names the two input files.
type Source struct {
	Constructions string
	Relations     string
}

// DirSource returns the conventional file names inside dir.
func DirSource(dir string) Source {
	return Source{
		Constructions: filepath.Join(dir, "constructions.json"),
		Relations:     filepath.Join(dir, "relations.json"),
	}
}

// Tables is the raw content of both inputs, in file order.
type Tables struct {
	Constructions []graph.ConstructionRow
	Relations     []graph.RelationRow
}

// LoadError reports that one of the input tables could not be loaded.
type LoadError struct {
	Table string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Table, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// construction is the on-disk shape of one constructions entry.
type construction struct {
	Form     string   `json:"form" yaml:"form"`
	Encoded  any      `json:"encoded" yaml:"encoded"`
	Examples []string `json:"examples" yaml:"examples"`
}

// relation is the on-disk shape of one relations entry.
type relation struct {
	Relation  string `json:"relation" yaml:"relation"`
	Direction string `json:"direction" yaml:"direction"`
}

// Load reads both tables concurrently. It fails as a whole if either fails;
// there are no retries.
func Load(ctx context.Context, src Source) (*Tables, error) {
	var t Tables

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readConstructions(ctx, src.Constructions)
		if err != nil {
			return &LoadError{Table: TableConstructions, Path: src.Constructions, Err: err}
		}
		t.Constructions = rows
		return nil
	})
	g.Go(func() error {
		rows, err := readRelations(ctx, src.Relations)
		if err != nil {
			return &LoadError{Table: TableRelations, Path: src.Relations, Err: err}
		}
		t.Relations = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func decoderFor(path string) (func(data []byte, each func(key string, value decodeFunc) error) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return eachJSON, nil
	case ".yaml", ".yml":
		return eachYAML, nil
	}
	return nil, fmt.Errorf("unsupported format %q (use .json, .yaml or .yml)", filepath.Ext(path))
}

func readConstructions(ctx context.Context, path string) ([]graph.ConstructionRow, error) {
	each, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []graph.ConstructionRow
	err = each(data, func(id string, decode decodeFunc) error {
		var c construction
		if err := decode(&c); err != nil {
			return fmt.Errorf("construction %s: %w", id, err)
		}
		rows = append(rows, graph.ConstructionRow{
			ID:       graph.NodeID(id),
			Form:     c.Form,
			Encoded:  c.Encoded,
			Examples: c.Examples,
		})
		return nil
	})
	return rows, err
}

func readRelations(ctx context.Context, path string) ([]graph.RelationRow, error) {
	each, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []graph.RelationRow
	err = each(data, func(source string, decodeTargets decodeFunc) error {
		var targets orderedTargets
		if err := decodeTargets(&targets); err != nil {
			return fmt.Errorf("relations of %s: %w", source, err)
		}
		for _, tr := range targets {
			rows = append(rows, graph.RelationRow{
				Source:    graph.NodeID(source),
				Target:    graph.NodeID(tr.target),
				Relation:  tr.rel.Relation,
				Direction: tr.rel.Direction,
			})
		}
		return nil
	})
	return rows, err
}
