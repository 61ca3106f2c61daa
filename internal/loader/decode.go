package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeFunc decodes one mapping value into v.
type decodeFunc func(v any) error

// eachJSON calls each for every key of the top-level JSON object, in file
// order. Go maps would lose that order, and store order decides the
// fallback selection.
func eachJSON(data []byte, each func(key string, value decodeFunc) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("parse json: expected an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("parse json: expected a key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parse json: value of %q: %w", key, err)
		}
		if err := each(key, func(v any) error { return json.Unmarshal(raw, v) }); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

// eachYAML is eachJSON for YAML documents.
func eachYAML(data []byte, each func(key string, value decodeFunc) error) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}
	return eachYAMLNode(doc.Content[0], each)
}

func eachYAMLNode(n *yaml.Node, each func(key string, value decodeFunc) error) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("parse yaml: line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if err := each(key.Value, value.Decode); err != nil {
			return err
		}
	}
	return nil
}

type target struct {
	target string
	rel    relation
}

// orderedTargets is the inner target map of the relations table, kept in
// file order.
type orderedTargets []target

func (o *orderedTargets) UnmarshalJSON(b []byte) error {
	return eachJSON(b, o.add)
}

func (o *orderedTargets) UnmarshalYAML(n *yaml.Node) error {
	return eachYAMLNode(n, o.add)
}

func (o *orderedTargets) add(key string, decode decodeFunc) error {
	var r relation
	if err := decode(&r); err != nil {
		return fmt.Errorf("target %s: %w", key, err)
	}
	*o = append(*o, target{target: key, rel: r})
	return nil
}
