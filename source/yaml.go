package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tomasbasham/queryitems"
)

// YAML decodes a single YAML document. Scalars keep their literal text,
// aliases are followed and nulls are skipped.
func YAML(data []byte) (queryitems.Marshaler, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("source: yaml: %w", err)
	}
	return yamlValue{&n}, nil
}

// YAMLReader decodes every document of a multi-document YAML stream in r, in
// order.
func YAMLReader(r io.Reader) ([]queryitems.Marshaler, error) {
	dec := yaml.NewDecoder(r)

	var docs []queryitems.Marshaler
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("source: yaml document %d: %w", len(docs), err)
		}
		docs = append(docs, yamlValue{&n})
	}
}

// YAMLBytes is YAMLReader over a byte slice.
func YAMLBytes(data []byte) ([]queryitems.Marshaler, error) {
	return YAMLReader(bytes.NewReader(data))
}

type yamlValue struct {
	n *yaml.Node
}

func (y yamlValue) MarshalQuery(b *queryitems.Builder) error {
	n := resolve(y.n)
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		c := b.Keyed()
		return eachPair(n, func(key string, v *yaml.Node) error {
			return encodeYAMLField(c, key, v)
		})
	case yaml.SequenceNode:
		c := b.Unkeyed()
		for _, e := range n.Content {
			if err := encodeYAMLElem(c, e); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if isNull(n) {
			return b.Single().EncodeNil()
		}
		return b.Single().Encode(n.Value)
	default:
		return fmt.Errorf("source: unexpected yaml node kind %d", n.Kind)
	}
}

func encodeYAMLField(c *queryitems.KeyedContainer, key string, v *yaml.Node) error {
	v = resolve(v)
	if v == nil {
		return c.EncodeNil(key)
	}

	switch v.Kind {
	case yaml.MappingNode:
		nc, err := c.NestedKeyed(key)
		if err != nil {
			return err
		}
		return eachPair(v, func(k string, cv *yaml.Node) error {
			return encodeYAMLField(nc, k, cv)
		})
	case yaml.SequenceNode:
		nc, err := c.NestedUnkeyed(key)
		if err != nil {
			return err
		}
		for _, e := range v.Content {
			if err := encodeYAMLElem(nc, e); err != nil {
				return err
			}
		}
		return nil
	default:
		if isNull(v) {
			return c.EncodeNil(key)
		}
		return c.Encode(key, v.Value)
	}
}

func encodeYAMLElem(c *queryitems.UnkeyedContainer, v *yaml.Node) error {
	v = resolve(v)
	if v == nil {
		return c.EncodeNil()
	}

	switch v.Kind {
	case yaml.MappingNode:
		nc, err := c.NestedKeyed()
		if err != nil {
			return err
		}
		return eachPair(v, func(k string, cv *yaml.Node) error {
			return encodeYAMLField(nc, k, cv)
		})
	case yaml.SequenceNode:
		nc, err := c.NestedUnkeyed()
		if err != nil {
			return err
		}
		for _, e := range v.Content {
			if err := encodeYAMLElem(nc, e); err != nil {
				return err
			}
		}
		return nil
	default:
		if isNull(v) {
			return c.EncodeNil()
		}
		return c.Encode(v.Value)
	}
}

// resolve unwraps document and alias nodes. It returns nil for an empty
// document.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case 0:
			// Zero node, as produced by an empty input.
			return nil
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// eachPair calls fn for every key/value pair of a mapping node, in document
// order. Merge keys (<<) are not expanded.
func eachPair(n *yaml.Node, fn func(key string, v *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolve(n.Content[i])
		if k == nil || k.Kind != yaml.ScalarNode {
			return fmt.Errorf("source: yaml line %d: mapping keys must be scalars", n.Content[i].Line)
		}
		if err := fn(k.Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
