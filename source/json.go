// Package source adapts decoded documents to [queryitems.Marshaler] so they
// can be flattened without reflection.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/tomasbasham/queryitems"
)

// JSON decodes a single JSON document. Numbers keep their literal text.
func JSON(data []byte) (queryitems.Marshaler, error) {
	return decodeJSON(bytes.NewReader(data))
}

// JSONReader decodes every JSON document in r, in order.
func JSONReader(r io.Reader) ([]queryitems.Marshaler, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var docs []queryitems.Marshaler
	for {
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("source: json document %d: %w", len(docs), err)
		}
		docs = append(docs, jsonValue{v})
	}
}

func decodeJSON(r io.Reader) (queryitems.Marshaler, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: json: %w", err)
	}
	return jsonValue{v}, nil
}

// jsonValue is a generic JSON value as produced by a decoder with UseNumber.
type jsonValue struct {
	v interface{}
}

func (j jsonValue) MarshalQuery(b *queryitems.Builder) error {
	switch v := j.v.(type) {
	case nil:
		return b.Single().EncodeNil()
	case map[string]interface{}:
		c := b.Keyed()
		for _, k := range sortedKeys(v) {
			if err := encodeJSONField(c, k, v[k]); err != nil {
				return err
			}
		}
		return nil
	case []interface{}:
		c := b.Unkeyed()
		for _, e := range v {
			if err := encodeJSONElem(c, e); err != nil {
				return err
			}
		}
		return nil
	case string:
		return b.Single().Encode(v)
	case bool:
		return b.Single().Encode(v)
	case fmt.Stringer:
		// json.Number
		return b.Single().Encode(v.String())
	default:
		return b.Single().Encode(v)
	}
}

func encodeJSONField(c *queryitems.KeyedContainer, key string, v interface{}) error {
	switch v := v.(type) {
	case nil:
		return c.EncodeNil(key)
	case map[string]interface{}:
		nc, err := c.NestedKeyed(key)
		if err != nil {
			return err
		}
		for _, k := range sortedKeys(v) {
			if err := encodeJSONField(nc, k, v[k]); err != nil {
				return err
			}
		}
		return nil
	case []interface{}:
		nc, err := c.NestedUnkeyed(key)
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := encodeJSONElem(nc, e); err != nil {
				return err
			}
		}
		return nil
	case fmt.Stringer:
		return c.Encode(key, v.String())
	default:
		return c.Encode(key, v)
	}
}

func encodeJSONElem(c *queryitems.UnkeyedContainer, v interface{}) error {
	switch v := v.(type) {
	case nil:
		return c.EncodeNil()
	case map[string]interface{}:
		nc, err := c.NestedKeyed()
		if err != nil {
			return err
		}
		for _, k := range sortedKeys(v) {
			if err := encodeJSONField(nc, k, v[k]); err != nil {
				return err
			}
		}
		return nil
	case []interface{}:
		nc, err := c.NestedUnkeyed()
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := encodeJSONElem(nc, e); err != nil {
				return err
			}
		}
		return nil
	case fmt.Stringer:
		return c.Encode(v.String())
	default:
		return c.Encode(v)
	}
}
