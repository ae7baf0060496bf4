package queryitems

import (
	"fmt"
	"reflect"
	"sort"
)

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// EncodeToString is a convenience function that returns the items of v joined
// as a query string. Nothing is escaped.
func EncodeToString(v interface{}, opts ...Option) (string, error) {
	items, err := Encode(v, opts...)
	if err != nil {
		return "", err
	}
	return items.String(), nil
}

// Marshal returns the items of v joined as a query string. Nothing is
// escaped.
func Marshal(v interface{}, opts ...Option) ([]byte, error) {
	s, err := EncodeToString(v, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Encode returns the query items of v.
//
// If v implements [Marshaler] it describes its own structure. Otherwise
// structs and maps with string keys become keyed nodes, slices and arrays
// become unkeyed nodes, and everything else is rendered as a single value.
// Nil pointers, nil interfaces and nil map entries are skipped.
//
// The top-level value must encode to a keyed or empty node: a bare scalar or
// sequence fails with [ErrUnsupportedRootShape].
func Encode(v interface{}, opts ...Option) (Items, error) {
	o := newOptions(opts)
	root, err := encodeTree(v, o)
	if err != nil {
		return nil, err
	}
	return flattenRoot(root, o)
}

// encodeTree encodes v into a tree of its own.
func encodeTree(v interface{}, o *options) (*Node, error) {
	root := NewNode()
	if err := encodeInto(newBuilder(root, o), v); err != nil {
		return nil, err
	}
	return root, nil
}

func encodeInto(b *Builder, v interface{}) error {
	if isNil(v) {
		return nil
	}
	if m, ok := v.(Marshaler); ok {
		return m.MarshalQuery(b)
	}
	return marshalValue(b, reflect.ValueOf(v))
}

func encodeValueTree(v reflect.Value, o *options) (*Node, error) {
	n := NewNode()
	if err := marshalValue(newBuilder(n, o), v); err != nil {
		return nil, err
	}
	return n, nil
}

func marshalValue(b *Builder, v reflect.Value) error {
	// Handle nil pointers early to avoid dereferencing them.
	if isNilValue(v) {
		return nil
	}

	if m, ok := asMarshaler(v); ok {
		return m.MarshalQuery(b)
	}

	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return marshalValue(b, v.Elem())
	}

	if isLeafType(v.Type()) {
		return b.Single().Encode(leafInterface(v))
	}

	// Dispatch based on the kind of the value.
	switch v.Kind() {
	case reflect.Struct:
		return marshalStruct(b, v)
	case reflect.Map:
		return marshalMap(b, v)
	case reflect.Slice, reflect.Array:
		return marshalSlice(b, v)
	default:
		return b.Single().Encode(v.Interface())
	}
}

func marshalStruct(b *Builder, v reflect.Value) error {
	c := b.Keyed()
	tags := tags(v.Type(), b.opts.tagName)
	for i := 0; i < v.NumField(); i++ {
		tag := tags[i]
		if tag.Ignore || tag.Name == "" {
			continue
		}
		fv := v.Field(i)
		if tag.Omit && isEmptyValue(fv) {
			continue
		}
		if err := marshalKeyedChild(c, tag.Name, fv); err != nil {
			return err
		}
	}
	return nil
}

func marshalMap(b *Builder, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map keys must be strings, got %s", ErrUnsupportedType, v.Type().Key())
	}

	type entry struct {
		key   string
		value reflect.Value
	}

	// Sort the entries so that the order children are written in, and with it
	// the resolution of any path collision, does not depend on map iteration.
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: iter.Key().String(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	c := b.Keyed()
	for _, e := range entries {
		if err := marshalKeyedChild(c, e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

func marshalSlice(b *Builder, v reflect.Value) error {
	c := b.Unkeyed()
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if isNilValue(elem) {
			continue
		}
		n, err := encodeValueTree(elem, b.opts)
		if err != nil {
			return err
		}
		if err := c.node.AddUnkeyedChild(n); err != nil {
			return err
		}
	}
	return nil
}

func marshalKeyedChild(c *KeyedContainer, key string, v reflect.Value) error {
	if isNilValue(v) {
		return c.EncodeNil(key)
	}
	n, err := encodeValueTree(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.AddKeyedChild(key, n)
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(marshalerType) {
		if v.CanAddr() {
			return v.Addr().Interface().(Marshaler), true
		}
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p.Interface().(Marshaler), true
	}
	if !v.CanInterface() {
		return nil, false
	}
	if m, ok := v.Interface().(Marshaler); ok {
		return m, true
	}
	return nil, false
}

// leafInterface returns v as an interface, taking its address when only the
// pointer type renders as a single value.
func leafInterface(v reflect.Value) interface{} {
	t := v.Type()
	if t.Implements(valueMarshalerType) || t.Implements(textMarshalerType) || t == timeType {
		return v.Interface()
	}
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	p := reflect.New(t)
	p.Elem().Set(v)
	return p.Interface()
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	case reflect.Struct:
		if v.Type() == timeType {
			return v.IsZero()
		}
	}
	return false
}
