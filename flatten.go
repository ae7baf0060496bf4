package queryitems

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Flatten converts a finished tree into query items. Only an empty or keyed
// root can be flattened; the children of a keyed root give the top-level
// names. Deeper keys and sequence positions are appended in brackets.
//
// When two leaves produce the same name the one written last wins, unless
// [StrictPaths] is set.
func Flatten(root *Node, opts ...Option) (Items, error) {
	return flattenRoot(root, newOptions(opts))
}

func flattenRoot(root *Node, o *options) (Items, error) {
	if root == nil {
		return Items{}, nil
	}

	switch root.kind {
	case Empty:
		return Items{}, nil
	case Keyed:
	default:
		Logger().Debug("rejecting root", zap.Stringer("kind", root.kind))
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRootShape, root.kind)
	}

	f := &flattener{
		strict: o.strict,
		values: make(map[string]string),
	}
	for _, k := range root.keys {
		if err := f.flatten(root.children[k], []string{k}); err != nil {
			return nil, err
		}
	}

	items := make(Items, 0, len(f.values))
	for name, value := range f.values {
		items = append(items, Item{Name: name, Value: value})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

type flattener struct {
	strict bool
	values map[string]string
}

func (f *flattener) flatten(n *Node, path []string) error {
	if n == nil {
		return nil
	}

	switch n.kind {
	case Keyed:
		for _, k := range n.keys {
			if err := f.flatten(n.children[k], append(path, k)); err != nil {
				return err
			}
		}
	case Unkeyed:
		for i, e := range n.elems {
			if err := f.flatten(e, append(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
	case Single:
		return f.emit(renderPath(path), n.value)
	}
	return nil
}

func (f *flattener) emit(name, value string) error {
	if _, ok := f.values[name]; ok {
		Logger().Debug("path collision",
			zap.String("name", name),
			zap.Bool("strict", f.strict))
		if f.strict {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, name)
		}
	}
	f.values[name] = value
	return nil
}

func renderPath(path []string) string {
	var b strings.Builder
	b.WriteString(path[0])
	for _, p := range path[1:] {
		b.WriteString("[")
		b.WriteString(p)
		b.WriteString("]")
	}
	return b.String()
}
