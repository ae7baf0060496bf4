package queryitems

import (
	"sort"

	"go.uber.org/zap"
)

// Kind is the structural kind of a [Node].
type Kind int

const (
	// Empty is the kind of a node that has not been written to.
	Empty Kind = iota
	// Keyed is the kind of a node holding named children.
	Keyed
	// Unkeyed is the kind of a node holding an ordered sequence of children.
	Unkeyed
	// Single is the kind of a node holding one scalar value.
	Single
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Keyed:
		return "keyed"
	case Unkeyed:
		return "unkeyed"
	case Single:
		return "single"
	default:
		return "unknown"
	}
}

// Node is one position in the tree built while a value is encoded. The kind
// of a node is decided by the first write it receives and cannot change
// afterwards, although keyed and unkeyed nodes keep accepting children and
// single nodes accept a new value.
//
// A Node is not safe for concurrent use.
type Node struct {
	kind Kind

	// keys records insertion order of children so that collisions during
	// flattening resolve the same way on every run.
	keys     []string
	children map[string]*Node
	elems    []*Node
	value    string
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{}
}

// KeyedNode returns a keyed node holding children. Keys are inserted in
// sorted order. An empty map yields an empty node.
func KeyedNode(children map[string]*Node) *Node {
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := NewNode()
	for _, k := range keys {
		// Cannot fail: n is either empty or keyed.
		_ = n.AddKeyedChild(k, children[k])
	}
	return n
}

// UnkeyedNode returns an unkeyed node holding elems in order. No elements
// yields an empty node.
func UnkeyedNode(elems ...*Node) *Node {
	n := NewNode()
	for _, e := range elems {
		_ = n.AddUnkeyedChild(e)
	}
	return n
}

// SingleNode returns a single node holding value.
func SingleNode(value string) *Node {
	return &Node{kind: Single, value: value}
}

// Kind reports the structural kind of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Len returns the number of children of a keyed or unkeyed node, and zero
// otherwise.
func (n *Node) Len() int {
	switch n.kind {
	case Keyed:
		return len(n.keys)
	case Unkeyed:
		return len(n.elems)
	default:
		return 0
	}
}

// Keys returns the keys of a keyed node in insertion order.
func (n *Node) Keys() []string {
	if n.kind != Keyed {
		return nil
	}
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Child returns the child stored under key, if any.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.children[key]
	return c, ok
}

// Index returns the i'th child of an unkeyed node, if any.
func (n *Node) Index(i int) (*Node, bool) {
	if i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// Value returns the scalar held by a single node.
func (n *Node) Value() string {
	return n.value
}

// AddKeyedChild attaches child under key. An empty node becomes keyed. A
// child already stored under key is replaced.
func (n *Node) AddKeyedChild(key string, child *Node) error {
	switch n.kind {
	case Empty:
		n.kind = Keyed
		n.children = map[string]*Node{key: child}
		n.keys = []string{key}
	case Keyed:
		if _, ok := n.children[key]; !ok {
			n.keys = append(n.keys, key)
		}
		n.children[key] = child
	default:
		return n.conflict("add keyed child " + key)
	}
	return nil
}

// AddUnkeyedChild appends child. An empty node becomes unkeyed.
func (n *Node) AddUnkeyedChild(child *Node) error {
	switch n.kind {
	case Empty:
		n.kind = Unkeyed
		n.elems = []*Node{child}
	case Unkeyed:
		n.elems = append(n.elems, child)
	default:
		return n.conflict("add unkeyed child")
	}
	return nil
}

// SetScalar stores value. An empty node becomes single; a single node has its
// value replaced.
func (n *Node) SetScalar(value string) error {
	switch n.kind {
	case Empty, Single:
		n.kind = Single
		n.value = value
	default:
		return n.conflict("set scalar")
	}
	return nil
}

// adopt replaces the contents of n with those of src. It is used when a
// single value slot is filled by a full sub-encode.
func (n *Node) adopt(src *Node) error {
	switch {
	case n.kind == Empty:
	case n.kind == Single && (src.kind == Single || src.kind == Empty):
		if src.kind == Empty {
			return nil
		}
	default:
		return n.conflict("adopt " + src.kind.String() + " node")
	}
	*n = *src
	return nil
}

func (n *Node) conflict(op string) error {
	Logger().Debug("structural conflict",
		zap.Stringer("kind", n.kind),
		zap.String("op", op))
	return &ConflictError{Have: n.kind, Op: op}
}
