package queryitems

// Marshaler is the interface implemented by types that describe their own
// query structure. MarshalQuery is handed a [Builder] bound to the node that
// represents the value, and should open exactly one container on it.
type Marshaler interface {
	MarshalQuery(b *Builder) error
}

// Builder is the sink a value writes its structure into. A Builder is bound
// to a single [Node]; the containers it hands out write into that node or
// into children they create.
type Builder struct {
	node *Node
	opts *options
}

// NewBuilder returns a Builder writing into n.
func NewBuilder(n *Node, opts ...Option) *Builder {
	return newBuilder(n, newOptions(opts))
}

func newBuilder(n *Node, o *options) *Builder {
	return &Builder{node: n, opts: o}
}

// Node returns the node b writes into.
func (b *Builder) Node() *Node {
	return b.node
}

// Keyed returns a container for writing named children. The node does not
// become keyed until the first child is written.
func (b *Builder) Keyed() *KeyedContainer {
	return &KeyedContainer{node: b.node, opts: b.opts}
}

// Unkeyed returns a container for appending children. The node does not
// become unkeyed until the first child is appended.
func (b *Builder) Unkeyed() *UnkeyedContainer {
	return &UnkeyedContainer{node: b.node, opts: b.opts}
}

// Single returns a container for writing the node's scalar value.
func (b *Builder) Single() *SingleValueContainer {
	return &SingleValueContainer{node: b.node, opts: b.opts}
}

// KeyedContainer writes named children into a node.
type KeyedContainer struct {
	node *Node
	opts *options
}

// Encode writes the string form of v under key. A nil v writes nothing.
func (c *KeyedContainer) Encode(key string, v interface{}) error {
	if isNil(v) {
		return nil
	}
	s, err := formatScalar(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.AddKeyedChild(key, SingleNode(s))
}

// EncodeNil records an absent value under key, which writes nothing.
func (c *KeyedContainer) EncodeNil(key string) error {
	return nil
}

// EncodeValue encodes v on its own and attaches the result under key. A nil
// v writes nothing.
func (c *KeyedContainer) EncodeValue(key string, v interface{}) error {
	if isNil(v) {
		return nil
	}
	n, err := encodeTree(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.AddKeyedChild(key, n)
}

// NestedKeyed attaches an empty child under key and returns a container
// writing named children into it.
func (c *KeyedContainer) NestedKeyed(key string) (*KeyedContainer, error) {
	n := NewNode()
	if err := c.node.AddKeyedChild(key, n); err != nil {
		return nil, err
	}
	return &KeyedContainer{node: n, opts: c.opts}, nil
}

// NestedUnkeyed attaches an empty child under key and returns a container
// appending children to it.
func (c *KeyedContainer) NestedUnkeyed(key string) (*UnkeyedContainer, error) {
	n := NewNode()
	if err := c.node.AddKeyedChild(key, n); err != nil {
		return nil, err
	}
	return &UnkeyedContainer{node: n, opts: c.opts}, nil
}

// UnkeyedContainer appends children to a node.
type UnkeyedContainer struct {
	node *Node
	opts *options
}

// Count returns the number of children appended so far.
func (c *UnkeyedContainer) Count() int {
	if c.node.kind != Unkeyed {
		return 0
	}
	return len(c.node.elems)
}

// Encode appends the string form of v. A nil v appends nothing and does not
// consume an index.
func (c *UnkeyedContainer) Encode(v interface{}) error {
	if isNil(v) {
		return nil
	}
	s, err := formatScalar(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.AddUnkeyedChild(SingleNode(s))
}

// EncodeNil records an absent element, which appends nothing.
func (c *UnkeyedContainer) EncodeNil() error {
	return nil
}

// EncodeValue encodes v on its own and appends the result.
func (c *UnkeyedContainer) EncodeValue(v interface{}) error {
	if isNil(v) {
		return nil
	}
	n, err := encodeTree(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.AddUnkeyedChild(n)
}

// NestedKeyed appends an empty child and returns a container writing named
// children into it.
func (c *UnkeyedContainer) NestedKeyed() (*KeyedContainer, error) {
	n := NewNode()
	if err := c.node.AddUnkeyedChild(n); err != nil {
		return nil, err
	}
	return &KeyedContainer{node: n, opts: c.opts}, nil
}

// NestedUnkeyed appends an empty child and returns a container appending
// children to it.
func (c *UnkeyedContainer) NestedUnkeyed() (*UnkeyedContainer, error) {
	n := NewNode()
	if err := c.node.AddUnkeyedChild(n); err != nil {
		return nil, err
	}
	return &UnkeyedContainer{node: n, opts: c.opts}, nil
}

// SingleValueContainer writes the scalar value of a node.
type SingleValueContainer struct {
	node *Node
	opts *options
}

// Encode stores the string form of v, replacing any earlier value. A nil v
// writes nothing.
func (c *SingleValueContainer) Encode(v interface{}) error {
	if isNil(v) {
		return nil
	}
	s, err := formatScalar(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.SetScalar(s)
}

// EncodeNil records an absent value, which writes nothing.
func (c *SingleValueContainer) EncodeNil() error {
	return nil
}

// EncodeValue encodes v on its own and makes the result the contents of this
// node. The node must be empty, or both it and the result must be single.
func (c *SingleValueContainer) EncodeValue(v interface{}) error {
	if isNil(v) {
		return nil
	}
	n, err := encodeTree(v, c.opts)
	if err != nil {
		return err
	}
	return c.node.adopt(n)
}
