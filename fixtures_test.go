package queryitems_test

import (
	"errors"
	"sort"
	"time"

	"github.com/tomasbasham/queryitems"
)

var errBoom = errors.New("boom")

type Person struct {
	Name     string   `query:"name"`
	Age      int      `query:"age,omitempty"`
	Pronouns []string `query:"pronouns"`
}

type ComplexPerson struct {
	ID        int      `query:"id"`
	Name      string   `query:"name"`
	Age       int      `query:"age,omitempty"`
	Pronouns  []string `query:"pronouns,omitempty"`
	CreatedAt MyDate   `query:"created_at"`
	Private   string   `query:"-"`
	Optional  *string  `query:"optional,omitempty"`
}

type IgnoredFieldsForm struct {
	Public  string `query:"public"`
	Private string `query:"-"`
	Ignored string `query:",ignore"`
	NoTag   string
	Empty   string `query:""`
	Omitted string `query:",omitempty"`
	Complex MyDate `query:"complex,omitempty"`
	hidden  string
}

type User struct {
	Name    string  `query:"name"`
	Age     int     `query:"age,omitempty"`
	Address Address `query:"address"`
}

type Address struct {
	Street string `query:"street"`
	City   string `query:"city"`
	State  string `query:"state"`
	Zip    string `query:"zip"`
}

type MyDate time.Time

func (d MyDate) MarshalQueryValue() (string, error) {
	return time.Time(d).Format("2006.01.02"), nil
}

// flag writes a scalar and a nested keyed container by hand.
type flag struct{}

func (flag) MarshalQuery(b *queryitems.Builder) error {
	root := b.Keyed()
	if err := root.Encode("a", true); err != nil {
		return err
	}
	nested, err := root.NestedKeyed("b")
	if err != nil {
		return err
	}
	return nested.Encode("b", 1)
}

// nestedPair writes a=1 and a nested container b holding a=2 and b=3.
type nestedPair struct {
	reversed bool
}

func (p nestedPair) MarshalQuery(b *queryitems.Builder) error {
	root := b.Keyed()
	writeOuter := func() error { return root.Encode("a", 1) }
	writeInner := func() error {
		nested, err := root.NestedKeyed("b")
		if err != nil {
			return err
		}
		if p.reversed {
			if err := nested.Encode("b", 3); err != nil {
				return err
			}
			return nested.Encode("a", 2)
		}
		if err := nested.Encode("a", 2); err != nil {
			return err
		}
		return nested.Encode("b", 3)
	}

	steps := []func() error{writeOuter, writeInner}
	if p.reversed {
		steps[0], steps[1] = steps[1], steps[0]
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// appendThenSet appends to a node and then tries to give it a scalar.
type appendThenSet struct{}

func (appendThenSet) MarshalQuery(b *queryitems.Builder) error {
	if err := b.Unkeyed().Encode(1); err != nil {
		return err
	}
	return b.Single().Encode(2)
}

// wrapper fills its single value slot with a full encode of v.
type wrapper struct {
	v interface{}
}

func (w wrapper) MarshalQuery(b *queryitems.Builder) error {
	return b.Single().EncodeValue(w.v)
}

// scalarThenValue writes a scalar and then fills the same slot with a full
// encode of v.
type scalarThenValue struct {
	v interface{}
}

func (w scalarThenValue) MarshalQuery(b *queryitems.Builder) error {
	s := b.Single()
	if err := s.Encode("first"); err != nil {
		return err
	}
	return s.EncodeValue(w.v)
}

// counter is a Marshaler with a pointer receiver.
type counter struct {
	n int
}

func (c *counter) MarshalQuery(b *queryitems.Builder) error {
	return b.Keyed().Encode("count", c.n)
}

type failingValue struct{}

func (failingValue) MarshalQueryValue() (string, error) {
	return "", errBoom
}

// items builds the expected result from name/value pairs, in the order the
// package returns them.
func items(pairs ...string) queryitems.Items {
	out := queryitems.Items{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, queryitems.Item{Name: pairs[i], Value: pairs[i+1]})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
