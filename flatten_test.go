package queryitems_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomasbasham/queryitems"
)

type nodes = map[string]*queryitems.Node

var (
	keyed   = queryitems.KeyedNode
	unkeyed = queryitems.UnkeyedNode
	single  = queryitems.SingleNode
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		root    *queryitems.Node
		opts    []queryitems.Option
		want    queryitems.Items
		wantErr error
	}{
		"nil root": {
			root: nil,
			want: items(),
		},
		"empty root": {
			root: queryitems.NewNode(),
			want: items(),
		},
		"mixed tree": {
			root: keyed(nodes{
				"a": single("v-a"),
				"b": keyed(nodes{
					"b_a": single("v-b_a"),
					"b_b": keyed(nodes{
						"b_b_a": single("v-b_b_a"),
					}),
					"b_c": unkeyed(single("v-b_c_0")),
				}),
				"c": unkeyed(
					single("v-c_0"),
					keyed(nodes{"c_1_a": single("v-c_1_a")}),
					unkeyed(single("v-c_2_0")),
				),
			}),
			want: items(
				"a", "v-a",
				"b[b_a]", "v-b_a",
				"b[b_b][b_b_a]", "v-b_b_a",
				"b[b_c][0]", "v-b_c_0",
				"c[0]", "v-c_0",
				"c[1][c_1_a]", "v-c_1_a",
				"c[2][0]", "v-c_2_0",
			),
		},
		"empty children contribute nothing": {
			root: keyed(nodes{
				"a": queryitems.NewNode(),
				"b": single("1"),
			}),
			want: items("b", "1"),
		},
		"keys are not escaped": {
			root: keyed(nodes{"a b": keyed(nodes{"c]d": single("e&f")})}),
			want: items("a b[c]d]", "e&f"),
		},
		"single root": {
			root:    single("1"),
			wantErr: queryitems.ErrUnsupportedRootShape,
		},
		"unkeyed root": {
			root:    unkeyed(single("1")),
			wantErr: queryitems.ErrUnsupportedRootShape,
		},
		"strict without collisions": {
			root: keyed(nodes{"a": unkeyed(single("1"), single("2"))}),
			opts: []queryitems.Option{queryitems.StrictPaths(true)},
			want: items("a[0]", "1", "a[1]", "2"),
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := queryitems.Flatten(tt.root, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten_Collisions(t *testing.T) {
	t.Parallel()

	// Both children render to a[b]; the order they were added in decides
	// which value survives.
	build := func(bracketedFirst bool) *queryitems.Node {
		root := queryitems.NewNode()
		nested := func() error { return root.AddKeyedChild("a", keyed(nodes{"b": single("nested")})) }
		literal := func() error { return root.AddKeyedChild("a[b]", single("literal")) }
		steps := []func() error{nested, literal}
		if bracketedFirst {
			steps = []func() error{literal, nested}
		}
		for _, step := range steps {
			if err := step(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		return root
	}

	tests := map[string]struct {
		root    *queryitems.Node
		opts    []queryitems.Option
		want    queryitems.Items
		wantErr error
	}{
		"literal written last": {
			root: build(false),
			want: items("a[b]", "literal"),
		},
		"nested written last": {
			root: build(true),
			want: items("a[b]", "nested"),
		},
		"strict": {
			root:    build(false),
			opts:    []queryitems.Option{queryitems.StrictPaths(true)},
			wantErr: queryitems.ErrDuplicatePath,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := queryitems.Flatten(tt.root, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
