package queryitems_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestItems(t *testing.T) {
	t.Parallel()

	in := items("a", "1", "b[0]", "x y", "b[1]", "&")

	if diff := cmp.Diff(url.Values{"a": {"1"}, "b[0]": {"x y"}, "b[1]": {"&"}}, in.Values()); diff != "" {
		t.Errorf("Values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"a": "1", "b[0]": "x y", "b[1]": "&"}, in.Map()); diff != "" {
		t.Errorf("Map (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b[0]", "b[1]"}, in.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("a=1&b[0]=x y&b[1]=&", in.String()); diff != "" {
		t.Errorf("String (-want +got):\n%s", diff)
	}
	if got := items().String(); got != "" {
		t.Errorf("expected an empty string, got: %q", got)
	}
}
