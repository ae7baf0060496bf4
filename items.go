package queryitems

import (
	"net/url"
	"strings"
)

// Item is a single query parameter.
type Item struct {
	Name  string
	Value string
}

// Items is a set of query parameters. Functions in this package return items
// sorted by name, but no meaning is attached to the order.
type Items []Item

// Values returns the items as [url.Values].
func (items Items) Values() url.Values {
	values := make(url.Values, len(items))
	for _, it := range items {
		values.Add(it.Name, it.Value)
	}
	return values
}

// Map returns the items keyed by name.
func (items Items) Map() map[string]string {
	m := make(map[string]string, len(items))
	for _, it := range items {
		m[it.Name] = it.Value
	}
	return m
}

// Names returns the item names in order.
func (items Items) Names() []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

// String joins the items as name=value pairs separated by '&'. Names and
// values are written as is, without escaping.
func (items Items) String() string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(it.Name)
		b.WriteByte('=')
		b.WriteString(it.Value)
	}
	return b.String()
}
