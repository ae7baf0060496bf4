// Package queryitems flattens structured Go values into URL query items.
//
// Values are first traversed into an intermediate tree of [Node] values, each
// of which is either keyed, unkeyed or a single scalar. The tree is then
// flattened into name/value pairs using the bracketed-path convention found in
// many web frameworks, so that
//
//	{a: 1, b: [2, 3], c: {d: 4}}
//
// becomes
//
//	a=1
//	b[0]=2
//	b[1]=3
//	c[d]=4
//
// Types may describe their own structure by implementing [Marshaler], and
// describe their own scalar form by implementing [ValueMarshaler]. Structs,
// string-keyed maps, slices and arrays are handled by reflection. Names and
// values are not percent-encoded; that is left to whoever assembles the URL.
package queryitems
