package queryitems

import (
	"reflect"
	"strings"
	"sync"
)

// cache of struct tags to avoid repeated parsing of the same struct type across
// multiple calls to tags. The key is the [reflect.Type] of the struct together
// with the tag key in use, and the value is a slice of *tag, one for each
// field on the struct.
//
// This cache is safe for concurrent use.
var structTagCache sync.Map

type tagCacheKey struct {
	t   reflect.Type
	key string
}

type tag struct {
	Name   string
	Omit   bool
	Ignore bool
}

func tags(tt reflect.Type, key string) []*tag {
	if tt.Kind() != reflect.Struct {
		return []*tag{}
	}

	// Check the cache first.
	ck := tagCacheKey{t: tt, key: key}
	if cached, ok := structTagCache.Load(ck); ok {
		return cached.([]*tag)
	}

	// Create a slice of tags to store the tags for each field on the struct. The
	// length of the slice is equal to the number of fields on the struct.
	tags := make([]*tag, tt.NumField())

	for i := 0; i < tt.NumField(); i++ {
		f := tt.Field(i)

		// Unexported fields cannot be read through reflection.
		if !f.IsExported() {
			tags[i] = &tag{Ignore: true}
			continue
		}

		tag := parseTag(f.Tag.Get(key))
		if !tag.Ignore && tag.Name == "" {
			tag.Name = f.Name
		}
		tags[i] = tag
	}

	// Store the tags in the cache.
	structTagCache.Store(ck, tags)
	return tags
}

// parseTag parses a tag of the form "name,opt1,opt2". A name of "-" or an
// "ignore" option drops the field.
func parseTag(str string) *tag {
	name, opts, _ := strings.Cut(strings.TrimSpace(str), ",")
	t := &tag{Name: strings.TrimSpace(name)}
	if t.Name == "-" {
		return &tag{Ignore: true}
	}

	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		switch strings.TrimSpace(opt) {
		case "omitempty":
			t.Omit = true
		case "ignore":
			t.Ignore = true
		}
	}
	return t
}
