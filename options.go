package queryitems

import "time"

const defaultTagName = "query"

// Option configures [Encode], [Flatten] and the functions built on them.
type Option func(*options)

type options struct {
	strict     bool
	timeLayout string
	tagName    string
}

func newOptions(opts []Option) *options {
	o := &options{
		timeLayout: time.RFC3339Nano,
		tagName:    defaultTagName,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StrictPaths makes flattening fail with [ErrDuplicatePath] when two leaves
// render to the same name. By default the leaf written last wins.
func StrictPaths(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// TimeLayout sets the layout used to render [time.Time] values. The default
// is [time.RFC3339Nano].
func TimeLayout(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.timeLayout = layout
		}
	}
}

// TagName sets the struct tag key consulted for field names. The default is
// "query".
func TagName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.tagName = name
		}
	}
}
