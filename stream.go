package queryitems

import (
	"bufio"
	"io"
)

// Encoder writes query items to an [io.Writer], one name=value pair per line.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder creates a new [Encoder] that writes to w. The options apply to
// every call to [Encoder.Encode].
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode encodes v and writes its items to the underlying [io.Writer]. Nothing
// is written if encoding fails.
func (e *Encoder) Encode(v interface{}) error {
	items, err := Encode(v, e.opts...)
	if err != nil {
		return err
	}
	return e.WriteItems(items)
}

// WriteItems writes items to the underlying [io.Writer].
func (e *Encoder) WriteItems(items Items) error {
	bw := bufio.NewWriter(e.w)
	for _, it := range items {
		bw.WriteString(it.Name)
		bw.WriteByte('=')
		bw.WriteString(it.Value)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
