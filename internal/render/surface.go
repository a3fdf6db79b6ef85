package render

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// surfaces hands out scratch buffers for one render at a time. A buffer is
// never shared between concurrent renders and is always reset on release.
var surfaces = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// draw acquires a surface, lets fn render into it and returns a copy of the
// bytes written. The surface is released on every exit path, including a panic
// in the drawing backend, which is reported as an error.
func draw(fn func(w io.Writer) error) (out []byte, err error) {
	buf := surfaces.Get().(*bytes.Buffer)
	buf.Reset()

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("drawing backend panic: %v", r)
		}

		buf.Reset()
		surfaces.Put(buf)
	}()

	if err := fn(buf); err != nil {
		return nil, err
	}

	out = make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
