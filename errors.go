package uniformbuf

import "errors"

var (
	// ErrCreateFailed means the backend could not produce a buffer
	// handle.
	ErrCreateFailed = errors.New("uniformbuf: buffer create failed")
	// ErrTooBig means the requested or packed size exceeds the
	// platform's maximum UBO size.
	ErrTooBig = errors.New("uniformbuf: buffer exceeds max UBO size")
)
