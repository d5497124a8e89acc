package uniformbuf

import (
	"errors"
	"fmt"
)

type upload struct {
	handle  Handle
	offset  int
	partial bool
	data    []byte
}

// fakeBackend records everything the manager asks for, with injectable
// limits and allocation failure.
type fakeBackend struct {
	maxSize    int
	maxSlots   int
	failCreate bool

	next    Handle
	alive   map[Handle]int
	uploads []upload
	binds   map[int]Handle
	deleted []Handle
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		maxSize:  16384,
		maxSlots: 8,
		next:     1,
		alive:    map[Handle]int{},
		binds:    map[int]Handle{},
	}
}

func (f *fakeBackend) CreateBuffer(size int, label string) (Handle, error) {
	if f.failCreate {
		return 0, errors.New("fake: out of handles")
	}
	h := f.next
	f.next++
	f.alive[h] = size
	return h, nil
}

func (f *fakeBackend) UploadFull(h Handle, data []byte) {
	f.uploads = append(f.uploads, upload{handle: h, data: append([]byte(nil), data...)})
}

func (f *fakeBackend) UploadPartial(h Handle, offset int, data []byte) {
	f.uploads = append(f.uploads, upload{handle: h, offset: offset, partial: true, data: append([]byte(nil), data...)})
}

func (f *fakeBackend) BindSlot(h Handle, slot int) {
	f.binds[slot] = h
}

func (f *fakeBackend) DeleteBuffer(h Handle) {
	delete(f.alive, h)
	f.deleted = append(f.deleted, h)
}

func (f *fakeBackend) MaxBufferSize() int { return f.maxSize }
func (f *fakeBackend) MaxBindSlots() int  { return f.maxSlots }

type recordingLogger struct {
	nopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
