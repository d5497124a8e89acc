package uniformbuf

import "sync/atomic"

// Buffer is a GPU uniform buffer. Static buffers are a fixed blob the
// caller overwrites wholesale; dynamic buffers assemble loose uniform
// values into an alignment-correct block with a CPU-side mirror and
// dirty tracking, uploading lazily at bind time.
type Buffer struct {
	size      int
	handle    Handle
	bindPoint int
	typ       BufferType

	// Dynamic state. items and lookup are fixed at construction; only
	// the contents of data change across frames.
	items  []PackedItem
	lookup []int
	byId   map[string]int
	data   []byte

	initialized bool
	// dirty may be set from a thread that does not own the GPU context
	// (RefreshDynamic, TagDirty); it is cleared on the GPU thread by
	// UploadDynamic.
	dirty atomic.Bool
}

func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Type() BufferType {
	return b.typ
}

// BindPoint returns the currently recorded bind slot, -1 when unbound.
func (b *Buffer) BindPoint() int {
	return b.bindPoint
}

// Handle returns the backend buffer handle; zero once destroyed.
func (b *Buffer) Handle() Handle {
	return b.handle
}

// Items returns a dynamic buffer's packed layout in its fixed
// construction order.
func (b *Buffer) Items() []PackedItem {
	return b.items
}

// Lookup returns, for each packed item position, the index of the input
// (within the collection passed to CreateDynamic) that populates it.
func (b *Buffer) Lookup() []int {
	return b.lookup
}

// Bytes exposes the CPU mirror of a dynamic buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Dirty() bool {
	return b.dirty.Load()
}

// TagDirty marks the CPU mirror as ahead of the GPU copy, forcing an
// upload on the next Bind. Safe to call off the GPU thread.
func (b *Buffer) TagDirty() {
	if b.typ != Dynamic {
		panic("uniformbuf: TagDirty on a static buffer")
	}
	b.dirty.Store(true)
}
