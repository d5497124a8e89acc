package uniformbuf

// Handle identifies a backend buffer object. Zero is the invalid
// handle.
type Handle uint64

// Backend is the GPU buffer-object primitive the manager drives. The
// real implementation is WgpuBackend; tests substitute a fake. All
// methods except the limit queries must run on the thread that owns the
// GPU context.
type Backend interface {
	// CreateBuffer allocates a buffer object of the given byte size.
	CreateBuffer(size int, label string) (Handle, error)
	// UploadFull replaces the buffer's entire contents.
	UploadFull(h Handle, data []byte)
	// UploadPartial overwrites len(data) bytes starting at offset.
	UploadPartial(h Handle, offset int, data []byte)
	// BindSlot makes the buffer active at the given uniform slot.
	BindSlot(h Handle, slot int)
	DeleteBuffer(h Handle)

	// MaxBufferSize is the platform's maximum UBO byte size.
	MaxBufferSize() int
	// MaxBindSlots is the number of simultaneous UBO bind points.
	MaxBindSlots() int
}
