package uniformbuf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Manager owns buffer creation, upload and binding against one Backend.
// A buffer has a single logical owner and the manager does no locking
// of its own: RefreshDynamic and TagDirty are the only operations safe
// to run off the GPU thread, and the caller must keep them from racing
// Bind/UploadDynamic on the same buffer.
type Manager struct {
	backend Backend
	log     Logger
}

// NewManager wires a manager to a backend. A nil logger falls back to
// the no-op logger.
func NewManager(backend Backend, log Logger) *Manager {
	if log == nil {
		log = NewNopLogger()
	}
	return &Manager{backend: backend, log: log}
}

// CreateStatic allocates a fixed-size buffer and uploads data once.
func (m *Manager) CreateStatic(size int, data []byte) (*Buffer, error) {
	b := &Buffer{size: size, bindPoint: -1, typ: Static}
	if err := m.allocate(b, "uniformbuf static"); err != nil {
		return nil, err
	}
	m.backend.UploadFull(b.handle, data)
	m.log.Debugf("created static UBO, %d bytes", size)
	return b, nil
}

// CreateDynamic packs the eligible inputs into an alignment-correct
// block and creates a buffer for them. Returns (nil, nil) when no input
// is eligible: no buffer is needed, which is not an error. On error no
// partial buffer is left allocated.
func (m *Manager) CreateDynamic(inputs []*Input) (*Buffer, error) {
	layout := packInputs(inputs)
	if layout == nil {
		return nil, nil
	}

	b := &Buffer{
		size:      layout.size,
		bindPoint: -1,
		typ:       Dynamic,
		items:     layout.items,
		lookup:    layout.lookup,
		byId:      layout.byId,
	}
	if err := m.allocate(b, "uniformbuf dynamic"); err != nil {
		return nil, err
	}
	b.data = make([]byte, layout.size)
	b.dirty.Store(true)

	// Fill the mirror and push it so the buffer is valid before its
	// first bind.
	m.RefreshDynamic(b, inputs)
	m.UploadDynamic(b)
	m.log.Debugf("created dynamic UBO, %d items, %d bytes", len(b.items), b.size)
	return b, nil
}

func (m *Manager) allocate(b *Buffer, label string) error {
	if b.size > m.backend.MaxBufferSize() {
		return fmt.Errorf("%w: %d > %d", ErrTooBig, b.size, m.backend.MaxBufferSize())
	}
	h, err := m.backend.CreateBuffer(b.size, label)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	b.handle = h
	return nil
}

// UpdateStatic overwrites the whole buffer. data must match the size
// the buffer was created with.
func (m *Manager) UpdateStatic(b *Buffer, data []byte) {
	if b.typ != Static {
		panic("uniformbuf: UpdateStatic on a dynamic buffer")
	}
	if len(data) != b.size {
		panic(fmt.Sprintf("uniformbuf: UpdateStatic with %d bytes, buffer is %d", len(data), b.size))
	}
	m.backend.UploadFull(b.handle, data)
}

// RefreshDynamic copies the current values of the eligible inputs into
// the CPU mirror and marks the buffer dirty. It never touches the GPU
// handle, so it may run on a thread that does not own the GPU context.
// Inputs that were not part of the buffer's construction set are
// skipped.
func (m *Manager) RefreshDynamic(b *Buffer, inputs []*Input) {
	if b.typ != Dynamic {
		panic("uniformbuf: RefreshDynamic on a static buffer")
	}
	for _, in := range inputs {
		if !in.eligible() {
			continue
		}
		idx, ok := b.byId[in.Id]
		if !ok {
			continue
		}
		item := b.items[idx]
		writeFloats(b.data[item.Offset:item.Offset+item.ValueSize], in.Values)
	}
	b.dirty.Store(true)
}

// UploadDynamic pushes the CPU mirror to the GPU: a full write the
// first time, a sub-range overwrite of the whole block afterwards.
// Clears the dirty flag. Must run on the GPU-context thread.
func (m *Manager) UploadDynamic(b *Buffer) {
	if b.typ != Dynamic {
		panic("uniformbuf: UploadDynamic on a static buffer")
	}
	if b.initialized {
		m.backend.UploadPartial(b.handle, 0, b.data)
	} else {
		m.backend.UploadFull(b.handle, b.data)
		b.initialized = true
	}
	b.dirty.Store(false)
}

// Bind makes the buffer active at slot, uploading first when a dynamic
// buffer is dirty. Slots beyond the platform bind count are logged and
// skipped. The bind point is recorded even when the handle is invalid;
// only the overflow path leaves it untouched.
func (m *Manager) Bind(b *Buffer, slot int) {
	if slot >= m.backend.MaxBindSlots() {
		m.log.Warnf("not enough UBO slots: slot %d, max %d", slot, m.backend.MaxBindSlots())
		return
	}

	if b.typ == Dynamic && b.dirty.Load() {
		m.UploadDynamic(b)
	}

	if b.handle != 0 {
		m.backend.BindSlot(b.handle, slot)
	}
	b.bindPoint = slot
}

// Unbind clears the recorded bind point. The GPU-side binding is left
// alone.
func (m *Manager) Unbind(b *Buffer) {
	b.bindPoint = -1
}

// Destroy releases a dynamic buffer's CPU state and deletes the GPU
// handle.
func (m *Manager) Destroy(b *Buffer) {
	if b.typ == Dynamic {
		b.data = nil
		b.lookup = nil
		b.items = nil
		b.byId = nil
	}
	m.backend.DeleteBuffer(b.handle)
	b.handle = 0
	m.log.Debugf("destroyed UBO")
}

func writeFloats(dst []byte, values []float32) {
	n := len(dst) / 4
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(values[i]))
	}
}
