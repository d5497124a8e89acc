package uniformbuf

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// WgpuBackend implements Backend on a webgpu device. Buffers carry
// uniform|copy-dst usage and are written through the queue. Slot
// bindings are tracked CPU-side and surfaced as bind group entries,
// since webgpu has no glBindBufferBase equivalent.
type WgpuBackend struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	limits wgpu.Limits

	next    Handle
	buffers map[Handle]*wgpu.Buffer
	slots   map[int]Handle
}

func NewWgpuBackend(device *wgpu.Device) *WgpuBackend {
	return &WgpuBackend{
		device:  device,
		queue:   device.GetQueue(),
		limits:  wgpu.DefaultLimits(),
		next:    1,
		buffers: map[Handle]*wgpu.Buffer{},
		slots:   map[int]Handle{},
	}
}

func (w *WgpuBackend) CreateBuffer(size int, label string) (Handle, error) {
	buf, err := w.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, err
	}
	h := w.next
	w.next++
	w.buffers[h] = buf
	return h, nil
}

func (w *WgpuBackend) UploadFull(h Handle, data []byte) {
	w.queue.WriteBuffer(w.buffers[h], 0, data)
}

func (w *WgpuBackend) UploadPartial(h Handle, offset int, data []byte) {
	w.queue.WriteBuffer(w.buffers[h], uint64(offset), data)
}

func (w *WgpuBackend) BindSlot(h Handle, slot int) {
	w.slots[slot] = h
}

func (w *WgpuBackend) DeleteBuffer(h Handle) {
	if buf, ok := w.buffers[h]; ok {
		buf.Release()
		delete(w.buffers, h)
	}
	for slot, bound := range w.slots {
		if bound == h {
			delete(w.slots, slot)
		}
	}
}

func (w *WgpuBackend) MaxBufferSize() int {
	return int(w.limits.MaxUniformBufferBindingSize)
}

func (w *WgpuBackend) MaxBindSlots() int {
	return int(w.limits.MaxUniformBuffersPerShaderStage)
}

// Buffer returns the wgpu buffer behind a handle, for callers that
// build their own bind groups.
func (w *WgpuBackend) Buffer(h Handle) *wgpu.Buffer {
	return w.buffers[h]
}

// BindGroupEntries returns the currently bound slots as bind group
// entries, ordered by slot number.
func (w *WgpuBackend) BindGroupEntries() []wgpu.BindGroupEntry {
	slots := make([]int, 0, len(w.slots))
	for s := range w.slots {
		slots = append(slots, s)
	}
	sort.Ints(slots)

	entries := make([]wgpu.BindGroupEntry, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: uint32(s),
			Buffer:  w.buffers[w.slots[s]],
			Size:    wgpu.WholeSize,
		})
	}
	return entries
}
