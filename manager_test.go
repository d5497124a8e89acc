package uniformbuf

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind_LazyUploadOfDirtyBuffer(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	v := mgl32.Vec4{1, 2, 3, 4}
	inputs := []*Input{Vec4Input(&v)}
	buf, err := m.CreateDynamic(inputs)
	require.NoError(t, err)
	require.Len(t, f.uploads, 1)

	v = mgl32.Vec4{5, 6, 7, 8}
	m.RefreshDynamic(buf, inputs)
	require.True(t, buf.Dirty())

	m.Bind(buf, 2)

	assert.Len(t, f.uploads, 2, "Bind must upload a dirty buffer first")
	assert.True(t, f.uploads[1].partial, "steady-state upload is a sub-range write")
	assert.False(t, buf.Dirty())
	assert.Equal(t, 2, buf.BindPoint())
	assert.Equal(t, buf.Handle(), f.binds[2])
}

func TestBind_CleanBufferSkipsUpload(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	v := mgl32.Vec2{1, 2}
	buf, err := m.CreateDynamic([]*Input{Vec2Input(&v)})
	require.NoError(t, err)

	uploads := len(f.uploads)
	m.Bind(buf, 0)
	assert.Len(t, f.uploads, uploads, "clean buffer must bind without uploading")
	assert.Equal(t, 0, buf.BindPoint())
}

func TestBind_SlotOverflowWarnsAndSkips(t *testing.T) {
	f := newFakeBackend()
	logger := &recordingLogger{}
	m := NewManager(f, logger)

	buf, err := m.CreateStatic(8, make([]byte, 8))
	require.NoError(t, err)

	m.Bind(buf, f.maxSlots)

	assert.Len(t, logger.warnings, 1, "overflow must log a warning")
	assert.Empty(t, f.binds, "overflow must not touch GPU state")
	assert.Equal(t, -1, buf.BindPoint(), "overflow must not record the slot")
}

func TestBind_RecordsSlotEvenWithInvalidHandle(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	v := mgl32.Vec2{1, 2}
	buf, err := m.CreateDynamic([]*Input{Vec2Input(&v)})
	require.NoError(t, err)

	m.Destroy(buf)
	require.Equal(t, Handle(0), buf.Handle())

	m.Bind(buf, 3)
	assert.Empty(t, f.binds, "invalid handle must not reach the backend")
	assert.Equal(t, 3, buf.BindPoint(), "bind point is bookkeeping, recorded regardless")
}

func TestUnbind_ResetsBindPointOnly(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	buf, err := m.CreateStatic(4, make([]byte, 4))
	require.NoError(t, err)

	m.Bind(buf, 1)
	require.Equal(t, 1, buf.BindPoint())

	m.Unbind(buf)
	assert.Equal(t, -1, buf.BindPoint())
	assert.Equal(t, buf.Handle(), f.binds[1], "GPU binding stays in place")
}

func TestTagDirty_ForcesUploadOnNextBind(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	v := mgl32.Vec3{1, 2, 3}
	buf, err := m.CreateDynamic([]*Input{Vec3Input(&v)})
	require.NoError(t, err)
	require.False(t, buf.Dirty())

	buf.TagDirty()
	require.True(t, buf.Dirty())

	uploads := len(f.uploads)
	m.Bind(buf, 0)
	assert.Len(t, f.uploads, uploads+1)
	assert.False(t, buf.Dirty())
}

func TestContractViolationsPanic(t *testing.T) {
	f := newFakeBackend()
	m := NewManager(f, nil)

	v := mgl32.Vec2{1, 2}
	dyn, err := m.CreateDynamic([]*Input{Vec2Input(&v)})
	require.NoError(t, err)
	stat, err := m.CreateStatic(8, make([]byte, 8))
	require.NoError(t, err)

	require.PanicsWithValue(t, "uniformbuf: UpdateStatic on a dynamic buffer", func() {
		m.UpdateStatic(dyn, make([]byte, dyn.Size()))
	})
	require.Panics(t, func() { m.UpdateStatic(stat, make([]byte, 4)) })
	require.Panics(t, func() { m.RefreshDynamic(stat, nil) })
	require.Panics(t, func() { m.UploadDynamic(stat) })
	require.Panics(t, func() { stat.TagDirty() })
}
