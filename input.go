package uniformbuf

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// InputSource classifies where a uniform's value comes from.
type InputSource int

const (
	// SourceValue inputs read from a caller-owned value vector and are
	// eligible for dynamic packing.
	SourceValue InputSource = iota
	// SourceComputed inputs are produced by shader-side computation and
	// never enter a dynamic buffer.
	SourceComputed
)

// Input describes one shader uniform. The library never owns the
// backing storage: for SourceValue inputs, Values aliases memory the
// caller keeps mutating, and is only read during RefreshDynamic.
//
// The Id stays stable for the input's lifetime, so refresh does not
// depend on the caller enumerating inputs in construction order.
type Input struct {
	Id     string
	Type   ElementType
	Source InputSource
	Values []float32
}

func newValueInput(t ElementType, values []float32) *Input {
	return &Input{
		Id:     uuid.NewString(),
		Type:   t,
		Source: SourceValue,
		Values: values,
	}
}

// FloatInput wraps a live float value the caller keeps ownership of.
func FloatInput(v *float32) *Input {
	return newValueInput(Float, unsafe.Slice(v, 1))
}

func Vec2Input(v *mgl32.Vec2) *Input {
	return newValueInput(Vec2, v[:])
}

func Vec3Input(v *mgl32.Vec3) *Input {
	return newValueInput(Vec3, v[:])
}

func Vec4Input(v *mgl32.Vec4) *Input {
	return newValueInput(Vec4, v[:])
}

// ComputedInput declares a uniform fed by shader-side computation. It is
// skipped by dynamic packing.
func ComputedInput(t ElementType) *Input {
	return &Input{
		Id:     uuid.NewString(),
		Type:   t,
		Source: SourceComputed,
	}
}

func (in *Input) eligible() bool {
	return in.Source == SourceValue && in.Values != nil
}
