package uniformbuf

// ElementType identifies the scalar/vector kind of a uniform value.
// The numeric value is the component count, so byte size is 4x that.
type ElementType int

const (
	Float ElementType = 1
	Vec2  ElementType = 2
	Vec3  ElementType = 3
	Vec4  ElementType = 4
)

// Only types up to Vec4 are supported. Extending this requires
// revisiting the vec3 padding pass in pack.go.
const maxElementType = Vec4

func (t ElementType) Components() int {
	return int(t)
}

func (t ElementType) ByteSize() int {
	return int(t) * 4
}

func (t ElementType) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	}
	return "unknown"
}

// BufferType tags a Buffer as static or dynamic.
type BufferType int

const (
	Static BufferType = iota
	Dynamic
)
