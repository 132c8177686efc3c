package geom

import (
	"github.com/kasuganosora/spatialexec/pkg/arena"
)

// Vertex is one coordinate tuple. Z and M are 0 when the owning array
// does not carry that dimension.
type Vertex struct {
	X, Y, Z, M float64
}

// VertexArray is a densely packed array of coordinates backed by arena
// storage. All vertices in one array share the same dimension flags and
// are laid out as count * (2 + hasZ + hasM) doubles in [x, y, z?, m?]
// order with no padding. A count of 0 represents EMPTY.
//
// A VertexArray is a handle: copying it does not copy storage, and it
// becomes invalid when the owning arena is reset.
type VertexArray struct {
	data  []float64
	count int
	hasZ  bool
	hasM  bool
}

// EmptyVertexArray returns an array with no vertices and no storage.
func EmptyVertexArray(hasZ, hasM bool) VertexArray {
	return VertexArray{hasZ: hasZ, hasM: hasM}
}

// NewVertexArray allocates storage for count vertices in the arena. The
// slots are filled with Set.
func NewVertexArray(a *arena.Arena, count int, hasZ, hasM bool) VertexArray {
	dims := 2
	if hasZ {
		dims++
	}
	if hasM {
		dims++
	}
	data := arena.Float64s(a, count*dims)
	clear(data)
	return VertexArray{data: data, count: count, hasZ: hasZ, hasM: hasM}
}

// CopyVertexArray bulk-copies count vertices worth of doubles from src
// into the arena. src must hold exactly count * dims values.
func CopyVertexArray(a *arena.Arena, src []float64, count int, hasZ, hasM bool) VertexArray {
	return VertexArray{
		data:  arena.CopyFloat64s(a, src),
		count: count,
		hasZ:  hasZ,
		hasM:  hasM,
	}
}

// Count returns the number of vertices.
func (v VertexArray) Count() int { return v.count }

// HasZ reports whether vertices carry a Z coordinate.
func (v VertexArray) HasZ() bool { return v.hasZ }

// HasM reports whether vertices carry an M coordinate.
func (v VertexArray) HasM() bool { return v.hasM }

// Dims returns the number of doubles per vertex (2, 3 or 4).
func (v VertexArray) Dims() int {
	dims := 2
	if v.hasZ {
		dims++
	}
	if v.hasM {
		dims++
	}
	return dims
}

// Get returns vertex i. Absent dimensions read as 0. Out-of-range access
// panics; it is a programmer error.
func (v VertexArray) Get(i int) Vertex {
	dims := v.Dims()
	base := i * dims
	if i < 0 || i >= v.count {
		panic("geom: vertex index out of range")
	}
	vert := Vertex{X: v.data[base], Y: v.data[base+1]}
	idx := base + 2
	if v.hasZ {
		vert.Z = v.data[idx]
		idx++
	}
	if v.hasM {
		vert.M = v.data[idx]
	}
	return vert
}

// Set overwrites vertex i in already-allocated storage. Components for
// dimensions the array does not carry are ignored. Out-of-range access
// panics; it is a programmer error.
func (v VertexArray) Set(i int, vert Vertex) {
	dims := v.Dims()
	base := i * dims
	if i < 0 || i >= v.count {
		panic("geom: vertex index out of range")
	}
	v.data[base] = vert.X
	v.data[base+1] = vert.Y
	idx := base + 2
	if v.hasZ {
		v.data[idx] = vert.Z
		idx++
	}
	if v.hasM {
		v.data[idx] = vert.M
	}
}
