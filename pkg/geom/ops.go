package geom

import (
	"math"

	"github.com/kasuganosora/spatialexec/pkg/arena"
)

// BoundingBox is a minimum bounding rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Intersects returns true if this box overlaps with another box.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Contains returns true if this box fully contains another box.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.MinX <= other.MinX && b.MaxX >= other.MaxX &&
		b.MinY <= other.MinY && b.MaxY >= other.MaxY
}

// ContainsPoint returns true if this box contains a point.
func (b BoundingBox) ContainsPoint(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Expand returns a new BoundingBox that contains both this and the other box.
func (b BoundingBox) Expand(other BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Area returns the area of this bounding box.
func (b BoundingBox) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// ToPolygon converts the bounding box to a single-ring Polygon allocated
// in the arena, closed in counter-clockwise order.
func (b BoundingBox) ToPolygon(a *arena.Arena) Geometry {
	ring := NewVertexArray(a, 5, false, false)
	ring.Set(0, Vertex{X: b.MinX, Y: b.MinY})
	ring.Set(1, Vertex{X: b.MaxX, Y: b.MinY})
	ring.Set(2, Vertex{X: b.MaxX, Y: b.MaxY})
	ring.Set(3, Vertex{X: b.MinX, Y: b.MaxY})
	ring.Set(4, Vertex{X: b.MinX, Y: b.MinY})
	poly := NewPolygonWithRings(a, 1, false, false)
	poly.SetRing(0, ring)
	return poly
}

func vertexArrayBounds(v VertexArray) (BoundingBox, bool) {
	if v.Count() == 0 {
		return BoundingBox{}, false
	}
	first := v.Get(0)
	bb := BoundingBox{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for i := 1; i < v.Count(); i++ {
		vert := v.Get(i)
		bb.MinX = math.Min(bb.MinX, vert.X)
		bb.MinY = math.Min(bb.MinY, vert.Y)
		bb.MaxX = math.Max(bb.MaxX, vert.X)
		bb.MaxY = math.Max(bb.MaxY, vert.Y)
	}
	return bb, true
}

// Envelope returns the bounding box of the geometry and whether it has
// one (empty geometries do not).
func (g Geometry) Envelope() (BoundingBox, bool) {
	switch g.typ {
	case TypePoint, TypeLineString:
		return vertexArrayBounds(g.verts)
	case TypePolygon:
		if len(g.rings) == 0 {
			return BoundingBox{}, false
		}
		// The exterior shell bounds the holes.
		return vertexArrayBounds(g.rings[0])
	default:
		have := false
		var bb BoundingBox
		for _, child := range g.geoms {
			childBB, ok := child.Envelope()
			if !ok {
				continue
			}
			if !have {
				bb = childBB
				have = true
			} else {
				bb = bb.Expand(childBB)
			}
		}
		return bb, have
	}
}

// ringArea computes the signed area of a ring using the Shoelace formula.
func ringArea(ring VertexArray) float64 {
	n := ring.Count()
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi := ring.Get(i)
		vj := ring.Get(j)
		area += vi.X * vj.Y
		area -= vj.X * vi.Y
	}
	return area / 2.0
}

func polygonArea(g Geometry) float64 {
	if len(g.rings) == 0 {
		return 0
	}
	area := math.Abs(ringArea(g.rings[0]))
	for _, hole := range g.rings[1:] {
		area -= math.Abs(ringArea(hole))
	}
	return math.Abs(area)
}

// Area returns the planar area. Points and lines have area 0; holes are
// subtracted from the exterior ring.
func (g Geometry) Area() float64 {
	switch g.typ {
	case TypePolygon:
		return polygonArea(g)
	case TypeMultiPolygon, TypeGeometryCollection:
		total := 0.0
		for _, child := range g.geoms {
			total += child.Area()
		}
		return total
	default:
		return 0
	}
}

func vertexArrayLength(v VertexArray) float64 {
	length := 0.0
	for i := 1; i < v.Count(); i++ {
		a := v.Get(i - 1)
		b := v.Get(i)
		length += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return length
}

// Length returns the planar length of linear geometries, summed over
// collections. Other variants contribute 0.
func (g Geometry) Length() float64 {
	switch g.typ {
	case TypeLineString:
		return vertexArrayLength(g.verts)
	case TypeMultiLineString, TypeGeometryCollection:
		total := 0.0
		for _, child := range g.geoms {
			total += child.Length()
		}
		return total
	default:
		return 0
	}
}

// Perimeter returns the total ring length of areal geometries, summed
// over collections. Other variants contribute 0.
func (g Geometry) Perimeter() float64 {
	switch g.typ {
	case TypePolygon:
		total := 0.0
		for _, ring := range g.rings {
			total += vertexArrayLength(ring)
		}
		return total
	case TypeMultiPolygon, TypeGeometryCollection:
		total := 0.0
		for _, child := range g.geoms {
			total += child.Perimeter()
		}
		return total
	default:
		return 0
	}
}

// NumPoints returns the total number of vertices in the geometry tree.
func (g Geometry) NumPoints() int {
	switch g.typ {
	case TypePoint, TypeLineString:
		return g.verts.Count()
	case TypePolygon:
		n := 0
		for _, ring := range g.rings {
			n += ring.Count()
		}
		return n
	default:
		n := 0
		for _, child := range g.geoms {
			n += child.NumPoints()
		}
		return n
	}
}

// Dimension returns the topological dimension: 0 for points, 1 for
// lines, 2 for polygons; collections report the maximum of their
// children.
func (g Geometry) Dimension() int {
	switch g.typ {
	case TypePoint, TypeMultiPoint:
		return 0
	case TypeLineString, TypeMultiLineString:
		return 1
	case TypePolygon, TypeMultiPolygon:
		return 2
	default:
		maxDim := 0
		for _, child := range g.geoms {
			if d := child.Dimension(); d > maxDim {
				maxDim = d
			}
		}
		return maxDim
	}
}

func vertexArraysEqual(a, b VertexArray) bool {
	if a.Count() != b.Count() || a.HasZ() != b.HasZ() || a.HasM() != b.HasM() {
		return false
	}
	for i := 0; i < a.Count(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same tag, same dimension flags and
// the same vertices in the same order everywhere in the tree.
func Equal(a, b Geometry) bool {
	if a.typ != b.typ || a.hasZ != b.hasZ || a.hasM != b.hasM {
		return false
	}
	switch a.typ {
	case TypePoint, TypeLineString:
		return vertexArraysEqual(a.verts, b.verts)
	case TypePolygon:
		if len(a.rings) != len(b.rings) {
			return false
		}
		for i := range a.rings {
			if !vertexArraysEqual(a.rings[i], b.rings[i]) {
				return false
			}
		}
		return true
	default:
		if len(a.geoms) != len(b.geoms) {
			return false
		}
		for i := range a.geoms {
			if !Equal(a.geoms[i], b.geoms[i]) {
				return false
			}
		}
		return true
	}
}
