// Package geom implements the geometry value model and the WKT machinery
// of the spatial extension. All storage for one geometry tree lives in a
// single arena; Geometry and VertexArray values are cheap handles
// borrowing from it.
package geom

import (
	"github.com/kasuganosora/spatialexec/pkg/arena"
)

// GeometryType tags the seven geometry variants. The set is closed: code
// switching on it must cover every tag.
type GeometryType uint8

const (
	TypePoint GeometryType = iota + 1
	TypeLineString
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
)

// String returns the conventional mixed-case type name.
func (t GeometryType) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// Geometry is the tagged union over the seven variants. Point and
// LineString carry a VertexArray; Polygon carries rings; the remaining
// variants carry child geometries. Every owned array lives in the arena
// the value was built from, and every descendant shares the root's
// dimension flags.
type Geometry struct {
	typ   GeometryType
	hasZ  bool
	hasM  bool
	verts VertexArray    // Point, LineString
	rings []VertexArray  // Polygon; ring 0 is the exterior shell
	geoms []Geometry     // MultiPoint, MultiLineString, MultiPolygon, GeometryCollection
}

// Type returns the variant tag.
func (g Geometry) Type() GeometryType { return g.typ }

// HasZ reports whether the geometry carries Z coordinates.
func (g Geometry) HasZ() bool { return g.hasZ }

// HasM reports whether the geometry carries M coordinates.
func (g Geometry) HasM() bool { return g.hasM }

// IsEmpty reports whether the geometry holds no vertices, rings or
// children.
func (g Geometry) IsEmpty() bool {
	switch g.typ {
	case TypePoint, TypeLineString:
		return g.verts.Count() == 0
	case TypePolygon:
		return len(g.rings) == 0
	default:
		return len(g.geoms) == 0
	}
}

// Vertices returns the vertex array of a Point or LineString. It panics
// for other variants.
func (g Geometry) Vertices() VertexArray {
	switch g.typ {
	case TypePoint, TypeLineString:
		return g.verts
	}
	panic("geom: Vertices on " + g.typ.String())
}

// RingCount returns the number of rings of a Polygon. It panics for
// other variants.
func (g Geometry) RingCount() int {
	if g.typ != TypePolygon {
		panic("geom: RingCount on " + g.typ.String())
	}
	return len(g.rings)
}

// Ring returns ring i of a Polygon. Ring 0 is the exterior shell,
// further rings are holes. It panics for other variants.
func (g Geometry) Ring(i int) VertexArray {
	if g.typ != TypePolygon {
		panic("geom: Ring on " + g.typ.String())
	}
	return g.rings[i]
}

// SetRing fills a preallocated ring slot of a Polygon.
func (g Geometry) SetRing(i int, ring VertexArray) {
	if g.typ != TypePolygon {
		panic("geom: SetRing on " + g.typ.String())
	}
	g.rings[i] = ring
}

// ChildCount returns the number of children of a container variant. It
// panics for Point, LineString and Polygon.
func (g Geometry) ChildCount() int {
	switch g.typ {
	case TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon, TypeGeometryCollection:
		return len(g.geoms)
	}
	panic("geom: ChildCount on " + g.typ.String())
}

// Child returns child i of a container variant.
func (g Geometry) Child(i int) Geometry {
	switch g.typ {
	case TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon, TypeGeometryCollection:
		return g.geoms[i]
	}
	panic("geom: Child on " + g.typ.String())
}

// SetChild fills a preallocated child slot of a container variant.
func (g Geometry) SetChild(i int, child Geometry) {
	switch g.typ {
	case TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon, TypeGeometryCollection:
		g.geoms[i] = child
		return
	}
	panic("geom: SetChild on " + g.typ.String())
}

// NewPoint returns an empty Point (POINT EMPTY).
func NewPoint(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypePoint, hasZ: hasZ, hasM: hasM, verts: EmptyVertexArray(hasZ, hasM)}
}

// NewPointFromVertices returns a Point over a vertex array holding
// exactly 0 or 1 vertex.
func NewPointFromVertices(verts VertexArray) Geometry {
	return Geometry{typ: TypePoint, hasZ: verts.HasZ(), hasM: verts.HasM(), verts: verts}
}

// NewLineString returns an empty LineString.
func NewLineString(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeLineString, hasZ: hasZ, hasM: hasM, verts: EmptyVertexArray(hasZ, hasM)}
}

// NewLineStringFromVertices returns a LineString over a vertex array of
// any count.
func NewLineStringFromVertices(verts VertexArray) Geometry {
	return Geometry{typ: TypeLineString, hasZ: verts.HasZ(), hasM: verts.HasM(), verts: verts}
}

// NewPolygon returns an empty Polygon.
func NewPolygon(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypePolygon, hasZ: hasZ, hasM: hasM}
}

// NewPolygonWithRings returns a Polygon with count arena-owned ring
// slots to be filled with SetRing.
func NewPolygonWithRings(a *arena.Arena, count int, hasZ, hasM bool) Geometry {
	return Geometry{typ: TypePolygon, hasZ: hasZ, hasM: hasM, rings: arena.Slice[VertexArray](a, count)}
}

// NewMultiPoint returns an empty MultiPoint.
func NewMultiPoint(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiPoint, hasZ: hasZ, hasM: hasM}
}

// NewMultiPointWithChildren returns a MultiPoint with count arena-owned
// child slots to be filled with SetChild.
func NewMultiPointWithChildren(a *arena.Arena, count int, hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiPoint, hasZ: hasZ, hasM: hasM, geoms: arena.Slice[Geometry](a, count)}
}

// NewMultiLineString returns an empty MultiLineString.
func NewMultiLineString(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiLineString, hasZ: hasZ, hasM: hasM}
}

// NewMultiLineStringWithChildren returns a MultiLineString with count
// arena-owned child slots.
func NewMultiLineStringWithChildren(a *arena.Arena, count int, hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiLineString, hasZ: hasZ, hasM: hasM, geoms: arena.Slice[Geometry](a, count)}
}

// NewMultiPolygon returns an empty MultiPolygon.
func NewMultiPolygon(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiPolygon, hasZ: hasZ, hasM: hasM}
}

// NewMultiPolygonWithChildren returns a MultiPolygon with count
// arena-owned child slots.
func NewMultiPolygonWithChildren(a *arena.Arena, count int, hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeMultiPolygon, hasZ: hasZ, hasM: hasM, geoms: arena.Slice[Geometry](a, count)}
}

// NewGeometryCollection returns an empty GeometryCollection.
func NewGeometryCollection(hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeGeometryCollection, hasZ: hasZ, hasM: hasM}
}

// NewGeometryCollectionWithChildren returns a GeometryCollection with
// count arena-owned child slots. Children may be heterogeneous but must
// share the collection's dimension flags.
func NewGeometryCollectionWithChildren(a *arena.Arena, count int, hasZ, hasM bool) Geometry {
	return Geometry{typ: TypeGeometryCollection, hasZ: hasZ, hasM: hasM, geoms: arena.Slice[Geometry](a, count)}
}
