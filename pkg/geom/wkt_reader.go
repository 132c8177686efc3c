package geom

import (
	"context"
	"fmt"

	"github.com/kasuganosora/spatialexec/pkg/api"
	"github.com/kasuganosora/spatialexec/pkg/arena"
)

// WKTReader parses Well-Known Text into a Geometry tree allocated out of
// the arena it was created with. One reader serves one parse at a time;
// it holds no shared mutable state, so the host may run any number of
// readers in parallel as long as each has its own arena.
//
// An optional `SRID=<n>;` prefix is tolerated and discarded.
type WKTReader struct {
	arena *arena.Arena
	cur   cursor
	ctx   context.Context

	// Dimension-consistency state. The first tag of a parse latches the
	// flags; every nested tag must agree.
	hasZ  bool
	hasM  bool
	zmSet bool
}

// NewWKTReader creates a reader allocating from a.
func NewWKTReader(a *arena.Arena) *WKTReader {
	return &WKTReader{arena: a}
}

// SetContext installs a cancellation context. It is polled between
// top-level members of a GEOMETRYCOLLECTION only; parsing is otherwise a
// synchronous CPU-bound computation.
func (r *WKTReader) SetContext(ctx context.Context) {
	r.ctx = ctx
}

// Parse consumes one geometry from input and returns it. Every interior
// pointer of the result targets the reader's arena; the caller must keep
// the arena alive for as long as the geometry is in use. Trailing
// content after the root geometry is not inspected.
//
// All failures are fatal to the parse and reported as *api.Error with
// code INVALID_WKT; no partial result is returned.
func (r *WKTReader) Parse(input string) (Geometry, error) {
	r.cur = cursor{input: input}
	r.cur.skipWhitespace()
	r.zmSet = false
	r.hasZ = false
	r.hasM = false
	return r.parseWKT()
}

func (r *WKTReader) parseWKT() (Geometry, error) {
	if r.cur.matchCI("SRID") {
		// Discard everything up to and including the semicolon.
		for r.cur.pos < len(r.cur.input) && r.cur.input[r.cur.pos] != ';' {
			r.cur.pos++
		}
		if err := r.cur.expect(';'); err != nil {
			return Geometry{}, err
		}
	}
	return r.parseGeometry()
}

func (r *WKTReader) parseGeometry() (Geometry, error) {
	if r.cur.matchCI("POINT") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parsePoint()
	}
	if r.cur.matchCI("LINESTRING") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parseLineString()
	}
	if r.cur.matchCI("POLYGON") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parsePolygon()
	}
	if r.cur.matchCI("MULTIPOINT") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parseMultiPoint()
	}
	if r.cur.matchCI("MULTILINESTRING") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parseMultiLineString()
	}
	if r.cur.matchCI("MULTIPOLYGON") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parseMultiPolygon()
	}
	if r.cur.matchCI("GEOMETRYCOLLECTION") {
		if err := r.checkZM(); err != nil {
			return Geometry{}, err
		}
		return r.parseGeometryCollection()
	}
	// Capture the context before consuming the word so the position
	// points at the offending token.
	errCtx := r.cur.errorContext()
	msg := fmt.Sprintf("WKT Parser: Unknown geometry type '%s' %s", r.cur.parseWord(), errCtx)
	return Geometry{}, api.NewError(api.ErrCodeInvalidWKT, msg, nil)
}

// checkZM consumes an optional Z/M marker. Markers are uppercase only.
// The first tag of a parse records the flags; any later tag whose flags
// differ, including a tag with no marker at all, is a hard failure.
func (r *WKTReader) checkZM() error {
	geomHasZ := false
	geomHasM := false
	if r.cur.match('Z') {
		geomHasZ = true
		if r.cur.match('M') {
			geomHasM = true
		}
	} else if r.cur.match('M') {
		geomHasM = true
	}

	if r.zmSet {
		if r.hasZ != geomHasZ || r.hasM != geomHasM {
			msg := "WKT Parser: GeometryCollection with mixed Z and M types are not supported, mismatch " +
				r.cur.errorContext()
			return api.NewError(api.ErrCodeInvalidWKT, msg, nil)
		}
	} else {
		r.hasZ = geomHasZ
		r.hasM = geomHasM
		r.zmSet = true
	}
	return nil
}

// parseVertex appends exactly 2 + hasZ + hasM doubles to coords, in
// [x, y, z?, m?] order.
func (r *WKTReader) parseVertex(coords *[]float64) error {
	x, err := r.cur.parseDouble()
	if err != nil {
		return err
	}
	y, err := r.cur.parseDouble()
	if err != nil {
		return err
	}
	*coords = append(*coords, x, y)
	if r.hasZ {
		z, err := r.cur.parseDouble()
		if err != nil {
			return err
		}
		*coords = append(*coords, z)
	}
	if r.hasM {
		m, err := r.cur.parseDouble()
		if err != nil {
			return err
		}
		*coords = append(*coords, m)
	}
	return nil
}

// parseVertices reads EMPTY or a parenthesized comma-separated vertex
// list. Vertices grow a scratch slice that is bulk-copied into the arena
// as a single VertexArray at the end of the list.
func (r *WKTReader) parseVertices() (VertexArray, error) {
	if r.cur.matchCI("EMPTY") {
		return EmptyVertexArray(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return VertexArray{}, err
	}
	var coords []float64
	count := 0
	if err := r.parseVertex(&coords); err != nil {
		return VertexArray{}, err
	}
	count++
	for r.cur.match(',') {
		if err := r.parseVertex(&coords); err != nil {
			return VertexArray{}, err
		}
		count++
	}
	if err := r.cur.expect(')'); err != nil {
		return VertexArray{}, err
	}
	return CopyVertexArray(r.arena, coords, count, r.hasZ, r.hasM), nil
}

func (r *WKTReader) parsePoint() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewPoint(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var coords []float64
	if err := r.parseVertex(&coords); err != nil {
		return Geometry{}, err
	}
	// A POINT body holds exactly one vertex; anything else trips here.
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	return NewPointFromVertices(CopyVertexArray(r.arena, coords, 1, r.hasZ, r.hasM)), nil
}

func (r *WKTReader) parseLineString() (Geometry, error) {
	verts, err := r.parseVertices()
	if err != nil {
		return Geometry{}, err
	}
	return NewLineStringFromVertices(verts), nil
}

func (r *WKTReader) parsePolygon() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewPolygon(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var rings []VertexArray
	ring, err := r.parseVertices()
	if err != nil {
		return Geometry{}, err
	}
	rings = append(rings, ring)
	for r.cur.match(',') {
		ring, err = r.parseVertices()
		if err != nil {
			return Geometry{}, err
		}
		rings = append(rings, ring)
	}
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	result := NewPolygonWithRings(r.arena, len(rings), r.hasZ, r.hasM)
	for i, rg := range rings {
		result.SetRing(i, rg)
	}
	return result, nil
}

// parseMultiPoint handles the MULTIPOINT quirk: parens around each
// member are optional, independently per member.
func (r *WKTReader) parseMultiPoint() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewMultiPoint(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var coords []float64
	var points []Geometry

	parseMember := func() error {
		if r.cur.matchCI("EMPTY") {
			points = append(points, NewPoint(r.hasZ, r.hasM))
			return nil
		}
		optionalParen := r.cur.match('(')
		if err := r.parseVertex(&coords); err != nil {
			return err
		}
		if optionalParen {
			if err := r.cur.expect(')'); err != nil {
				return err
			}
		}
		points = append(points, NewPointFromVertices(CopyVertexArray(r.arena, coords, 1, r.hasZ, r.hasM)))
		coords = coords[:0]
		return nil
	}

	if err := parseMember(); err != nil {
		return Geometry{}, err
	}
	for r.cur.match(',') {
		if err := parseMember(); err != nil {
			return Geometry{}, err
		}
	}
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	result := NewMultiPointWithChildren(r.arena, len(points), r.hasZ, r.hasM)
	for i, pt := range points {
		result.SetChild(i, pt)
	}
	return result, nil
}

func (r *WKTReader) parseMultiLineString() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewMultiLineString(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var lines []Geometry
	line, err := r.parseLineString()
	if err != nil {
		return Geometry{}, err
	}
	lines = append(lines, line)
	for r.cur.match(',') {
		line, err = r.parseLineString()
		if err != nil {
			return Geometry{}, err
		}
		lines = append(lines, line)
	}
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	result := NewMultiLineStringWithChildren(r.arena, len(lines), r.hasZ, r.hasM)
	for i, ln := range lines {
		result.SetChild(i, ln)
	}
	return result, nil
}

func (r *WKTReader) parseMultiPolygon() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewMultiPolygon(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var polygons []Geometry
	poly, err := r.parsePolygon()
	if err != nil {
		return Geometry{}, err
	}
	polygons = append(polygons, poly)
	for r.cur.match(',') {
		poly, err = r.parsePolygon()
		if err != nil {
			return Geometry{}, err
		}
		polygons = append(polygons, poly)
	}
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	result := NewMultiPolygonWithChildren(r.arena, len(polygons), r.hasZ, r.hasM)
	for i, pg := range polygons {
		result.SetChild(i, pg)
	}
	return result, nil
}

func (r *WKTReader) parseGeometryCollection() (Geometry, error) {
	if r.cur.matchCI("EMPTY") {
		return NewGeometryCollection(r.hasZ, r.hasM), nil
	}
	if err := r.cur.expect('('); err != nil {
		return Geometry{}, err
	}
	var geometries []Geometry
	child, err := r.parseGeometry()
	if err != nil {
		return Geometry{}, err
	}
	geometries = append(geometries, child)
	for r.cur.match(',') {
		if err := r.checkCanceled(); err != nil {
			return Geometry{}, err
		}
		child, err = r.parseGeometry()
		if err != nil {
			return Geometry{}, err
		}
		geometries = append(geometries, child)
	}
	if err := r.cur.expect(')'); err != nil {
		return Geometry{}, err
	}
	result := NewGeometryCollectionWithChildren(r.arena, len(geometries), r.hasZ, r.hasM)
	for i, g := range geometries {
		result.SetChild(i, g)
	}
	return result, nil
}

func (r *WKTReader) checkCanceled() error {
	if r.ctx == nil {
		return nil
	}
	if err := r.ctx.Err(); err != nil {
		return api.WrapError(err, api.ErrCodeInternal, "WKT Parser: parse canceled")
	}
	return nil
}
