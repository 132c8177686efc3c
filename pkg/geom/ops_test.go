package geom

import (
	"math"
	"testing"

	"github.com/kasuganosora/spatialexec/pkg/arena"
)

func TestBoundingBox_Predicates(t *testing.T) {
	a := BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := BoundingBox{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}
	c := BoundingBox{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30}

	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c do not intersect")
	}
	if !a.Contains(BoundingBox{MinX: 1, MinY: 1, MaxX: 9, MaxY: 9}) {
		t.Error("expected containment")
	}
	if a.Contains(b) {
		t.Error("a does not contain b")
	}
	if !a.ContainsPoint(10, 10) {
		t.Error("boundary point is contained")
	}
	if a.ContainsPoint(10.1, 5) {
		t.Error("outside point is not contained")
	}
	u := a.Expand(c)
	if u.MinX != 0 || u.MaxX != 30 || u.MinY != 0 || u.MaxY != 30 {
		t.Errorf("Expand = %+v", u)
	}
	if got := a.Area(); got != 100 {
		t.Errorf("Area = %v", got)
	}
}

func TestBoundingBox_ToPolygon(t *testing.T) {
	box := BoundingBox{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	poly := box.ToPolygon(arena.New(arena.DefaultBlockSize))
	if poly.Type() != TypePolygon || poly.RingCount() != 1 {
		t.Fatalf("expected single-ring polygon, got %s", poly.Type())
	}
	ring := poly.Ring(0)
	if ring.Count() != 5 {
		t.Fatalf("expected closed 5-vertex ring, got %d", ring.Count())
	}
	if ring.Get(0) != ring.Get(4) {
		t.Error("ring is not closed")
	}
	if got := poly.Area(); got != 4 {
		t.Errorf("Area = %v, want 4", got)
	}
}

func TestEnvelope(t *testing.T) {
	cases := []struct {
		input string
		want  BoundingBox
	}{
		{"POINT(3 4)", BoundingBox{3, 4, 3, 4}},
		{"LINESTRING(0 5, 10 -5, 2 2)", BoundingBox{0, -5, 10, 5}},
		{"POLYGON((0 0, 4 0, 4 4, 0 0), (1 1, 2 1, 2 2, 1 1))", BoundingBox{0, 0, 4, 4}},
		{"MULTIPOINT((1 1), (9 9))", BoundingBox{1, 1, 9, 9}},
		{"GEOMETRYCOLLECTION(POINT(-1 0), LINESTRING(5 5, 6 7))", BoundingBox{-1, 0, 6, 7}},
	}
	for _, tc := range cases {
		g := mustParse(t, tc.input)
		got, ok := g.Envelope()
		if !ok {
			t.Errorf("Envelope(%q): no box", tc.input)
			continue
		}
		if got != tc.want {
			t.Errorf("Envelope(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestEnvelope_Empty(t *testing.T) {
	for _, input := range []string{
		"POINT EMPTY",
		"POLYGON EMPTY",
		"GEOMETRYCOLLECTION EMPTY",
		"GEOMETRYCOLLECTION(POINT EMPTY)",
	} {
		if _, ok := mustParse(t, input).Envelope(); ok {
			t.Errorf("Envelope(%q): expected no box", input)
		}
	}
}

func TestArea(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"POINT(1 2)", 0},
		{"LINESTRING(0 0, 10 10)", 0},
		{"POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))", 100},
		// Hole subtracts, winding order of either ring does not matter.
		{"POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2))", 96},
		{"POLYGON((0 0, 0 10, 10 10, 10 0, 0 0))", 100},
		{"MULTIPOLYGON(((0 0, 2 0, 2 2, 0 2, 0 0)), ((10 10, 13 10, 13 13, 10 13, 10 10)))", 13},
		{"GEOMETRYCOLLECTION(POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)), POINT(5 5))", 1},
		{"POLYGON EMPTY", 0},
	}
	for _, tc := range cases {
		if got := mustParse(t, tc.input).Area(); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Area(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLength(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"LINESTRING(0 0, 3 4)", 5},
		{"LINESTRING(0 0, 1 0, 1 1)", 2},
		{"MULTILINESTRING((0 0, 3 4), (0 0, 0 1))", 6},
		{"POLYGON((0 0, 1 0, 1 1, 0 0))", 0},
		{"POINT(1 2)", 0},
		{"LINESTRING EMPTY", 0},
	}
	for _, tc := range cases {
		if got := mustParse(t, tc.input).Length(); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Length(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPerimeter(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 4, 2 2))")
	if got := g.Perimeter(); math.Abs(got-48) > 1e-12 {
		t.Errorf("Perimeter = %v, want 48", got)
	}
	if got := mustParse(t, "LINESTRING(0 0, 3 4)").Perimeter(); got != 0 {
		t.Errorf("Perimeter of line = %v, want 0", got)
	}
}

func TestNumPoints(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"POINT(1 2)", 1},
		{"POINT EMPTY", 0},
		{"LINESTRING(0 0, 1 1, 2 2)", 3},
		{"POLYGON((0 0, 1 0, 1 1, 0 0), (0 0, 1 0, 1 1, 0 0))", 8},
		{"MULTIPOINT(1 1, 2 2)", 2},
		{"GEOMETRYCOLLECTION(POINT(1 2), LINESTRING(0 0, 1 1))", 3},
	}
	for _, tc := range cases {
		if got := mustParse(t, tc.input).NumPoints(); got != tc.want {
			t.Errorf("NumPoints(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestDimension(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"POINT(1 2)", 0},
		{"MULTIPOINT(1 1)", 0},
		{"LINESTRING(0 0, 1 1)", 1},
		{"POLYGON((0 0, 1 0, 1 1, 0 0))", 2},
		{"GEOMETRYCOLLECTION(POINT(1 2), LINESTRING(0 0, 1 1))", 1},
		{"GEOMETRYCOLLECTION(POINT(1 2), POLYGON((0 0, 1 0, 1 1, 0 0)))", 2},
		{"GEOMETRYCOLLECTION EMPTY", 0},
	}
	for _, tc := range cases {
		if got := mustParse(t, tc.input).Dimension(); got != tc.want {
			t.Errorf("Dimension(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "LINESTRING(0 0, 1 1)")
	b := mustParse(t, "LINESTRING(0 0, 1 1)")
	if !Equal(a, b) {
		t.Error("identical geometries not equal")
	}
	if Equal(a, mustParse(t, "LINESTRING(1 1, 0 0)")) {
		t.Error("vertex order matters")
	}
	if Equal(a, mustParse(t, "LINESTRING Z (0 0 0, 1 1 0)")) {
		t.Error("dimension flags matter")
	}
	if Equal(mustParse(t, "POINT(1 2)"), mustParse(t, "MULTIPOINT((1 2))")) {
		t.Error("type tags matter")
	}
	if !Equal(mustParse(t, "POLYGON EMPTY"), mustParse(t, "POLYGON EMPTY")) {
		t.Error("empty polygons equal")
	}
}

func TestWrongVariantPanics(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	pt := mustParse(t, "POINT(1 2)")
	poly := mustParse(t, "POLYGON((0 0, 1 0, 1 1, 0 0))")
	assertPanics("Vertices on Polygon", func() { poly.Vertices() })
	assertPanics("Ring on Point", func() { pt.Ring(0) })
	assertPanics("Child on Point", func() { pt.Child(0) })
	assertPanics("ChildCount on Polygon", func() { poly.ChildCount() })
}

func TestVertexArray_GetSet(t *testing.T) {
	a := arena.New(arena.DefaultBlockSize)
	va := NewVertexArray(a, 2, true, true)
	va.Set(0, Vertex{X: 1, Y: 2, Z: 3, M: 4})
	va.Set(1, Vertex{X: 5, Y: 6, Z: 7, M: 8})
	if got := va.Get(1); got != (Vertex{X: 5, Y: 6, Z: 7, M: 8}) {
		t.Errorf("Get(1) = %+v", got)
	}
	if va.Dims() != 4 {
		t.Errorf("Dims = %d, want 4", va.Dims())
	}

	flat := NewVertexArray(a, 1, false, false)
	flat.Set(0, Vertex{X: 1, Y: 2, Z: 99, M: 99})
	if got := flat.Get(0); got.Z != 0 || got.M != 0 {
		t.Errorf("absent dimensions should read 0, got %+v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range Get")
		}
	}()
	flat.Get(1)
}
