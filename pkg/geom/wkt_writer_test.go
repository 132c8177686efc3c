package geom

import (
	"testing"
)

func TestWKT_CanonicalOutput(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"POINT(1 2)", "POINT(1 2)"},
		{"point ( 1.5   2.5 )", "POINT(1.5 2.5)"},
		{"POINT Z (1 2 3)", "POINT Z (1 2 3)"},
		{"POINT M (1 2 4)", "POINT M (1 2 4)"},
		{"POINT ZM (1 2 3 4)", "POINT ZM (1 2 3 4)"},
		{"POINT EMPTY", "POINT EMPTY"},
		{"POINT Z EMPTY", "POINT Z EMPTY"},
		{"LINESTRING(0 0,1 1)", "LINESTRING(0 0, 1 1)"},
		{"LINESTRING EMPTY", "LINESTRING EMPTY"},
		{"POLYGON((0 0,1 0,1 1,0 0))", "POLYGON((0 0, 1 0, 1 1, 0 0))"},
		{"POLYGON EMPTY", "POLYGON EMPTY"},
		{"MULTIPOINT(1 2, 3 4)", "MULTIPOINT((1 2), (3 4))"},
		{"MULTIPOINT((1 2))", "MULTIPOINT((1 2))"},
		{"MULTILINESTRING((0 0, 1 1))", "MULTILINESTRING((0 0, 1 1))"},
		{"MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)))", "MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)))"},
		{"GEOMETRYCOLLECTION(POINT(1 2))", "GEOMETRYCOLLECTION(POINT(1 2))"},
		{"GEOMETRYCOLLECTION EMPTY", "GEOMETRYCOLLECTION EMPTY"},
		{"GEOMETRYCOLLECTION Z (POINT Z (1 2 3), LINESTRING Z (0 0 0, 1 1 1))",
			"GEOMETRYCOLLECTION Z (POINT Z (1 2 3), LINESTRING Z (0 0 0, 1 1 1))"},
	}
	for _, tc := range cases {
		g := mustParse(t, tc.input)
		if got := g.WKT(); got != tc.want {
			t.Errorf("WKT(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestWKT_CoordinateFormatting(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		// Shortest representation that round-trips; no trailing zeros,
		// no scientific notation.
		{"POINT(1.0 2.50)", "POINT(1 2.5)"},
		{"POINT(-0.5 1e2)", "POINT(-0.5 100)"},
		{"POINT(0.1 0.2)", "POINT(0.1 0.2)"},
	}
	for _, tc := range cases {
		g := mustParse(t, tc.input)
		if got := g.WKT(); got != tc.want {
			t.Errorf("WKT(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestWKT_PolygonWithHole(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 2))")
	want := "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 2))"
	if got := g.WKT(); got != want {
		t.Errorf("WKT = %q, want %q", got, want)
	}
}

func TestWKT_HandBuiltEmptyChildren(t *testing.T) {
	a := newTestReader().arena
	mp := NewMultiPointWithChildren(a, 2, false, false)
	mp.SetChild(0, NewPoint(false, false))
	mp.SetChild(1, mustParse(t, "POINT(1 2)"))
	if got := mp.WKT(); got != "MULTIPOINT(EMPTY, (1 2))" {
		t.Errorf("WKT = %q", got)
	}
	back, err := newTestReader().Parse(mp.WKT())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !Equal(mp, back) {
		t.Errorf("round trip changed value: %q", back.WKT())
	}
}
