package geom

import (
	"encoding/binary"
	"math"
	"testing"
)

func wkbUint32(t *testing.T, buf []byte, off int) uint32 {
	t.Helper()
	if off+4 > len(buf) {
		t.Fatalf("wkb too short: want uint32 at %d, len %d", off, len(buf))
	}
	return binary.LittleEndian.Uint32(buf[off:])
}

func wkbFloat64(t *testing.T, buf []byte, off int) float64 {
	t.Helper()
	if off+8 > len(buf) {
		t.Fatalf("wkb too short: want float64 at %d, len %d", off, len(buf))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
}

func TestWKB_Point(t *testing.T) {
	buf := mustParse(t, "POINT(1 2)").WKB()
	if len(buf) != 21 {
		t.Fatalf("expected 21 bytes, got %d", len(buf))
	}
	if buf[0] != 1 {
		t.Errorf("expected little-endian flag 1, got %d", buf[0])
	}
	if code := wkbUint32(t, buf, 1); code != 1 {
		t.Errorf("expected type code 1, got %d", code)
	}
	if x := wkbFloat64(t, buf, 5); x != 1 {
		t.Errorf("expected x=1, got %v", x)
	}
	if y := wkbFloat64(t, buf, 13); y != 2 {
		t.Errorf("expected y=2, got %v", y)
	}
}

func TestWKB_TypeCodes(t *testing.T) {
	cases := []struct {
		input string
		code  uint32
	}{
		{"POINT(1 2)", 1},
		{"LINESTRING(0 0, 1 1)", 2},
		{"POLYGON((0 0, 1 0, 1 1, 0 0))", 3},
		{"MULTIPOINT((1 2))", 4},
		{"MULTILINESTRING((0 0, 1 1))", 5},
		{"MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)))", 6},
		{"GEOMETRYCOLLECTION(POINT(1 2))", 7},
		{"POINT Z (1 2 3)", 1001},
		{"POINT M (1 2 4)", 2001},
		{"POINT ZM (1 2 3 4)", 3001},
		{"LINESTRING Z (0 0 0, 1 1 1)", 1002},
		{"GEOMETRYCOLLECTION M (POINT M (1 2 4))", 2007},
	}
	for _, tc := range cases {
		buf := mustParse(t, tc.input).WKB()
		if code := wkbUint32(t, buf, 1); code != tc.code {
			t.Errorf("WKB(%q) type code = %d, want %d", tc.input, code, tc.code)
		}
	}
}

func TestWKB_EmptyPointIsNaN(t *testing.T) {
	buf := mustParse(t, "POINT EMPTY").WKB()
	if len(buf) != 21 {
		t.Fatalf("expected 21 bytes, got %d", len(buf))
	}
	if !math.IsNaN(wkbFloat64(t, buf, 5)) || !math.IsNaN(wkbFloat64(t, buf, 13)) {
		t.Error("expected NaN coordinates for empty point")
	}
}

func TestWKB_EmptyPointZ(t *testing.T) {
	buf := mustParse(t, "POINT Z EMPTY").WKB()
	if len(buf) != 29 {
		t.Fatalf("expected 29 bytes, got %d", len(buf))
	}
	if !math.IsNaN(wkbFloat64(t, buf, 21)) {
		t.Error("expected NaN z for empty point")
	}
}

func TestWKB_LineString(t *testing.T) {
	buf := mustParse(t, "LINESTRING(0 0, 3 4)").WKB()
	// header + count + 2 vertices
	if len(buf) != 1+4+4+2*16 {
		t.Fatalf("unexpected length %d", len(buf))
	}
	if n := wkbUint32(t, buf, 5); n != 2 {
		t.Errorf("expected 2 vertices, got %d", n)
	}
	if x := wkbFloat64(t, buf, 25); x != 3 {
		t.Errorf("expected second x=3, got %v", x)
	}
}

func TestWKB_EmptyContainersZeroCount(t *testing.T) {
	for _, input := range []string{
		"LINESTRING EMPTY",
		"POLYGON EMPTY",
		"MULTIPOINT EMPTY",
		"MULTILINESTRING EMPTY",
		"MULTIPOLYGON EMPTY",
		"GEOMETRYCOLLECTION EMPTY",
	} {
		buf := mustParse(t, input).WKB()
		if len(buf) != 9 {
			t.Errorf("WKB(%q): expected 9 bytes, got %d", input, len(buf))
			continue
		}
		if n := wkbUint32(t, buf, 5); n != 0 {
			t.Errorf("WKB(%q): expected count 0, got %d", input, n)
		}
	}
}

func TestWKB_PolygonRings(t *testing.T) {
	buf := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 0), (2 2, 4 2, 4 4, 2 2))").WKB()
	if n := wkbUint32(t, buf, 5); n != 2 {
		t.Fatalf("expected 2 rings, got %d", n)
	}
	if n := wkbUint32(t, buf, 9); n != 4 {
		t.Errorf("expected 4 vertices in shell, got %d", n)
	}
	holeOff := 9 + 4 + 4*16
	if n := wkbUint32(t, buf, holeOff); n != 4 {
		t.Errorf("expected 4 vertices in hole, got %d", n)
	}
}

func TestWKB_CollectionNesting(t *testing.T) {
	buf := mustParse(t, "GEOMETRYCOLLECTION(POINT(1 2), POINT(3 4))").WKB()
	if n := wkbUint32(t, buf, 5); n != 2 {
		t.Fatalf("expected 2 children, got %d", n)
	}
	// First child starts right after the collection header.
	if buf[9] != 1 {
		t.Errorf("expected child byte-order flag, got %d", buf[9])
	}
	if code := wkbUint32(t, buf, 10); code != 1 {
		t.Errorf("expected child type code 1, got %d", code)
	}
	if x := wkbFloat64(t, buf, 14); x != 1 {
		t.Errorf("expected child x=1, got %v", x)
	}
	second := 9 + 21
	if x := wkbFloat64(t, buf, second+5); x != 3 {
		t.Errorf("expected second child x=3, got %v", x)
	}
}
