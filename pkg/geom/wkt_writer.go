package geom

import (
	"strconv"
	"strings"
)

// WKT serializes the geometry to canonical Well-Known Text. The output
// parses back (with the same reader) to a structurally equal geometry.
func (g Geometry) WKT() string {
	var sb strings.Builder
	g.writeWKT(&sb)
	return sb.String()
}

func (g Geometry) tagWKT() string {
	switch g.typ {
	case TypePoint:
		return "POINT"
	case TypeLineString:
		return "LINESTRING"
	case TypePolygon:
		return "POLYGON"
	case TypeMultiPoint:
		return "MULTIPOINT"
	case TypeMultiLineString:
		return "MULTILINESTRING"
	case TypeMultiPolygon:
		return "MULTIPOLYGON"
	case TypeGeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return "UNKNOWN"
	}
}

func (g Geometry) writeWKT(sb *strings.Builder) {
	sb.WriteString(g.tagWKT())
	if g.hasZ && g.hasM {
		sb.WriteString(" ZM")
	} else if g.hasZ {
		sb.WriteString(" Z")
	} else if g.hasM {
		sb.WriteString(" M")
	}
	if g.IsEmpty() {
		sb.WriteString(" EMPTY")
		return
	}
	if g.hasZ || g.hasM {
		sb.WriteByte(' ')
	}
	switch g.typ {
	case TypePoint:
		sb.WriteByte('(')
		writeVertex(sb, g.verts, 0)
		sb.WriteByte(')')
	case TypeLineString:
		writeVertexList(sb, g.verts)
	case TypePolygon:
		sb.WriteByte('(')
		for i, ring := range g.rings {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeVertexList(sb, ring)
		}
		sb.WriteByte(')')
	case TypeMultiPoint:
		sb.WriteByte('(')
		for i, pt := range g.geoms {
			if i > 0 {
				sb.WriteString(", ")
			}
			if pt.IsEmpty() {
				sb.WriteString("EMPTY")
				continue
			}
			sb.WriteByte('(')
			writeVertex(sb, pt.verts, 0)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case TypeMultiLineString:
		sb.WriteByte('(')
		for i, line := range g.geoms {
			if i > 0 {
				sb.WriteString(", ")
			}
			if line.IsEmpty() {
				sb.WriteString("EMPTY")
				continue
			}
			writeVertexList(sb, line.verts)
		}
		sb.WriteByte(')')
	case TypeMultiPolygon:
		sb.WriteByte('(')
		for i, poly := range g.geoms {
			if i > 0 {
				sb.WriteString(", ")
			}
			if poly.IsEmpty() {
				sb.WriteString("EMPTY")
				continue
			}
			sb.WriteByte('(')
			for j, ring := range poly.rings {
				if j > 0 {
					sb.WriteString(", ")
				}
				writeVertexList(sb, ring)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case TypeGeometryCollection:
		sb.WriteByte('(')
		for i, child := range g.geoms {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.writeWKT(sb)
		}
		sb.WriteByte(')')
	}
}

func writeVertexList(sb *strings.Builder, v VertexArray) {
	sb.WriteByte('(')
	for i := 0; i < v.Count(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeVertex(sb, v, i)
	}
	sb.WriteByte(')')
}

func writeVertex(sb *strings.Builder, v VertexArray, i int) {
	vert := v.Get(i)
	sb.WriteString(formatCoord(vert.X))
	sb.WriteByte(' ')
	sb.WriteString(formatCoord(vert.Y))
	if v.HasZ() {
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(vert.Z))
	}
	if v.HasM() {
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(vert.M))
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
