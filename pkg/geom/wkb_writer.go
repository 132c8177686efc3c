package geom

import (
	"encoding/binary"
	"math"
)

// ISO WKB geometry type codes. Z adds 1000, M adds 2000, ZM adds 3000.
const (
	wkbPoint              uint32 = 1
	wkbLineString         uint32 = 2
	wkbPolygon            uint32 = 3
	wkbMultiPoint         uint32 = 4
	wkbMultiLineString    uint32 = 5
	wkbMultiPolygon       uint32 = 6
	wkbGeometryCollection uint32 = 7
)

const wkbLittleEndian byte = 1

// WKB serializes the geometry to ISO Well-Known Binary in little-endian
// byte order. An empty point is encoded with NaN coordinates, the usual
// interchange convention; other empty variants encode a zero element
// count.
func (g Geometry) WKB() []byte {
	buf := make([]byte, 0, 9+g.NumPoints()*g.wkbVertexSize())
	return g.appendWKB(buf)
}

func (g Geometry) wkbVertexSize() int {
	n := 16
	if g.hasZ {
		n += 8
	}
	if g.hasM {
		n += 8
	}
	return n
}

func (g Geometry) wkbTypeCode() uint32 {
	var code uint32
	switch g.typ {
	case TypePoint:
		code = wkbPoint
	case TypeLineString:
		code = wkbLineString
	case TypePolygon:
		code = wkbPolygon
	case TypeMultiPoint:
		code = wkbMultiPoint
	case TypeMultiLineString:
		code = wkbMultiLineString
	case TypeMultiPolygon:
		code = wkbMultiPolygon
	case TypeGeometryCollection:
		code = wkbGeometryCollection
	}
	if g.hasZ {
		code += 1000
	}
	if g.hasM {
		code += 2000
	}
	return code
}

func (g Geometry) appendWKB(buf []byte) []byte {
	buf = append(buf, wkbLittleEndian)
	buf = binary.LittleEndian.AppendUint32(buf, g.wkbTypeCode())
	switch g.typ {
	case TypePoint:
		if g.verts.Count() == 0 {
			dims := g.verts.Dims()
			for i := 0; i < dims; i++ {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(math.NaN()))
			}
			return buf
		}
		return appendWKBVertex(buf, g.verts, 0)
	case TypeLineString:
		return appendWKBVertexList(buf, g.verts)
	case TypePolygon:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(g.rings)))
		for _, ring := range g.rings {
			buf = appendWKBVertexList(buf, ring)
		}
		return buf
	default:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(g.geoms)))
		for _, child := range g.geoms {
			buf = child.appendWKB(buf)
		}
		return buf
	}
}

func appendWKBVertexList(buf []byte, v VertexArray) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(v.Count()))
	for i := 0; i < v.Count(); i++ {
		buf = appendWKBVertex(buf, v, i)
	}
	return buf
}

func appendWKBVertex(buf []byte, v VertexArray, i int) []byte {
	vert := v.Get(i)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(vert.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(vert.Y))
	if v.HasZ() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(vert.Z))
	}
	if v.HasM() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(vert.M))
	}
	return buf
}
