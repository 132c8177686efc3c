package geom

import (
	"github.com/paulmach/orb"

	"github.com/kasuganosora/spatialexec/pkg/arena"
)

// Orb converts the geometry to its paulmach/orb equivalent for use with
// the orb algorithm packages (geo, planar, simplify). Z and M
// coordinates are dropped; orb is strictly 2D. An empty Point converts
// to nil since orb has no empty-point representation.
func (g Geometry) Orb() orb.Geometry {
	switch g.typ {
	case TypePoint:
		if g.verts.Count() == 0 {
			return nil
		}
		v := g.verts.Get(0)
		return orb.Point{v.X, v.Y}
	case TypeLineString:
		return orb.LineString(orbPoints(g.verts))
	case TypePolygon:
		poly := make(orb.Polygon, len(g.rings))
		for i, ring := range g.rings {
			poly[i] = orb.Ring(orbPoints(ring))
		}
		return poly
	case TypeMultiPoint:
		mp := make(orb.MultiPoint, 0, len(g.geoms))
		for _, pt := range g.geoms {
			if pt.verts.Count() == 0 {
				continue
			}
			v := pt.verts.Get(0)
			mp = append(mp, orb.Point{v.X, v.Y})
		}
		return mp
	case TypeMultiLineString:
		mls := make(orb.MultiLineString, len(g.geoms))
		for i, line := range g.geoms {
			mls[i] = orb.LineString(orbPoints(line.verts))
		}
		return mls
	case TypeMultiPolygon:
		mp := make(orb.MultiPolygon, len(g.geoms))
		for i, poly := range g.geoms {
			rings := make(orb.Polygon, len(poly.rings))
			for j, ring := range poly.rings {
				rings[j] = orb.Ring(orbPoints(ring))
			}
			mp[i] = rings
		}
		return mp
	default:
		coll := make(orb.Collection, 0, len(g.geoms))
		for _, child := range g.geoms {
			if og := child.Orb(); og != nil {
				coll = append(coll, og)
			}
		}
		return coll
	}
}

func orbPoints(v VertexArray) []orb.Point {
	pts := make([]orb.Point, v.Count())
	for i := range pts {
		vert := v.Get(i)
		pts[i] = orb.Point{vert.X, vert.Y}
	}
	return pts
}

// FromOrb converts an orb geometry into the arena-backed value model.
// The result carries no Z or M dimension.
func FromOrb(a *arena.Arena, og orb.Geometry) Geometry {
	switch o := og.(type) {
	case orb.Point:
		return NewPointFromVertices(copyOrbPoints(a, []orb.Point{o}))
	case orb.LineString:
		return NewLineStringFromVertices(copyOrbPoints(a, o))
	case orb.Ring:
		poly := NewPolygonWithRings(a, 1, false, false)
		poly.SetRing(0, copyOrbPoints(a, o))
		return poly
	case orb.Polygon:
		poly := NewPolygonWithRings(a, len(o), false, false)
		for i, ring := range o {
			poly.SetRing(i, copyOrbPoints(a, ring))
		}
		return poly
	case orb.MultiPoint:
		mp := NewMultiPointWithChildren(a, len(o), false, false)
		for i, pt := range o {
			mp.SetChild(i, NewPointFromVertices(copyOrbPoints(a, []orb.Point{pt})))
		}
		return mp
	case orb.MultiLineString:
		mls := NewMultiLineStringWithChildren(a, len(o), false, false)
		for i, line := range o {
			mls.SetChild(i, NewLineStringFromVertices(copyOrbPoints(a, line)))
		}
		return mls
	case orb.MultiPolygon:
		mp := NewMultiPolygonWithChildren(a, len(o), false, false)
		for i, poly := range o {
			child := NewPolygonWithRings(a, len(poly), false, false)
			for j, ring := range poly {
				child.SetRing(j, copyOrbPoints(a, ring))
			}
			mp.SetChild(i, child)
		}
		return mp
	case orb.Collection:
		coll := NewGeometryCollectionWithChildren(a, len(o), false, false)
		for i, child := range o {
			coll.SetChild(i, FromOrb(a, child))
		}
		return coll
	default:
		// og is nil or an unknown type; an empty point is the only
		// geometry with no orb representation.
		return NewPoint(false, false)
	}
}

func copyOrbPoints(a *arena.Arena, pts []orb.Point) VertexArray {
	coords := make([]float64, 0, len(pts)*2)
	for _, pt := range pts {
		coords = append(coords, pt[0], pt[1])
	}
	return CopyVertexArray(a, coords, len(pts), false, false)
}
