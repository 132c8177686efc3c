// Package index provides an r-tree over geometry envelopes. The host's
// filter and join operators use it to prune candidates before exact
// geometry checks.
package index

import (
	"github.com/tidwall/geoindex"
	"github.com/tidwall/geoindex/algo"
	"github.com/tidwall/rtree"

	"github.com/kasuganosora/spatialexec/pkg/geom"
)

// Index is a spatial index keyed by geometry envelope. It is not safe
// for concurrent mutation; the host serializes writes.
type Index struct {
	tree *geoindex.Index
	size int
}

// New creates an empty index backed by an r-tree.
func New() *Index {
	return &Index{tree: geoindex.Wrap(&rtree.RTree{})}
}

// Insert adds a geometry under the given id. Empty geometries have no
// envelope and are not indexed.
func (ix *Index) Insert(id int64, g geom.Geometry) bool {
	box, ok := g.Envelope()
	if !ok {
		return false
	}
	ix.tree.Insert(
		[2]float64{box.MinX, box.MinY},
		[2]float64{box.MaxX, box.MaxY},
		id,
	)
	ix.size++
	return true
}

// InsertBox adds an id under an explicit bounding box.
func (ix *Index) InsertBox(id int64, box geom.BoundingBox) {
	ix.tree.Insert(
		[2]float64{box.MinX, box.MinY},
		[2]float64{box.MaxX, box.MaxY},
		id,
	)
	ix.size++
}

// Delete removes an id previously inserted under box. Removing an id
// under a different box is a no-op.
func (ix *Index) Delete(id int64, box geom.BoundingBox) {
	before := ix.tree.Len()
	ix.tree.Delete(
		[2]float64{box.MinX, box.MinY},
		[2]float64{box.MaxX, box.MaxY},
		id,
	)
	ix.size -= before - ix.tree.Len()
}

// Search returns the ids whose boxes intersect the query box, in tree
// order.
func (ix *Index) Search(box geom.BoundingBox) []int64 {
	result := make([]int64, 0)
	ix.tree.Search(
		[2]float64{box.MinX, box.MinY},
		[2]float64{box.MaxX, box.MaxY},
		func(min, max [2]float64, value interface{}) bool {
			result = append(result, value.(int64))
			return true
		},
	)
	return result
}

// Nearby returns up to limit ids ordered by box distance from the point.
func (ix *Index) Nearby(x, y float64, limit int) []int64 {
	result := make([]int64, 0, limit)
	ix.tree.Nearby(
		algo.Box([2]float64{x, y}, [2]float64{x, y}, false, nil),
		func(min, max [2]float64, value interface{}, dist float64) bool {
			result = append(result, value.(int64))
			return len(result) < limit
		},
	)
	return result
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.size }
