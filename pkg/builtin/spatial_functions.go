package builtin

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/simplify"

	"github.com/kasuganosora/spatialexec/pkg/arena"
	"github.com/kasuganosora/spatialexec/pkg/geom"
)

// CategorySpatial is the function category for spatial/geospatial functions.
const CategorySpatial FunctionCategory = "spatial"

func init() {
	RegisterSpatialFunctions(globalRegistry)
	RegisterGeodesicFunctions(globalRegistry)
	RegisterSimplifyFunctions(globalRegistry)
}

// newParseArena returns the arena backing one function invocation. The
// geometry handles a handler returns keep their backing alive for as
// long as the host references them.
func newParseArena() *arena.Arena {
	return arena.New(arena.DefaultBlockSize)
}

// parseGeometryArg converts an arbitrary host value to a Geometry. It
// accepts Geometry values directly, or WKT as string/[]byte.
func parseGeometryArg(arg interface{}) (geom.Geometry, error) {
	switch v := arg.(type) {
	case geom.Geometry:
		return v, nil
	case string:
		return geom.NewWKTReader(newParseArena()).Parse(v)
	case []byte:
		return geom.NewWKTReader(newParseArena()).Parse(string(v))
	default:
		return geom.Geometry{}, fmt.Errorf("cannot convert %T to Geometry", arg)
	}
}

// RegisterSpatialFunctions installs the core spatial functions into r.
func RegisterSpatialFunctions(r *FunctionRegistry) {
	// ==================== Constructors ====================

	r.Register(&FunctionInfo{
		Name:        "st_geomfromtext",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Parse a WKT string into a Geometry value",
		Signatures:  []FunctionSignature{{Name: "st_geomfromtext", ReturnType: "geometry", ParamTypes: []string{"string"}}},
		Handler:     stGeomFromTextHandler,
		Example:     "SELECT ST_GeomFromText('POINT(1 2)')",
	})

	r.Register(&FunctionInfo{
		Name:        "st_makeenvelope",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Create a rectangular Polygon from min/max coordinates",
		Signatures:  []FunctionSignature{{Name: "st_makeenvelope", ReturnType: "geometry", ParamTypes: []string{"float", "float", "float", "float"}}},
		Handler:     stMakeEnvelopeHandler,
		Example:     "SELECT ST_MakeEnvelope(0, 0, 10, 10)",
	})

	r.Register(&FunctionInfo{
		Name:        "st_tileenvelope",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Create the Web Mercator envelope Polygon of an XYZ tile",
		Signatures:  []FunctionSignature{{Name: "st_tileenvelope", ReturnType: "geometry", ParamTypes: []string{"int", "int", "int"}}},
		Handler:     stTileEnvelopeHandler,
		Example:     "SELECT ST_TileEnvelope(2, 1, 2)",
	})

	// ==================== Output ====================

	r.Register(&FunctionInfo{
		Name:        "st_astext",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Convert a Geometry to its WKT string representation",
		Signatures:  []FunctionSignature{{Name: "st_astext", ReturnType: "string", ParamTypes: []string{"geometry"}}},
		Handler:     stAsTextHandler,
		Example:     "SELECT ST_AsText(location) FROM places",
	})

	r.Register(&FunctionInfo{
		Name:        "st_aswkt",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Convert a Geometry to its WKT string representation (alias for ST_AsText)",
		Signatures:  []FunctionSignature{{Name: "st_aswkt", ReturnType: "string", ParamTypes: []string{"geometry"}}},
		Handler:     stAsTextHandler,
		Example:     "SELECT ST_AsWKT(location) FROM places",
	})

	r.Register(&FunctionInfo{
		Name:        "st_aswkb",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Convert a Geometry to ISO WKB bytes",
		Signatures:  []FunctionSignature{{Name: "st_aswkb", ReturnType: "blob", ParamTypes: []string{"geometry"}}},
		Handler:     stAsWKBHandler,
		Example:     "SELECT ST_AsWKB(location) FROM places",
	})

	// ==================== Properties ====================

	r.Register(&FunctionInfo{
		Name:        "st_geometrytype",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the type name of a Geometry",
		Signatures:  []FunctionSignature{{Name: "st_geometrytype", ReturnType: "string", ParamTypes: []string{"geometry"}}},
		Handler:     stGeometryTypeHandler,
		Example:     "SELECT ST_GeometryType(ST_GeomFromText('POINT(1 2)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_isempty",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return whether a Geometry has no coordinates",
		Signatures:  []FunctionSignature{{Name: "st_isempty", ReturnType: "bool", ParamTypes: []string{"geometry"}}},
		Handler:     stIsEmptyHandler,
		Example:     "SELECT ST_IsEmpty(ST_GeomFromText('POINT EMPTY'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_numpoints",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the total number of vertices of a Geometry",
		Signatures:  []FunctionSignature{{Name: "st_numpoints", ReturnType: "int", ParamTypes: []string{"geometry"}}},
		Handler:     stNumPointsHandler,
		Example:     "SELECT ST_NumPoints(ST_GeomFromText('LINESTRING(0 0, 1 1)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_dimension",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the topological dimension of a Geometry",
		Signatures:  []FunctionSignature{{Name: "st_dimension", ReturnType: "int", ParamTypes: []string{"geometry"}}},
		Handler:     stDimensionHandler,
		Example:     "SELECT ST_Dimension(ST_GeomFromText('POLYGON((0 0, 1 0, 1 1, 0 0))'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_x",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the X coordinate of a Point",
		Signatures:  []FunctionSignature{{Name: "st_x", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stXHandler,
		Example:     "SELECT ST_X(ST_GeomFromText('POINT(1 2)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_y",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the Y coordinate of a Point",
		Signatures:  []FunctionSignature{{Name: "st_y", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stYHandler,
		Example:     "SELECT ST_Y(ST_GeomFromText('POINT(1 2)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_z",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the Z coordinate of a Point, NULL when absent",
		Signatures:  []FunctionSignature{{Name: "st_z", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stZHandler,
		Example:     "SELECT ST_Z(ST_GeomFromText('POINT Z (1 2 3)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_m",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the M coordinate of a Point, NULL when absent",
		Signatures:  []FunctionSignature{{Name: "st_m", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stMHandler,
		Example:     "SELECT ST_M(ST_GeomFromText('POINT M (1 2 4)'))",
	})

	// ==================== Measures ====================

	r.Register(&FunctionInfo{
		Name:        "st_area",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the planar area of a Geometry",
		Signatures:  []FunctionSignature{{Name: "st_area", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stAreaHandler,
		Example:     "SELECT ST_Area(ST_GeomFromText('POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_length",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the planar length of a linear Geometry",
		Signatures:  []FunctionSignature{{Name: "st_length", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stLengthHandler,
		Example:     "SELECT ST_Length(ST_GeomFromText('LINESTRING(0 0, 3 4)'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_perimeter",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the total ring length of an areal Geometry",
		Signatures:  []FunctionSignature{{Name: "st_perimeter", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stPerimeterHandler,
		Example:     "SELECT ST_Perimeter(ST_GeomFromText('POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))'))",
	})

	r.Register(&FunctionInfo{
		Name:        "st_envelope",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the minimum bounding rectangle of a Geometry as a Polygon",
		Signatures:  []FunctionSignature{{Name: "st_envelope", ReturnType: "geometry", ParamTypes: []string{"geometry"}}},
		Handler:     stEnvelopeHandler,
		Example:     "SELECT ST_Envelope(ST_GeomFromText('LINESTRING(0 0, 10 10)'))",
	})
}

// RegisterGeodesicFunctions installs the spheroid measure functions.
func RegisterGeodesicFunctions(r *FunctionRegistry) {
	r.Register(&FunctionInfo{
		Name:        "st_area_spheroid",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Return the area of a Geometry in square meters on the WGS84 spheroid",
		Signatures:  []FunctionSignature{{Name: "st_area_spheroid", ReturnType: "float", ParamTypes: []string{"geometry"}}},
		Handler:     stAreaSpheroidHandler,
		Example:     "SELECT ST_Area_Spheroid(ST_GeomFromText('POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))'))",
	})
}

// RegisterSimplifyFunctions installs the simplification functions.
func RegisterSimplifyFunctions(r *FunctionRegistry) {
	r.Register(&FunctionInfo{
		Name:        "st_simplify",
		Type:        FunctionTypeScalar,
		Category:    CategorySpatial,
		Description: "Simplify a Geometry with the Douglas-Peucker algorithm",
		Signatures:  []FunctionSignature{{Name: "st_simplify", ReturnType: "geometry", ParamTypes: []string{"geometry", "float"}}},
		Handler:     stSimplifyHandler,
		Example:     "SELECT ST_Simplify(ST_GeomFromText('LINESTRING(0 0, 1 0.01, 2 0)'), 0.1)",
	})
}

// ==================== Handlers ====================

func stGeomFromTextHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_GeomFromText requires exactly 1 argument")
	}
	wkt, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("ST_GeomFromText: first argument must be a string")
	}
	g, err := geom.NewWKTReader(newParseArena()).Parse(wkt)
	if err != nil {
		return nil, fmt.Errorf("ST_GeomFromText: %w", err)
	}
	return g, nil
}

func stMakeEnvelopeHandler(args []interface{}) (interface{}, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("ST_MakeEnvelope requires exactly 4 arguments")
	}
	coords := make([]float64, 4)
	for i, arg := range args {
		v, err := ToFloat64(arg)
		if err != nil {
			return nil, fmt.Errorf("ST_MakeEnvelope: %w", err)
		}
		coords[i] = v
	}
	box := geom.BoundingBox{MinX: coords[0], MinY: coords[1], MaxX: coords[2], MaxY: coords[3]}
	return box.ToPolygon(newParseArena()), nil
}

// Web Mercator world extent, meters.
const mercatorExtent = 20037508.342789244

func stTileEnvelopeHandler(args []interface{}) (interface{}, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("ST_TileEnvelope requires exactly 3 arguments")
	}
	zoom, err := ToInt64(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_TileEnvelope: %w", err)
	}
	x, err := ToInt64(args[1])
	if err != nil {
		return nil, fmt.Errorf("ST_TileEnvelope: %w", err)
	}
	y, err := ToInt64(args[2])
	if err != nil {
		return nil, fmt.Errorf("ST_TileEnvelope: %w", err)
	}
	if zoom < 0 || zoom > 30 {
		return nil, fmt.Errorf("ST_TileEnvelope: zoom %d out of range [0, 30]", zoom)
	}
	n := int64(1) << uint(zoom)
	if x < 0 || x >= n || y < 0 || y >= n {
		return nil, fmt.Errorf("ST_TileEnvelope: tile (%d, %d) out of range for zoom %d", x, y, zoom)
	}
	tileSize := 2 * mercatorExtent / float64(n)
	box := geom.BoundingBox{
		MinX: -mercatorExtent + float64(x)*tileSize,
		MaxX: -mercatorExtent + float64(x+1)*tileSize,
		// Tile rows count from the north edge.
		MinY: mercatorExtent - float64(y+1)*tileSize,
		MaxY: mercatorExtent - float64(y)*tileSize,
	}
	return box.ToPolygon(newParseArena()), nil
}

func stAsTextHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_AsText requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_AsText: %w", err)
	}
	return g.WKT(), nil
}

func stAsWKBHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_AsWKB requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_AsWKB: %w", err)
	}
	return g.WKB(), nil
}

func stGeometryTypeHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_GeometryType requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_GeometryType: %w", err)
	}
	return g.Type().String(), nil
}

func stIsEmptyHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_IsEmpty requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_IsEmpty: %w", err)
	}
	return g.IsEmpty(), nil
}

func stNumPointsHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_NumPoints requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_NumPoints: %w", err)
	}
	return int64(g.NumPoints()), nil
}

func stDimensionHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Dimension requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Dimension: %w", err)
	}
	return int64(g.Dimension()), nil
}

func pointCoordinate(name string, args []interface{}) (geom.Vertex, bool, error) {
	if len(args) != 1 {
		return geom.Vertex{}, false, fmt.Errorf("%s requires exactly 1 argument", name)
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return geom.Vertex{}, false, fmt.Errorf("%s: %w", name, err)
	}
	if g.Type() != geom.TypePoint {
		return geom.Vertex{}, false, fmt.Errorf("%s: argument must be a Point, got %s", name, g.Type())
	}
	if g.IsEmpty() {
		return geom.Vertex{}, false, nil
	}
	return g.Vertices().Get(0), true, nil
}

func stXHandler(args []interface{}) (interface{}, error) {
	vert, ok, err := pointCoordinate("ST_X", args)
	if err != nil || !ok {
		return nil, err
	}
	return vert.X, nil
}

func stYHandler(args []interface{}) (interface{}, error) {
	vert, ok, err := pointCoordinate("ST_Y", args)
	if err != nil || !ok {
		return nil, err
	}
	return vert.Y, nil
}

func stZHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Z requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Z: %w", err)
	}
	if g.Type() != geom.TypePoint {
		return nil, fmt.Errorf("ST_Z: argument must be a Point, got %s", g.Type())
	}
	if !g.HasZ() || g.IsEmpty() {
		return nil, nil
	}
	return g.Vertices().Get(0).Z, nil
}

func stMHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_M requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_M: %w", err)
	}
	if g.Type() != geom.TypePoint {
		return nil, fmt.Errorf("ST_M: argument must be a Point, got %s", g.Type())
	}
	if !g.HasM() || g.IsEmpty() {
		return nil, nil
	}
	return g.Vertices().Get(0).M, nil
}

func stAreaHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Area requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Area: %w", err)
	}
	return g.Area(), nil
}

func stLengthHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Length requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Length: %w", err)
	}
	return g.Length(), nil
}

func stPerimeterHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Perimeter requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Perimeter: %w", err)
	}
	return g.Perimeter(), nil
}

func stEnvelopeHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Envelope requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Envelope: %w", err)
	}
	box, ok := g.Envelope()
	if !ok {
		return geom.NewPolygon(false, false), nil
	}
	return box.ToPolygon(newParseArena()), nil
}

// spheroidPolygonArea mirrors the hole handling of the planar measure:
// the outer ring contributes its absolute area, holes subtract theirs.
func spheroidPolygonArea(poly orb.Polygon) float64 {
	total := 0.0
	for i, ring := range poly {
		area := math.Abs(geo.Area(ring))
		if i == 0 {
			total += area
		} else {
			total -= area
		}
	}
	return math.Abs(total)
}

func spheroidArea(og orb.Geometry) float64 {
	switch o := og.(type) {
	case orb.Polygon:
		return spheroidPolygonArea(o)
	case orb.MultiPolygon:
		total := 0.0
		for _, poly := range o {
			total += spheroidPolygonArea(poly)
		}
		return total
	case orb.Collection:
		total := 0.0
		for _, child := range o {
			total += spheroidArea(child)
		}
		return total
	default:
		return 0
	}
}

func stAreaSpheroidHandler(args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ST_Area_Spheroid requires exactly 1 argument")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Area_Spheroid: %w", err)
	}
	og := g.Orb()
	if og == nil {
		return 0.0, nil
	}
	return spheroidArea(og), nil
}

func stSimplifyHandler(args []interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("ST_Simplify requires exactly 2 arguments")
	}
	g, err := parseGeometryArg(args[0])
	if err != nil {
		return nil, fmt.Errorf("ST_Simplify: %w", err)
	}
	tolerance, err := ToFloat64(args[1])
	if err != nil {
		return nil, fmt.Errorf("ST_Simplify: invalid tolerance: %w", err)
	}
	og := g.Orb()
	if og == nil {
		return g, nil
	}
	simplified := simplify.DouglasPeucker(tolerance).Simplify(og)
	return geom.FromOrb(newParseArena(), simplified), nil
}
