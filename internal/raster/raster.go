// Package raster defines the capability surface whirlwind needs from a
// geospatial raster driver. The production implementation binds GDAL; tests
// substitute an in-memory fake.
package raster

import "fmt"

// Point is a coordinate pair. Axis order is longitude before latitude for
// geographic systems, enforced by Transformer implementations.
type Point struct {
	X float64
	Y float64
}

// Provider opens raster resources by URI.
type Provider interface {
	Open(uri string) (Dataset, error)
}

// Dataset is an opened raster. It is owned by a single extraction call and
// must be closed before the next file is processed.
type Dataset interface {
	// Projection returns the projection definition as WKT, or "" when the
	// raster carries none.
	Projection() string

	// GeoTransform returns the six affine coefficients
	// (x0, a, b, y0, c, d) and whether the raster defines them.
	GeoTransform() ([6]float64, bool)

	// Size returns raster width, height, and band count.
	Size() (width, height, bands int)

	// BandInfo describes the 1-based band: its datatype name and nodata
	// sentinel. hasNodata distinguishes "no sentinel" from a sentinel of 0.
	BandInfo(band int) (dtype string, nodata float64, hasNodata bool)

	Close() error
}

// Transformer provides coordinate reference system operations. Both
// directions of Reproject force longitude-before-latitude axis order,
// regardless of a CRS's native axis convention.
type Transformer interface {
	// AuthorityCode extracts the authority code (e.g. "4326") from a WKT
	// projection, or "" when the CRS defines none.
	AuthorityCode(wkt string) string

	// Reproject transforms points from the source CRS (WKT) into the EPSG
	// target.
	Reproject(points []Point, srcWKT string, dstEPSG int) ([]Point, error)
}

// OpenError reports a raster that the driver could not open.
type OpenError struct {
	URI string
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open raster %s: %v", e.URI, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
