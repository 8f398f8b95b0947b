// Package rastertest provides in-memory raster.Provider and
// raster.Transformer implementations with call counting, for testing the
// extraction pipeline without a GDAL installation.
package rastertest

import (
	"errors"
	"sync"

	"github.com/bluefractalfish/whirlwind/internal/raster"
)

// Dataset is a scripted raster. Call counters record which capabilities an
// extraction touched.
type Dataset struct {
	WKT       string
	GT        [6]float64
	HasGT     bool
	Width     int
	Height    int
	Bands     int
	Dtype     string
	Nodata    float64
	HasNodata bool

	ProjectionCalls   int
	GeoTransformCalls int
	SizeCalls         int
	BandInfoCalls     int
	Closed            bool
}

var _ raster.Dataset = (*Dataset)(nil)

func (d *Dataset) Projection() string {
	d.ProjectionCalls++
	return d.WKT
}

func (d *Dataset) GeoTransform() ([6]float64, bool) {
	d.GeoTransformCalls++
	return d.GT, d.HasGT
}

func (d *Dataset) Size() (int, int, int) {
	d.SizeCalls++
	return d.Width, d.Height, d.Bands
}

func (d *Dataset) BandInfo(band int) (string, float64, bool) {
	d.BandInfoCalls++
	if band < 1 || band > d.Bands {
		return "", 0, false
	}
	return d.Dtype, d.Nodata, d.HasNodata
}

func (d *Dataset) Close() error {
	d.Closed = true
	return nil
}

// Provider maps URIs to scripted datasets. Unknown URIs fail with
// raster.OpenError, like a driver that cannot recognize the file.
type Provider struct {
	Datasets map[string]*Dataset

	// Codes maps WKT text to the authority code AuthorityCode reports.
	Codes map[string]string

	// ReprojectErr, when set, fails every Reproject call.
	ReprojectErr error

	// ShiftX and ShiftY are added to every reprojected point, so tests can
	// distinguish identity from a real transform.
	ShiftX float64
	ShiftY float64

	// mu guards the call counters; batch extraction may open datasets
	// from several goroutines.
	mu             sync.Mutex
	OpenCalls      int
	ReprojectCalls int
}

var _ raster.Provider = (*Provider)(nil)
var _ raster.Transformer = (*Provider)(nil)

func (p *Provider) Open(uri string) (raster.Dataset, error) {
	p.mu.Lock()
	p.OpenCalls++
	p.mu.Unlock()
	ds, ok := p.Datasets[uri]
	if !ok {
		return nil, &raster.OpenError{URI: uri, Err: errors.New("not a recognized raster")}
	}
	return ds, nil
}

func (p *Provider) AuthorityCode(wkt string) string {
	if wkt == "" {
		return ""
	}
	return p.Codes[wkt]
}

func (p *Provider) Reproject(points []raster.Point, srcWKT string, dstEPSG int) ([]raster.Point, error) {
	p.mu.Lock()
	p.ReprojectCalls++
	p.mu.Unlock()
	if p.ReprojectErr != nil {
		return nil, p.ReprojectErr
	}
	out := make([]raster.Point, len(points))
	for i, pt := range points {
		out[i] = raster.Point{X: pt.X + p.ShiftX, Y: pt.Y + p.ShiftY}
	}
	return out, nil
}
