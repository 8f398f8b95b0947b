package raster

// #include <stdlib.h>
// #include "gdal.h"
// #include "ogr_srs_api.h"
// #include "cpl_conv.h"
// #include "cpl_error.h"
// #cgo LDFLAGS: -lgdal
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

func init() {
	C.GDALAllRegister()
}

// GDAL is the production Provider and Transformer backed by the GDAL C
// library.
type GDAL struct{}

var _ Provider = (*GDAL)(nil)
var _ Transformer = (*GDAL)(nil)

// NewGDAL returns the GDAL-backed raster driver.
func NewGDAL() *GDAL {
	return &GDAL{}
}

// Open opens uri read-only. Any GDAL-recognized URI works, including
// /vsis3/ style virtual filesystem paths.
func (g *GDAL) Open(uri string) (Dataset, error) {
	cPath := C.CString(uri)
	defer C.free(unsafe.Pointer(cPath))

	hDataset := C.GDALOpen(cPath, C.GA_ReadOnly)
	if hDataset == nil {
		msg := C.GoString(C.CPLGetLastErrorMsg())
		if msg == "" {
			msg = "unrecognized raster"
		}
		return nil, &OpenError{URI: uri, Err: errors.New(msg)}
	}
	return &gdalDataset{h: hDataset}, nil
}

type gdalDataset struct {
	h C.GDALDatasetH
}

func (d *gdalDataset) Projection() string {
	return C.GoString(C.GDALGetProjectionRef(d.h))
}

func (d *gdalDataset) GeoTransform() ([6]float64, bool) {
	var cgt [6]C.double
	if C.GDALGetGeoTransform(d.h, &cgt[0]) != C.CE_None {
		return [6]float64{}, false
	}
	var gt [6]float64
	for i := range gt {
		gt[i] = float64(cgt[i])
	}
	return gt, true
}

func (d *gdalDataset) Size() (int, int, int) {
	return int(C.GDALGetRasterXSize(d.h)),
		int(C.GDALGetRasterYSize(d.h)),
		int(C.GDALGetRasterCount(d.h))
}

func (d *gdalDataset) BandInfo(band int) (string, float64, bool) {
	hBand := C.GDALGetRasterBand(d.h, C.int(band))
	if hBand == nil {
		return "", 0, false
	}
	dtype := C.GoString(C.GDALGetDataTypeName(C.GDALGetRasterDataType(hBand)))

	var hasNodata C.int
	nodata := float64(C.GDALGetRasterNoDataValue(hBand, &hasNodata))
	return dtype, nodata, hasNodata != 0
}

func (d *gdalDataset) Close() error {
	if d.h != nil {
		C.GDALClose(d.h)
		d.h = nil
	}
	return nil
}

// AuthorityCode extracts the EPSG (or other authority) code from a WKT
// projection via OSR, or "" when none is defined.
func (g *GDAL) AuthorityCode(wkt string) string {
	if wkt == "" {
		return ""
	}
	cWKT := C.CString(wkt)
	defer C.free(unsafe.Pointer(cWKT))

	hSRS := C.OSRNewSpatialReference(cWKT)
	if hSRS == nil {
		return ""
	}
	defer C.OSRDestroySpatialReference(hSRS)

	C.OSRSetAxisMappingStrategy(hSRS, C.OAMS_TRADITIONAL_GIS_ORDER)

	cCode := C.OSRGetAuthorityCode(hSRS, nil)
	if cCode == nil {
		return ""
	}
	return C.GoString(cCode)
}

// Reproject transforms points from srcWKT into dstEPSG with traditional
// GIS (lon/lat) axis order forced on both spatial references.
func (g *GDAL) Reproject(points []Point, srcWKT string, dstEPSG int) ([]Point, error) {
	if len(points) == 0 {
		return nil, nil
	}

	cWKT := C.CString(srcWKT)
	defer C.free(unsafe.Pointer(cWKT))

	hSrc := C.OSRNewSpatialReference(cWKT)
	if hSrc == nil {
		return nil, fmt.Errorf("unparseable source CRS")
	}
	defer C.OSRDestroySpatialReference(hSrc)

	hDst := C.OSRNewSpatialReference(nil)
	if hDst == nil {
		return nil, fmt.Errorf("allocating target CRS")
	}
	defer C.OSRDestroySpatialReference(hDst)
	if C.OSRImportFromEPSG(hDst, C.int(dstEPSG)) != C.OGRERR_NONE {
		return nil, fmt.Errorf("unknown EPSG code %d", dstEPSG)
	}

	C.OSRSetAxisMappingStrategy(hSrc, C.OAMS_TRADITIONAL_GIS_ORDER)
	C.OSRSetAxisMappingStrategy(hDst, C.OAMS_TRADITIONAL_GIS_ORDER)

	hCT := C.OCTNewCoordinateTransformation(hSrc, hDst)
	if hCT == nil {
		return nil, fmt.Errorf("no transformation from source CRS to EPSG:%d", dstEPSG)
	}
	defer C.OCTDestroyCoordinateTransformation(hCT)

	xs := make([]C.double, len(points))
	ys := make([]C.double, len(points))
	for i, p := range points {
		xs[i] = C.double(p.X)
		ys[i] = C.double(p.Y)
	}
	if C.OCTTransform(hCT, C.int(len(points)), &xs[0], &ys[0], nil) == 0 {
		return nil, fmt.Errorf("coordinate transformation failed")
	}

	out := make([]Point, len(points))
	for i := range out {
		out[i] = Point{X: float64(xs[i]), Y: float64(ys[i])}
	}
	return out, nil
}
