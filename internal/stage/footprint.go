package stage

import (
	"fmt"
	"strings"

	"github.com/bluefractalfish/whirlwind/internal/raster"
)

// footprint computes the raster's bounding polygon as extended WKT in the
// target coordinate system. It degrades to "" when the raster lacks a
// geotransform or a usable projection; it never fails the extraction.
func (e *Extractor) footprint(q *queries) string {
	gt, ok := q.geoTransform()
	if !ok {
		return ""
	}
	srcWKT := q.projection()
	if srcWKT == "" {
		return ""
	}

	w, h, _ := q.size()
	fw, fh := float64(w), float64(h)

	// Corner pixels mapped into source-CRS coordinates, ring closed by
	// repeating the first corner.
	corners := []raster.Point{
		pixelToGeo(gt, 0, 0),
		pixelToGeo(gt, fw, 0),
		pixelToGeo(gt, fw, fh),
		pixelToGeo(gt, 0, fh),
		pixelToGeo(gt, 0, 0),
	}

	reprojected, err := e.transformer.Reproject(corners, srcWKT, e.targetSRID)
	if err != nil {
		return ""
	}

	coords := make([]string, len(reprojected))
	for i, p := range reprojected {
		coords[i] = fmt.Sprintf("%.8f %.8f", p.X, p.Y)
	}
	return fmt.Sprintf("SRID=%d;POLYGON((%s))", e.targetSRID, strings.Join(coords, ","))
}

// pixelToGeo applies the affine geotransform (x0, a, b, y0, c, d):
// x = x0 + px*a + py*b, y = y0 + px*c + py*d.
func pixelToGeo(gt [6]float64, px, py float64) raster.Point {
	return raster.Point{
		X: gt[0] + px*gt[1] + py*gt[2],
		Y: gt[3] + px*gt[4] + py*gt[5],
	}
}
