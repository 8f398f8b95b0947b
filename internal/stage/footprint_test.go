package stage

import (
	"errors"
	"strings"
	"testing"
)

func TestFootprintIdentityReprojection(t *testing.T) {
	// Geotransform (0,1,0,0,0,-1), size 2x2, source CRS equal to the
	// target: the ring is (0,0),(2,0),(2,-2),(0,-2),(0,0) at 8 decimals.
	uri := "/data/a.tif"
	ds := fullDataset()
	p := newTestProvider(uri, ds)
	e := NewExtractor(p, p, 4326)

	rec, err := e.Extract(uri, []string{ColFootprint})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}

	want := "SRID=4326;POLYGON((" +
		"0.00000000 0.00000000," +
		"2.00000000 0.00000000," +
		"2.00000000 -2.00000000," +
		"0.00000000 -2.00000000," +
		"0.00000000 0.00000000))"
	if rec[ColFootprint] != want {
		t.Errorf("footprint =\n%q\nexpected\n%q", rec[ColFootprint], want)
	}
}

func TestFootprintShearTerms(t *testing.T) {
	// Non-zero b and c coefficients participate in the corner mapping.
	uri := "/data/a.tif"
	ds := fullDataset()
	ds.GT = [6]float64{100, 2, 0.5, 200, 0.25, -2}
	ds.Width, ds.Height = 4, 2
	p := newTestProvider(uri, ds)
	e := NewExtractor(p, p, 4326)

	rec, err := e.Extract(uri, []string{ColFootprint})
	if err != nil {
		t.Fatal(err)
	}

	// Corner (4,2): x = 100 + 4*2 + 2*0.5 = 109, y = 200 + 4*0.25 + 2*-2 = 197.
	if !strings.Contains(rec[ColFootprint], "109.00000000 197.00000000") {
		t.Errorf("shear corner missing from footprint: %q", rec[ColFootprint])
	}
}

func TestFootprintMissingGeotransform(t *testing.T) {
	uri := "/data/a.tif"
	ds := fullDataset()
	ds.HasGT = false
	p := newTestProvider(uri, ds)
	e := NewExtractor(p, p, 4326)

	rec, err := e.Extract(uri, []string{ColFootprint})
	if err != nil {
		t.Fatalf("missing geotransform must not fail extraction: %v", err)
	}
	if rec[ColFootprint] != "" {
		t.Errorf("footprint = %q, expected \"\"", rec[ColFootprint])
	}
	// The geotransform check short-circuits before any reprojection.
	if p.ReprojectCalls != 0 {
		t.Errorf("reprojection attempted %d times for a raster without geotransform", p.ReprojectCalls)
	}
}

func TestFootprintUnparseableCRS(t *testing.T) {
	uri := "/data/a.tif"
	ds := fullDataset()
	ds.WKT = "not actually wkt"
	p := newTestProvider(uri, ds)
	p.ReprojectErr = errors.New("cannot parse source CRS")
	e := NewExtractor(p, p, 4326)

	rec, err := e.Extract(uri, []string{ColFootprint})
	if err != nil {
		t.Fatalf("unparseable CRS must not fail extraction: %v", err)
	}
	if rec[ColFootprint] != "" {
		t.Errorf("footprint = %q, expected \"\"", rec[ColFootprint])
	}
}

func TestFootprintTargetSRIDInPrefix(t *testing.T) {
	uri := "/data/a.tif"
	ds := fullDataset()
	p := newTestProvider(uri, ds)
	e := NewExtractor(p, p, 3857)

	rec, err := e.Extract(uri, []string{ColFootprint})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rec[ColFootprint], "SRID=3857;POLYGON((") {
		t.Errorf("footprint prefix wrong: %q", rec[ColFootprint])
	}
}

func TestPixelToGeo(t *testing.T) {
	gt := [6]float64{10, 2, 0, 20, 0, -3}
	tests := []struct {
		px, py float64
		x, y   float64
	}{
		{0, 0, 10, 20},
		{1, 0, 12, 20},
		{0, 1, 10, 17},
		{3, 2, 16, 14},
	}
	for _, tt := range tests {
		p := pixelToGeo(gt, tt.px, tt.py)
		if p.X != tt.x || p.Y != tt.y {
			t.Errorf("pixelToGeo(%v,%v) = (%v,%v), expected (%v,%v)",
				tt.px, tt.py, p.X, p.Y, tt.x, tt.y)
		}
	}
}
