package stage

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/bluefractalfish/whirlwind/internal/raster"
	"github.com/google/uuid"
)

// Record maps requested column names to string values. Only requested
// columns are present; an absent key never means more than "not requested".
type Record map[string]string

// Extractor derives staging columns from rasters through a provider.
type Extractor struct {
	provider    raster.Provider
	transformer raster.Transformer
	targetSRID  int
	now         func() time.Time
}

// NewExtractor binds a raster driver. targetSRID is the footprint target
// coordinate system (EPSG code).
func NewExtractor(p raster.Provider, t raster.Transformer, targetSRID int) *Extractor {
	return &Extractor{
		provider:    p,
		transformer: t,
		targetSRID:  targetSRID,
		now:         time.Now,
	}
}

// Extract opens uri and computes the requested columns. Shared
// sub-computations (projection, raster shape, band info, geotransform) run
// at most once per call no matter how many dependent columns request them.
// The only failure is the provider refusing to open the raster; every
// per-column degradation resolves to an empty string instead.
func (e *Extractor) Extract(uri string, columns []string) (Record, error) {
	ds, err := e.provider.Open(uri)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	q := &queries{ds: ds}
	out := make(Record, len(columns))

	for _, col := range columns {
		switch col {
		case ColMosaicID:
			out[col] = mosaicID(uri)
		case ColURI:
			out[col] = uri
		case ColURIETag:
			// Reserved for a future content-fingerprinting integration.
			out[col] = ""
		case ColByteSize:
			out[col] = byteSize(uri)
		case ColCRS:
			out[col] = q.projection()
		case ColSRID:
			out[col] = e.srid(q.projection())
		case ColPixelWidth:
			w, _, _ := q.size()
			out[col] = strconv.Itoa(w)
		case ColPixelHeight:
			_, h, _ := q.size()
			out[col] = strconv.Itoa(h)
		case ColBandCount:
			_, _, b := q.size()
			out[col] = strconv.Itoa(b)
		case ColDtype:
			dtype, _ := q.bandInfo()
			out[col] = dtype
		case ColNodata:
			_, nodata := q.bandInfo()
			out[col] = nodata
		case ColFootprint:
			out[col] = e.footprint(q)
		case ColAcquiredAt:
			out[col] = acquiredAt(uri)
		case ColCreatedAt:
			out[col] = e.now().Format(time.RFC3339)
		}
	}
	return out, nil
}

// queries memoizes the provider sub-computations shared between columns
// within one extraction call.
type queries struct {
	ds raster.Dataset

	proj     *string
	sized    bool
	w, h, b  int
	banded   bool
	dtype    string
	nodata   string
	gtDone   bool
	gt       [6]float64
	hasGT    bool
}

func (q *queries) projection() string {
	if q.proj == nil {
		p := q.ds.Projection()
		q.proj = &p
	}
	return *q.proj
}

func (q *queries) size() (int, int, int) {
	if !q.sized {
		q.w, q.h, q.b = q.ds.Size()
		q.sized = true
	}
	return q.w, q.h, q.b
}

func (q *queries) bandInfo() (string, string) {
	if !q.banded {
		// Band 1 is treated as representative of the whole raster.
		if _, _, bands := q.size(); bands >= 1 {
			dtype, nodata, hasNodata := q.ds.BandInfo(1)
			q.dtype = dtype
			if hasNodata {
				q.nodata = strconv.FormatFloat(nodata, 'g', -1, 64)
			}
		}
		q.banded = true
	}
	return q.dtype, q.nodata
}

func (q *queries) geoTransform() ([6]float64, bool) {
	if !q.gtDone {
		q.gt, q.hasGT = q.ds.GeoTransform()
		q.gtDone = true
	}
	return q.gt, q.hasGT
}

// mosaicID derives a deterministic identifier from the URI alone: a
// version 5 UUID in the URL namespace, so idempotent re-runs produce the
// same id.
func mosaicID(uri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(uri)).String()
}

// byteSize is a best-effort local filesystem size. Remote, object-store,
// or virtual-filesystem URIs resolve to "" rather than an error.
func byteSize(uri string) string {
	st, err := os.Stat(uri)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(st.Size(), 10)
}

func (e *Extractor) srid(wkt string) string {
	if wkt == "" {
		return ""
	}
	return e.transformer.AuthorityCode(wkt)
}

// Filename prefix convention: YYMMDD_loc_..., e.g. 240119_denver_ortho.tif.
// Month is constrained to 01-12 and day to at most 31; per-month day
// bounds are not separately validated.
var acquiredAtPattern = regexp.MustCompile(`^(\d{2})(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])`)

// acquiredAt parses an acquisition date from the base name prefix and
// renders it as 20YY-MM-DD. The two-digit year is unconditionally expanded
// with a 20 century prefix; no windowing. No match yields "".
func acquiredAt(uri string) string {
	m := acquiredAtPattern.FindStringSubmatch(filepath.Base(uri))
	if m == nil {
		return ""
	}
	return "20" + m[1] + "-" + m[2] + "-" + m[3]
}
