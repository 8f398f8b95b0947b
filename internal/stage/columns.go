package stage

import (
	"fmt"
	"strings"
)

// Staging column vocabulary. The order of a request determines CSV header
// order; the set determines which provider sub-computations run.
const (
	ColMosaicID    = "mosaic_id"
	ColURI         = "uri"
	ColURIETag     = "uri_etag"
	ColByteSize    = "byte_size"
	ColCRS         = "crs"
	ColSRID        = "srid"
	ColPixelWidth  = "pixel_width"
	ColPixelHeight = "pixel_height"
	ColBandCount   = "band_count"
	ColDtype       = "dtype"
	ColNodata      = "nodata"
	ColFootprint   = "footprint"
	ColAcquiredAt  = "acquired_at"
	ColCreatedAt   = "created_at"
)

var allColumns = []string{
	ColMosaicID, ColURI, ColURIETag, ColByteSize, ColCRS, ColSRID,
	ColPixelWidth, ColPixelHeight, ColBandCount, ColDtype, ColNodata,
	ColFootprint, ColAcquiredAt, ColCreatedAt,
}

var columnSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(allColumns))
	for _, c := range allColumns {
		m[c] = struct{}{}
	}
	return m
}()

// DefaultColumns returns the full mosaic_stage column list in its
// canonical order.
func DefaultColumns() []string {
	out := make([]string, len(allColumns))
	copy(out, allColumns)
	return out
}

// ValidateColumns rejects names outside the vocabulary and duplicates.
func ValidateColumns(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns requested")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := columnSet[c]; !ok {
			return fmt.Errorf("unknown column %q (known: %s)", c, strings.Join(allColumns, ", "))
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// ParseColumns splits a comma-separated column spec and validates it.
func ParseColumns(spec string) ([]string, error) {
	var columns []string
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		columns = append(columns, part)
	}
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}
	return columns, nil
}
