package stage

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bluefractalfish/whirlwind/internal/raster"
	"github.com/bluefractalfish/whirlwind/pkg/logger"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// FindRasters recursively collects raster files under root, matched by
// extension (case-insensitive). Traversal order is OS directory order.
func FindRasters(root string, extensions []string) ([]string, error) {
	pattern := extensionPattern(extensions)

	var uris []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ok, _ := doublestar.Match(pattern, strings.ToLower(d.Name()))
		if ok {
			uris = append(uris, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uris, nil
}

// extensionPattern builds a doublestar base-name pattern like
// "*{.tif,.tiff}" from an extension list.
func extensionPattern(extensions []string) string {
	alts := make([]string, len(extensions))
	for i, ext := range extensions {
		alts[i] = strings.ToLower(ext)
	}
	return "*{" + strings.Join(alts, ",") + "}"
}

// RunnerOptions configures a batch extraction.
type RunnerOptions struct {
	Columns []string

	// Jobs bounds concurrent extractions. Values below 1 run sequentially.
	Jobs int

	// Progress, when non-nil, is called once per finished file with the
	// completion count, total, the uri, and the per-file error (nil on
	// success). Purely observational.
	Progress func(done, total int, uri string, err error)
}

// Run extracts the requested columns for every uri. Rasters the provider
// cannot open are logged, skipped, and counted — mirroring the scanner's
// best-effort policy — so one corrupt file never aborts the batch. Row
// order follows uri order regardless of Jobs.
func (e *Extractor) Run(ctx context.Context, uris []string, opts RunnerOptions) ([]Record, int, error) {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns()
	}

	results := make([]Record, len(uris))

	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	var mu sync.Mutex
	done := 0

	for i, uri := range uris {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rec, err := e.Extract(uri, columns)
			var openErr *raster.OpenError
			switch {
			case err == nil:
				results[i] = rec
			case errors.As(err, &openErr):
				logger.Warn("skipping unreadable raster",
					logger.String("uri", uri), logger.Err(err))
			default:
				return err
			}

			mu.Lock()
			done++
			if opts.Progress != nil {
				opts.Progress(done, len(uris), uri, err)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	rows := make([]Record, 0, len(uris))
	skipped := 0
	for _, rec := range results {
		if rec == nil {
			skipped++
			continue
		}
		rows = append(rows, rec)
	}
	return rows, skipped, nil
}
