/*
Copyright © 2025 Blue Fractal Fish
*/
package cmd

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

// progressPrinter writes single-line carriage-return progress to a
// terminal. When the writer is not a terminal (piped stderr, tests) it
// stays silent so ticks never pollute captured output.
type progressPrinter struct {
	w      io.Writer
	active bool
	wrote  bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	active := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		active = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{w: w, active: active}
}

func (p *progressPrinter) printf(format string, args ...interface{}) {
	if !p.active {
		return
	}
	fmt.Fprintf(p.w, "\r"+format, args...)
	p.wrote = true
}

// Done terminates the progress line so subsequent output starts clean.
func (p *progressPrinter) Done() {
	if p.active && p.wrote {
		fmt.Fprintln(p.w)
	}
}

type scanProgress struct {
	*progressPrinter
}

func newScanProgress(w io.Writer) *scanProgress {
	return &scanProgress{progressPrinter: newProgressPrinter(w)}
}

// Tick receives the running directory count, once per directory visited.
func (p *scanProgress) Tick(numDirs int) {
	p.printf("scanning... %d directories", numDirs)
}

type stageProgress struct {
	*progressPrinter
}

func newStageProgress(w io.Writer) *stageProgress {
	return &stageProgress{progressPrinter: newProgressPrinter(w)}
}

// Tick receives per-file completion updates from the extraction runner.
func (p *stageProgress) Tick(done, total int, uri string, err error) {
	p.printf("staging... %d/%d rasters", done, total)
}
