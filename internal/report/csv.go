// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the co-occurrence results to disk: the summary and
// works CSV files, and an optional CSL-YAML bibliography.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

const (
	// SummaryFile holds one row per formula pair.
	SummaryFile = "cooccurrence_summary.csv"

	// WorksFile holds one row per matched work.
	WorksFile = "cooccurrence_works.csv"
)

var (
	summaryHeader = []string{"pair_left", "pair_right", "cooccurrence_count"}
	worksHeader   = []string{"pair_left", "pair_right", "work_id", "title", "year", "doi", "venue"}
)

// Paths lists the files written by Write.
type Paths struct {
	Summary string
	Works   string
}

// Write writes the summary file and then the works file into dir,
// replacing any earlier files of the same names.
func Write(dir string, summary []types.SummaryRecord, works []types.WorkRecord) (Paths, error) {
	paths := Paths{
		Summary: filepath.Join(dir, SummaryFile),
		Works:   filepath.Join(dir, WorksFile),
	}
	if err := WriteSummary(paths.Summary, summary); err != nil {
		return paths, err
	}
	if err := WriteWorks(paths.Works, works); err != nil {
		return paths, err
	}
	return paths, nil
}

// WriteSummary writes the per-pair counts to path.
func WriteSummary(path string, records []types.SummaryRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, summaryHeader)
	for _, r := range records {
		rows = append(rows, []string{r.Pair.Left, r.Pair.Right, strconv.Itoa(r.Count)})
	}
	if err := writeFile(path, func(w io.Writer) error { return writeCSV(w, rows) }); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteWorks writes one row per matched work to path. An empty slice
// produces a header-only file.
func WriteWorks(path string, records []types.WorkRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, worksHeader)
	for _, r := range records {
		rows = append(rows, []string{
			r.Pair.Left,
			r.Pair.Right,
			r.Work.ID,
			r.Work.Title,
			formatYear(r.Work.Year),
			r.Work.DOI,
			r.Work.Venue,
		})
	}
	if err := writeFile(path, func(w io.Writer) error { return writeCSV(w, rows) }); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("encoding CSV: %w", err)
	}
	return nil
}

func formatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// writeFile streams content into a temp file next to path and renames it
// into place on success, so a reader never sees a half-written report.
func writeFile(path string, content func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := content(tmpFile)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	// CreateTemp uses 0600; reports are meant to be shared.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
