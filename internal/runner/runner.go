// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner queries each formula pair in turn and accumulates the
// summary and detail rows for the co-occurrence reports.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/formula-cooccurrence/internal/openalex"
	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

// Searcher runs one full-text query against the remote service.
// *openalex.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (types.SearchPage, error)
}

// Result holds the outcome of a run. Summary has exactly one record per
// input pair, in input order. Works is grouped by pair in the same order,
// each group in the service's response order.
type Result struct {
	Summary []types.SummaryRecord
	Works   []types.WorkRecord
	Failed  int
	Errors  []string
}

// HasFailures reports whether any pair's query failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Total returns the number of matched works across all pairs.
func (r Result) Total() int {
	return len(r.Works)
}

// Run queries each pair sequentially, printing per-pair progress to w.
// A failed query is reported to w and recorded as a zero count; the run
// always continues with the next pair.
func Run(ctx context.Context, s Searcher, pairs []types.FormulaPair, w io.Writer) Result {
	result := Result{
		Summary: make([]types.SummaryRecord, 0, len(pairs)),
	}

	for i, pair := range pairs {
		fmt.Fprintf(w, "[%d/%d] query: %s  +  %s\n", i+1, len(pairs), pair.Left, pair.Right)

		records, err := queryPair(ctx, s, pair, w)
		if err != nil {
			fmt.Fprintf(w, "  query failed: %v\n", err)
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("pair %d (%s + %s): %v", i+1, pair.Left, pair.Right, err))
			records = nil
		}

		result.Summary = append(result.Summary, types.SummaryRecord{
			Pair:  pair,
			Count: len(records),
		})
		result.Works = append(result.Works, records...)
		fmt.Fprintf(w, "  co-occurring works: %d\n", len(records))
	}

	return result
}

// queryPair issues the single search for pair and maps the page to records.
func queryPair(ctx context.Context, s Searcher, pair types.FormulaPair, w io.Writer) ([]types.WorkRecord, error) {
	page, err := s.Search(ctx, openalex.BuildFulltextQuery(pair))
	if err != nil {
		return nil, err
	}

	if page.Total > len(page.Works) {
		fmt.Fprintf(w, "  warning: %d matches reported, only the first %d were returned\n",
			page.Total, len(page.Works))
	}

	records := make([]types.WorkRecord, len(page.Works))
	for i, work := range page.Works {
		records[i] = types.WorkRecord{Pair: pair, Work: work}
	}
	return records, nil
}
