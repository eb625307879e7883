// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the co-occurrence reporter:
// the formula pairs being counted, the works returned by OpenAlex, and the
// rows of the two CSV reports.
package types

// FormulaPair is an ordered pair of human-readable formula names whose joint
// appearance in paper full text is being counted. Case is kept as written;
// OpenAlex full-text search is case-insensitive.
type FormulaPair struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Work is a single paper as returned by the OpenAlex works endpoint.
type Work struct {
	// ID is the OpenAlex work URL (e.g. "https://openalex.org/W2741809807").
	ID string `json:"id" yaml:"id"`

	// Title is the work's display name.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, or 0 when OpenAlex has none.
	Year int `json:"year" yaml:"year"`

	// DOI is the DOI as returned by OpenAlex, usually in
	// https://doi.org/ form. Empty when the work has no DOI.
	DOI string `json:"doi" yaml:"doi"`

	// Venue is the display name of the primary location's source.
	Venue string `json:"venue" yaml:"venue"`
}

// WorkRecord ties a matched Work to the pair whose query produced it.
// It becomes one row of the details report.
type WorkRecord struct {
	Pair FormulaPair `json:"pair" yaml:"pair"`
	Work Work        `json:"work" yaml:"work"`
}

// SummaryRecord holds the co-occurrence count for one pair. Count is the
// number of WorkRecords obtained for the pair, 0 when its query failed.
type SummaryRecord struct {
	Pair  FormulaPair `json:"pair" yaml:"pair"`
	Count int         `json:"count" yaml:"count"`
}

// SearchPage is one decoded response from the works endpoint.
type SearchPage struct {
	// Total is the match count reported by the service (meta.count). It may
	// exceed len(Works) when the matches do not fit in one page.
	Total int `json:"total" yaml:"total"`

	// Works lists the returned works in response order.
	Works []Work `json:"works" yaml:"works"`
}
