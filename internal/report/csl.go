// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form, readable by Pandoc
// and reference managers.
type CSLItem struct {
	ID             string   `yaml:"id"`
	Type           string   `yaml:"type"`
	Title          string   `yaml:"title"`
	ContainerTitle string   `yaml:"container-title,omitempty"`
	Issued         *CSLDate `yaml:"issued,omitempty"`
	DOI            string   `yaml:"DOI,omitempty"`
	URL            string   `yaml:"URL,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes the distinct works in records to path as a CSL-YAML list.
// A work matched by several pairs appears once, at its first position.
func WriteCSL(path string, records []types.WorkRecord) error {
	if err := writeFile(path, func(w io.Writer) error { return FormatCSL(records, w) }); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FormatCSL encodes the distinct works in records as CSL-YAML to w.
func FormatCSL(records []types.WorkRecord, w io.Writer) error {
	items := cslItems(records)
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL-YAML: %w", err)
	}
	return nil
}

func cslItems(records []types.WorkRecord) []CSLItem {
	seen := make(map[string]bool)
	items := make([]CSLItem, 0, len(records))
	for _, r := range records {
		key := r.Work.ID
		if key == "" {
			key = "title:" + r.Work.Title
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, toCSLItem(r.Work))
	}
	return items
}

// toCSLItem converts a Work to a CSLItem. The citation key is the short
// OpenAlex ID (e.g. "W2741809807").
func toCSLItem(w types.Work) CSLItem {
	item := CSLItem{
		ID:             cslID(w.ID),
		Type:           "article-journal",
		Title:          w.Title,
		ContainerTitle: w.Venue,
		URL:            w.ID,
		DOI:            strings.TrimPrefix(w.DOI, "https://doi.org/"),
	}
	if w.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{w.Year}}}
	}
	return item
}

func cslID(openAlexID string) string {
	if i := strings.LastIndex(openAlexID, "/"); i >= 0 {
		return openAlexID[i+1:]
	}
	return openAlexID
}
