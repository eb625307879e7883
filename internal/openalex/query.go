// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "github.com/pdiddy/formula-cooccurrence/pkg/types"

// BuildFulltextQuery returns the boolean expression that requires both names
// of the pair to appear in a work's full text: "A" AND "B". The names are
// quoted verbatim; OpenAlex matches phrases case-insensitively.
func BuildFulltextQuery(p types.FormulaPair) string {
	return `"` + p.Left + `" AND "` + p.Right + `"`
}
