// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pairs holds the fixed list of formula-name pairs the reporter counts.
package pairs

import "github.com/pdiddy/formula-cooccurrence/pkg/types"

// defaultPairs is the configured pair list, in report order.
var defaultPairs = []types.FormulaPair{
	{Left: "transverse mass", Right: "Euclidean norm (L2 norm)"},
	{Left: "Net demand for product p in country i", Right: "Net demand for product p in country i"},
	{Left: "forward-backward asymmetry", Right: "asymmetry index"},
	{Left: "bidoublet field", Right: "conjugate transpose of the unitary operator"},
	{Left: "adjoint of a product of operators", Right: "adjoint of a composition of linear operators"},
	{Left: "cross-spectrum estimator", Right: "average potential outcome estimator"},
	{Left: "d-type form factor", Right: "helpful generalized Lee bound"},
	{Left: "Polarization sum rule for W boson polarization vectors", Right: "Exchangeability condition for the error term"},
	{Left: "n-dimensional unit simplex", Right: "unit simplex in N dimensions"},
	{Left: "n-dimensional standard simplex", Right: "probability simplex"},
}

// Default returns a copy of the configured pairs so callers cannot mutate
// the shared list.
func Default() []types.FormulaPair {
	out := make([]types.FormulaPair, len(defaultPairs))
	copy(out, defaultPairs)
	return out
}
