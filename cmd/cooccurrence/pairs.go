// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/formula-cooccurrence/internal/openalex"
	"github.com/pdiddy/formula-cooccurrence/internal/pairs"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the formula pairs and the query sent for each",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, p := range pairs.Default() {
			fmt.Fprintf(out, "%2d  %s\n", i+1, openalex.BuildFulltextQuery(p))
		}
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
}
