// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/formula-cooccurrence/internal/openalex"
	"github.com/pdiddy/formula-cooccurrence/internal/pairs"
	"github.com/pdiddy/formula-cooccurrence/internal/report"
	"github.com/pdiddy/formula-cooccurrence/internal/runner"
	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

func runReport(cmd *cobra.Command, args []string) error {
	cfg := runConfigFrom(viper.GetViper())
	cfg.OpenAlex.Mailto = resolveMailto(args, cfg.OpenAlex.Mailto, loadedSecrets)

	return runWith(cmd.Context(), cfg, pairs.Default(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runWith queries every pair and writes the reports. Query failures are
// reported to errw and never fail the run; only a report write error is
// returned.
func runWith(ctx context.Context, cfg types.RunConfig, ps []types.FormulaPair, out, errw io.Writer) error {
	client := openalex.NewClientFromConfig(cfg)

	result := runner.Run(ctx, client, ps, out)

	paths, err := report.Write(cfg.Report.OutputDir, result.Summary, result.Works)
	if err != nil {
		return err
	}
	if cfg.Report.CSLPath != "" {
		if err := report.WriteCSL(cfg.Report.CSLPath, result.Works); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nwrote:")
	fmt.Fprintf(out, "- %s (co-occurrence count per pair)\n", paths.Summary)
	fmt.Fprintf(out, "- %s (%d co-occurring works)\n", paths.Works, result.Total())
	if cfg.Report.CSLPath != "" {
		fmt.Fprintf(out, "- %s (CSL-YAML bibliography)\n", cfg.Report.CSLPath)
	}

	if result.HasFailures() {
		fmt.Fprintf(errw, "warning: %d of %d queries failed and were counted as 0:\n", result.Failed, len(ps))
		for _, msg := range result.Errors {
			fmt.Fprintf(errw, "  %s\n", msg)
		}
	}
	return nil
}
