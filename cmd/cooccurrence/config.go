// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/formula-cooccurrence/internal/openalex"
	"github.com/pdiddy/formula-cooccurrence/internal/secrets"
	"github.com/pdiddy/formula-cooccurrence/pkg/types"
)

// DefaultMailto is sent when no contact email is configured anywhere.
const DefaultMailto = "your_email@example.com"

const (
	defaultUserAgent = "formula-cooccurrence/0.1"
	defaultInterval  = 100 * time.Millisecond
)

// Configuration keys. Each is also readable from COOCCURRENCE_<KEY>.
const (
	keyMailto    = "mailto"
	keyOutputDir = "output_dir"
	keyTimeout   = "timeout"
	keyInterval  = "interval"
	keyUserAgent = "user_agent"
	keyBaseURL   = "openalex_base_url"
	keyPerPage   = "per_page"
	keyCSL       = "csl"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyOutputDir, ".")
	v.SetDefault(keyTimeout, openalex.DefaultTimeout)
	v.SetDefault(keyInterval, defaultInterval)
	v.SetDefault(keyUserAgent, defaultUserAgent)
	v.SetDefault(keyBaseURL, openalex.DefaultBaseURL)
	v.SetDefault(keyPerPage, openalex.MaxPerPage)
}

// runConfigFrom reads the effective configuration out of v. The mailto
// value is the configured one; resolveMailto applies the argument and
// secret fallbacks.
func runConfigFrom(v *viper.Viper) types.RunConfig {
	outputDir := v.GetString(keyOutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	return types.RunConfig{
		HTTP: types.HTTPConfig{
			Timeout:   v.GetDuration(keyTimeout),
			UserAgent: v.GetString(keyUserAgent),
			Interval:  v.GetDuration(keyInterval),
		},
		OpenAlex: types.OpenAlexConfig{
			BaseURL: v.GetString(keyBaseURL),
			Mailto:  strings.TrimSpace(v.GetString(keyMailto)),
			PerPage: v.GetInt(keyPerPage),
		},
		Report: types.ReportConfig{
			OutputDir: outputDir,
			CSLPath:   v.GetString(keyCSL),
		},
	}
}

// resolveMailto picks the contact email: the positional argument if given,
// then the configured value, then the openalex-email secret, then the
// placeholder. The value is not validated.
func resolveMailto(args []string, configured string, s secrets.Secrets) string {
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}
	if configured != "" {
		return configured
	}
	if v := s.Get(secrets.OpenAlexEmail); v != "" {
		return v
	}
	return DefaultMailto
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the settings a run would use after merging defaults, the
config file, COOCCURRENCE_* environment variables, .secrets/, and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := runConfigFrom(viper.GetViper())
		cfg.OpenAlex.Mailto = resolveMailto(nil, cfg.OpenAlex.Mailto, loadedSecrets)

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		if err := enc.Encode(&cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
