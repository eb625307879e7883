// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cooccurrence CLI. It counts, for
// each configured pair of formula names, the OpenAlex works whose full text
// mentions both, and writes the counts and the matching works as CSV.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/formula-cooccurrence/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd runs the co-occurrence report.
var rootCmd = &cobra.Command{
	Use:   "cooccurrence [email]",
	Short: "Count full-text co-occurrence of formula-name pairs in OpenAlex",
	Long: `cooccurrence queries the OpenAlex works API once per configured pair of
formula names with the full-text expression "A" AND "B", then writes:

  cooccurrence_summary.csv  one row per pair with its co-occurrence count
  cooccurrence_works.csv    one row per matching work

The optional argument is the contact email sent to OpenAlex as mailto.
A failed query is reported and counted as zero; the run always completes.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
	RunE: runReport,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./cooccurrence.yaml or ~/.config/cooccurrence/config.yaml)")
	flags.String("output-dir", "", "directory for the CSV reports (default: current directory)")
	flags.Duration("timeout", 0, "HTTP request timeout (default 60s)")
	flags.Duration("interval", 0, "minimum gap between requests (default 100ms)")
	flags.String("csl", "", "also write the matched works as a CSL-YAML bibliography to this path")

	viper.BindPFlag(keyOutputDir, flags.Lookup("output-dir"))
	viper.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	viper.BindPFlag(keyInterval, flags.Lookup("interval"))
	viper.BindPFlag(keyCSL, flags.Lookup("csl"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cooccurrence")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cooccurrence"))
		}
	}

	loadEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadEnv makes COOCCURRENCE_* variables visible to v. A .env file in the
// working directory may carry them; the real environment wins.
func loadEnv(v *viper.Viper) {
	_ = godotenv.Load()
	v.SetEnvPrefix("COOCCURRENCE")
	v.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
