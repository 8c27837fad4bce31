// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biomarker-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/biomarker-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the biomarker-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "biomarker-engine",
	Short: "Extract and score biomarker observations from lab-report text",
	Long: `biomarker-engine turns loosely formatted lab-report text into normalized
biomarker observations, evaluates each one against sex-aware reference
rules, and produces in-range scores per category and overall.

Each stage is a subcommand: convert turns PDF reports into text, parse
extracts observations from report text, score evaluates them against the
reference dataset, reference manages the dataset itself, catalog inspects
the biomarker catalog, and records manages stored analyses.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biomarker-engine.yaml or ~/.config/biomarker-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biomarker-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biomarker-engine"))
		}
	}

	viper.SetEnvPrefix("BIOMARKER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
