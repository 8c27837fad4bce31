// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biomarker-engine/internal/reference"
	"github.com/pdiddy/biomarker-engine/internal/secrets"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage the reference rule dataset (fetch, show)",
	Long: `Reference manages the versioned reference dataset: fetch downloads and
validates it from the remote location and persists it locally; show
summarizes the cached copy.`,
}

var referenceFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and cache the reference dataset",
	RunE:  runReferenceFetch,
}

var referenceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the locally cached reference dataset",
	RunE:  runReferenceShow,
}

func init() {
	referenceCmd.PersistentFlags().String("reference-url", "", "remote reference dataset URL")
	referenceCmd.PersistentFlags().String("cache-dir", "data/reference", "directory for the cached dataset")
	referenceCmd.PersistentFlags().String("api-key", "", "bearer token for the dataset endpoint")

	referenceCmd.AddCommand(referenceFetchCmd)
	referenceCmd.AddCommand(referenceShowCmd)
	rootCmd.AddCommand(referenceCmd)
}

// referenceConfig assembles the loader configuration from flags and
// loaded secrets.
func referenceConfig(cmd *cobra.Command) types.ReferenceConfig {
	url, _ := cmd.Flags().GetString("reference-url")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	apiKey, _ := cmd.Flags().GetString("api-key")

	return types.ReferenceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "biomarker-engine/" + version,
		},
		URL:      url,
		CacheDir: cacheDir,
		APIKey:   secrets.Value(loadedSecrets, "reference-api-key", apiKey),
	}
}

func runReferenceFetch(cmd *cobra.Command, args []string) error {
	cfg := referenceConfig(cmd)
	if cfg.URL == "" {
		return fmt.Errorf("--reference-url required")
	}

	ds, err := reference.NewLoader(cfg).Fetch(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("fetched reference dataset: %s\n", reference.Describe(ds))
	return nil
}

func runReferenceShow(cmd *cobra.Command, args []string) error {
	cfg := referenceConfig(cmd)
	ds, err := reference.NewLoader(cfg).Load(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("reference dataset: %s\n", reference.Describe(ds))
	for _, entry := range ds.Biomarkers {
		fmt.Printf("  %-28s  %-14s  %s\n", entry.ID, entry.Category, entry.Unit)
	}
	return nil
}
