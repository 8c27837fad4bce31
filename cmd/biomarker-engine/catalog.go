// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biomarker-engine/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the biomarker catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries with their aliases",
	RunE:  runCatalogList,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog (alias collisions, unknown categories)",
	Long: `Check builds the alias index and reports configuration errors: two
entries whose aliases normalize to the same text, or entries with an
unknown category. A valid catalog exits 0.`,
	RunE: runCatalogCheck,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog", "", "YAML catalog file (default: built-in catalog)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	entries, err := catalog.Load(path)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%-28s  %-14s  %s\n", e.Name, e.Category, strings.Join(e.Aliases, ", "))
	}
	return nil
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	entries, err := catalog.Load(path)
	if err != nil {
		return err
	}

	index, err := catalog.NewIndex(entries)
	if err != nil {
		return err
	}

	fmt.Printf("catalog ok: %d entries, %d aliases\n", len(entries), index.Len())
	return nil
}
