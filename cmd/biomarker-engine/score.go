// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biomarker-engine/internal/reference"
	"github.com/pdiddy/biomarker-engine/internal/scoring"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score [report.txt]",
	Short: "Score extracted observations against the reference dataset",
	Long: `Score extracts biomarker records from report text, pairs them with the
loaded reference dataset to determine each biomarker's qualitative level,
and aggregates in-range scores per category and overall. Biomarkers
without a reference entry score the neutral 1.0.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("catalog", "", "YAML catalog file (default: built-in catalog)")
	scoreCmd.Flags().String("date", "", "observation date attached to all records (YYYY-MM-DD)")
	scoreCmd.Flags().String("sex", "", "sex variant for reference rules: male or female")
	scoreCmd.Flags().String("reference-file", "", "local reference dataset JSON (skips fetch/cache)")
	scoreCmd.Flags().String("reference-url", "", "remote reference dataset URL")
	scoreCmd.Flags().String("cache-dir", "data/reference", "directory for the cached dataset")
	scoreCmd.Flags().Bool("json", false, "output the score report as JSON")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	sexFlag, _ := cmd.Flags().GetString("sex")
	sex, err := parseSex(sexFlag)
	if err != nil {
		return err
	}

	records, err := extractRecords(cmd, args[0])
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	rows := scoring.RowsFromRecords(records, ds, sex)
	rep := scoring.ComputeScores(rows)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Printf("%-18s  %s\n", "Category", "Score")
	fmt.Println(strings.Repeat("-", 26))
	for _, cs := range rep.Categories {
		fmt.Printf("%-18s  %.2f\n", cs.Category, cs.Score)
	}
	fmt.Println(strings.Repeat("-", 26))
	fmt.Printf("%-18s  %.2f\n", "overall", rep.Overall)
	return nil
}

// loadDataset resolves the reference dataset from a local file or the
// remote location with its cache.
func loadDataset(cmd *cobra.Command) (*types.ReferenceDataset, error) {
	if path, _ := cmd.Flags().GetString("reference-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading reference dataset %s: %w", path, err)
		}
		return reference.Parse(data)
	}

	cfg := referenceConfig(cmd)
	if cfg.URL == "" {
		return nil, fmt.Errorf("reference dataset required: provide --reference-file or --reference-url")
	}
	return reference.NewLoader(cfg).Load(context.Background())
}

func parseSex(s string) (types.Sex, error) {
	switch strings.ToLower(s) {
	case "":
		return types.SexUnspecified, nil
	case "male", "m":
		return types.SexMale, nil
	case "female", "f":
		return types.SexFemale, nil
	}
	return "", fmt.Errorf("invalid --sex %q: use male or female", s)
}
