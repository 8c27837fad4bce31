// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biomarker-engine/internal/catalog"
	"github.com/pdiddy/biomarker-engine/internal/parse"
	"github.com/pdiddy/biomarker-engine/internal/report"
	"github.com/pdiddy/biomarker-engine/internal/store"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [report.txt]",
	Short: "Extract biomarker observations from report text",
	Long: `Parse reads lab-report text (a file, or stdin when the argument is "-"),
matches catalog biomarkers line by line, and emits one record per
biomarker found: value, unit as printed, category, and optional date.
The first occurrence of a biomarker in the document wins.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("catalog", "", "YAML catalog file (default: built-in catalog)")
	parseCmd.Flags().String("date", "", "observation date attached to all records (YYYY-MM-DD)")
	parseCmd.Flags().Bool("json", false, "output records as JSON")
	parseCmd.Flags().Bool("yaml", false, "output records as YAML")
	parseCmd.Flags().Bool("save", false, "persist the records as a stored analysis")
	parseCmd.Flags().String("name", "", "display name for the stored analysis (default: report filename)")
	parseCmd.Flags().String("data-dir", "data", "base data directory (contains index/)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	records, err := extractRecords(cmd, args[0])
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = args[0]
		}

		s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Save(context.Background(), name, 0, records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved analysis %s (%d records)\n", id, len(records))
	}

	return writeRecords(cmd, os.Stdout, records)
}

// extractRecords runs the extraction pipeline for one report argument.
func extractRecords(cmd *cobra.Command, arg string) ([]types.BiomarkerRecord, error) {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	entries, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	index, err := catalog.NewIndex(entries)
	if err != nil {
		return nil, err
	}

	lines, err := readReport(arg)
	if err != nil {
		return nil, err
	}

	var date *time.Time
	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing --date: %w", err)
		}
		date = &t
	}

	return parse.New(index).Records(lines, date), nil
}

// readReport returns report lines from a file path or stdin ("-").
func readReport(arg string) ([]string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return report.Lines(string(data)), nil
	}
	return report.ReadLines(arg)
}

// writeRecords renders records as a table, JSON, or YAML.
func writeRecords(cmd *cobra.Command, w io.Writer, records []types.BiomarkerRecord) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No biomarkers found.")
		return nil
	}

	fmt.Fprintf(w, "%-28s  %-12s  %-10s  %s\n", "Biomarker", "Value", "Units", "Category")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	for _, rec := range records {
		fmt.Fprintf(w, "%-28s  %-12s  %-10s  %s\n",
			rec.Biomarker, rec.Value.String(), rec.Units, rec.Category)
	}
	return nil
}
