// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biomarker-engine/internal/container"
	"github.com/pdiddy/biomarker-engine/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [report.pdf...]",
	Short: "Extract the text layer from PDF lab reports",
	Long: `Convert pipes PDF lab reports through a containerized pdftotext and
writes the plain text next to the raw files (reports/text/<name>.txt).
Without arguments every PDF under reports/raw is converted; reports with
existing text output are skipped.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("reports-dir", "reports", "base reports directory (contains raw/ and text/)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	reportsDir, _ := cmd.Flags().GetString("reports-dir")

	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = rawReportPaths(reportsDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Fprintf(os.Stderr, "no PDFs found under %s\n", filepath.Join(reportsDir, "raw"))
			return nil
		}
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	conv, err := convert.NewPdftotextConverter(rt)
	if err != nil {
		return err
	}

	result := convert.ConvertBatch(conv, paths, reportsDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d of %d reports failed conversion", result.Failed, result.Total())
	}
	return nil
}

// rawReportPaths lists the PDFs under reportsDir/raw in name order.
func rawReportPaths(reportsDir string) ([]string, error) {
	rawDir := filepath.Join(reportsDir, "raw")
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", rawDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".pdf" {
			paths = append(paths, filepath.Join(rawDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
