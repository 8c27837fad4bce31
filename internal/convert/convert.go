// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF lab reports into plain text with pluggable
// backends. The extraction engine only consumes text lines; this package
// produces the text files it reads.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// textDir is the subdirectory under the reports base for text output.
const textDir = "text"

// Converter extracts the text layer of a PDF file. Backends differ in
// how they run the extraction (container image, local binary).
type Converter interface {
	// Convert reads a PDF at pdfPath and returns its plain text.
	Convert(pdfPath string) (string, error)
}

// Status is the outcome of converting one report.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of reports processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any reports failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertReport converts a single PDF report to plain text under
// reportsDir/text, keyed by the PDF's base name. An existing text file is
// left alone and reported as skipped, so re-running a batch only touches
// new reports.
func ConvertReport(c Converter, pdfPath, reportsDir string, w io.Writer) Status {
	outDir := filepath.Join(reportsDir, textDir)
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	txtPath := filepath.Join(outDir, base+".txt")

	if _, err := os.Stat(txtPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	text, err := c.Convert(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusDone
}

// ConvertBatch processes PDF paths through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, pdfPaths []string, reportsDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertReport(c, p, reportsDir, w) {
		case StatusDone:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// TextPath returns the text output path a PDF converts to.
func TextPath(pdfPath, reportsDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(reportsDir, textDir, base+".txt")
}
