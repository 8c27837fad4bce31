// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report supplies lab-report text lines to the extraction core.
// The core only requires a sequence of raw text lines; this package
// covers the two common origins, plain-text files and positioned text
// fragments from a PDF text layer.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// fragmentDelim separates fragments joined on one visual line. Two
// spaces keep adjacent table cells from fusing into a single token.
const fragmentDelim = "  "

// yTolerance groups fragments whose vertical positions differ by no more
// than this amount onto the same visual line.
const yTolerance = 2.0

// Fragment is one positioned text run from a report page.
type Fragment struct {
	// X and Y are the fragment's page coordinates. Y increases down the
	// page; fragments sharing a Y (within tolerance) form one line.
	X, Y float64

	// Text is the fragment's content.
	Text string
}

// AssembleLines reconstructs visual lines from positioned fragments:
// fragments are grouped by vertical coordinate, ordered left to right
// within each group, and joined with the fragment delimiter. Groups are
// emitted top to bottom. Empty fragments are dropped.
func AssembleLines(frags []Fragment) []string {
	kept := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.Text) != "" {
			kept = append(kept, f)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	var lines []string
	for i := 0; i < len(kept); {
		j := i + 1
		for j < len(kept) && kept[j].Y-kept[i].Y <= yTolerance {
			j++
		}

		group := make([]Fragment, j-i)
		copy(group, kept[i:j])
		sort.SliceStable(group, func(a, b int) bool { return group[a].X < group[b].X })

		parts := make([]string, len(group))
		for k, f := range group {
			parts[k] = f.Text
		}
		lines = append(lines, strings.Join(parts, fragmentDelim))
		i = j
	}
	return lines
}

// Lines splits raw report text into lines, tolerating Windows line
// endings.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// ReadLines reads a plain-text report file and returns its lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	return Lines(string(data)), nil
}
