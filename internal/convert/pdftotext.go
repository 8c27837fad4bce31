// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/biomarker-engine/internal/container"
)

const imagePdftotext = "pdftotext:latest"

// pdftotextArgs read the PDF from stdin and write text to stdout.
var pdftotextArgs = []string{"-", "-"}

// PdftotextConverter extracts report text by piping the PDF through a
// pdftotext container image. It depends on a container.Runtime (docker or
// podman) injected at construction time.
type PdftotextConverter struct {
	runtime container.Runtime
}

// NewPdftotextConverter creates a converter that uses the given container
// runtime. It verifies that the pdftotext image exists locally before
// returning.
func NewPdftotextConverter(rt container.Runtime) (*PdftotextConverter, error) {
	if err := rt.ImageExists(imagePdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextConverter{runtime: rt}, nil
}

// Convert reads the PDF at pdfPath, pipes it through the pdftotext
// container, and returns the extracted text.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(imagePdftotext, pdftotextArgs, f, &out); err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("pdftotext produced empty output for %s", pdfPath)
	}

	return out.String(), nil
}
