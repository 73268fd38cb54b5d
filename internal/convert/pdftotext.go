// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF catalogs into raw course records. The PDF is
// rendered to layout-preserving text with pdftotext running in a
// container, then parsed into course blocks. Output matches the scrape
// stage's raw files so downstream stages are acquisition-agnostic.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mkealoha/uhcatalog/internal/container"
)

// defaultImage is the container image providing pdftotext.
const defaultImage = "pdftotext:latest"

// Converter renders a PDF file to text.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns its text content.
	Convert(ctx context.Context, pdfPath string) (string, error)
}

// PDFToTextConverter runs pdftotext in a container, piping the PDF in via
// stdin and reading text from stdout. Layout preservation keeps course
// blocks on their own lines.
type PDFToTextConverter struct {
	Runtime container.Runtime
	Image   string
}

// NewPDFToTextConverter selects a container runtime (by name, or
// auto-detected when name is empty) and verifies the pdftotext image is
// present.
func NewPDFToTextConverter(runtimeName, image string) (*PDFToTextConverter, error) {
	rt, err := container.RuntimeByName(runtimeName)
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = defaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, err
	}
	return &PDFToTextConverter{Runtime: rt, Image: image}, nil
}

func (c *PDFToTextConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	pdf, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer pdf.Close()

	var out bytes.Buffer
	if err := c.Runtime.Run(ctx, c.Image, []string{"-layout", "-", "-"}, pdf, &out); err != nil {
		return "", fmt.Errorf("converting %s: %w", pdfPath, err)
	}
	return out.String(), nil
}
