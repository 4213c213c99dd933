package pdfrender

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"medscribe/internal/domain"
	"medscribe/internal/port"
)

// Renderer rasterizes PDFs with poppler's pdftoppm. Only the first page is
// ever rendered; multi-page clinical context is out of scope for this
// version, so total page count is irrelevant to the output.
type Renderer struct {
	binary string
}

// New creates a Renderer using the pdftoppm binary on PATH.
func New() *Renderer {
	return &Renderer{binary: "pdftoppm"}
}

// NewWithBinary creates a Renderer using an explicit binary path (for testing).
func NewWithBinary(binary string) *Renderer {
	return &Renderer{binary: binary}
}

// RenderFirstPage converts page 1 of the PDF at pdfPath to a temporary JPEG
// and returns the JPEG path. The caller owns deletion of the returned file.
func (r *Renderer) RenderFirstPage(ctx context.Context, pdfPath string) (string, error) {
	prefix := pdfPath + "_page1"
	outPath := prefix + ".jpg"

	cmd := exec.CommandContext(ctx, r.binary,
		"-jpeg", "-f", "1", "-l", "1", "-singlefile", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: pdftoppm: %v: %s", domain.ErrRenderFailed, err, out)
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("%w: pdftoppm produced no output", domain.ErrRenderFailed)
	}
	return outPath, nil
}

var _ port.PageRenderer = (*Renderer)(nil)
