package port

import (
	"context"

	"medscribe/internal/domain"
)

// TextGenerator abstracts provider-selectable text generation. Generate never
// fails: transport, auth and unsupported-provider problems all come back as
// descriptive text so callers can surface a single opaque string. A failure
// string simply fails JSON extraction downstream, which is the intended
// degradation path.
type TextGenerator interface {
	Generate(ctx context.Context, sel domain.ModelSelection, systemPrompt, userText string) string
}

// OCRClient abstracts the fixed OCR backend used by the extraction pipeline.
// Unlike structuring, the OCR model is not selectable per request.
type OCRClient interface {
	Transcribe(ctx context.Context, imagePath string) (string, error)
}

// PageRenderer renders the first page of a paginated document to a raster
// image and returns the path of the temporary file it created. The caller
// owns cleanup of that file.
type PageRenderer interface {
	RenderFirstPage(ctx context.Context, pdfPath string) (string, error)
}
