package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"medscribe/internal/domain"
	"medscribe/internal/llm"
	"medscribe/internal/port"
)

// ExtractionService turns an uploaded document into a structured medical
// record: first-page render for PDFs, OCR over the raster image, then a
// structuring call against the caller-selected model. Single attempt,
// no retries.
type ExtractionService interface {
	ProcessDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*domain.MedicalRecord, error)
}

type extractionService struct {
	renderer  port.PageRenderer
	ocr       port.OCRClient
	generator port.TextGenerator
}

// NewExtractionService creates an ExtractionService implementation.
func NewExtractionService(renderer port.PageRenderer, ocr port.OCRClient, generator port.TextGenerator) ExtractionService {
	return &extractionService{
		renderer:  renderer,
		ocr:       ocr,
		generator: generator,
	}
}

func (s *extractionService) ProcessDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*domain.MedicalRecord, error) {
	kind, err := detectFileType(filePath)
	if err != nil {
		return nil, err
	}

	imagePath := filePath
	if kind == domain.FileTypePDF {
		tempPath, err := s.renderer.RenderFirstPage(ctx, filePath)
		if err != nil {
			return nil, err
		}
		// temp raster is removed on every exit path, success or failure
		defer func() { _ = os.Remove(tempPath) }()
		imagePath = tempPath
	}

	rawText, err := s.ocr.Transcribe(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailed, err)
	}
	log.Printf("ocr complete: %s (%d chars)", filepath.Base(filePath), len(rawText))

	output := s.generator.Generate(ctx, sel, structuringPrompt, "OCR TEXT:\n"+rawText)

	var record domain.MedicalRecord
	if err := llm.ExtractJSONInto(output, &record); err != nil {
		// The raw OCR and model text are deliberately absent from this error:
		// extracted text may contain PHI and must never reach an error surface.
		return nil, domain.ErrStructuringFailed
	}
	return &record, nil
}

// detectFileType classifies the document by extension, with a %PDF signature
// sniff so extension-less PDF uploads still get the first-page render.
func detectFileType(filePath string) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if kind, ok := domain.AllowedExtensions[ext]; ok {
		return kind, nil
	}
	if hasPDFSignature(filePath) {
		return domain.FileTypePDF, nil
	}
	return "", domain.ErrUnsupportedFileType
}

func hasPDFSignature(filePath string) bool {
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}
	return bytes.Equal(header, []byte("%PDF"))
}
