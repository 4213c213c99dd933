package service

import (
	"context"
	"errors"
	"log"

	"medscribe/internal/domain"
	"medscribe/internal/port"
)

// AnalyzeOutput is the response payload for a full document analysis.
type AnalyzeOutput struct {
	Extracted        *domain.MedicalRecord  `json:"extracted"`
	Analysis         domain.ReasoningResult `json:"analysis"`
	HistoryAvailable bool                   `json:"history_available"`
	StorageKey       string                 `json:"storage_key,omitempty"`
}

// AnalysisService orchestrates the analyze flow: extraction, history lookup
// by MRN, then clinical reasoning against the prior visit.
type AnalysisService interface {
	AnalyzeDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*AnalyzeOutput, error)
}

type analysisService struct {
	extraction ExtractionService
	reasoning  ReasoningService
	records    port.RecordRepository
}

// NewAnalysisService creates an AnalysisService implementation.
func NewAnalysisService(extraction ExtractionService, reasoning ReasoningService, records port.RecordRepository) AnalysisService {
	return &analysisService{
		extraction: extraction,
		reasoning:  reasoning,
		records:    records,
	}
}

func (s *analysisService) AnalyzeDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*AnalyzeOutput, error) {
	record, err := s.extraction.ProcessDocument(ctx, filePath, sel)
	if err != nil {
		return nil, err
	}

	// An absent MRN means "no identifier", not an error: the analysis simply
	// runs without trend comparison.
	var past *domain.MedicalRecord
	if mrn := record.Patient.MRN; mrn != "" {
		prior, err := s.records.GetLatestByMRN(ctx, mrn)
		switch {
		case err == nil:
			past = prior
		case errors.Is(err, domain.ErrRecordNotFound):
			// new patient
		default:
			log.Printf("history lookup failed for mrn %s: %v", mrn, err)
		}
	}

	analysis := s.reasoning.Analyze(ctx, record, past, sel)

	return &AnalyzeOutput{
		Extracted:        record,
		Analysis:         analysis,
		HistoryAvailable: past != nil,
	}, nil
}
