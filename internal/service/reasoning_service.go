package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"medscribe/internal/domain"
	"medscribe/internal/llm"
	"medscribe/internal/port"
)

// ReasoningService runs the two analysis passes over structured records. Both
// follow the same containment shape: attempt generation, extract JSON, and on
// any internal failure return a fixed fallback payload instead of an error.
// Callers may depend on those fallback shapes for uniform error display.
type ReasoningService interface {
	Analyze(ctx context.Context, current, past *domain.MedicalRecord, sel domain.ModelSelection) domain.ReasoningResult
	CheckEligibility(ctx context.Context, record *domain.MedicalRecord, policyText string, sel domain.ModelSelection) domain.EligibilityResult
}

type reasoningService struct {
	generator port.TextGenerator
}

// NewReasoningService creates a ReasoningService implementation.
func NewReasoningService(generator port.TextGenerator) ReasoningService {
	return &reasoningService{generator: generator}
}

func (s *reasoningService) Analyze(ctx context.Context, current, past *domain.MedicalRecord, sel domain.ModelSelection) domain.ReasoningResult {
	result, err := s.tryAnalyze(ctx, current, past, sel)
	if err != nil {
		log.Printf("clinical analysis failed: %v", err)
		return domain.ReasoningResult{
			Summary: "Analysis failed",
			Alerts:  []string{},
			Trends:  []string{},
		}
	}
	return result
}

func (s *reasoningService) tryAnalyze(ctx context.Context, current, past *domain.MedicalRecord, sel domain.ModelSelection) (domain.ReasoningResult, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return domain.ReasoningResult{}, fmt.Errorf("marshaling current record: %w", err)
	}

	pastContext := "None (New Patient)"
	if past != nil {
		pastJSON, err := json.Marshal(past)
		if err != nil {
			return domain.ReasoningResult{}, fmt.Errorf("marshaling past record: %w", err)
		}
		pastContext = string(pastJSON)
	}
	userText := fmt.Sprintf("CURRENT_DATA: %s\nPAST_DATA: %s", currentJSON, pastContext)

	output := s.generator.Generate(ctx, sel, clinicalPrompt, userText)

	var result domain.ReasoningResult
	if err := llm.ExtractJSONInto(output, &result); err != nil {
		return domain.ReasoningResult{}, err
	}
	if result.Alerts == nil {
		result.Alerts = []string{}
	}
	if result.Trends == nil {
		result.Trends = []string{}
	}
	return result, nil
}

func (s *reasoningService) CheckEligibility(ctx context.Context, record *domain.MedicalRecord, policyText string, sel domain.ModelSelection) domain.EligibilityResult {
	result, err := s.tryCheckEligibility(ctx, record, policyText, sel)
	if err != nil {
		log.Printf("eligibility check failed: %v", err)
		return domain.EligibilityResult{
			Eligible:    false,
			Confidence:  nil,
			Reasoning:   fmt.Sprintf("Error: %v", err),
			MissingInfo: []string{},
		}
	}
	return result
}

func (s *reasoningService) tryCheckEligibility(ctx context.Context, record *domain.MedicalRecord, policyText string, sel domain.ModelSelection) (domain.EligibilityResult, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return domain.EligibilityResult{}, fmt.Errorf("marshaling record: %w", err)
	}

	userText := fmt.Sprintf("MEDICAL_DATA: %s\nINSURANCE_POLICY_TEXT: %s", recordJSON, truncatePolicyText(policyText))

	output := s.generator.Generate(ctx, sel, insurancePrompt, userText)

	var result domain.EligibilityResult
	if err := llm.ExtractJSONInto(output, &result); err != nil {
		return domain.EligibilityResult{}, err
	}
	if result.MissingInfo == nil {
		result.MissingInfo = []string{}
	}
	return result, nil
}
