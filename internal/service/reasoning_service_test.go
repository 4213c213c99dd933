package service_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medscribe/internal/domain"
	"medscribe/internal/service"
	"medscribe/mocks"
)

func sampleRecord() *domain.MedicalRecord {
	return &domain.MedicalRecord{
		Patient:   domain.Patient{FullName: "Jane Doe", DOB: "1980-03-02", MRN: "M1"},
		Encounter: domain.Encounter{Date: "2024-01-15", Provider: "Dr. Smith", Facility: "General"},
		Clinical: domain.Clinical{
			DiagnosisList: []string{"Hypertension"},
			Medications:   []domain.Medication{{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"}},
			Vitals:        map[string]string{"bp": "142/90"},
		},
	}
}

func TestAnalyze_Success(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return("```json\n{\"summary\":\"BP trending up\",\"alerts\":[\"hypertensive\"],\"trends\":[\"bp rising\"]}\n```")

	svc := service.NewReasoningService(generator)

	result := svc.Analyze(context.Background(), sampleRecord(), sampleRecord(), testSelection)
	assert.Equal(t, "BP trending up", result.Summary)
	assert.Equal(t, []string{"hypertensive"}, result.Alerts)
	assert.Equal(t, []string{"bp rising"}, result.Trends)
}

func TestAnalyze_NilPastUsesNewPatientContext(t *testing.T) {
	var captured string
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(3) }).
		Return(`{"summary":"ok","alerts":[],"trends":[]}`)

	svc := service.NewReasoningService(generator)

	result := svc.Analyze(context.Background(), sampleRecord(), nil, testSelection)
	assert.Equal(t, "ok", result.Summary)
	assert.Contains(t, captured, "PAST_DATA: None (New Patient)")
}

func TestAnalyze_FallbackOnUnparseableOutput(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return("I could not analyze this record.")

	svc := service.NewReasoningService(generator)

	result := svc.Analyze(context.Background(), sampleRecord(), nil, testSelection)
	assert.Equal(t, domain.ReasoningResult{
		Summary: "Analysis failed",
		Alerts:  []string{},
		Trends:  []string{},
	}, result)
}

func TestAnalyze_NormalizesMissingArrays(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return(`{"summary":"stable"}`)

	svc := service.NewReasoningService(generator)

	result := svc.Analyze(context.Background(), sampleRecord(), nil, testSelection)
	assert.Equal(t, "stable", result.Summary)
	assert.NotNil(t, result.Alerts)
	assert.NotNil(t, result.Trends)
	assert.Empty(t, result.Alerts)
	assert.Empty(t, result.Trends)
}

func TestCheckEligibility_Success(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return(`{"eligible":true,"confidence":0.85,"reasoning":"Covered under section 4","missing_info":[]}`)

	svc := service.NewReasoningService(generator)

	result := svc.CheckEligibility(context.Background(), sampleRecord(), "policy text", testSelection)
	assert.True(t, result.Eligible)
	require.NotNil(t, result.Confidence)
	assert.InDelta(t, 0.85, *result.Confidence, 0.0001)
	assert.Equal(t, "Covered under section 4", result.Reasoning)
	assert.Empty(t, result.MissingInfo)
}

func TestCheckEligibility_TruncatesLongPolicyText(t *testing.T) {
	longPolicy := strings.Repeat("a", 4000) + "OVERFLOW-MARKER"

	var captured string
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(3) }).
		Return(`{"eligible":false,"confidence":null,"reasoning":"n/a","missing_info":[]}`)

	svc := service.NewReasoningService(generator)

	_ = svc.CheckEligibility(context.Background(), sampleRecord(), longPolicy, testSelection)
	assert.NotContains(t, captured, "OVERFLOW-MARKER", "policy text past the cap must not reach the prompt")
	assert.Contains(t, captured, "INSURANCE_POLICY_TEXT: "+strings.Repeat("a", 4000))
}

func TestCheckEligibility_TruncationCountsCharactersNotBytes(t *testing.T) {
	// 4000 two-byte runes; a byte-based cut would keep only half of them
	longPolicy := strings.Repeat("é", 4000) + "OVERFLOW-MARKER"

	var captured string
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(3) }).
		Return(`{"eligible":false,"confidence":null,"reasoning":"n/a","missing_info":[]}`)

	svc := service.NewReasoningService(generator)

	_ = svc.CheckEligibility(context.Background(), sampleRecord(), longPolicy, testSelection)
	assert.NotContains(t, captured, "OVERFLOW-MARKER")
	assert.Contains(t, captured, "INSURANCE_POLICY_TEXT: "+strings.Repeat("é", 4000))
	assert.True(t, utf8.ValidString(captured), "truncation must not split a rune")
}

func TestCheckEligibility_FallbackOnUnparseableOutput(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return("no json here")

	svc := service.NewReasoningService(generator)

	result := svc.CheckEligibility(context.Background(), sampleRecord(), "policy", testSelection)
	assert.False(t, result.Eligible)
	assert.Nil(t, result.Confidence)
	assert.True(t, strings.HasPrefix(result.Reasoning, "Error: "))
	assert.NotNil(t, result.MissingInfo)
	assert.Empty(t, result.MissingInfo)
}

func TestCheckEligibility_NullConfidencePreserved(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, testSelection, mock.Anything, mock.Anything).
		Return(`{"eligible":false,"confidence":null,"reasoning":"insufficient data","missing_info":["policy number"]}`)

	svc := service.NewReasoningService(generator)

	result := svc.CheckEligibility(context.Background(), sampleRecord(), "policy", testSelection)
	assert.False(t, result.Eligible)
	assert.Nil(t, result.Confidence)
	assert.Equal(t, []string{"policy number"}, result.MissingInfo)
}
