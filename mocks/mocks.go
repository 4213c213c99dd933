// Package mocks provides hand-written testify mocks for the port and
// service interfaces.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"medscribe/internal/domain"
	"medscribe/internal/service"
)

// MockTextGenerator is a mock implementation of port.TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, sel domain.ModelSelection, systemPrompt, userText string) string {
	args := m.Called(ctx, sel, systemPrompt, userText)
	return args.String(0)
}

// MockOCRClient is a mock implementation of port.OCRClient.
type MockOCRClient struct {
	mock.Mock
}

func (m *MockOCRClient) Transcribe(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}

// MockPageRenderer is a mock implementation of port.PageRenderer.
type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) RenderFirstPage(ctx context.Context, pdfPath string) (string, error) {
	args := m.Called(ctx, pdfPath)
	return args.String(0), args.Error(1)
}

// MockRecordRepo is a mock implementation of port.RecordRepository.
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Save(ctx context.Context, record *domain.MedicalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepo) GetLatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepo) ListByMRN(ctx context.Context, mrn string) ([]domain.MedicalRecord, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MedicalRecord), args.Error(1)
}

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ProcessDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, filePath, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

// MockReasoningService is a mock implementation of service.ReasoningService.
type MockReasoningService struct {
	mock.Mock
}

func (m *MockReasoningService) Analyze(ctx context.Context, current, past *domain.MedicalRecord, sel domain.ModelSelection) domain.ReasoningResult {
	args := m.Called(ctx, current, past, sel)
	return args.Get(0).(domain.ReasoningResult)
}

func (m *MockReasoningService) CheckEligibility(ctx context.Context, record *domain.MedicalRecord, policyText string, sel domain.ModelSelection) domain.EligibilityResult {
	args := m.Called(ctx, record, policyText, sel)
	return args.Get(0).(domain.EligibilityResult)
}

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzeDocument(ctx context.Context, filePath string, sel domain.ModelSelection) (*service.AnalyzeOutput, error) {
	args := m.Called(ctx, filePath, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeOutput), args.Error(1)
}

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Confirm(ctx context.Context, record *domain.MedicalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordService) LatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordService) ExportCSV(ctx context.Context, mrn string, w io.Writer) error {
	args := m.Called(ctx, mrn, w)
	return args.Error(0)
}
