package service

import (
	"context"
	"io"

	"medscribe/internal/csvexport"
	"medscribe/internal/domain"
	"medscribe/internal/port"
)

// RecordService exposes the confirmed-record operations: insert after human
// review, latest-prior lookup, and patient history export.
type RecordService interface {
	Confirm(ctx context.Context, record *domain.MedicalRecord) error
	LatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error)
	ExportCSV(ctx context.Context, mrn string, w io.Writer) error
}

type recordService struct {
	repo port.RecordRepository
}

// NewRecordService creates a RecordService implementation.
func NewRecordService(repo port.RecordRepository) RecordService {
	return &recordService{repo: repo}
}

func (s *recordService) Confirm(ctx context.Context, record *domain.MedicalRecord) error {
	return s.repo.Save(ctx, record)
}

func (s *recordService) LatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error) {
	return s.repo.GetLatestByMRN(ctx, mrn)
}

func (s *recordService) ExportCSV(ctx context.Context, mrn string, w io.Writer) error {
	records, err := s.repo.ListByMRN(ctx, mrn)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	writer := csvexport.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	if err := writer.WriteRecords(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
