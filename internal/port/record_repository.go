package port

import (
	"context"

	"medscribe/internal/domain"
)

// RecordRepository defines the history store contract. Every Save is a fresh
// insert; duplicate (mrn, date) rows are allowed and simply shadow each other
// under GetLatestByMRN's ordering rule. Encounter dates are compared as plain
// strings, not calendar dates.
type RecordRepository interface {
	Save(ctx context.Context, record *domain.MedicalRecord) error
	GetLatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error)
	ListByMRN(ctx context.Context, mrn string) ([]domain.MedicalRecord, error)
}
