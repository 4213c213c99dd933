package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"medscribe/internal/domain"
	"medscribe/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordRepository.
func NewRecordRepo(db *sqlx.DB) port.RecordRepository {
	return &recordRepo{db: db}
}

type recordRow struct {
	ID            int64     `db:"id"`
	MRN           string    `db:"mrn"`
	EncounterDate string    `db:"encounter_date"`
	Record        []byte    `db:"record"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *recordRepo) Save(ctx context.Context, record *domain.MedicalRecord) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("recordRepo.Save: marshaling record: %w", err)
	}

	mrn := record.Patient.MRN
	if mrn == "" {
		mrn = "UNKNOWN"
	}
	date := record.Encounter.Date
	if date == "" {
		date = "UNKNOWN"
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO records (mrn, encounter_date, record, created_at) VALUES ($1, $2, $3, $4)`,
		mrn, date, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recordRepo.Save: %w", err)
	}
	return nil
}

func (r *recordRepo) GetLatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error) {
	var row recordRow
	// encounter_date is TEXT; ORDER BY is plain string comparison, so
	// unpadded dates sort lexicographically, not chronologically.
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM records WHERE mrn = $1 ORDER BY encounter_date DESC, id DESC LIMIT 1`, mrn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("recordRepo.GetLatestByMRN: %w", err)
	}
	return unmarshalRecord(row.Record)
}

func (r *recordRepo) ListByMRN(ctx context.Context, mrn string) ([]domain.MedicalRecord, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM records WHERE mrn = $1 ORDER BY encounter_date DESC, id DESC`, mrn)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.ListByMRN: %w", err)
	}

	records := make([]domain.MedicalRecord, 0, len(rows))
	for i := range rows {
		rec, err := unmarshalRecord(rows[i].Record)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func unmarshalRecord(blob []byte) (*domain.MedicalRecord, error) {
	var rec domain.MedicalRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("recordRepo: unmarshaling stored record: %w", err)
	}
	return &rec, nil
}
