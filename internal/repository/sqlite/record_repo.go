// Package sqlite provides an embedded history store for single-node
// deployments. It shares the RecordRepository contract with the postgres
// implementation, including the plain-string encounter-date ordering.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"medscribe/internal/domain"
	"medscribe/internal/port"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	mrn TEXT NOT NULL,
	encounter_date TEXT NOT NULL,
	record TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_mrn_date ON records (mrn, encounter_date);`

type recordRepo struct {
	db *sqlx.DB
}

// NewDB opens (and initializes) the SQLite database at path.
func NewDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initializing sqlite schema: %w", err)
	}
	return db, nil
}

// NewRecordRepo creates a new SQLite-backed RecordRepository.
func NewRecordRepo(db *sqlx.DB) port.RecordRepository {
	return &recordRepo{db: db}
}

type recordRow struct {
	ID            int64     `db:"id"`
	MRN           string    `db:"mrn"`
	EncounterDate string    `db:"encounter_date"`
	Record        string    `db:"record"`
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
		`INSERT INTO records (mrn, encounter_date, record, created_at) VALUES (?, ?, ?, ?)`,
		mrn, date, string(blob), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recordRepo.Save: %w", err)
	}
	return nil
}

func (r *recordRepo) GetLatestByMRN(ctx context.Context, mrn string) (*domain.MedicalRecord, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM records WHERE mrn = ? ORDER BY encounter_date DESC, id DESC LIMIT 1`, mrn)
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
		`SELECT * FROM records WHERE mrn = ? ORDER BY encounter_date DESC, id DESC`, mrn)
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

func unmarshalRecord(blob string) (*domain.MedicalRecord, error) {
	var rec domain.MedicalRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, fmt.Errorf("recordRepo: unmarshaling stored record: %w", err)
	}
	return &rec, nil
}
