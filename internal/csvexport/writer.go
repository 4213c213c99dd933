package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"medscribe/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"MRN",
	"Patient Name",
	"DOB",
	"Encounter Date",
	"Provider",
	"Facility",
	"Diagnoses",
	"Medications",
	"BP",
	"HR",
	"Temp",
	"Weight",
}

// Writer wraps csv.Writer for exporting medical records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.MedicalRecord) error {
	for i := range records {
		row := recordToRow(&records[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error reports any error that occurred during a previous write or flush.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(r *domain.MedicalRecord) []string {
	meds := make([]string, 0, len(r.Clinical.Medications))
	for _, m := range r.Clinical.Medications {
		meds = append(meds, strings.TrimSpace(fmt.Sprintf("%s %s %s", m.Name, m.Dosage, m.Frequency)))
	}

	return []string{
		r.Patient.MRN,
		r.Patient.FullName,
		r.Patient.DOB,
		r.Encounter.Date,
		r.Encounter.Provider,
		r.Encounter.Facility,
		strings.Join(r.Clinical.DiagnosisList, "; "),
		strings.Join(meds, "; "),
		r.Clinical.Vitals["bp"],
		r.Clinical.Vitals["hr"],
		r.Clinical.Vitals["temp"],
		r.Clinical.Vitals["weight"],
	}
}
