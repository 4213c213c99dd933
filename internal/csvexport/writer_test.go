package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medscribe/internal/csvexport"
	"medscribe/internal/domain"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	records := []domain.MedicalRecord{
		{
			Patient:   domain.Patient{MRN: "M1", FullName: "Jane Doe", DOB: "1980-03-02"},
			Encounter: domain.Encounter{Date: "2024-01-15", Provider: "Dr. Smith", Facility: "General"},
			Clinical: domain.Clinical{
				DiagnosisList: []string{"Hypertension", "Type 2 Diabetes"},
				Medications: []domain.Medication{
					{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
					{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily"},
				},
				Vitals: map[string]string{"bp": "142/90", "hr": "78", "temp": "98.6", "weight": "165"},
			},
		},
		{
			Patient: domain.Patient{MRN: "M1", FullName: "Jane Doe"},
		},
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords(records))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"MRN", "Patient Name", "DOB", "Encounter Date", "Provider", "Facility",
		"Diagnoses", "Medications", "BP", "HR", "Temp", "Weight",
	}, rows[0])

	assert.Equal(t, []string{
		"M1", "Jane Doe", "1980-03-02", "2024-01-15", "Dr. Smith", "General",
		"Hypertension; Type 2 Diabetes",
		"Lisinopril 10mg daily; Metformin 500mg twice daily",
		"142/90", "78", "98.6", "165",
	}, rows[1])

	// sparse records still produce a full-width row
	assert.Len(t, rows[2], 12)
	assert.Equal(t, "M1", rows[2][0])
	assert.Equal(t, "", rows[2][3])
}

func TestWriter_BOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	_, err := buf.Write(csvexport.BOM)
	require.NoError(t, err)

	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Equal(t, byte('M'), out[3])
}
