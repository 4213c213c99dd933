package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Patient holds the demographics extracted from a document. The MRN is the
// join key for history lookup; an empty MRN means history lookup is skipped.
type Patient struct {
	FullName string `json:"full_name"`
	DOB      string `json:"dob"`
	MRN      string `json:"mrn"`
}

// Encounter describes a single visit. Date is stored and compared as a plain
// string; callers must supply zero-padded ISO-8601 dates or history ordering
// is undefined.
type Encounter struct {
	Date     string `json:"date"`
	Provider string `json:"provider"`
	Facility string `json:"facility"`
}

// Medication is one prescribed medication line.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// Vitals maps a vital-sign name to its recorded value. Models emit vital
// values as strings or bare numbers interchangeably; both decode to strings,
// with numbers keeping their source notation.
type Vitals map[string]string

func (v *Vitals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Vitals, len(raw))
	for name, value := range raw {
		switch t := value.(type) {
		case string:
			out[name] = t
		case json.Number:
			out[name] = t.String()
		case nil:
			out[name] = ""
		default:
			out[name] = fmt.Sprintf("%v", t)
		}
	}
	*v = out
	return nil
}

// Clinical holds diagnoses, medications and vitals for an encounter.
type Clinical struct {
	DiagnosisList []string     `json:"diagnosis_list"`
	Medications   []Medication `json:"medications"`
	Vitals        Vitals       `json:"vitals"`
}

// MedicalRecord is the canonical structured record produced by the extraction
// pipeline. It is a plain value tree; once produced it is only read by the
// reasoning layer.
type MedicalRecord struct {
	Patient   Patient   `json:"patient"`
	Encounter Encounter `json:"encounter"`
	Clinical  Clinical  `json:"clinical"`
}

// ReasoningResult is the clinical analysis payload. Callers may rely on this
// shape being present even when the underlying analysis fails.
type ReasoningResult struct {
	Summary string   `json:"summary"`
	Alerts  []string `json:"alerts"`
	Trends  []string `json:"trends"`
}

// EligibilityResult is the insurance eligibility payload. Confidence is nil
// when the model did not produce a usable score.
type EligibilityResult struct {
	Eligible    bool     `json:"eligible"`
	Confidence  *float64 `json:"confidence"`
	Reasoning   string   `json:"reasoning"`
	MissingInfo []string `json:"missing_info"`
}

// ModelSelection identifies the text-generation backend for one call.
// APIKey is empty for local backends.
type ModelSelection struct {
	Provider Provider
	Model    string
	APIKey   string
}
