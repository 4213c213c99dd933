package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medscribe/internal/domain"
)

func TestVitals_UnmarshalMixedScalars(t *testing.T) {
	var v domain.Vitals
	err := json.Unmarshal([]byte(`{"bp":"120/80","hr":72,"temp":98.6,"weight":null}`), &v)
	require.NoError(t, err)

	assert.Equal(t, domain.Vitals{
		"bp":     "120/80",
		"hr":     "72",
		"temp":   "98.6",
		"weight": "",
	}, v)
}

func TestVitals_UnmarshalPreservesNumberNotation(t *testing.T) {
	var v domain.Vitals
	require.NoError(t, json.Unmarshal([]byte(`{"spo2":97.0}`), &v))
	assert.Equal(t, "97.0", v["spo2"])
}

func TestVitals_UnmarshalRejectsNonObject(t *testing.T) {
	var v domain.Vitals
	assert.Error(t, json.Unmarshal([]byte(`["120/80"]`), &v))
}
