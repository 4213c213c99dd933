package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"medscribe/internal/domain"
)

// ExtractJSONObject recovers the first syntactically plausible JSON object
// embedded in raw model output. Code-fence markers (with or without a
// language tag) are stripped first, then the span from the first '{' to the
// last '}' is parsed. Multiple independent objects are not supported: only
// that single span is attempted, so trailing commentary containing stray
// braces can corrupt extraction. Known limitation, kept deliberately.
func ExtractJSONObject(raw string) (json.RawMessage, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no object delimiters", domain.ErrNoJSONObject)
	}

	candidate := []byte(cleaned[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("%w: candidate span is not valid JSON", domain.ErrNoJSONObject)
	}
	return json.RawMessage(candidate), nil
}

// ExtractJSONInto recovers a JSON object from raw model output and unmarshals
// it into v. Missing fields are left at their zero values; extraction is
// lenient, not schema validation.
func ExtractJSONInto(raw string, v interface{}) error {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(obj, v); err != nil {
		return fmt.Errorf("%w: object does not match target shape", domain.ErrNoJSONObject)
	}
	return nil
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
