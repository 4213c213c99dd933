package service

import "unicode/utf8"

// policyTextPlaceholder is substituted when a policy document cannot be
// decoded as text. The reasoning engine treats it as ordinary policy input;
// no OCR is attempted for policy documents.
const policyTextPlaceholder = "Binary policy document - text could not be decoded"

// DecodePolicyText returns the policy document's UTF-8 text, or the fixed
// placeholder when the bytes are not valid UTF-8.
func DecodePolicyText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return policyTextPlaceholder
}
