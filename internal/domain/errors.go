package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoJSONObject        = errors.New("no JSON object found in model output")
	ErrOCRFailed           = errors.New("ocr transcription failed")
	ErrRenderFailed        = errors.New("page rendering failed")
	ErrStructuringFailed   = errors.New("structuring produced no valid record")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
