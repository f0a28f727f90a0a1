package domain

import "errors"

var (
	ErrMissingInput      = errors.New("either fileUrl or fileBase64 is required")
	ErrEmptyPayload      = errors.New("file payload is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format; allowed: pdf, jpeg, png, webp")
	ErrHEICNotSupported  = errors.New("HEIC/HEIF images are not supported; convert the photo to JPEG or PNG first")
	ErrUnreadableImage   = errors.New("image could not be decoded")
	ErrEmptyModelAnswer  = errors.New("model returned no answer")
	ErrInvalidModelJSON  = errors.New("model answer is not valid JSON")
	ErrMissingAPIKey     = errors.New("no API key configured for the extraction provider")
)
