package port

import (
	"context"
	"encoding/json"

	"flotta/internal/domain"
)

// ExtractInput carries one prepared document payload to the vision model.
type ExtractInput struct {
	Base64Payload string
	MimeType      string
	Class         domain.DocumentClass
}

// VisionExtractor abstracts the external vision-language provider. The
// returned raw message is the model's decoded answer object; it is untrusted
// and must go through normalization before use.
type VisionExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}
