package extractor

import "fmt"

// ProviderError indicates a non-2xx response from the vision provider. The
// message comes from the provider's own error payload when present.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider error: HTTP %d", e.Status)
}
