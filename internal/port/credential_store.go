package port

import "context"

// CredentialStore resolves the API key for an extraction provider.
// Implementations return domain.ErrMissingAPIKey when no key is configured;
// an empty key is never defaulted.
type CredentialStore interface {
	APIKey(ctx context.Context, provider string) (string, error)
}
