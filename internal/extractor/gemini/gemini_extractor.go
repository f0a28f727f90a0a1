package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flotta/internal/config"
	"flotta/internal/extractor"
	"flotta/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	// ProviderName is the credential-store key for this provider.
	ProviderName = "gemini"
)

// Extractor implements port.VisionExtractor using Google's Gemini API.
type Extractor struct {
	creds    port.CredentialStore
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates a Gemini-based vision extractor.
func NewExtractor(cfg *config.ParserConfig, creds port.CredentialStore) *Extractor {
	return newExtractor(cfg, creds, "")
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ParserConfig, creds port.CredentialStore, endpoint string) *Extractor {
	return newExtractor(cfg, creds, endpoint)
}

func newExtractor(cfg *config.ParserConfig, creds port.CredentialStore, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Extractor{
		creds:    creds,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract sends the document to Gemini with the class-specific prompt and
// returns the decoded answer object. Temperature is pinned to 0 and the
// response mode to JSON so the model stays a transcription tool.
func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (json.RawMessage, error) {
	apiKey, err := e.creds.APIKey(ctx, ProviderName)
	if err != nil {
		return nil, err
	}

	prompt := extractor.BuildPrompt(input.Class)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.MimeType,
							"data":      input.Base64Payload,
						},
					},
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &extractor.ProviderError{
			Status:  resp.StatusCode,
			Message: providerMessage(respBody),
		}
	}

	return extractor.DecodeAnswer(respBody)
}

// providerMessage pulls the human-readable message out of Gemini's error
// payload; empty when the body is not the documented error shape.
func providerMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}
