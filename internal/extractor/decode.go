package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"flotta/internal/domain"
)

// Envelope models the provider's HTTP response. Depending on provider
// configuration and version the answer surfaces as plain candidate text, as
// function-call arguments, or as a structured-response field; a rigid
// single-path reader breaks silently on drift, so every shape is declared
// here and probed in order.
type Envelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text         string `json:"text"`
				FunctionCall *struct {
					Name string          `json:"name"`
					Args json.RawMessage `json:"args"`
				} `json:"functionCall"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	StructuredResponse json.RawMessage `json:"structuredResponse"`
}

// rawAnswer is a decoded answer before JSON validation: loose text or an
// already-parsed object, never both.
type rawAnswer struct {
	text   string
	object json.RawMessage
}

// answerExtractors are tried in order; the first that yields a payload wins.
var answerExtractors = []func(*Envelope) (rawAnswer, bool){
	extractCandidateText,
	extractFunctionCallArgs,
	extractStructuredResponse,
}

// DecodeAnswer extracts the model's answer object from the provider's raw
// HTTP response body. It fails with domain.ErrEmptyModelAnswer when no shape
// yields a payload and domain.ErrInvalidModelJSON when a textual answer does
// not parse as JSON after fence stripping.
func DecodeAnswer(body []byte) (json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding provider envelope: %w", err)
	}

	for _, extract := range answerExtractors {
		answer, ok := extract(&env)
		if !ok {
			continue
		}
		if answer.object != nil {
			return answer.object, nil
		}
		text := StripFences(answer.text)
		if text == "" {
			continue
		}
		if !json.Valid([]byte(text)) {
			return nil, fmt.Errorf("%w (raw: %s)", domain.ErrInvalidModelJSON, truncate(text, 200))
		}
		return json.RawMessage(text), nil
	}

	return nil, domain.ErrEmptyModelAnswer
}

func extractCandidateText(env *Envelope) (rawAnswer, bool) {
	for _, cand := range env.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return rawAnswer{text: part.Text}, true
			}
		}
	}
	return rawAnswer{}, false
}

func extractFunctionCallArgs(env *Envelope) (rawAnswer, bool) {
	for _, cand := range env.Candidates {
		for _, part := range cand.Content.Parts {
			if part.FunctionCall != nil && len(part.FunctionCall.Args) > 0 {
				return rawAnswer{object: part.FunctionCall.Args}, true
			}
		}
	}
	return rawAnswer{}, false
}

func extractStructuredResponse(env *Envelope) (rawAnswer, bool) {
	if len(env.StructuredResponse) > 0 && string(env.StructuredResponse) != "null" {
		return rawAnswer{object: env.StructuredResponse}, true
	}
	return rawAnswer{}, false
}

// StripFences removes leading/trailing markdown code fences (```json / ```)
// around a textual answer.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
