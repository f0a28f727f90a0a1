package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flotta/internal/domain"
)

func TestDecodeAnswer_CandidateText(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"{\"litriTotali\":100}"}]}}]}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"litriTotali":100}`, string(got))
}

func TestDecodeAnswer_StripsMarkdownFences(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"` + "```json\\n{\\\"valuta\\\":\\\"EUR\\\"}\\n```" + `"}]}}]}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valuta":"EUR"}`, string(got))
}

func TestDecodeAnswer_FunctionCallArgs(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"functionCall":{"name":"emit","args":{"righe":[]}}}]}}]}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"righe":[]}`, string(got))
}

func TestDecodeAnswer_StructuredResponse(t *testing.T) {
	body := []byte(`{"candidates":[],"structuredResponse":{"tipoDocumento":"fattura"}}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tipoDocumento":"fattura"}`, string(got))
}

func TestDecodeAnswer_TextWinsOverFunctionCall(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[
		{"text":"{\"from\":\"text\"}"},
		{"functionCall":{"name":"emit","args":{"from":"call"}}}
	]}}]}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"text"}`, string(got))
}

func TestDecodeAnswer_BlankTextFallsThrough(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[
		{"text":"   "},
		{"functionCall":{"name":"emit","args":{"from":"call"}}}
	]}}]}`)
	got, err := DecodeAnswer(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"call"}`, string(got))
}

func TestDecodeAnswer_EmptyEnvelope(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`,
		`{"structuredResponse":null}`,
	} {
		_, err := DecodeAnswer([]byte(body))
		assert.ErrorIs(t, err, domain.ErrEmptyModelAnswer, "body %s", body)
	}
}

func TestDecodeAnswer_InvalidJSONAnswer(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"the total is 100 liters"}]}}]}`)
	_, err := DecodeAnswer(body)
	assert.ErrorIs(t, err, domain.ErrInvalidModelJSON)
	assert.ErrorContains(t, err, "the total is 100 liters")
}

func TestDecodeAnswer_MalformedEnvelope(t *testing.T) {
	_, err := DecodeAnswer([]byte(`not json at all`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "envelope")
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"```json{\"a\":1}```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"":                        "",
	}
	for input, want := range cases {
		assert.Equal(t, want, StripFences(input), "input %q", input)
	}
}
