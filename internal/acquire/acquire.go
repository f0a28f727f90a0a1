package acquire

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"flotta/internal/domain"
	"flotta/internal/port"
)

// Input is the raw document reference from the request body. Exactly one of
// Base64 / RemoteURL must resolve to content.
type Input struct {
	Base64       string // possibly data-URL prefixed
	RemoteURL    string // http(s):// or s3://bucket/key
	MimeHint     string
	FileNameHint string
}

// DownloadError indicates a non-2xx response while fetching the remote file.
type DownloadError struct {
	URL    string
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: HTTP %d", e.URL, e.Status)
}

var dataURLPrefix = regexp.MustCompile(`^data:[^;,]+;base64,`)

var extensionMimes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Acquirer resolves document bytes and MIME type before any expensive work.
type Acquirer struct {
	client  *http.Client
	storage port.ObjectStorage // nil when no bucket store is configured
}

// NewAcquirer creates an Acquirer. storage may be nil; s3:// URLs then fail.
func NewAcquirer(client *http.Client, storage port.ObjectStorage) *Acquirer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Acquirer{client: client, storage: storage}
}

// Resolve produces a ResolvedFile whose MimeType is guaranteed to be in the
// supported allow-list, or fails. Known-problematic formats (HEIC/HEIF) are
// rejected with a dedicated error before the generic allow-list check.
func (a *Acquirer) Resolve(ctx context.Context, in Input) (*domain.ResolvedFile, error) {
	payload, declaredType, err := a.resolvePayload(ctx, in)
	if err != nil {
		return nil, err
	}

	mimeType := resolveMimeType(in.MimeHint, declaredType, in.FileNameHint, payload)

	if isHEIC(mimeType, in.FileNameHint) {
		return nil, domain.ErrHEICNotSupported
	}
	if !domain.SupportedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w (got %s)", domain.ErrUnsupportedFormat, mimeType)
	}

	return &domain.ResolvedFile{Base64Payload: payload, MimeType: mimeType}, nil
}

// resolvePayload returns the canonical base64 payload plus any content type
// declared by the source (HTTP header or object metadata).
func (a *Acquirer) resolvePayload(ctx context.Context, in Input) (payload, declaredType string, err error) {
	if in.Base64 != "" {
		stripped := dataURLPrefix.ReplaceAllString(strings.TrimSpace(in.Base64), "")
		if stripped == "" {
			return "", "", domain.ErrEmptyPayload
		}
		return stripped, "", nil
	}

	if in.RemoteURL == "" {
		return "", "", domain.ErrMissingInput
	}

	if bucket, key, ok := splitS3URL(in.RemoteURL); ok {
		if a.storage == nil {
			return "", "", fmt.Errorf("s3 URL given but no object storage configured: %s", in.RemoteURL)
		}
		data, contentType, err := a.storage.Download(ctx, bucket, key)
		if err != nil {
			return "", "", fmt.Errorf("fetching %s: %w", in.RemoteURL, err)
		}
		if len(data) == 0 {
			return "", "", domain.ErrEmptyPayload
		}
		return base64.StdEncoding.EncodeToString(data), contentType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.RemoteURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("building download request: %w", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s: %w", in.RemoteURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &DownloadError{URL: in.RemoteURL, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading download body: %w", err)
	}
	if len(data) == 0 {
		return "", "", domain.ErrEmptyPayload
	}
	return base64.StdEncoding.EncodeToString(data), resp.Header.Get("Content-Type"), nil
}

// resolveMimeType resolves the MIME type in fixed priority order: explicit
// hint, filename extension, source-declared type, byte sniffing, and finally
// application/octet-stream (which the allow-list will reject).
func resolveMimeType(hint, declared, fileName, base64Payload string) string {
	if m := cleanMime(hint); m != "" {
		return m
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		if isHEICExt(ext) {
			// keep the HEIC signal so the dedicated check fires
			return "image/heic"
		}
		if m, ok := extensionMimes[ext]; ok {
			return m
		}
	}
	if m := cleanMime(declared); m != "" && m != "application/octet-stream" {
		return m
	}
	if raw, err := base64.StdEncoding.DecodeString(base64Payload); err == nil && len(raw) > 0 {
		return mimetype.Detect(raw).String()
	}
	return "application/octet-stream"
}

func cleanMime(m string) string {
	m = strings.TrimSpace(strings.ToLower(m))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	return m
}

func isHEIC(mimeType, fileName string) bool {
	m := strings.ToLower(mimeType)
	if strings.Contains(m, "heic") || strings.Contains(m, "heif") {
		return true
	}
	return isHEICExt(strings.ToLower(filepath.Ext(fileName)))
}

func isHEICExt(ext string) bool {
	switch ext {
	case ".heic", ".heif", ".heics", ".heifs":
		return true
	}
	return false
}

// splitS3URL parses s3://bucket/key URLs.
func splitS3URL(u string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(u, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
