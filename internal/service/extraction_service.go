package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"flotta/internal/acquire"
	"flotta/internal/domain"
	"flotta/internal/normalize"
	"flotta/internal/port"
	"flotta/internal/preprocess"
)

// ExtractionService runs the document-extraction pipeline. Each call is a
// single linear chain (acquire → preprocess → invoke → decode → normalize)
// with no retries and no state shared between requests; a failure at any
// stage surfaces immediately.
type ExtractionService interface {
	ExtractDocument(ctx context.Context, in acquire.Input) (*domain.NormalizedDocument, error)
	ExtractLogbook(ctx context.Context, fileURL string) (*domain.LogbookExtractionResult, error)
}

type extractionService struct {
	acquirer  *acquire.Acquirer
	prep      *preprocess.Preprocessor
	extractor port.VisionExtractor
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(
	acquirer *acquire.Acquirer,
	prep *preprocess.Preprocessor,
	extractor port.VisionExtractor,
) ExtractionService {
	return &extractionService{
		acquirer:  acquirer,
		prep:      prep,
		extractor: extractor,
	}
}

func (s *extractionService) ExtractDocument(ctx context.Context, in acquire.Input) (*domain.NormalizedDocument, error) {
	file, err := s.acquirer.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	raw, err := s.extractor.Extract(ctx, port.ExtractInput{
		Base64Payload: file.Base64Payload,
		MimeType:      file.MimeType,
		Class:         domain.ClassFreeform,
	})
	if err != nil {
		return nil, err
	}

	doc := normalize.Document(raw, in.FileNameHint)
	if doc.NeedsReview {
		log.Printf("service.Extraction: document needs review: %s", deref(doc.ReviewReason))
	}
	return doc, nil
}

func (s *extractionService) ExtractLogbook(ctx context.Context, fileURL string) (*domain.LogbookExtractionResult, error) {
	file, err := s.acquirer.Resolve(ctx, acquire.Input{RemoteURL: fileURL})
	if err != nil {
		return nil, err
	}

	payload, mimeType := file.Base64Payload, file.MimeType

	// The bottom-band crop only applies to photographed pages; PDFs go to
	// the model as-is.
	if strings.HasPrefix(mimeType, "image/") {
		rawBytes, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableImage, err)
		}
		crops, err := s.prep.Prepare(rawBytes)
		if err != nil {
			return nil, err
		}
		payload = base64.StdEncoding.EncodeToString(crops[0])
		mimeType = "image/jpeg"
	}

	raw, err := s.extractor.Extract(ctx, port.ExtractInput{
		Base64Payload: payload,
		MimeType:      mimeType,
		Class:         domain.ClassLogbook,
	})
	if err != nil {
		return nil, err
	}

	result := normalize.Logbook(raw)
	log.Printf("service.Extraction: logbook rows=%d issues=%d",
		result.Summary.RowsExtracted, result.Summary.RowsWithIssues)
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
