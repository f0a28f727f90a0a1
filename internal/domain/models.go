package domain

// NormalizedDocument is the typed, validated record produced for the
// free-form (invoice / delivery note) document class. Nullable fields use
// pointers; a nil pointer serializes as JSON null and means "not readable
// from the document", never "zero".
type NormalizedDocument struct {
	DocumentType   *DocumentType `json:"documentType"`
	Supplier       *string       `json:"supplier"`
	Recipient      *string       `json:"recipient"`
	DocumentNumber *string       `json:"documentNumber"`
	DocumentDate   *string       `json:"documentDate"` // dd/mm/yyyy
	YearMonth      *string       `json:"yearMonth"`    // yyyy-mm, derived from DocumentDate
	TotalLiters    *float64      `json:"totalLiters"`
	TotalAmount    *float64      `json:"totalAmount"`
	Currency       *Currency     `json:"currency"`
	Product        *string       `json:"product"`
	FreeText       *string       `json:"freeText"`
	NeedsReview    bool          `json:"needsReview"`
	ReviewReason   *string       `json:"reviewReason"`
}

// LogbookRow is one normalized row of the handwritten fuel-log table.
type LogbookRow struct {
	RowIndexFromTop *int     `json:"rowIndexFromTop"`
	SeparatorBefore bool     `json:"separatorBefore"`
	Date            *string  `json:"date"` // dd/mm/yyyy
	Time            *string  `json:"time"`
	Plate           *string  `json:"plate"`
	CounterStart    *float64 `json:"counterStart"`
	LitersDispensed *float64 `json:"litersDispensed"`
	CounterEnd      *float64 `json:"counterEnd"`
	DriverName      *string  `json:"driverName"`
	RawText         *string  `json:"rawText"`
	// FieldFlags is absent when no field needs verification; it never
	// serializes as an empty object.
	FieldFlags map[string]string `json:"fieldFlags,omitempty"`
}

// LogbookSummary aggregates row-level issues for the whole extraction.
type LogbookSummary struct {
	RowsExtracted  int `json:"rowsExtracted"`
	RowsWithIssues int `json:"rowsWithIssues"`
}

// LogbookExtractionResult is the response payload for the logbook class.
// NeedsReview and Summary are derived from Rows, never set independently.
type LogbookExtractionResult struct {
	Rows        []LogbookRow   `json:"rows"`
	NeedsReview bool           `json:"needsReview"`
	Summary     LogbookSummary `json:"summary"`
}

// ResolvedFile is the output of input acquisition: a base64 payload plus a
// MIME type guaranteed to be in SupportedMimeTypes.
type ResolvedFile struct {
	Base64Payload string
	MimeType      string
}
