package normalize

import (
	"encoding/json"
	"strings"

	"flotta/internal/domain"
)

// Review reason tokens for the free-form document class.
const (
	reasonTypeUnclear     = "document type unclear"
	reasonDateUnreadable  = "document date unreadable"
	reasonLitersMissing   = "total liters unreadable"
	reasonCurrencyUnclear = "currency unclear"
	reasonInvoiceNoTotal  = "invoice missing total amount"
)

var invoiceKeywords = []string{"fattura", "invoice", "ricevuta"}

var deliveryKeywords = []string{"ddt", "bolla", "consegna", "delivery", "waybill", "lieferschein"}

// Document converts the decoded raw answer into a NormalizedDocument. It
// never fails: a non-object answer is treated as {} and every unreadable
// field degrades to nil plus a review reason.
func Document(raw json.RawMessage, fileName string) *domain.NormalizedDocument {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		m = map[string]any{}
	}

	docType := classifyType(m["tipoDocumento"], fileName)
	date := Date(m["dataDocumento"])
	liters := Number(m["litriTotali"])
	amount := Number(m["importoTotale"])
	currency := Currency(m["valuta"])

	doc := &domain.NormalizedDocument{
		DocumentType:   docType,
		Supplier:       Str(m["fornitore"]),
		Recipient:      Str(m["destinatario"]),
		DocumentNumber: Str(m["numeroDocumento"]),
		DocumentDate:   date,
		YearMonth:      YearMonth(date),
		TotalLiters:    liters,
		TotalAmount:    amount,
		Currency:       currency,
		Product:        Str(m["prodotto"]),
		FreeText:       Str(m["testoLibero"]),
	}

	var reasons []string
	if docType == nil {
		reasons = append(reasons, reasonTypeUnclear)
	}
	if date == nil {
		reasons = append(reasons, reasonDateUnreadable)
	}
	if liters == nil {
		reasons = append(reasons, reasonLitersMissing)
	}
	if currency == nil {
		reasons = append(reasons, reasonCurrencyUnclear)
	}
	if docType != nil && *docType == domain.TypeInvoice && amount == nil {
		reasons = append(reasons, reasonInvoiceNoTotal)
	}

	forcedByModel := boolVal(m["daRivedere"])
	if modelReason := Str(m["motivoRevisione"]); modelReason != nil {
		forcedByModel = true
		reasons = append(reasons, *modelReason)
	}

	reasons = dedupe(reasons)
	doc.NeedsReview = forcedByModel || len(reasons) > 0
	if len(reasons) > 0 {
		joined := strings.Join(reasons, "; ")
		doc.ReviewReason = &joined
	}
	return doc
}

// classifyType searches invoice-family and delivery-family keywords across
// the raw type field concatenated with the filename, case-insensitively.
func classifyType(typeField any, fileName string) *domain.DocumentType {
	haystack := strings.ToLower(fileName)
	if s := Str(typeField); s != nil {
		haystack = strings.ToLower(*s) + " " + haystack
	}

	for _, kw := range invoiceKeywords {
		if strings.Contains(haystack, kw) {
			return typePtr(domain.TypeInvoice)
		}
	}
	for _, kw := range deliveryKeywords {
		if strings.Contains(haystack, kw) {
			return typePtr(domain.TypeDeliveryNote)
		}
	}
	return nil
}

func typePtr(t domain.DocumentType) *domain.DocumentType {
	return &t
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
