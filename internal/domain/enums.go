package domain

// DocumentClass selects the extraction variant for a request.
type DocumentClass string

const (
	// ClassFreeform covers invoices and delivery notes (free-form layout).
	ClassFreeform DocumentClass = "freeform"
	// ClassLogbook covers the handwritten fuel-log table.
	ClassLogbook DocumentClass = "logbook"
)

// DocumentType is the classified type of a free-form document.
type DocumentType string

const (
	TypeInvoice      DocumentType = "invoice"
	TypeDeliveryNote DocumentType = "deliveryNote"
)

// Currency is the detected invoice currency. Anything else stays unknown
// and triggers review.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyCHF Currency = "CHF"
)

// FlagLowConfidence marks a field whose value must be manually verified.
const FlagLowConfidence = "LOW_CONFIDENCE"

// SupportedMimeTypes is the fixed allow-list for input documents.
var SupportedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}
