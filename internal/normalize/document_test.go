package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flotta/internal/domain"
)

func TestDocument_CompleteDeliveryNote(t *testing.T) {
	raw := json.RawMessage(`{
		"tipoDocumento": "Bolla di consegna",
		"fornitore": "Agip Petroli",
		"destinatario": "Deposito Nord",
		"numeroDocumento": "DDT-4411",
		"dataDocumento": "15/02/2024",
		"litriTotali": "2.500,00",
		"importoTotale": "4.125,50",
		"valuta": "€",
		"prodotto": "Diesel",
		"testoLibero": "consegna mattutina"
	}`)

	doc := Document(raw, "bolla_feb.jpg")

	require.NotNil(t, doc.DocumentType)
	assert.Equal(t, domain.TypeDeliveryNote, *doc.DocumentType)
	require.NotNil(t, doc.DocumentDate)
	assert.Equal(t, "15/02/2024", *doc.DocumentDate)
	require.NotNil(t, doc.YearMonth)
	assert.Equal(t, "2024-02", *doc.YearMonth)
	require.NotNil(t, doc.TotalLiters)
	assert.Equal(t, 2500.0, *doc.TotalLiters)
	require.NotNil(t, doc.TotalAmount)
	assert.Equal(t, 4125.5, *doc.TotalAmount)
	require.NotNil(t, doc.Currency)
	assert.Equal(t, domain.CurrencyEUR, *doc.Currency)
	assert.Equal(t, "Agip Petroli", *doc.Supplier)

	assert.False(t, doc.NeedsReview)
	assert.Nil(t, doc.ReviewReason)
}

func TestDocument_MissingFieldsTriggerReview(t *testing.T) {
	doc := Document(json.RawMessage(`{"litriTotali": "1.000,5"}`), "")

	require.NotNil(t, doc.TotalLiters)
	assert.Equal(t, 1000.5, *doc.TotalLiters)
	assert.Nil(t, doc.DocumentType)
	assert.Nil(t, doc.DocumentDate)
	assert.Nil(t, doc.Currency)

	assert.True(t, doc.NeedsReview)
	require.NotNil(t, doc.ReviewReason)
	assert.Contains(t, *doc.ReviewReason, "document type unclear")
	assert.Contains(t, *doc.ReviewReason, "document date unreadable")
	assert.Contains(t, *doc.ReviewReason, "currency unclear")
	assert.NotContains(t, *doc.ReviewReason, "total liters unreadable")
}

func TestDocument_EachMissingRequiredFieldHasAToken(t *testing.T) {
	cases := map[string]string{
		"dataDocumento": "document date unreadable",
		"litriTotali":   "total liters unreadable",
		"valuta":        "currency unclear",
	}
	complete := map[string]any{
		"tipoDocumento": "ddt",
		"dataDocumento": "01/03/2024",
		"litriTotali":   "100",
		"valuta":        "EUR",
	}
	for missing, token := range cases {
		m := map[string]any{}
		for k, v := range complete {
			if k != missing {
				m[k] = v
			}
		}
		raw, err := json.Marshal(m)
		require.NoError(t, err)

		doc := Document(raw, "")
		assert.True(t, doc.NeedsReview, "missing %s", missing)
		require.NotNil(t, doc.ReviewReason, "missing %s", missing)
		assert.Contains(t, *doc.ReviewReason, token, "missing %s", missing)
	}
}

func TestDocument_InvoiceWithoutTotalTriggersReview(t *testing.T) {
	raw := json.RawMessage(`{
		"tipoDocumento": "Fattura",
		"dataDocumento": "01/03/2024",
		"litriTotali": "100",
		"valuta": "EUR"
	}`)
	doc := Document(raw, "")

	require.NotNil(t, doc.DocumentType)
	assert.Equal(t, domain.TypeInvoice, *doc.DocumentType)
	assert.True(t, doc.NeedsReview)
	require.NotNil(t, doc.ReviewReason)
	assert.Contains(t, *doc.ReviewReason, "invoice missing total amount")
}

func TestDocument_DeliveryNoteWithoutTotalIsFine(t *testing.T) {
	raw := json.RawMessage(`{
		"tipoDocumento": "DDT",
		"dataDocumento": "01/03/2024",
		"litriTotali": "100",
		"valuta": "CHF"
	}`)
	doc := Document(raw, "")

	assert.Nil(t, doc.TotalAmount)
	assert.False(t, doc.NeedsReview)
}

func TestDocument_ClassifiesFromFilename(t *testing.T) {
	doc := Document(json.RawMessage(`{}`), "fattura_marzo.pdf")
	require.NotNil(t, doc.DocumentType)
	assert.Equal(t, domain.TypeInvoice, *doc.DocumentType)
}

func TestDocument_ModelForcedReview(t *testing.T) {
	raw := json.RawMessage(`{
		"tipoDocumento": "fattura",
		"dataDocumento": "01/03/2024",
		"litriTotali": "100",
		"importoTotale": "160",
		"valuta": "EUR",
		"daRivedere": true
	}`)
	doc := Document(raw, "")

	assert.True(t, doc.NeedsReview)
	assert.Nil(t, doc.ReviewReason)
}

func TestDocument_ModelReasonIsIncludedAndDeduplicated(t *testing.T) {
	raw := json.RawMessage(`{
		"tipoDocumento": "fattura",
		"dataDocumento": "01/03/2024",
		"litriTotali": "100",
		"importoTotale": "160",
		"valuta": "???",
		"motivoRevisione": "currency unclear"
	}`)
	doc := Document(raw, "")

	assert.True(t, doc.NeedsReview)
	require.NotNil(t, doc.ReviewReason)
	assert.Equal(t, "currency unclear", *doc.ReviewReason)
}

func TestDocument_GarbledAnswerDegradesToNulls(t *testing.T) {
	doc := Document(json.RawMessage(`"not an object"`), "")

	assert.Nil(t, doc.DocumentType)
	assert.Nil(t, doc.DocumentDate)
	assert.Nil(t, doc.TotalLiters)
	assert.True(t, doc.NeedsReview)
	require.NotNil(t, doc.ReviewReason)
}
