package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExtractedFields holds the order fields read from a purchase order.
// A nil field was not found in the document.
type ExtractedFields struct {
	CustomerName *string
	Style        *string
	Quantity     *int
	OrderAmount  *decimal.Decimal
}

// IsEmpty reports whether nothing was extracted
func (f ExtractedFields) IsEmpty() bool {
	return f.CustomerName == nil && f.Style == nil && f.Quantity == nil && f.OrderAmount == nil
}

// AsMap renders the extracted fields for storage on the Document
func (f ExtractedFields) AsMap() map[string]interface{} {
	out := map[string]interface{}{}
	if f.CustomerName != nil {
		out["customer_name"] = *f.CustomerName
	}
	if f.Style != nil {
		out["style"] = *f.Style
	}
	if f.Quantity != nil {
		out["quantity"] = *f.Quantity
	}
	if f.OrderAmount != nil {
		out["order_amount"] = f.OrderAmount.StringFixed(2)
	}
	return out
}

// Extractor reads order fields out of an uploaded purchase order.
// Implementations never fail: problems are logged and yield empty fields.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) ExtractedFields
}

// NoopExtractor extracts nothing
type NoopExtractor struct{}

func (NoopExtractor) Extract(context.Context, []byte, string) ExtractedFields {
	return ExtractedFields{}
}

// SampleExtractor returns a fixed set of fields for every document.
// It stands in for a real extraction service in demos and local development.
type SampleExtractor struct{}

func (SampleExtractor) Extract(context.Context, []byte, string) ExtractedFields {
	customer := "Sample Customer Corp"
	style := "Classic Athletic Shoe"
	quantity := 2500
	amount := decimal.RequireFromString("125000.00")
	return ExtractedFields{
		CustomerName: &customer,
		Style:        &style,
		Quantity:     &quantity,
		OrderAmount:  &amount,
	}
}
