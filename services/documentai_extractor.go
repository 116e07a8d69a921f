package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/stridefoot/footwear-erp-api/logger"
)

// DocumentAIConfig names the Document AI processor used for purchase orders
type DocumentAIConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
	Timeout     time.Duration
}

type processFunc func(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error)

// DocumentAIExtractor extracts order fields with a Google Document AI form
// or entity processor
type DocumentAIExtractor struct {
	log       *logger.Logger
	processor string
	timeout   time.Duration
	process   processFunc
	close     func() error
}

func NewDocumentAIExtractor(ctx context.Context, cfg DocumentAIConfig, log *logger.Logger, opts ...option.ClientOption) (*DocumentAIExtractor, error) {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "us"
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)

	clientOpts := append([]option.ClientOption{option.WithEndpoint(endpoint)}, opts...)
	client, err := documentai.NewDocumentProcessorClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	ext := &DocumentAIExtractor{
		log:       log.With("service", "DocumentAIExtractor"),
		processor: fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, location, cfg.ProcessorID),
		timeout:   timeout,
		process: func(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error) {
			return client.ProcessDocument(ctx, req)
		},
		close: client.Close,
	}
	ext.log.Info("Document AI initialized", "endpoint", endpoint)
	return ext, nil
}

func (e *DocumentAIExtractor) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}

func (e *DocumentAIExtractor) Extract(ctx context.Context, data []byte, mimeType string) ExtractedFields {
	if len(data) == 0 {
		return ExtractedFields{}
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.process(ctx, &documentaipb.ProcessRequest{
		Name: e.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		e.log.Warn("Document AI extraction failed", "error", err, "mime_type", mimeType)
		return ExtractedFields{}
	}
	if resp == nil || resp.Document == nil {
		return ExtractedFields{}
	}

	return fieldsFromDocument(resp.Document)
}

// fieldsFromDocument reads entities first, then form fields; the first
// usable value for each order field wins
func fieldsFromDocument(doc *documentaipb.Document) ExtractedFields {
	var out ExtractedFields

	for _, entity := range doc.Entities {
		if entity == nil {
			continue
		}
		value := strings.TrimSpace(entity.MentionText)
		if value == "" && entity.TextAnchor != nil {
			value = strings.TrimSpace(textFromAnchor(doc.Text, entity.TextAnchor))
		}
		assignField(&out, entity.Type, value)
	}

	for _, page := range doc.Pages {
		if page == nil {
			continue
		}
		for _, ff := range page.FormFields {
			if ff == nil || ff.FieldName == nil || ff.FieldValue == nil {
				continue
			}
			name := textFromAnchor(doc.Text, ff.FieldName.TextAnchor)
			value := strings.TrimSpace(textFromAnchor(doc.Text, ff.FieldValue.TextAnchor))
			assignField(&out, name, value)
		}
	}

	return out
}

// assignField maps a processor label such as "Customer Name:" or
// "total_amount" onto an order field
func assignField(out *ExtractedFields, label, value string) {
	if value == "" {
		return
	}
	key := normalizeLabel(label)

	switch key {
	case "customer", "customer_name", "buyer", "buyer_name", "bill_to", "sold_to":
		if out.CustomerName == nil {
			out.CustomerName = &value
		}
	case "style", "style_name", "style_no", "style_number", "article", "product", "description":
		if out.Style == nil {
			out.Style = &value
		}
	case "quantity", "qty", "total_quantity", "total_qty", "pairs", "total_pairs":
		if out.Quantity == nil {
			if q, err := strconv.Atoi(strings.ReplaceAll(value, ",", "")); err == nil && q > 0 {
				out.Quantity = &q
			}
		}
	case "order_amount", "amount", "total", "total_amount", "net_amount", "po_amount":
		if out.OrderAmount == nil {
			if amount, err := parseAmount(value); err == nil {
				out.OrderAmount = &amount
			}
		}
	}
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.TrimRight(label, ":#. ")
	label = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(label)
	return label
}

// parseAmount accepts values like "$125,000.00" or "125000"
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", raw)
	}
	return amount, nil
}

func textFromAnchor(full string, anchor *documentaipb.Document_TextAnchor) string {
	if anchor == nil || len(anchor.TextSegments) == 0 || full == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range anchor.TextSegments {
		if seg == nil {
			continue
		}
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > len(full) {
			end = len(full)
		}
		if start >= end {
			continue
		}
		b.WriteString(full[start:end])
	}
	return b.String()
}
