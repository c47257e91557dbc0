package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Document is a photographed or scanned delivery document.
type Document struct {
	// Data is the raw document bytes.
	Data []byte
	// MimeType is the content type (image/jpeg, image/png, application/pdf).
	MimeType string
}

// Extractor sends a document to a recognition provider and returns a Draft.
// Implementers may swap the underlying provider without changing this
// contract.
type Extractor interface {
	ScanInvoice(ctx context.Context, doc Document) (*Draft, error)
}

// HTTPExtractor is the default Extractor talking to an HTTP recognition
// service.
type HTTPExtractor struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewHTTPExtractor creates an extractor bound to the configured endpoint.
func NewHTTPExtractor(cfg Config, logger *zap.Logger) *HTTPExtractor {
	return &HTTPExtractor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// scanRequest is the wire format sent to the recognition service.
type scanRequest struct {
	Document string `json:"document"`
	MimeType string `json:"mime_type"`
}

// ScanInvoice posts the document and parses the structured draft out of the
// response. The call blocks up to the configured timeout and is cancellable
// only by that timeout elapsing or the passed context.
func (e *HTTPExtractor) ScanInvoice(ctx context.Context, doc Document) (*Draft, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}

	payload, err := json.Marshal(scanRequest{
		Document: base64.StdEncoding.EncodeToString(doc.Data),
		MimeType: doc.MimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.ApiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, e.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: recognition service returned status %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	draft, err := parseDraft(body)
	if err != nil {
		e.logger.Warn("Recognition response failed to parse", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	e.logger.Info("Invoice extracted",
		zap.String("supplier", draft.SupplierDetected),
		zap.String("invoice_number", draft.InvoiceNumber),
		zap.Int("items", len(draft.Items)),
	)

	return draft, nil
}

// classifyTransportError maps a transport failure onto the taxonomy.
func (e *HTTPExtractor) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, e.cfg.Timeout())
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("%w after %s", ErrTimeout, e.cfg.Timeout())
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
