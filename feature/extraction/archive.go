package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"goods-receiving/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver backs up scanned documents to object storage so a paper invoice
// can be pulled up later during a dispute. Uploads are best-effort.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// Archive uploads the raw document under a name derived from the draft.
// A failed upload is logged and returned, but callers must treat it as
// non-fatal: the extraction already succeeded.
func (a *Archiver) Archive(ctx context.Context, draft *Draft, doc Document) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		a.logger.Warn("Invoice archive bucket check failed", zap.Error(err))
		return fmt.Errorf("archive bucket check: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			a.logger.Warn("Invoice archive bucket creation failed", zap.Error(err))
			return fmt.Errorf("archive bucket creation: %w", err)
		}
	}

	objectName := a.objectName(draft, doc.MimeType)
	_, err = a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(doc.Data), int64(len(doc.Data)),
		minio.PutObjectOptions{ContentType: doc.MimeType})
	if err != nil {
		a.logger.Warn("Invoice archive upload failed",
			zap.String("object", objectName), zap.Error(err))
		return fmt.Errorf("archive upload: %w", err)
	}

	a.logger.Info("Invoice archived", zap.String("object", objectName))
	return nil
}

// objectName builds a stable, sortable archive key.
func (a *Archiver) objectName(draft *Draft, mimeType string) string {
	date := draft.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	number := sanitize(draft.InvoiceNumber)
	if number == "" {
		number = uuid.NewString()
	}

	return fmt.Sprintf("%s/%s%s", date, number, extensionFor(mimeType))
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}

// sanitize strips characters that are awkward in object keys.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '#', '?':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(s))
}
