package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"pocket-cards/core/reconcile"
	"pocket-cards/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	// CardsPrefix holds the published JSON outputs.
	CardsPrefix = "cards"
	// ImagesPrefix holds the mirrored card images.
	ImagesPrefix = "images"
)

// RequiredFolders lists the folders that must exist in the bucket.
var RequiredFolders = []string{CardsPrefix, ImagesPrefix}

// Publisher uploads run outputs to object storage.
type Publisher struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewPublisher creates a publisher for one bucket.
func NewPublisher(client storage.Client, bucket, region string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{client: client, bucket: bucket, region: region, logger: logger}
}

// Upload stores the card list and eligible list of a run under cards/ and
// returns the object keys.
func (p *Publisher) Upload(ctx context.Context, lang string, result *reconcile.RunResult) ([]string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region); err != nil {
		return nil, err
	}

	var cards, eligible bytes.Buffer
	if err := EncodeRecords(&cards, result.Records()); err != nil {
		return nil, err
	}
	if err := EncodeEligible(&eligible, result.Eligible); err != nil {
		return nil, err
	}

	uploads := []struct {
		key  string
		body *bytes.Buffer
	}{
		{CardsPrefix + "/" + CardsFileName(lang), &cards},
		{CardsPrefix + "/" + EligibleFileName(lang), &eligible},
	}

	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		if err := p.put(ctx, u.key, u.body, int64(u.body.Len()), "application/json"); err != nil {
			return keys, err
		}
		p.logger.Info("Uploaded", zap.String("key", u.key))
		keys = append(keys, u.key)
	}
	return keys, nil
}

func (p *Publisher) put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := p.client.PutObject(ctx, p.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// CheckStructure returns the required folders missing from the bucket.
func (p *Publisher) CheckStructure(ctx context.Context) ([]string, error) {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", p.bucket)
	}

	var missing []string
	for _, folder := range RequiredFolders {
		if !p.hasObjects(ctx, folder+"/") {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

// hasObjects reports whether at least one object lives under prefix.
func (p *Publisher) hasObjects(ctx context.Context, prefix string) bool {
	// Cancelling stops the listing goroutine once the first object is seen.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
		MaxKeys:   1,
	}
	for obj := range p.client.ListObjects(ctx, p.bucket, opts) {
		return obj.Err == nil
	}
	return false
}

// FixStructure creates the missing folders as empty marker objects.
func (p *Publisher) FixStructure(ctx context.Context, missing []string) error {
	for _, folder := range missing {
		key := folder
		if !strings.HasSuffix(key, "/") {
			key += "/"
		}
		if err := p.put(ctx, key, bytes.NewReader(nil), 0, ""); err != nil {
			p.logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		p.logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
