package publish

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"pocket-cards/core/reconcile"
	"pocket-cards/core/storage"
	"pocket-cards/core/utils"

	"github.com/go-resty/resty/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultImageExt is used when an image URL has no extension.
const defaultImageExt = ".webp"

// MirrorReport counts the outcome of an image mirror pass.
type MirrorReport struct {
	Uploaded int      `json:"uploaded"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	NoImage  int      `json:"no_image"`
	Errors   []string `json:"errors,omitempty"`
}

// ImageMirror copies card images from the source sites into the bucket.
type ImageMirror struct {
	client  storage.Client
	bucket  string
	http    *resty.Client
	workers int
	logger  *zap.Logger
}

// NewImageMirror creates a mirror. Each download is tried at most three times.
func NewImageMirror(client storage.Client, bucket string, workers int, logger *zap.Logger) *ImageMirror {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	http := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &ImageMirror{client: client, bucket: bucket, http: http, workers: workers, logger: logger}
}

// ImageKey returns the object key of a record's image,
// e.g. images/A3b/A3b_012_EN.webp.
func ImageKey(rec reconcile.CardRecord) string {
	set := rec.SetCode
	file := fmt.Sprintf("%s_%s_%s%s", set, utils.PadNumber(rec.LocalCardNumber, 3), strings.ToUpper(rec.Language), imageExt(rec.ImageURL))
	return path.Join(ImagesPrefix, set, file)
}

func imageExt(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return defaultImageExt
	}
	if ext := path.Ext(u.Path); ext != "" {
		return strings.ToLower(ext)
	}
	return defaultImageExt
}

// Mirror uploads every record image missing from the bucket. Download and upload
// failures are counted in the report and do not stop the pass; only a cancelled
// context does.
func (m *ImageMirror) Mirror(ctx context.Context, records []reconcile.CardRecord) (*MirrorReport, error) {
	sorted := append([]reconcile.CardRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SetCode != sorted[j].SetCode {
			return sorted[i].SetCode < sorted[j].SetCode
		}
		return sorted[i].LocalCardNumber < sorted[j].LocalCardNumber
	})

	report := &MirrorReport{}
	var mu sync.Mutex
	count := func(f func(r *MirrorReport)) {
		mu.Lock()
		f(report)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for _, rec := range sorted {
		if rec.ImageURL == "" {
			report.NoImage++
			continue
		}
		rec := rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			uploaded, err := m.mirrorOne(gctx, rec)
			switch {
			case err != nil:
				m.logger.Warn("Image mirror failed", zap.String("url", rec.ImageURL), zap.Error(err))
				count(func(r *MirrorReport) {
					r.Failed++
					r.Errors = append(r.Errors, err.Error())
				})
			case uploaded:
				count(func(r *MirrorReport) { r.Uploaded++ })
			default:
				count(func(r *MirrorReport) { r.Skipped++ })
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	m.logger.Info("Image mirror done",
		zap.Int("uploaded", report.Uploaded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Int("no_image", report.NoImage),
	)
	return report, nil
}

// mirrorOne uploads one image and reports whether it had to.
func (m *ImageMirror) mirrorOne(ctx context.Context, rec reconcile.CardRecord) (bool, error) {
	key := ImageKey(rec)

	exists, err := storage.ObjectExists(ctx, m.client, m.bucket, key)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	resp, err := m.http.R().SetContext(ctx).Get(rec.ImageURL)
	if err != nil {
		return false, fmt.Errorf("failed to download %s: %w", rec.ImageURL, err)
	}
	if resp.StatusCode() != 200 {
		return false, fmt.Errorf("failed to download %s: HTTP %d", rec.ImageURL, resp.StatusCode())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if _, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return false, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	m.logger.Debug("Image mirrored", zap.String("key", key))
	return true, nil
}
