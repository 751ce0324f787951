// Package storage implements object storage on top of the Go CDK blob API.
// The bucket URLs in config decide the backing driver (local files in
// development, S3 or GCS in production).
package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"opencycle/config"
	"opencycle/internal/domain/lifecycle"
	"opencycle/internal/domain/service"
)

type blobStorage struct {
	buckets       map[string]*blob.Bucket
	publicBaseURL string
}

// New opens the configured buckets and registers their close on shutdown.
func New(lc fx.Lifecycle, cfg *config.Config) (service.ObjectStorage, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage config must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	urls := map[string]string{
		service.BucketItemImages: cfg.Storage.ItemImagesURL,
		service.BucketAvatars:    cfg.Storage.AvatarsURL,
	}

	buckets := make(map[string]*blob.Bucket, len(urls))
	for name, url := range urls {
		if url == "" {
			return nil, errors.Errorf("bucket url for %s must be provided", name)
		}

		bucket, err := blob.OpenBucket(openCtx, url)
		if err != nil {
			closeBuckets(buckets)

			return nil, errors.Wrapf(err, "open bucket %s", name)
		}
		buckets[name] = bucket
	}

	store := &blobStorage{
		buckets:       buckets,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closeBuckets(store.buckets)

			return nil
		},
	})

	return store, nil
}

func (s *blobStorage) Upload(ctx context.Context, bucket, key, contentType string, data []byte) error {
	b, ok := s.buckets[bucket]
	if !ok {
		return errors.Errorf("unknown bucket: %s", bucket)
	}

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := b.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "write %s/%s", bucket, key)
	}

	return nil
}

func (s *blobStorage) PublicURL(bucket, key string) string {
	return s.publicBaseURL + "/" + bucket + "/" + key
}

func (s *blobStorage) Delete(ctx context.Context, bucket, key string) error {
	b, ok := s.buckets[bucket]
	if !ok {
		return errors.Errorf("unknown bucket: %s", bucket)
	}

	if err := b.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete %s/%s", bucket, key)
	}

	return nil
}

func closeBuckets(buckets map[string]*blob.Bucket) {
	for _, bucket := range buckets {
		_ = bucket.Close()
	}
}
