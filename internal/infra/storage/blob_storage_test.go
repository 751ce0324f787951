package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"

	"opencycle/internal/domain/service"
)

func newTestStorage(t *testing.T) *blobStorage {
	t.Helper()

	items := memblob.OpenBucket(nil)
	avatars := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		_ = items.Close()
		_ = avatars.Close()
	})

	return &blobStorage{
		buckets: map[string]*blob.Bucket{
			service.BucketItemImages: items,
			service.BucketAvatars:    avatars,
		},
		publicBaseURL: "https://cdn.example.com",
	}
}

func TestBlobStorage_UploadAndDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	key := "user-1/1700000000000.png"
	err := store.Upload(ctx, service.BucketItemImages, key, "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)

	data, err := store.buckets[service.BucketItemImages].ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

	err = store.Delete(ctx, service.BucketItemImages, key)
	require.NoError(t, err)

	// Deleting a missing object is not an error.
	err = store.Delete(ctx, service.BucketItemImages, key)
	assert.NoError(t, err)
}

func TestBlobStorage_UnknownBucket(t *testing.T) {
	store := newTestStorage(t)

	err := store.Upload(context.Background(), "no-such-bucket", "k", "image/png", []byte("x"))
	assert.Error(t, err)

	err = store.Delete(context.Background(), "no-such-bucket", "k")
	assert.Error(t, err)
}

func TestBlobStorage_PublicURL(t *testing.T) {
	store := newTestStorage(t)

	url := store.PublicURL(service.BucketAvatars, "user-1/avatar.jpg")
	assert.Equal(t, "https://cdn.example.com/avatars/user-1/avatar.jpg", url)
}
