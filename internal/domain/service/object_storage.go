package service

import "context"

// Bucket names used by the application. Keys inside item-images follow
// "{user_id}/{epoch_ms}.{ext}"; avatars follow "{user_id}/avatar.{ext}".
const (
	BucketItemImages = "item-images"
	BucketAvatars    = "avatars"
)

// ObjectStorage defines the interface for storing uploaded images and
// resolving their public URLs. Implementations are expected to perform a
// single write per call with no retry; duplicate-write semantics are owned by
// the backing store.
type ObjectStorage interface {
	// Upload writes the object under bucket/key with the given content type.
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) error

	// PublicURL returns the publicly reachable URL for bucket/key. It does
	// not verify existence.
	PublicURL(bucket, key string) string

	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, bucket, key string) error
}
