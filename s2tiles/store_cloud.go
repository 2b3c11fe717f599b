package s2tiles

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// cloudStore is a read-only RandomAccessStore backed by a gocloud.dev blob
// bucket key, for serving an archive directly out of object storage without
// downloading it first. Grounded on the teacher's BucketAdapter and
// OpenBucket in bucket.go, generalized from PMTiles' range-request-with-etag
// reader to the RandomAccessStore interface.
type cloudStore struct {
	ctx    context.Context
	bucket *blob.Bucket
	key    string
	size   int64
}

// openCloudStore opens bucketURL (any gocloud.dev-supported scheme, e.g.
// s3://, gs://, azblob://) and targets key within it.
func openCloudStore(ctx context.Context, bucketURL, key string) (*cloudStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("s2tiles: open bucket %s: %w", bucketURL, err)
	}
	attrs, err := bucket.Attributes(ctx, key)
	if err != nil {
		bucket.Close()
		return nil, fmt.Errorf("s2tiles: stat %s: %w", key, err)
	}
	return &cloudStore{ctx: ctx, bucket: bucket, key: key, size: attrs.Size}, nil
}

func (c *cloudStore) ReadAt(p []byte, off int64) (int, error) {
	reader, err := c.bucket.NewRangeReader(c.ctx, c.key, off, int64(len(p)), nil)
	if err != nil {
		return 0, fmt.Errorf("s2tiles: range read %s at %d: %w", c.key, off, err)
	}
	defer reader.Close()
	return io.ReadFull(reader, p)
}

func (c *cloudStore) WriteAt(p []byte, off int64) (int, error) {
	return 0, fmt.Errorf("s2tiles: cloud store is read-only, build the archive locally and upload it")
}

func (c *cloudStore) Truncate(size int64) error {
	return fmt.Errorf("s2tiles: cloud store is read-only")
}

func (c *cloudStore) Size() (int64, error) {
	return c.size, nil
}

func (c *cloudStore) Close() error {
	return c.bucket.Close()
}
