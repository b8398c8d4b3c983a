package filestorage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/railsathi/railsathi/internal/media"
)

func NewMinIOStorage(bucket, imagePath, videoPath, endpoint, accessKeyID, secretAccessKey string) *MinIOStorage {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		panic(err)
	}
	return &MinIOStorage{
		client:    m,
		bucket:    bucket,
		imagePath: imagePath,
		videoPath: videoPath,
	}
}

// MinIOStorage is the durable object store for complaint media. Objects
// live under a kind-specific path prefix inside a single bucket.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	imagePath string
	videoPath string
}

func (f *MinIOStorage) prefix(kind media.Kind) string {
	if kind == media.KindVideo {
		return f.videoPath
	}
	return f.imagePath
}

// Upload writes the object under {prefix}/{name} and returns its public
// URL. The write is durable once the call returns without error.
func (f *MinIOStorage) Upload(ctx context.Context, kind media.Kind, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := f.prefix(kind) + "/" + name
	_, err := f.client.PutObject(ctx, f.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", f.client.EndpointURL(), f.bucket, key), nil
}
