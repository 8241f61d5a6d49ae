package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const avatarURLTTL = 5 * time.Minute

// Fallback content types for uploads that arrive without one, keyed by the
// extensions UploadAvatar accepts.
var avatarContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Storage keeps avatar objects in one MinIO bucket, keyed by user. Reads
// go out as short-lived presigned URLs so the API never proxies image bytes.
type S3Storage struct {
	client *minio.Client
	bucket string

	ensureOnce sync.Once
	ensureErr  error
}

// NewS3Storage builds the MinIO client. On a setup error the returned storage
// is still safe to call: every operation reports the missing client instead.
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	s := &S3Storage{bucket: strings.TrimSpace(cfg.Bucket)}

	if cfg.Endpoint == "" {
		return s, fmt.Errorf("s3 endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return s, fmt.Errorf("create s3 client: %w", err)
	}

	s.client = client
	return s, nil
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	if s.bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}

	s.ensureOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.ensureErr = err
			return
		}
		if exists {
			return
		}
		s.ensureErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	})

	if s.ensureErr != nil {
		return fmt.Errorf("ensure s3 bucket %q: %w", s.bucket, s.ensureErr)
	}
	return nil
}

// StoreAvatar uploads the image under users/<id>/avatar/<suffix><ext> and
// returns the object key. The old object stays in place until the caller
// moves the profile reference and removes it.
func (s *S3Storage) StoreAvatar(ctx context.Context, userID, ext, contentType string, body io.Reader, size int64) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if userID == "" || body == nil || size <= 0 {
		return "", ErrValidation
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = avatarContentTypes[ext]
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate object suffix: %w", err)
	}
	key := path.Join("users", userID, "avatar", hex.EncodeToString(suffix)+ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put avatar object: %w", err)
	}

	return key, nil
}

// AvatarURL presigns a short-lived GET for the stored object.
func (s *S3Storage) AvatarURL(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if key == "" {
		return "", ErrValidation
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, avatarURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign avatar url: %w", err)
	}

	return presigned.String(), nil
}

// RemoveAvatar deletes the object. A missing client or blank key is a no-op
// so replacement cleanup never fails an upload that already committed.
func (s *S3Storage) RemoveAvatar(ctx context.Context, key string) error {
	if s.client == nil || key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove avatar object: %w", err)
	}
	return nil
}
