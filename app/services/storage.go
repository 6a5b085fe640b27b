package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
)

// allowedMimeTypes is the closed set of document types accepted for
// attachment uploads.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// ObjectInfo is what the storage collaborator reports about one
// uploaded object.
type ObjectInfo struct {
	SizeBytes int64
	MimeType  string
}

// ObjectVerifier is the storage collaborator the submit path depends
// on. The production implementation talks to S3-compatible storage;
// tests substitute a stub.
type ObjectVerifier interface {
	StatUpload(ctx context.Context, objectKey string) (*ObjectInfo, error)
}

// ObjectStorage wraps the S3-compatible client used for presigned
// uploads and submit-time verification.
type ObjectStorage struct {
	client  *minio.Client
	bucket  string
	maxSize int64
}

var storage *ObjectStorage

// InitStorage builds the process-scoped storage handle. Must be called
// once at startup, after config.Load.
func InitStorage(cfg config.StorageConfig) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return err
	}
	storage = &ObjectStorage{client: client, bucket: cfg.Bucket, maxSize: cfg.MaxSizeBytes}
	log.Printf("Object storage initialized (bucket %s)", cfg.Bucket)
	return nil
}

func GetStorage() *ObjectStorage {
	return storage
}

// PresignUpload issues a short-lived PUT URL for one object key.
func (s *ObjectStorage) PresignUpload(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, 15*time.Minute)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// StatUpload reports size and MIME type of an uploaded object, or an
// OBJECT_NOT_FOUND error when the object does not exist.
func (s *ObjectStorage) StatUpload(ctx context.Context, objectKey string) (*ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, newError(CodeObjectNotFound, "uploaded object not found", 422)
		}
		return nil, err
	}
	return &ObjectInfo{SizeBytes: info.Size, MimeType: info.ContentType}, nil
}

// MaxSizeBytes is the configured upload size ceiling.
func (s *ObjectStorage) MaxSizeBytes() int64 {
	return s.maxSize
}

// BuildObjectKey derives the object key for one slot of one
// application. Slot keys contain only grammar characters, so the result
// is URL-safe after escaping.
func BuildObjectKey(applicationID, slotKey, fileName string) string {
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = strings.ToLower(fileName[i:])
	}
	return fmt.Sprintf("applications/%s/%s%s", applicationID, url.PathEscape(slotKey), ext)
}

// IsAllowedMimeType reports whether the declared MIME type is accepted
// for uploads.
func IsAllowedMimeType(mimeType string) bool {
	return allowedMimeTypes[strings.ToLower(mimeType)]
}
