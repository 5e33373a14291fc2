package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/config"
	"github.com/yukikurage/pastry-manager-api/internal/models"
)

// Object metadata keys stored alongside every upload.
const (
	MetaOriginalFileName = "original-filename"
	MetaEntityType       = "entity-type"
	MetaEntityID         = "entity-id"
	MetaFileID           = "file-id"
)

// UploadObject describes a file about to be stored.
type UploadObject struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
	EntityType  models.EntityType
	EntityID    uuid.UUID
	FileID      uuid.UUID
}

// Key is where the object is stored.
func (o UploadObject) Key() string {
	return ObjectKey(o.EntityType, o.EntityID, o.FileID, o.FileName)
}

func (o UploadObject) metadata() map[string]string {
	return map[string]string{
		MetaOriginalFileName: o.FileName,
		MetaEntityType:       string(o.EntityType),
		MetaEntityID:         o.EntityID.String(),
		MetaFileID:           o.FileID.String(),
	}
}

// FileStorage is the object store used by the file use cases.
type FileStorage interface {
	// Upload stores the object and returns its key
	Upload(ctx context.Context, obj UploadObject) (string, error)

	// PresignedURL returns a time-limited GET link
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes the object
	Delete(ctx context.Context, key string) error

	// Validate applies the upload policy
	Validate(fileName string, size int64) (bool, string)
}

// S3Storage stores files in an S3 compatible bucket.
type S3Storage struct {
	client *minio.Client
	bucket string
	region string
	policy Policy
}

// NewClient creates a minio client for the configured endpoint.
func NewClient(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		Secure: cfg.S3UseSSL(),
		Region: cfg.S3.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create S3 client")
	}
	return client, nil
}

// NewS3Storage wraps a client, bucket and upload policy.
func NewS3Storage(client *minio.Client, bucket, region string, policy Policy) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, region: region, policy: policy}
}

// FromConfig builds the storage from configuration.
func FromConfig(cfg *config.Config) (*S3Storage, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	policy := Policy{
		MaxFileSizeBytes:  cfg.FileUpload.MaxFileSizeBytes,
		AllowedExtensions: cfg.FileUpload.AllowedExtensions,
	}
	return NewS3Storage(client, cfg.S3.BucketName, cfg.S3.Region, policy), nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "failed to check bucket")
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errors.Wrapf(err, "failed to create bucket %s", s.bucket)
	}
	log.WithField("bucket", s.bucket).Info("S3 bucket created")
	return nil
}

// Ready checks that the bucket is reachable.
func (s *S3Storage) Ready(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func (s *S3Storage) Upload(ctx context.Context, obj UploadObject) (string, error) {
	key := obj.Key()
	entry := log.WithFields(log.Fields{
		"bucket":       s.bucket,
		"key":          key,
		"content_type": obj.ContentType,
		"size":         obj.Size,
	})
	entry.Info("Uploading file to S3")

	_, err := s.client.PutObject(ctx, s.bucket, key, obj.Reader, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: obj.metadata(),
	})
	if err != nil {
		entry.WithError(err).Error("S3 upload failed")
		return "", err
	}

	entry.Info("File uploaded to S3")
	return key, nil
}

func (s *S3Storage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate download URL")
	}
	return u.String(), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}
	log.WithField("key", key).Info("File deleted from S3")
	return nil
}

func (s *S3Storage) Validate(fileName string, size int64) (bool, string) {
	return s.policy.Validate(fileName, size)
}
