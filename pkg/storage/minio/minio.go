package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

const providerName = config.ProviderMinIO

// Store is an ObjectStore backed by the MinIO client
type Store struct {
	client *minio.Client
	bucket string
}

func init() {
	storage.RegisterProvider(providerName, func(ctx context.Context, cfg config.ClientConfig) (storage.ObjectStore, error) {
		return New(cfg)
	})
}

// New creates a MinIO store. The client wants host[:port], so the endpoint
// must not carry a path.
func New(cfg config.ClientConfig) (*Store, error) {
	endpoint, err := url.Parse(cfg.Endpoint())
	if err != nil {
		return nil, storage.Tag(storage.ErrInvalidConfig, err)
	}
	if p := strings.Trim(endpoint.Path, "/"); p != "" {
		return nil, fmt.Errorf("%w: minio endpoint must not contain a path", storage.ErrInvalidConfig)
	}

	creds := cfg.Credentials()
	lookup := minio.BucketLookupDNS
	if cfg.PathStyle() {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(creds.AccessKeyID, creds.SecretAccessKey, ""),
		Secure:       endpoint.Scheme == "https",
		Region:       cfg.Region(),
		BucketLookup: lookup,
		MaxRetries:   1,
	})
	if err != nil {
		return nil, storage.Tag(storage.ErrInvalidConfig, err)
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket(),
	}, nil
}

func (s *Store) Name() string { return providerName }

// Put uploads body to key
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts storage.PutOptions) error {
	putOpts := minio.PutObjectOptions{
		ContentType: opts.ContentType,
	}
	if opts.ACL != "" {
		putOpts.UserMetadata = map[string]string{"x-amz-acl": opts.ACL}
	}

	if _, err := s.client.PutObject(ctx, s.bucket, key, body, opts.Size, putOpts); err != nil {
		return storage.WrapError(providerName, "put", normalizeError(err))
	}
	return nil
}

// Head returns object metadata
func (s *Store) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, storage.WrapError(providerName, "head", s.notFoundOrMissingBucket(ctx, err))
	}
	return toObjectInfo(info), nil
}

// Get opens the object for reading. MinIO's GetObject is lazy, so the object
// is stat'ed first to surface a missing key here rather than on first Read.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, storage.WrapError(providerName, "get", normalizeError(err))
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, storage.WrapError(providerName, "get", s.notFoundOrMissingBucket(ctx, err))
	}
	return obj, nil
}

// Delete removes an object
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return storage.WrapError(providerName, "delete", normalizeError(err))
	}
	return nil
}

// notFoundOrMissingBucket normalizes err. A HEAD 404 has no body, so a
// missing key and a missing bucket look alike; the bucket is checked before
// reporting ErrNotFound.
func (s *Store) notFoundOrMissingBucket(ctx context.Context, err error) error {
	normalized := normalizeError(err)
	if !storage.IsNotFound(normalized) {
		return normalized
	}

	exists, bucketErr := s.client.BucketExists(ctx, s.bucket)
	switch {
	case bucketErr != nil:
		return normalizeError(bucketErr)
	case !exists:
		return storage.Tag(storage.ErrBucketNotFound, err)
	}
	return normalized
}

func toObjectInfo(info minio.ObjectInfo) *storage.ObjectInfo {
	return &storage.ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}
}

func normalizeError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NotFound":
		return storage.Tag(storage.ErrNotFound, err)
	case "NoSuchBucket":
		return storage.Tag(storage.ErrBucketNotFound, err)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken":
		return storage.Tag(storage.ErrAuthFailed, err)
	case "AccessDenied":
		return storage.Tag(storage.ErrAccessDenied, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return storage.Tag(storage.ErrNotFound, err)
	case http.StatusUnauthorized:
		return storage.Tag(storage.ErrAuthFailed, err)
	case http.StatusForbidden:
		return storage.Tag(storage.ErrAccessDenied, err)
	}

	return storage.Classify(err)
}
