package s3

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

const providerName = config.ProviderS3

// Store is an ObjectStore backed by the AWS SDK. It talks to AWS S3 and to
// S3-compatible services (DigitalOcean Spaces, R2, LocalStack, MinIO...).
type Store struct {
	client *s3.Client
	bucket string
}

func init() {
	storage.RegisterProvider(providerName, func(ctx context.Context, cfg config.ClientConfig) (storage.ObjectStore, error) {
		return New(ctx, cfg)
	})
}

// New creates a new S3 store. optFns are applied after the defaults derived from cfg.
func New(ctx context.Context, cfg config.ClientConfig, optFns ...func(*s3.Options)) (*Store, error) {
	client, err := newClient(ctx, cfg, optFns...)
	if err != nil {
		return nil, storage.Tag(storage.ErrInvalidConfig, err)
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket(),
	}, nil
}

func (s *Store) Name() string { return providerName }

// Put uploads body to key. body is streamed; *os.File and other
// io.ReadSeekers avoid buffering when the payload has to be hashed.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts storage.PutOptions) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.Size >= 0 {
		input.ContentLength = aws.Int64(opts.Size)
	}
	if opts.ACL != "" {
		input.ACL = types.ObjectCannedACL(opts.ACL)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return storage.WrapError(providerName, "put", normalizeError(err))
	}
	return nil
}

// Head returns object metadata
func (s *Store) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	result, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, storage.WrapError(providerName, "head", s.notFoundOrMissingBucket(ctx, err))
	}

	info := &storage.ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(result.ContentLength),
		ContentType: aws.ToString(result.ContentType),
		ETag:        aws.ToString(result.ETag),
	}
	if result.LastModified != nil {
		info.LastModified = *result.LastModified
	}
	return info, nil
}

// Get opens the object for reading
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, storage.WrapError(providerName, "get", normalizeError(err))
	}
	return result.Body, nil
}

// Delete removes an object. S3 answers 204 for missing keys too.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return storage.WrapError(providerName, "delete", normalizeError(err))
	}
	return nil
}

// notFoundOrMissingBucket normalizes a HeadObject error. HEAD responses have
// no body, so a missing key and a missing bucket are both a bare 404; the
// bucket is checked before reporting ErrNotFound.
func (s *Store) notFoundOrMissingBucket(ctx context.Context, err error) error {
	normalized := normalizeError(err)
	if !storage.IsNotFound(normalized) {
		return normalized
	}

	_, bucketErr := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if bucketErr == nil {
		return normalized
	}

	bucketNormalized := normalizeError(bucketErr)
	if storage.IsNotFound(bucketNormalized) {
		return storage.Tag(storage.ErrBucketNotFound, bucketErr)
	}
	return bucketNormalized
}

// normalizeError maps S3 error codes and HTTP statuses onto storage sentinels.
// HEAD responses carry no body, so the status code is the only signal there.
func normalizeError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return storage.Tag(storage.ErrNotFound, err)
		case "NoSuchBucket":
			return storage.Tag(storage.ErrBucketNotFound, err)
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken",
			"AuthorizationHeaderMalformed", "Unauthorized":
			return storage.Tag(storage.ErrAuthFailed, err)
		case "AccessDenied", "Forbidden", "AllAccessDisabled":
			return storage.Tag(storage.ErrAccessDenied, err)
		}
	}

	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return storage.Tag(storage.ErrNotFound, err)
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return storage.Tag(storage.ErrNotFound, err)
		case http.StatusUnauthorized:
			return storage.Tag(storage.ErrAuthFailed, err)
		case http.StatusForbidden:
			return storage.Tag(storage.ErrAccessDenied, err)
		}
	}

	return storage.Classify(err)
}
