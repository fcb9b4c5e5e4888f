package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"upload-backend/internal/shared/storage/object"
)

// ClientOptions selects the region and, for S3-compatible providers, a custom endpoint.
type ClientOptions struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

// NewClient builds an S3 client from the default credential chain. The same
// client backs both object reads and the upload presigner.
func NewClient(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region := strings.TrimSpace(opts.Region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = opts.ForcePathStyle
	}), nil
}

// Store implements object.Store on top of an S3 bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3-backed object store. An empty bucket yields a store whose
// Open always reports object.ErrNotConfigured.
func New(client *s3.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: strings.TrimSpace(bucket),
		prefix: NormalizePrefix(prefix),
	}
}

// Open fetches the object and hands back its streaming body.
func (s *Store) Open(ctx context.Context, key string) (*object.Object, error) {
	if s.client == nil || s.bucket == "" {
		return nil, object.ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectKey := ApplyPrefix(s.prefix, key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, objectKey, object.ErrNotFound)
		}
		return nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	length := int64(-1)
	if out.ContentLength != nil {
		length = *out.ContentLength
	}
	return &object.Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: length,
	}, nil
}

func isNotFound(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}

// NormalizePrefix trims whitespace and surrounding slashes from a key prefix.
func NormalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

// ApplyPrefix joins a prefix and an object key with a single slash.
func ApplyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.Store = (*Store)(nil)
