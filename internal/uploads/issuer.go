package uploads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3store "upload-backend/internal/shared/storage/object/s3"
	"upload-backend/internal/shared/util"
)

const (
	DefaultExpires = 600 * time.Second
	DefaultACL     = "public-read"
	minExpires     = time.Second
	maxExpires     = 7 * 24 * time.Hour
)

var (
	// ErrConfiguration means no bucket or signer is set up for uploads.
	ErrConfiguration = errors.New("uploads not configured")
	// ErrUpstream wraps a signing failure from the storage SDK.
	ErrUpstream = errors.New("presign failed")
	// ErrValidation marks a rejected key or ACL.
	ErrValidation = errors.New("invalid presign request")
)

var allowedACLs = map[string]s3types.ObjectCannedACL{
	"private":            s3types.ObjectCannedACLPrivate,
	"public-read":        s3types.ObjectCannedACLPublicRead,
	"authenticated-read": s3types.ObjectCannedACLAuthenticatedRead,
}

// Options tune a single credential. Zero values fall back to the issuer defaults.
type Options struct {
	Expires time.Duration
	ACL     string
}

// Credential is a presigned PUT the browser uses to upload bytes directly.
// Headers lists the signed headers the upload request must repeat.
type Credential struct {
	URL     string
	Method  string
	Key     string
	Expires time.Duration
	Headers map[string]string
}

// Issuer mints presigned upload URLs for one bucket.
type Issuer struct {
	presign  *s3.PresignClient
	bucket   string
	prefix   string
	defaults Options
}

// NewIssuer builds an issuer on top of client. A nil client or an empty
// bucket produces an issuer that always answers ErrConfiguration.
func NewIssuer(client *s3.Client, bucket, prefix string, defaults Options) *Issuer {
	issuer := &Issuer{
		bucket:   strings.TrimSpace(bucket),
		prefix:   s3store.NormalizePrefix(prefix),
		defaults: defaults,
	}
	if client != nil {
		issuer.presign = s3.NewPresignClient(client)
	}
	if issuer.defaults.Expires <= 0 {
		issuer.defaults.Expires = DefaultExpires
	}
	if _, ok := allowedACLs[issuer.defaults.ACL]; !ok {
		issuer.defaults.ACL = DefaultACL
	}
	return issuer
}

// Issue presigns a PUT for key. The key is validated before the issuer's
// configuration is checked. The returned Key is the logical key the
// catalog stores; the configured prefix is only applied to the object key.
func (i *Issuer) Issue(ctx context.Context, key string, opts Options) (Credential, error) {
	cleanKey, err := util.NormalizeKey(key)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: key is invalid", ErrValidation)
	}
	if i == nil || i.presign == nil || i.bucket == "" {
		return Credential{}, ErrConfiguration
	}

	aclName := strings.TrimSpace(opts.ACL)
	if aclName == "" {
		aclName = i.defaults.ACL
	}
	acl, ok := allowedACLs[aclName]
	if !ok {
		return Credential{}, fmt.Errorf("%w: acl %q is not allowed", ErrValidation, aclName)
	}

	expires := clampExpires(opts.Expires, i.defaults.Expires)
	objectKey := s3store.ApplyPrefix(i.prefix, cleanKey)

	out, err := i.presign.PresignPutObject(ctx, presignInput(i.bucket, objectKey, acl), func(po *s3.PresignOptions) {
		po.Expires = expires
	})
	if err != nil {
		return Credential{}, fmt.Errorf("%w: bucket=%s key=%s: %v", ErrUpstream, i.bucket, objectKey, err)
	}

	return Credential{
		URL:     out.URL,
		Method:  out.Method,
		Key:     cleanKey,
		Expires: expires,
		Headers: clientHeaders(out.SignedHeader),
	}, nil
}

func presignInput(bucket, key string, acl s3types.ObjectCannedACL) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		ACL:    acl,
	}
}

// expiresFromSeconds converts a client supplied lifetime. Values past the
// maximum are capped before the multiplication so they cannot wrap.
func expiresFromSeconds(seconds int64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	if limit := int64(maxExpires / time.Second); seconds > limit {
		return maxExpires
	}
	return time.Duration(seconds) * time.Second
}

func clampExpires(requested, fallback time.Duration) time.Duration {
	if requested <= 0 {
		return fallback
	}
	if requested < minExpires {
		return minExpires
	}
	if requested > maxExpires {
		return maxExpires
	}
	return requested
}

// clientHeaders drops Host, which the browser sets on its own.
func clientHeaders(signed http.Header) map[string]string {
	out := make(map[string]string, len(signed))
	for name, values := range signed {
		if strings.EqualFold(name, "Host") || len(values) == 0 {
			continue
		}
		out[name] = values[0]
	}
	return out
}
