// Package blobstore stores proof-of-maintenance attachments in an
// S3-compatible bucket and hands back publicly retrievable URLs.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store is the attachment storage contract used by the portal services.
type Store interface {
	// Upload stores the body and returns a retrievable URL.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	// Delete removes the object behind a stored URL (or a bare key).
	Delete(ctx context.Context, urlOrKey string) error
}

// S3Store implements Store on top of an S3 bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3Store from the ambient AWS configuration.
func NewS3Store(ctx context.Context, bucket, publicBaseURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload writes the object under a collision-free key and returns its URL.
func (s *S3Store) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectName(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object for the given URL or key.
func (s *S3Store) Delete(ctx context.Context, urlOrKey string) error {
	key := KeyFromURL(urlOrKey)
	if key == "" {
		return fmt.Errorf("no object key in %q", urlOrKey)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// ObjectName builds a unique object key for an uploaded file, keeping the
// original filename visible for operators browsing the bucket.
func ObjectName(filename string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '#', ' ':
			return '_'
		}
		return r
	}, filename)
	return uuid.NewString() + "_" + sanitized
}

// KeyFromURL extracts the object key from a stored public URL: the last path
// segment, with any query string stripped. A bare key passes through as-is.
func KeyFromURL(u string) string {
	parts := strings.Split(u, "/")
	last := parts[len(parts)-1]
	if i := strings.Index(last, "?"); i >= 0 {
		last = last[:i]
	}
	return last
}
