package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
)

// S3API is the subset of the S3 client used by Images.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Images stores product photos and logos as WebP objects.
type Images struct {
	api     S3API
	bucket  string
	baseURL string
}

func NewS3Client(cfg S3Config) *s3.Client {
	return s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		BaseEndpoint: func() *string {
			if cfg.Endpoint == "" {
				return nil
			}
			return aws.String(cfg.Endpoint)
		}(),
		UsePathStyle: cfg.Endpoint != "",
	})
}

func NewImages(api S3API, cfg S3Config) *Images {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &Images{api: api, bucket: cfg.Bucket, baseURL: base}
}

// Enabled reports whether a bucket is configured.
func (s *Images) Enabled() bool {
	return s != nil && s.api != nil && s.bucket != ""
}

// Upload converts the image and stores it under {shop}/{kind}/{uuid}.webp.
func (s *Images) Upload(ctx context.Context, barbershopID uint, kind string, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", httperr.Upstream("object_store_unavailable", fmt.Errorf("s3 bucket not configured"))
	}

	data, err := ToWebP(r, MaxImageSide)
	if err != nil {
		return "", httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_image", Err: err}
	}

	key := fmt.Sprintf("%d/%s/%s.webp", barbershopID, kind, uuid.NewString())

	if _, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}); err != nil {
		return "", httperr.Upstream("object_store_unavailable", fmt.Errorf("s3 put %s: %w", key, err))
	}

	return s.baseURL + "/" + key, nil
}
