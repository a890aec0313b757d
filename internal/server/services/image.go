package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/config"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload is a one-off permission to PUT a product image.
type ImageUpload struct {
	Key       string
	UploadURL string
	// ImageURL is where the object is readable once uploaded.
	ImageURL string
}

// ImageService hands out presigned S3 upload URLs for product images.
type ImageService struct {
	config *config.Config
	now    func() time.Time
}

func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{config: cfg, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *ImageService) Enabled() bool {
	return s.config.S3Bucket != ""
}

func (s *ImageService) storageKey(owner models.UserID) string {
	d := s.now().UTC()
	return fmt.Sprintf("products/%s/%04d/%02d/%s", owner, d.Year(), int(d.Month()), uuid.New())
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// NewUpload presigns a PUT for a fresh key under the caller's prefix.
func (s *ImageService) NewUpload(ctx context.Context, caller models.Identity) (*ImageUpload, error) {
	if !s.Enabled() {
		return nil, common.ErrStorageDisabled
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := s.storageKey(caller.UserID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	return &ImageUpload{Key: key, UploadURL: req.URL, ImageURL: s.publicURL(key)}, nil
}

// publicURL prefers the configured public base. Without one it falls back to
// path-style addressing on the endpoint, then to the AWS virtual-host form.
func (s *ImageService) publicURL(key string) string {
	switch {
	case s.config.S3PublicBaseURL != "":
		u, err := url.JoinPath(s.config.S3PublicBaseURL, key)
		if err == nil {
			return u
		}
		return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
	case s.config.S3BaseEndpoint != "":
		return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.S3Bucket, s.config.S3Region, key)
	}
}
