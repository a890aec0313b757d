package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/config"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageService() *ImageService {
	s := NewImageService(&config.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "bazaarbuddy",
	})
	s.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }
	return s
}

// stubPresign replaces the AWS seams for the duration of the test.
func stubPresign(t *testing.T, put func(in *s3.PutObjectInput, opts s3.PresignOptions) (*v4.PresignedHTTPRequest, error)) {
	t.Helper()
	origLoad, origNewS3, origNewPre, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject = origLoad, origNewS3, origNewPre, origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		return put(in, po)
	}
}

func TestImageService_NewUpload(t *testing.T) {
	s := newImageService()
	stubPresign(t, func(in *s3.PutObjectInput, po s3.PresignOptions) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "bazaarbuddy", aws.ToString(in.Bucket))
		assert.Equal(t, 15*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/bazaarbuddy/" + aws.ToString(in.Key) + "?X-Amz-Signature=abc"}, nil
	})

	up, err := s.NewUpload(context.Background(), models.Identity{UserID: sellerID})
	require.NoError(t, err)

	keyPattern := regexp.MustCompile(`^products/` + string(sellerID) + `/2024/03/[0-9a-f-]{36}$`)
	assert.Regexp(t, keyPattern, up.Key)
	assert.Contains(t, up.UploadURL, up.Key)
	assert.Equal(t, "http://127.0.0.1:9000/bazaarbuddy/"+up.Key, up.ImageURL)
}

func TestImageService_NewUpload_Disabled(t *testing.T) {
	s := NewImageService(&config.Config{})
	assert.False(t, s.Enabled())

	_, err := s.NewUpload(context.Background(), models.Identity{UserID: sellerID})
	assert.ErrorIs(t, err, common.ErrStorageDisabled)
}

func TestImageService_NewUpload_PresignError(t *testing.T) {
	s := newImageService()
	stubPresign(t, func(*s3.PutObjectInput, s3.PresignOptions) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	})

	_, err := s.NewUpload(context.Background(), models.Identity{UserID: sellerID})
	assert.ErrorContains(t, err, "sign-fail")
}

func TestImageService_getPresignClient(t *testing.T) {
	s := newImageService()
	stubPresign(t, nil)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	pc, err := s.getPresignClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pc)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = s.getPresignClient(context.Background())
	assert.EqualError(t, err, "load-fail")
}

func TestImageService_publicURL(t *testing.T) {
	s := newImageService()
	assert.Equal(t, "http://127.0.0.1:9000/bazaarbuddy/k", s.publicURL("k"))

	s.config.S3PublicBaseURL = "https://cdn.example.com/media/"
	assert.Equal(t, "https://cdn.example.com/media/k", s.publicURL("k"))

	s.config.S3PublicBaseURL = ""
	s.config.S3BaseEndpoint = ""
	assert.Equal(t, "https://bazaarbuddy.s3.us-east-1.amazonaws.com/k", s.publicURL("k"))
}
