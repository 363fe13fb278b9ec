package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/blogi/blogi-api/internal/logger"
)

// presignExpiry is how long minted upload URLs stay valid.
const presignExpiry = time.Hour

// S3Facade implements presigned upload URLs against an S3 bucket.
type S3Facade struct {
	presign *s3.PresignClient
	bucket  string
	region  string
}

// NewS3Facade builds an S3 presign client from static credentials.
func NewS3Facade(ctx context.Context, accessKeyID, secretAccessKey, region, bucket string) (*S3Facade, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		logger.Log.Errorw("failed to load AWS config", "error", err)
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &S3Facade{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		region:  region,
	}, nil
}

// PresignPut mints a presigned PUT URL for the given object key.
func (f *S3Facade) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := f.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		logger.Log.Errorw("failed to presign PUT", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}

	return req.URL, nil
}

// FileURL returns the public URL the object will be readable from.
func (f *S3Facade) FileURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", f.bucket, f.region, key)
}
