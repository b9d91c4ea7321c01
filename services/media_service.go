package services

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the presigning subset of the S3 presign client.
// *s3.PresignClient satisfies it; tests swap in a stub.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// MediaService resolves stored photo keys into short-lived presigned
// read URLs. Uploads and storage management belong to the media side of
// the platform.
type MediaService struct {
	Presigner PresignAPI
	Bucket    string
}

// NewMediaService builds a MediaService backed by the real S3 presign
// client, using AWS_REGION and S3_BUCKET_NAME from the environment.
func NewMediaService() *MediaService {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)
	return &MediaService{
		Presigner: s3.NewPresignClient(client),
		Bucket:    os.Getenv("S3_BUCKET_NAME"),
	}
}

// PhotoURL generates a presigned URL for reading a stored photo key.
func (ms *MediaService) PhotoURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(ms.Bucket),
		Key:    aws.String(key),
	}
	signed, err := ms.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return signed.URL, nil
}

// PhotoURLs resolves an ordered list of photo keys, skipping keys that
// fail to sign rather than dropping the whole candidate.
func (ms *MediaService) PhotoURLs(ctx context.Context, keys []string) []string {
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := ms.PhotoURL(ctx, key)
		if err != nil {
			log.Printf("⚠️ Failed to presign photo %s: %v", key, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
