package photosource

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"potatoapi/internal/config"
)

// NewS3Client builds an S3 client from the seed settings. A custom endpoint
// switches to path-style addressing so MinIO and other S3 clones work.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Lister turns the objects under a bucket prefix into public photo URLs.
type S3Lister struct {
	client  s3.ListObjectsV2APIClient
	bucket  string
	prefix  string
	baseURL string
}

// NewS3Lister creates a lister; baseURL is prepended to every object key.
func NewS3Lister(client s3.ListObjectsV2APIClient, bucket, prefix, baseURL string) *S3Lister {
	return &S3Lister{client: client, bucket: bucket, prefix: prefix, baseURL: baseURL}
}

// URLs walks every page of the listing. Directory placeholder keys are skipped.
func (l *S3Lister) URLs(ctx context.Context) ([]string, error) {
	if l.bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(l.bucket)}
	if l.prefix != "" {
		input.Prefix = aws.String(l.prefix)
	}

	var urls []string
	paginator := s3.NewListObjectsV2Paginator(l.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects in %s: %w", l.bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			urls = append(urls, l.objectURL(key))
		}
	}
	return urls, nil
}

func (l *S3Lister) objectURL(key string) string {
	if l.baseURL == "" {
		return fmt.Sprintf("s3://%s/%s", l.bucket, key)
	}
	return strings.TrimRight(l.baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
