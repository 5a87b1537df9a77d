package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ReportArchive uploads generated export files to S3 so reports survive
// outside the small key-value quota.
type ReportArchive struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewReportArchive(region, bucket, accessKeyID, secretAccessKey, baseURL string) *ReportArchive {
	var cfg aws.Config
	var err error

	// Static credentials when provided, default chain otherwise.
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &ReportArchive{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores one export file under reports/<date>/<uuid><ext> and
// returns its public URL.
func (a *ReportArchive) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("reports/%s/%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report archive: %w", err)
	}

	if a.baseURL != "" {
		return fmt.Sprintf("%s/%s", a.baseURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.client.Options().Region, key), nil
}
