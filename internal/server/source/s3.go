package source

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sentinelx/breachwatch/internal/server/config"
)

// LoadCatalogFromS3 fetches the simulated catalog object from an
// S3-compatible store (MinIO in development). Returns an error when the
// bucket is not configured; callers fall back to the embedded catalog.
func LoadCatalogFromS3(ctx context.Context, cfg *config.Config) (Catalog, error) {

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 catalog bucket not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &cfg.S3Bucket,
		Key:    &cfg.S3CatalogKey,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 catalog fetch error: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 catalog read error: %w", err)
	}

	return ParseCatalog(data)
}
