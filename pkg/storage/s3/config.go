package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
)

// newClient builds an S3 client for any S3-compatible endpoint.
// Retries are disabled: a failed request is reported to the caller as is.
func newClient(ctx context.Context, cfg config.ClientConfig, optFns ...func(*s3.Options)) (*s3.Client, error) {
	creds := cfg.Credentials()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region()),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				creds.AccessKeyID,
				creds.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint())
			o.UsePathStyle = cfg.PathStyle()
			o.RetryMaxAttempts = 1
			// many S3-compatible providers reject the default trailing checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		},
	}
	opts = append(opts, optFns...)

	return s3.NewFromConfig(awsCfg, opts...), nil
}
