package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	appconfig "github.com/noelruault/shepherd/internal/config"
)

// Client wraps AWS service clients
type Client struct {
	Lambda      LambdaAPI
	CloudWatch  CloudWatchAPI
	EventBridge EventBridgeAPI
	STS         *sts.Client
	Region      string

	logger *slog.Logger
}

// NewClient creates a new AWS client from the application configuration
func NewClient(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if creds := cfg.Credentials; creds != nil {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		Lambda:      lambda.NewFromConfig(awsCfg),
		CloudWatch:  cloudwatch.NewFromConfig(awsCfg),
		EventBridge: eventbridge.NewFromConfig(awsCfg),
		STS:         sts.NewFromConfig(awsCfg),
		Region:      awsCfg.Region,
		logger:      logger,
	}, nil
}

// GetRegion returns the configured AWS region
func (c *Client) GetRegion() string {
	return c.Region
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// wrapError prefixes err with op and flattens AWS API errors to
// "code: message" so they read well on the error page.
func wrapError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s: %s", op, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%s: %w", op, err)
}
