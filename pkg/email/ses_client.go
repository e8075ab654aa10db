package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

const sesCharset = "UTF-8"

// SESAPI is the subset of the SES client used by the sender.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESOption configures the SES sender.
type SESOption func(*sesOptions)

type sesOptions struct {
	api SESAPI
}

// WithSESAPI injects a pre-built SES client, mainly for tests.
func WithSESAPI(api SESAPI) SESOption {
	return func(o *sesOptions) {
		o.api = api
	}
}

type sesClient struct {
	api    SESAPI
	config Config
}

// NewSESClient creates an Amazon SES backed email sender. Static credentials
// are used when both key fields are set; otherwise the default AWS chain applies.
func NewSESClient(ctx context.Context, cfg Config, opts ...SESOption) (EmailSender, error) {
	if cfg.SESRegion == "" {
		return nil, fmt.Errorf("%w: SESRegion is required", ErrInvalidConfig)
	}
	if err := validateSenderIdentity(cfg); err != nil {
		return nil, err
	}

	options := &sesOptions{}
	for _, opt := range opts {
		opt(options)
	}

	api := options.api
	if api == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.SESRegion),
		}
		if cfg.SESAccessKeyID != "" && cfg.SESSecretAccessKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.SESAccessKeyID,
					cfg.SESSecretAccessKey,
					"",
				)),
			)
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %v", ErrInvalidConfig, err)
		}

		api = ses.NewFromConfig(awsConfig, func(o *ses.Options) {
			if cfg.SESEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.SESEndpoint)
			}
		})
	}

	return &sesClient{api: api, config: cfg}, nil
}

// SES message tag values only allow this character set.
var sesTagValue = regexp.MustCompile(`[^a-zA-Z0-9_\-.@]`)

func (c *sesClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source: aws.String(c.config.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.SendTo},
		},
		ReplyToAddresses: []string{c.config.SupportEmail},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(params.Subject), Charset: aws.String(sesCharset)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(params.BodyHTML), Charset: aws.String(sesCharset)},
			},
		},
	}
	if c.config.SESConfigSet != "" {
		input.ConfigurationSetName = aws.String(c.config.SESConfigSet)
	}
	if tag := sesTagValue.ReplaceAllString(params.Tag, ""); tag != "" {
		input.Tags = []types.MessageTag{{Name: aws.String("job_type"), Value: aws.String(tag)}}
	}

	if _, err := c.api.SendEmail(ctx, input); err != nil {
		return classifySESError(err)
	}
	return nil
}

func classifySESError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("ses error: %s - %s", apiErr.ErrorCode(), apiErr.ErrorMessage()),
		)
	}
	return errors.Join(ErrFailedToSendEmail, err)
}
