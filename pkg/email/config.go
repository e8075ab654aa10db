package email

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by MAIL_PROVIDER.
const (
	ProviderPostmark = "postmark"
	ProviderSES      = "ses"
	ProviderDev      = "dev"
)

// Config holds email service configuration. Only the fields of the selected
// provider are required.
type Config struct {
	Provider     string `env:"MAIL_PROVIDER" envDefault:"dev"`
	SenderEmail  string `env:"SENDER_EMAIL" envDefault:"noreply@staka-livres.fr"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"contact@staka-livres.fr"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SESRegion          string `env:"SES_REGION" envDefault:"eu-west-3"`
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
	SESEndpoint        string `env:"SES_ENDPOINT"`
	SESConfigSet       string `env:"SES_CONFIGURATION_SET"`

	DevOutputDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// NewSender builds the EmailSender selected by cfg.Provider.
func NewSender(ctx context.Context, cfg Config) (EmailSender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderPostmark:
		return NewPostmarkClient(cfg)
	case ProviderSES:
		return NewSESClient(ctx, cfg)
	case ProviderDev, "":
		return NewDevSender(cfg.DevOutputDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func validateSenderIdentity(cfg Config) error {
	if cfg.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" {
		return fmt.Errorf("%w: SupportEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SupportEmail) {
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
