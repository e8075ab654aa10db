package mailnotify

import (
	"strings"
	"time"

	"github.com/stakalivres/notifymail/pkg/notifications"
)

const (
	DefaultAdminEmail   = "admin@staka-livres.fr"
	DefaultBaseURL      = "http://localhost:3001"
	DefaultSupportEmail = "contact@staka-livres.fr"
	DefaultDedupWindow  = 2 * time.Minute
)

// Config holds listener settings. Empty values fall back to the package
// defaults, so a missing variable is never an error.
type Config struct {
	AdminEmail   string `env:"ADMIN_EMAIL" envDefault:"admin@staka-livres.fr"`
	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:3001"`
	AppURL       string `env:"APP_URL" envDefault:"http://localhost:3001"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"contact@staka-livres.fr"`

	// UserEmailTypes is the allow-list of types the user listener emails.
	UserEmailTypes []string `env:"USER_EMAIL_TYPES" envSeparator:"," envDefault:"MESSAGE,ORDER,PAYMENT,CONSULTATION,SYSTEM"`

	ClientDedupWindow   time.Duration `env:"CLIENT_DEDUP_WINDOW" envDefault:"2m"`
	ClientDedupCapacity int           `env:"CLIENT_DEDUP_CAPACITY" envDefault:"10000"`

	// TemplateCatalog is an optional YAML file overriding template names.
	TemplateCatalog string `env:"MAIL_TEMPLATE_CATALOG"`
}

// DefaultUserEmailTypes are the types emailed to users when no allow-list
// is configured.
func DefaultUserEmailTypes() []notifications.Type {
	return []notifications.Type{
		notifications.TypeMessage,
		notifications.TypeOrder,
		notifications.TypePayment,
		notifications.TypeConsultation,
		notifications.TypeSystem,
	}
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.AdminEmail) == "" {
		c.AdminEmail = DefaultAdminEmail
	}
	if strings.TrimSpace(c.FrontendURL) == "" {
		c.FrontendURL = DefaultBaseURL
	}
	if strings.TrimSpace(c.AppURL) == "" {
		c.AppURL = DefaultBaseURL
	}
	if strings.TrimSpace(c.SupportEmail) == "" {
		c.SupportEmail = DefaultSupportEmail
	}
	if c.ClientDedupWindow <= 0 {
		c.ClientDedupWindow = DefaultDedupWindow
	}
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	return c
}

// userTypes returns the allow-list as a set. Entries are trimmed and
// upper-cased; an empty list means the defaults.
func (c Config) userTypes() map[notifications.Type]struct{} {
	set := make(map[notifications.Type]struct{})
	for _, s := range c.UserEmailTypes {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			set[notifications.Type(s)] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, t := range DefaultUserEmailTypes() {
			set[t] = struct{}{}
		}
	}
	return set
}
