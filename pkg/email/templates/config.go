package templates

// Config selects where email templates are read from.
// An empty Dir uses the embedded templates.
type Config struct {
	Dir       string `env:"MAIL_TEMPLATES_DIR"`
	CacheSize int    `env:"MAIL_TEMPLATES_CACHE_SIZE" envDefault:"64"`
}

// NewStore builds the cached store described by cfg.
func NewStore(cfg Config) *CachedStore {
	var base Store
	if cfg.Dir != "" {
		base = NewDirStore(cfg.Dir)
	} else {
		base = NewFSStore(Embedded())
	}
	return NewCachedStore(base, cfg.CacheSize)
}
