package mailnotify

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stakalivres/notifymail/pkg/notifications"
)

type catalogKey struct {
	audience notifications.Audience
	typ      notifications.Type
}

// Catalog maps (audience, notification type) to a template name. It is
// shared by the three listeners and read-only once they are running.
type Catalog struct {
	entries map[catalogKey]string
}

// Audiences lists the audiences that have listeners.
func Audiences() []notifications.Audience {
	return []notifications.Audience{
		notifications.AudienceAdmin,
		notifications.AudienceUser,
		notifications.AudienceClient,
	}
}

// DefaultCatalog maps every audience and type to "<audience>-<type>.hbs",
// for instance "admin-message.hbs".
func DefaultCatalog() *Catalog {
	c := &Catalog{entries: make(map[catalogKey]string)}
	for _, a := range Audiences() {
		for _, t := range notifications.Types() {
			c.entries[catalogKey{a, t}] = DefaultTemplateName(a, t)
		}
	}
	return c
}

// DefaultTemplateName returns the conventional template file name.
func DefaultTemplateName(a notifications.Audience, t notifications.Type) string {
	return string(a) + "-" + strings.ToLower(string(t)) + ".hbs"
}

// Template returns the template configured for the pair.
func (c *Catalog) Template(a notifications.Audience, t notifications.Type) (string, bool) {
	name, ok := c.entries[catalogKey{a, t}]
	return name, ok
}

// Set maps the pair to name. An empty name removes the mapping.
func (c *Catalog) Set(a notifications.Audience, t notifications.Type, name string) {
	if name == "" {
		delete(c.entries, catalogKey{a, t})
		return
	}
	c.entries[catalogKey{a, t}] = name
}

// Len returns the number of mappings.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Missing lists the known types without a template for audience a.
func (c *Catalog) Missing(a notifications.Audience) []notifications.Type {
	var out []notifications.Type
	for _, t := range notifications.Types() {
		if _, ok := c.entries[catalogKey{a, t}]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the distinct template names in the catalog, sorted.
func (c *Catalog) Names() []string {
	names := slices.Collect(maps.Values(c.entries))
	slices.Sort(names)
	return slices.Compact(names)
}

// Clone returns an independent copy.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{entries: maps.Clone(c.entries)}
}

// catalogFile is the YAML layout:
//
//	admin:
//	  MESSAGE: admin-message.hbs
//	user:
//	  ERROR: ""   # disables user emails for ERROR
type catalogFile map[string]map[string]string

// ParseCatalog applies the YAML overrides read from r on top of base and
// returns the result. base is not modified.
func ParseCatalog(r io.Reader, base *Catalog) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	out := base.Clone()
	audiences := slices.Sorted(maps.Keys(file))
	for _, rawAudience := range audiences {
		a := notifications.Audience(strings.ToLower(strings.TrimSpace(rawAudience)))
		if !slices.Contains(Audiences(), a) {
			return nil, fmt.Errorf("%w: %w: %q", ErrInvalidCatalog, notifications.ErrUnknownAudience, rawAudience)
		}
		for rawType, name := range file[rawAudience] {
			t := notifications.Type(strings.ToUpper(strings.TrimSpace(rawType)))
			if t == "" {
				return nil, fmt.Errorf("%w: empty notification type under %q", ErrInvalidCatalog, rawAudience)
			}
			out.Set(a, t, strings.TrimSpace(name))
		}
	}
	return out, nil
}

// LoadCatalog returns the default catalog with the overrides of the YAML
// file at path applied. An empty path returns the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	defer f.Close()
	return ParseCatalog(f, DefaultCatalog())
}
