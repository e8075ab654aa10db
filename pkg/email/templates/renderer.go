package templates

import (
	"context"
	"fmt"

	"github.com/aymerick/raymond"

	"github.com/stakalivres/notifymail/pkg/cache"
)

// Renderer turns a template source and its variables into HTML.
type Renderer interface {
	Render(ctx context.Context, source string, vars map[string]any) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, source string, vars map[string]any) (string, error)

func (f RendererFunc) Render(ctx context.Context, source string, vars map[string]any) (string, error) {
	return f(ctx, source, vars)
}

// HandlebarsRenderer renders Handlebars (.hbs) sources. Parsed templates are
// cached by source text.
type HandlebarsRenderer struct {
	parsed   *cache.LRUCache[string, *raymond.Template]
	partials map[string]string
}

// HandlebarsOption configures a HandlebarsRenderer.
type HandlebarsOption func(*HandlebarsRenderer)

// WithPartials registers partials available to every template.
func WithPartials(partials map[string]string) HandlebarsOption {
	return func(r *HandlebarsRenderer) {
		for name, src := range partials {
			r.partials[name] = src
		}
	}
}

// NewHandlebarsRenderer creates a renderer keeping up to cacheSize parsed templates.
func NewHandlebarsRenderer(cacheSize int, opts ...HandlebarsOption) *HandlebarsRenderer {
	if cacheSize <= 0 {
		cacheSize = 64
	}
	r := &HandlebarsRenderer{
		parsed:   cache.NewLRUCache[string, *raymond.Template](cacheSize),
		partials: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *HandlebarsRenderer) Render(_ context.Context, source string, vars map[string]any) (string, error) {
	tpl, ok := r.parsed.Get(source)
	if !ok {
		var err error
		tpl, err = raymond.Parse(source)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}
		if len(r.partials) > 0 {
			tpl.RegisterPartials(r.partials)
		}
		r.parsed.Put(source, tpl)
	}

	if vars == nil {
		vars = map[string]any{}
	}
	out, err := tpl.Exec(vars)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return out, nil
}
