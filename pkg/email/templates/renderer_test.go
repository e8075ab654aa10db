package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakalivres/notifymail/pkg/email/templates"
)

func TestHandlebarsRenderer_Render(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := templates.NewHandlebarsRenderer(4)

	tests := []struct {
		name   string
		source string
		vars   map[string]any
		want   string
	}{
		{"variable", "<h1>{{title}}</h1>", map[string]any{"title": "Nouveau message client"}, "<h1>Nouveau message client</h1>"},
		{"escapes html", "{{message}}", map[string]any{"message": "<b>x</b>"}, "&lt;b&gt;x&lt;/b&gt;"},
		{"triple braces keep html", "{{{message}}}", map[string]any{"message": "<b>x</b>"}, "<b>x</b>"},
		{"conditional", "{{#if actionUrl}}link{{else}}none{{/if}}", map[string]any{}, "none"},
		{"missing variable renders empty", "[{{from}}]", nil, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(ctx, tt.source, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandlebarsRenderer_ParseError(t *testing.T) {
	t.Parallel()

	r := templates.NewHandlebarsRenderer(4)
	_, err := r.Render(context.Background(), "{{#if title}}unclosed", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, templates.ErrRenderFailed)
}

func TestHandlebarsRenderer_Partials(t *testing.T) {
	t.Parallel()

	r := templates.NewHandlebarsRenderer(4, templates.WithPartials(map[string]string{
		"footer": "<footer>{{supportUrl}}</footer>",
	}))
	got, err := r.Render(context.Background(), "<p>{{title}}</p>{{> footer}}", map[string]any{
		"title":      "T",
		"supportUrl": "mailto:contact@staka-livres.fr",
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>T</p><footer>mailto:contact@staka-livres.fr</footer>", got)
}

func TestEmbeddedTemplate_Renders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src, err := templates.NewStore(templates.Config{}).Read(ctx, "admin-message.hbs")
	require.NoError(t, err)

	html, err := templates.NewHandlebarsRenderer(4).Render(ctx, src, map[string]any{
		"title":        "Nouveau message client",
		"message":      "Bonjour",
		"dashboardUrl": "http://localhost:3001/admin",
		"createdAt":    "01/03/2024 à 11:00",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Nouveau message client")
	assert.Contains(t, html, "http://localhost:3001/admin")
	assert.Contains(t, html, "01/03/2024 à 11:00")
}
