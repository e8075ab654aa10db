// Package templates stores and renders the Handlebars email templates.
//
// A Store answers Exists and Read by name. FSStore reads from any fs.FS
// (a directory or the embedded defaults), MapStore keeps sources in memory,
// and CachedStore puts an LRU cache in front of another store.
//
// HandlebarsRenderer renders a source against a variable map:
//
//	store := templates.NewStore(templates.Config{Dir: "./templates"})
//	src, err := store.Read(ctx, "admin-message.hbs")
//	html, err := templates.NewHandlebarsRenderer(64).Render(ctx, src, vars)
//
// Variables are HTML-escaped unless the template uses triple braces.
package templates
