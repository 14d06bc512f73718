package dashboard

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	template "github.com/goliatone/go-template"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

//go:embed templates/*.html templates/**/*.html
var embeddedTemplates embed.FS

// pageTemplates are the files a template directory override must provide.
var pageTemplates = []string{
	defaultPageTemplate,
	"partials/card.html",
	"partials/header.html",
	"partials/sidebar.html",
}

// NewTemplateRenderer builds the pongo2 renderer for the dashboard page. An
// empty dir uses the embedded templates; otherwise dir must hold the page and
// its partials.
func NewTemplateRenderer(dir string) (Renderer, error) {
	source, base, err := templateSource(dir)
	if err != nil {
		return nil, err
	}
	return template.NewRenderer(
		template.WithFS(source),
		template.WithBaseDir(base),
		template.WithExtension(".html"),
	)
}

func templateSource(dir string) (fs.FS, string, error) {
	if dir == "" {
		return embeddedTemplates, "templates", nil
	}
	source := os.DirFS(dir)
	for _, name := range pageTemplates {
		if _, err := fs.Stat(source, name); err != nil {
			return nil, "", fmt.Errorf("dashboard: template dir %s: %w", dir, err)
		}
	}
	return source, ".", nil
}
