package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/service"
)

// ExtraPageHandler serves an extra's markdown body as a rendered HTML page.
type ExtraPageHandler struct {
	extrasService service.ExtrasService
	parser        goldmark.Markdown
	template      *template.Template
}

// extraPageData holds template data for rendered extra pages.
type extraPageData struct {
	Title   string
	Kind    content.ExtraKind
	URL     string
	Tags    []string
	Updated string
	Content template.HTML
}

// NewExtraPageHandler creates a new handler for rendering extras.
func NewExtraPageHandler(extrasService service.ExtrasService) *ExtraPageHandler {
	tmpl := template.Must(template.New("extra").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e2e8f0;
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      font-size: 2rem;
    }
    pre {
      background: #f1f5f9;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
    }
    blockquote {
      border-left: 4px solid #60a5fa;
      padding-left: 1rem;
      margin-left: 0;
    }
    .meta {
      color: #64748b;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
    .tag {
      display: inline-block;
      background: #e0e7ff;
      border-radius: 6px;
      padding: 0 6px;
      margin-right: 4px;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Kind}} &middot; updated {{.Updated}}{{if .URL}} &middot; <a href="{{.URL}}">source</a>{{end}}</p>
    {{if .Tags}}<p>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>{{end}}
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &ExtraPageHandler{
		extrasService: extrasService,
		// Raw HTML in bodies is not rendered.
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP handles GET /extras/{id}.
func (h *ExtraPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	extra, err := h.extrasService.Get(ctx, id)
	if err != nil {
		switch {
		case isClientError(err):
			logger.InfoContext(ctx, "extra page not available", "id", id, "error", err)
			http.Error(w, "extra not found", http.StatusNotFound)
		default:
			logger.ErrorContext(ctx, "failed to load extra", "id", id, "error", err)
			http.Error(w, "failed to load extra", http.StatusBadGateway)
		}
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(extra.Body))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "id", id, "error", err)
		http.Error(w, "failed to render extra", http.StatusInternalServerError)
		return
	}

	pageData := extraPageData{
		Title:   extra.Title,
		Kind:    extra.Kind,
		URL:     extra.URL,
		Tags:    extra.Tags,
		Updated: extra.UpdatedAt.UTC().Format("2006-01-02"),
		Content: template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute extra template", "id", id, "error", err)
		http.Error(w, "failed to render extra", http.StatusInternalServerError)
		return
	}
}

func (h *ExtraPageHandler) renderMarkdown(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
