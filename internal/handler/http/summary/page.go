package summary

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"scholarscope/internal/domain/entity"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type modelOption struct {
	ID       string
	Label    string
	Selected bool
}

type pageData struct {
	MaxFiles int
	Options  []modelOption
}

// modelOptions lists the dropdown entries with the catalog default selected.
func modelOptions(catalog entity.ModelCatalog) []modelOption {
	def := catalog.Default()
	models := catalog.Models()
	opts := make([]modelOption, 0, len(models))
	for _, m := range models {
		opts = append(opts, modelOption{ID: m.ID, Label: m.Label(), Selected: m == def})
	}
	return opts
}

// PageHandler renders the upload form.
type PageHandler struct {
	Svc Runner
}

// ServeHTTP renders the upload page
// @Summary      Upload page
// @Tags         summaries
// @Produce      html
// @Success      200 {string} string "HTML page"
// @Router       / [get]
func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg := h.Svc.Config()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{
		MaxFiles: cfg.MaxFiles,
		Options:  modelOptions(cfg.Models),
	}); err != nil {
		slog.Error("page: failed to render", slog.Any("error", err))
	}
}
