package httpapi

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/project"
	"github.com/koltukutsu/listele/pkg/async"
	"github.com/koltukutsu/listele/pkg/clientip"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	defaultThemeColor = "#6366f1"
	defaultButtonText = "Listeye Katıl"
)

type pageData struct {
	ProjectID  string
	Config     project.Config
	ThemeColor template.CSS
	ButtonText string
}

// publicPage renders a published landing page by slug. The visit is recorded
// after the response, detached from the request: a slow or failing counter
// write must never cost a page view.
func (h *handlers) publicPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.Public.GetPublishedBySlug(r.Context(), slug)
	if errors.Is(err, project.ErrNotFound) {
		h.renderNotFound(w)
		return
	}
	if err != nil {
		h.Log.Error("page lookup failed", slog.String("slug", slug), slog.Any("error", err))
		h.renderNotFound(w)
		return
	}

	projectID := p.ID
	async.Run(h.Log, "record-visit", func(ctx context.Context) error {
		return h.Public.RecordVisit(ctx, projectID)
	})

	data := pageData{
		ProjectID:  p.ID,
		Config:     p.Config,
		ThemeColor: template.CSS(defaultThemeColor),
		ButtonText: defaultButtonText,
	}
	if p.Config.ThemeColor != "" {
		data.ThemeColor = template.CSS(p.Config.ThemeColor)
	}
	if p.Config.ButtonText != "" {
		data.ButtonText = p.Config.ButtonText
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "page.html", data); err != nil {
		h.Log.Error("page render failed", slog.String("slug", slug), slog.Any("error", err))
	}
}

func (h *handlers) renderNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = pageTemplates.ExecuteTemplate(w, "notfound.html", nil)
}

// captureLead accepts a public form submission. Works with both the JSON
// fetch from the rendered page and a plain form post.
func (h *handlers) captureLead(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var sub lead.Submission
	switch {
	case strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
			return
		}
		sub = lead.Submission{
			Name:  r.PostFormValue("name"),
			Email: r.PostFormValue("email"),
			Phone: r.PostFormValue("phone"),
		}
	default:
		if err := decodeJSON(r, &sub); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
			return
		}
	}

	meta := lead.CaptureMeta{
		IP:        clientip.GetIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}

	l, err := h.Leads.Capture(r.Context(), projectID, sub, meta)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	respondJSON(w, http.StatusCreated, l)
}
