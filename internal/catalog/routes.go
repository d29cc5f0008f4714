package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type courseSummary struct {
	Slug       string `json:"slug"`
	Path       string `json:"path"`
	Badge      string `json:"badge"`
	Title      string `json:"title"`
	Topics     int    `json:"topics"`
	PDFs       int    `json:"pdfs"`
	ComingSoon bool   `json:"comingSoon,omitempty"`
}

type courseDetail struct {
	*Course
	PDFs []PDFCard `json:"pdfs,omitempty"`
}

// RegisterRoutes mounts the catalog API under /api/catalog.
func RegisterRoutes(r chi.Router, cat *Catalog, pages *PageCounter) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", handleList(cat))
		r.Get("/{level}/{paper}", handleCourse(cat, pages))
	})
}

func handleList(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]courseSummary, 0, len(cat.Courses()))
		for _, c := range cat.Courses() {
			out = append(out, courseSummary{
				Slug:       c.Slug(),
				Path:       c.Path(),
				Badge:      c.Badge,
				Title:      c.Title,
				Topics:     c.TopicCount(),
				PDFs:       len(c.PDFs),
				ComingSoon: c.ComingSoon,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleCourse(cat *Catalog, pages *PageCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "level") + "/" + chi.URLParam(r, "paper")
		c, ok := cat.Lookup(slug)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Course not found"})
			return
		}

		cards := make([]PDFCard, len(c.PDFs))
		for i, card := range c.PDFs {
			card.Pages = pages.Label(card)
			cards[i] = card
		}
		writeJSON(w, http.StatusOK, courseDetail{Course: c, PDFs: cards})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
