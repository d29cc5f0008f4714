// Package site renders the server-side pages: the home page, one page per
// course and the contact page. Course pages embed the document viewer.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/srazzak/tutorsite/internal/catalog"
	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/logger"
)

//go:embed static
var staticFiles embed.FS

const siteName = "Saqib Razzak"

// Site serves the HTML pages.
type Site struct {
	cat    *catalog.Catalog
	routes map[contenttree.Kind]string
	pages  *catalog.PageCounter
	log    *logger.Logger
	nav    *NavTree
	md     goldmark.Markdown

	home    *template.Template
	course  *template.Template
	contact *template.Template
}

// pageData is shared by every page template.
type pageData struct {
	Title    string
	SiteName string
	Path     string
	Nav      *NavTree
}

type topicView struct {
	catalog.Topic
	Route string
}

type unitView struct {
	Title    string
	Subtitle string
	Topics   []topicView
}

type pdfView struct {
	catalog.PDFCard
	Label string
}

type coursePage struct {
	pageData
	Course *catalog.Course
	Intro  template.HTML
	Units  []unitView
	PDFs   []pdfView
}

type levelView struct {
	Title   string
	Courses []*catalog.Course
}

type homePage struct {
	pageData
	Levels []levelView
}

type contactPage struct {
	pageData
	Courses []*catalog.Course
}

// New parses the templates. reg supplies the conversion route of each tree;
// pages may be nil, in which case PDF cards show their static labels.
func New(cat *catalog.Catalog, reg *contenttree.Registry, pages *catalog.PageCounter, log *logger.Logger) (*Site, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Site{
		cat:    cat,
		routes: make(map[contenttree.Kind]string),
		pages:  pages,
		log:    log,
		nav:    BuildNav(cat.Courses()),
		md:     newMarkdown(),
	}
	for _, t := range reg.Trees() {
		s.routes[t.Kind] = t.Route
	}

	var err error
	if s.home, err = parsePage("home", homeTemplate); err != nil {
		return nil, err
	}
	if s.course, err = parsePage("course", courseTemplate); err != nil {
		return nil, err
	}
	if s.contact, err = parsePage("contact", contactTemplate); err != nil {
		return nil, err
	}
	return s, nil
}

func parsePage(name, body string) (*template.Template, error) {
	t, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	if _, err := t.New(name).Parse(body); err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return t, nil
}

// RegisterRoutes mounts the pages and the embedded static assets.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	for _, c := range s.cat.Courses() {
		r.Get(c.Path(), s.handleCourse(c))
	}
	r.Get("/contact", s.handleContact)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func (s *Site) page(title, path string) pageData {
	return pageData{Title: title, SiteName: siteName, Path: path, Nav: s.nav}
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	data := homePage{pageData: s.page("Educator & Software Engineer", "/")}
	for _, g := range s.nav.Groups {
		data.Levels = append(data.Levels, levelView{Title: g.Title, Courses: s.cat.Level(g.Level)})
	}
	s.render(w, s.home, data)
}

func (s *Site) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, s.contact, contactPage{
		pageData: s.page("Contact", "/contact"),
		Courses:  s.cat.Courses(),
	})
}

func (s *Site) handleCourse(c *catalog.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intro, err := renderMarkdown(s.md, c.Intro)
		if err != nil {
			s.log.Error("rendering course intro", "course", c.Slug(), "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		data := coursePage{
			pageData: s.page(c.Badge, c.Path()),
			Course:   c,
			Intro:    intro,
		}
		route := s.routes[c.Tree]
		units := c.Units
		if c.Extras != nil {
			units = append(append([]catalog.Unit(nil), units...), *c.Extras)
		}
		for _, u := range units {
			uv := unitView{Title: u.Title, Subtitle: u.Subtitle}
			for _, t := range u.Topics {
				uv.Topics = append(uv.Topics, topicView{Topic: t, Route: route})
			}
			data.Units = append(data.Units, uv)
		}
		for _, card := range c.PDFs {
			data.PDFs = append(data.PDFs, pdfView{PDFCard: card, Label: s.pages.Label(card)})
		}
		s.render(w, s.course, data)
	}
}

func (s *Site) render(w http.ResponseWriter, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.Error("rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
