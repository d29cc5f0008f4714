// Package catalog holds the hard-coded course catalog: the courses offered,
// their units and topics, and the PDF cards shown on each course page.
package catalog

import (
	"fmt"
	"strings"

	"github.com/srazzak/tutorsite/internal/contenttree"
)

// Topic is one convertible document.
type Topic struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	File   string `json:"file"`
	// Discriminator selects the subdirectory within the course's tree.
	Discriminator string `json:"discriminator,omitempty"`
}

// Unit groups topics under a heading such as "Chapter One" or "Unit 7".
type Unit struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Topics   []Topic `json:"topics"`
}

// PDFCard is a downloadable set of notes. Pages is the static label shown
// when File is absent from the PDF root.
type PDFCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Pages       string `json:"pages"`
	File        string `json:"file,omitempty"`
}

// Course is one catalog page.
type Course struct {
	Level    string `json:"level"`
	Paper    string `json:"paper"`
	Badge    string `json:"badge"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Tagline  string `json:"tagline"`
	Accent   string `json:"accent"`
	// Intro is markdown rendered under the hero.
	Intro string `json:"intro,omitempty"`

	Tree contenttree.Kind `json:"tree,omitempty"`
	// MaterialsHeading titles the units or PDF section.
	MaterialsHeading string    `json:"materialsHeading,omitempty"`
	Units            []Unit    `json:"units,omitempty"`
	Extras           *Unit     `json:"extras,omitempty"`
	PDFs             []PDFCard `json:"pdfs,omitempty"`
	ComingSoon       bool      `json:"comingSoon,omitempty"`
}

// Slug is the course path, e.g. "olevel/p1".
func (c *Course) Slug() string { return c.Level + "/" + c.Paper }

// Path is the site route of the course page.
func (c *Course) Path() string { return "/" + c.Slug() }

// TopicCount counts topics across units and extras.
func (c *Course) TopicCount() int {
	n := 0
	for _, u := range c.allUnits() {
		n += len(u.Topics)
	}
	return n
}

func (c *Course) allUnits() []Unit {
	units := c.Units
	if c.Extras != nil {
		units = append(append([]Unit(nil), units...), *c.Extras)
	}
	return units
}

// Ref locates a topic inside the catalog.
type Ref struct {
	Course *Course
	Unit   string
	Topic  Topic
}

// Request is the conversion request for the referenced topic.
func (r Ref) Request() contenttree.DocumentRequest {
	req := contenttree.DocumentRequest{Filename: r.Topic.File}
	switch r.Course.Tree {
	case contenttree.KindOLevelP1:
		req.UnitPath = r.Topic.Discriminator
	case contenttree.KindOLevelP2:
		req.Folder = r.Topic.Discriminator
	case contenttree.KindIntermediate:
		req.Level = r.Topic.Discriminator
	}
	return req
}

func (r Ref) String() string {
	return fmt.Sprintf("%s: %s / %s", r.Course.Badge, r.Unit, r.Topic.Title)
}

// Catalog is an ordered set of courses.
type Catalog struct {
	courses []*Course
	bySlug  map[string]*Course
}

// New builds a catalog from courses, rejecting duplicate slugs.
func New(courses ...*Course) (*Catalog, error) {
	c := &Catalog{bySlug: make(map[string]*Course, len(courses))}
	for _, course := range courses {
		slug := course.Slug()
		if _, dup := c.bySlug[slug]; dup {
			return nil, fmt.Errorf("duplicate course %q", slug)
		}
		c.courses = append(c.courses, course)
		c.bySlug[slug] = course
	}
	return c, nil
}

// Courses returns every course in display order.
func (c *Catalog) Courses() []*Course { return c.courses }

// Lookup finds a course by slug. Leading and trailing slashes are ignored.
func (c *Catalog) Lookup(slug string) (*Course, bool) {
	course, ok := c.bySlug[strings.Trim(strings.ToLower(slug), "/")]
	return course, ok
}

// Level returns the courses of one level, e.g. "olevel".
func (c *Catalog) Level(level string) []*Course {
	var out []*Course
	for _, course := range c.courses {
		if course.Level == level {
			out = append(out, course)
		}
	}
	return out
}

// Documents lists every convertible topic in the catalog.
func (c *Catalog) Documents() []Ref {
	var refs []Ref
	for _, course := range c.courses {
		if course.Tree == "" {
			continue
		}
		for _, u := range course.allUnits() {
			for _, t := range u.Topics {
				refs = append(refs, Ref{Course: course, Unit: u.Title, Topic: t})
			}
		}
	}
	return refs
}
