package site

import (
	"strings"

	"github.com/srazzak/tutorsite/internal/catalog"
)

// NavTree is the navigation bar: a home link, one dropdown per course level
// and a contact link.
type NavTree struct {
	Groups []*NavGroup
}

// NavGroup is a dropdown of courses sharing a level.
type NavGroup struct {
	Level string
	Title string
	Items []NavItem
}

// NavItem is one link in a dropdown.
type NavItem struct {
	Title string
	Path  string
}

// BuildNav groups courses by level, keeping catalog order.
func BuildNav(courses []*catalog.Course) *NavTree {
	t := &NavTree{}
	byLevel := make(map[string]*NavGroup)
	for _, c := range courses {
		g, ok := byLevel[c.Level]
		if !ok {
			g = &NavGroup{Level: c.Level, Title: formatLevelName(c.Level)}
			byLevel[c.Level] = g
			t.Groups = append(t.Groups, g)
		}
		g.Items = append(g.Items, NavItem{Title: navTitle(c), Path: c.Path()})
	}
	return t
}

// Active reports whether the group contains the page at path.
func (g *NavGroup) Active(path string) bool {
	return activeLevel(path) == g.Level
}

// activeLevel returns the first path segment, so "/olevel/p2" yields "olevel".
func activeLevel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return parts[0]
}

// navTitle is the short dropdown label, e.g. "P1" or "XI".
func navTitle(c *catalog.Course) string {
	return strings.ToUpper(c.Paper)
}

// formatLevelName converts a level slug to its display name. Unknown slugs
// are title-cased on hyphens and underscores.
func formatLevelName(level string) string {
	switch level {
	case "olevel":
		return "O Level"
	case "alevel":
		return "A Level"
	}
	words := strings.FieldsFunc(level, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
