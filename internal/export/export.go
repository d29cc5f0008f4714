// Package export turns converted document HTML into other formats for the
// command line: Markdown text and a heading outline.
package export

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Markdown converts an HTML fragment to Markdown.
func Markdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Outline lists the h1-h6 headings of a fragment in document order. Style
// and script elements are ignored.
func Outline(fragment string) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find("style, script").Remove()

	var out []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		level := int(goquery.NodeName(s)[1] - '0')
		out = append(out, Heading{Level: level, Text: text})
	})
	return out, nil
}

// FormatOutline renders headings as an indented list, two spaces per level
// below the shallowest heading present.
func FormatOutline(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	top := 6
	for _, h := range headings {
		if h.Level < top {
			top = h.Level
		}
	}

	var b strings.Builder
	for _, h := range headings {
		b.WriteString(strings.Repeat("  ", h.Level-top))
		b.WriteString("- ")
		b.WriteString(h.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
