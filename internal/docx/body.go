package docx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Style names are compared through styleKey, lower-cased with spaces removed,
// so "List Paragraph" and a bare "ListParagraph" id match alike.

// Paragraph styles that map to <p> without a warning.
var quietParagraphStyles = map[string]bool{
	"normal":        true,
	"normal(web)":   true,
	"default":       true,
	"bodytext":      true,
	"nospacing":     true,
	"plaintext":     true,
	"listparagraph": true,
	"listbullet":    true,
	"listnumber":    true,
}

// Character styles that are ignored without a warning.
var quietRunStyles = map[string]bool{
	"defaultparagraphfont": true,
	"hyperlink":            true,
	"strong":               true,
	"emphasis":             true,
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

type converter struct {
	pkg       *opc
	styles    map[string]styleDef
	numbering *numbering
	rels      map[string]relationship
	messages  []Message
	warned    map[string]bool

	// err aborts the conversion; set when a part exceeds the size limit.
	err error
	// floating collects blocks anchored inside the current paragraph, such
	// as text box content, to be placed after it.
	floating []*html.Node
}

// warn records a warning once per key.
func (c *converter) warn(key, text string) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.messages = append(c.messages, Message{Severity: SeverityWarning, Text: text})
}

type paragraph struct {
	node    *html.Node
	list    bool
	level   int
	ordered bool
}

type listFrame struct {
	list    *html.Node
	level   int
	ordered bool
}

// blocks converts body-level children (paragraphs, tables, content controls).
func (c *converter) blocks(children []*xnode) []*html.Node {
	var out []*html.Node
	var stack []listFrame

	for _, n := range children {
		switch n.name.Local {
		case "p":
			p, floating := c.paragraph(n)
			if p.node.FirstChild != nil {
				if p.list {
					out = addListItem(out, &stack, p)
				} else {
					stack = nil
					out = append(out, p.node)
				}
			}
			if len(floating) > 0 {
				stack = nil
				out = append(out, floating...)
			}
		case "tbl":
			stack = nil
			out = append(out, c.table(n))
		case "sdt":
			stack = nil
			out = append(out, c.blocks(n.child("sdtContent").elems())...)
		case "customXml":
			stack = nil
			out = append(out, c.blocks(n.children)...)
		}
	}
	return out
}

// paragraph converts p. It also returns the blocks of any text boxes anchored
// in it, which belong after the paragraph.
func (c *converter) paragraph(p *xnode) (paragraph, []*html.Node) {
	saved := c.floating
	c.floating = nil
	defer func() { c.floating = saved }()

	pPr := p.child("pPr")
	tag := atom.P

	var style styleDef
	if id := pPr.child("pStyle").attr("val"); id != "" {
		style = c.styles["paragraph:"+id]
		name := style.Name
		if name == "" {
			name = id
		}
		tag = c.paragraphTag(id, name)
	}

	el := elem(tag)
	c.inline(el, p.children)
	out := paragraph{node: el}

	numID, level := style.NumID, style.NumILvl
	if np := pPr.child("numPr"); np != nil {
		numID = np.child("numId").attr("val")
		level, _ = strconv.Atoi(np.child("ilvl").attr("val"))
	}
	if numID != "" && numID != "0" && tag == atom.P {
		out.list = true
		out.level = level
		out.ordered = c.numbering.ordered(numID, level)
	}
	return out, c.floating
}

func (c *converter) paragraphTag(id, name string) atom.Atom {
	for _, candidate := range []string{name, id} {
		if m := headingName.FindStringSubmatch(candidate); m != nil {
			return headingAtoms[m[1][0]-'1']
		}
	}
	key := styleKey(name)
	if key == "title" {
		return atom.H1
	}
	if !quietParagraphStyles[key] {
		c.warn("p:"+id, fmt.Sprintf("Unrecognised paragraph style: '%s' (Style ID: %s)", name, id))
	}
	return atom.P
}

// inline converts paragraph-level children into parent.
func (c *converter) inline(parent *html.Node, children []*xnode) {
	for _, n := range children {
		switch n.name.Local {
		case "r":
			c.run(parent, n)
		case "hyperlink":
			c.hyperlink(parent, n)
		case "ins", "moveTo", "smartTag", "customXml", "fldSimple", "bdo", "dir":
			c.inline(parent, n.children)
		case "sdt":
			c.inline(parent, n.child("sdtContent").elems())
		case "AlternateContent":
			c.inline(parent, alternative(n))
		}
	}
}

func (c *converter) run(parent *html.Node, r *xnode) {
	content := c.runContent(r.children)
	if len(content) == 0 {
		return
	}

	rPr := r.child("rPr")
	bold := rPr.toggle("b")
	italic := rPr.toggle("i")
	if id := rPr.child("rStyle").attr("val"); id != "" {
		name := c.styles["character:"+id].Name
		if name == "" {
			name = id
		}
		switch key := styleKey(name); {
		case key == "strong":
			bold = true
		case key == "emphasis":
			italic = true
		case !quietRunStyles[key]:
			c.warn("r:"+id, fmt.Sprintf("Unrecognised run style: '%s' (Style ID: %s)", name, id))
		}
	}

	// Innermost first.
	var wraps []atom.Atom
	switch rPr.child("vertAlign").attr("val") {
	case "superscript":
		wraps = append(wraps, atom.Sup)
	case "subscript":
		wraps = append(wraps, atom.Sub)
	}
	if rPr.toggle("strike") || rPr.toggle("dstrike") {
		wraps = append(wraps, atom.S)
	}
	if italic {
		wraps = append(wraps, atom.Em)
	}
	if bold {
		wraps = append(wraps, atom.Strong)
	}
	for _, a := range wraps {
		w := elem(a)
		for _, n := range content {
			w.AppendChild(n)
		}
		content = []*html.Node{w}
	}

	for _, n := range content {
		appendInline(parent, n)
	}
}

// runContent converts the children of a run. Text box content is queued on
// c.floating rather than returned.
func (c *converter) runContent(children []*xnode) []*html.Node {
	var content []*html.Node
	for _, n := range children {
		switch n.name.Local {
		case "t":
			if n.text != "" {
				content = append(content, text(n.text))
			}
		case "tab":
			content = append(content, text("\t"))
		case "br":
			if t := n.attr("type"); t == "" || t == "textWrapping" {
				content = append(content, elem(atom.Br))
			}
		case "cr":
			content = append(content, elem(atom.Br))
		case "noBreakHyphen":
			content = append(content, text("-"))
		case "AlternateContent":
			content = append(content, c.runContent(alternative(n))...)
		case "drawing", "pict", "object":
			if boxes := n.findAll("txbxContent"); len(boxes) > 0 {
				for _, box := range boxes {
					c.floating = append(c.floating, c.blocks(box.children)...)
				}
				continue
			}
			if img := c.image(n); img != nil {
				content = append(content, img)
			}
		case "footnoteReference":
			c.warn("footnote", "Footnotes are not supported and were skipped")
		case "endnoteReference":
			c.warn("endnote", "Endnotes are not supported and were skipped")
		case "commentReference":
			c.warn("comment", "Comments are not supported and were skipped")
		}
	}
	return content
}

// alternative picks the branch of an mc:AlternateContent to read: the first
// Choice, or the Fallback when the Choice is empty or absent.
func alternative(n *xnode) []*xnode {
	if choice := n.child("Choice"); len(choice.elems()) > 0 {
		return choice.children
	}
	return n.child("Fallback").elems()
}

func (c *converter) hyperlink(parent *html.Node, h *xnode) {
	var href string
	if id := h.attr("id"); id != "" {
		if rel, ok := c.rels[id]; ok && rel.External {
			href = rel.Target
		}
	}
	if anchor := h.attr("anchor"); anchor != "" {
		href += "#" + anchor
	}
	if href == "" || !safeHref(href) {
		c.inline(parent, h.children)
		return
	}

	a := elem(atom.A, html.Attribute{Key: "href", Val: href})
	c.inline(a, h.children)
	if a.FirstChild != nil {
		parent.AppendChild(a)
	}
}

func safeHref(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	}
	return false
}

func (c *converter) image(n *xnode) *html.Node {
	var id string
	if blip := n.find("blip"); blip != nil {
		id = blip.attr("embed")
		if id == "" && blip.hasAttr("link") {
			c.warn("image-link", "Linked images are not supported and were skipped")
			return nil
		}
	} else if data := n.find("imagedata"); data != nil {
		id = data.attr("id")
	}
	if id == "" {
		c.warn("drawing", "Shapes and charts are not supported and were skipped")
		return nil
	}

	rel, ok := c.rels[id]
	if !ok || rel.External {
		c.warn("image:"+id, fmt.Sprintf("Could not find image file for relationship %s", id))
		return nil
	}
	ct, err := contentType(rel.Target)
	if err != nil {
		c.warn("image:"+id, fmt.Sprintf("Image %s skipped: %v", rel.Target, err))
		return nil
	}
	data, found, err := c.pkg.read(rel.Target)
	if errors.Is(err, ErrTooLarge) {
		if c.err == nil {
			c.err = invalid("read "+rel.Target, err)
		}
		return nil
	}
	if !found || err != nil {
		c.warn("image:"+id, fmt.Sprintf("Could not read image file %s", rel.Target))
		return nil
	}

	img := elem(atom.Img, html.Attribute{
		Key: "src",
		Val: "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
	if pr := n.find("docPr"); pr != nil && pr.attr("descr") != "" {
		img.Attr = append(img.Attr, html.Attribute{Key: "alt", Val: pr.attr("descr")})
	}
	return img
}

func (c *converter) table(t *xnode) *html.Node {
	table := elem(atom.Table)

	// above tracks, per grid column, the cell occupying it in the previous row
	// so vertically merged cells can extend its rowspan.
	var above []*html.Node
	for _, tr := range t.childrenNamed("tr") {
		row := elem(atom.Tr)
		var cols []*html.Node

		for _, tc := range tr.childrenNamed("tc") {
			tcPr := tc.child("tcPr")
			span := 1
			if v, err := strconv.Atoi(tcPr.child("gridSpan").attr("val")); err == nil && v > 1 {
				span = v
			}

			if vm := tcPr.child("vMerge"); vm != nil && vm.attr("val") != "restart" {
				col := len(cols)
				if col < len(above) && above[col] != nil {
					cell := above[col]
					bumpRowspan(cell)
					for i := 0; i < span; i++ {
						cols = append(cols, cell)
					}
					continue
				}
			}

			td := elem(atom.Td)
			if span > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(span)})
			}
			for _, b := range c.blocks(tc.children) {
				td.AppendChild(b)
			}
			row.AppendChild(td)
			for i := 0; i < span; i++ {
				cols = append(cols, td)
			}
		}

		above = cols
		table.AppendChild(row)
	}
	return table
}

func bumpRowspan(td *html.Node) {
	for i, a := range td.Attr {
		if a.Key == "rowspan" {
			n, _ := strconv.Atoi(a.Val)
			td.Attr[i].Val = strconv.Itoa(n + 1)
			return
		}
	}
	td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: "2"})
}

func addListItem(out []*html.Node, stack *[]listFrame, p paragraph) []*html.Node {
	s := *stack
	for len(s) > 0 && s[len(s)-1].level > p.level {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1].level == p.level && s[len(s)-1].ordered != p.ordered {
		s = s[:len(s)-1]
	}

	if len(s) == 0 || s[len(s)-1].level < p.level {
		tag := atom.Ul
		if p.ordered {
			tag = atom.Ol
		}
		var list *html.Node
		if len(s) == 0 {
			list = elem(tag)
			out = append(out, list)
		} else {
			parentList := s[len(s)-1].list
			li := parentList.LastChild
			if li == nil {
				li = elem(atom.Li)
				parentList.AppendChild(li)
			}
			// After a skipped level, continue the sublist already under li.
			if last := li.LastChild; last != nil && last.Type == html.ElementNode && last.DataAtom == tag {
				list = last
			} else {
				list = elem(tag)
				li.AppendChild(list)
			}
		}
		s = append(s, listFrame{list: list, level: p.level, ordered: p.ordered})
	}

	li := elem(atom.Li)
	moveChildren(li, p.node)
	s[len(s)-1].list.AppendChild(li)

	*stack = s
	return out
}

var mergeable = map[atom.Atom]bool{
	atom.Strong: true,
	atom.Em:     true,
	atom.S:      true,
	atom.Sup:    true,
	atom.Sub:    true,
}

// appendInline appends n, merging it into an identical formatting element or
// text node immediately before it.
func appendInline(parent, n *html.Node) {
	last := parent.LastChild
	if last != nil {
		if n.Type == html.TextNode && last.Type == html.TextNode {
			last.Data += n.Data
			return
		}
		if n.Type == html.ElementNode && last.Type == html.ElementNode &&
			n.DataAtom == last.DataAtom && mergeable[n.DataAtom] &&
			len(n.Attr) == 0 && len(last.Attr) == 0 {
			for ch := n.FirstChild; ch != nil; {
				next := ch.NextSibling
				n.RemoveChild(ch)
				appendInline(last, ch)
				ch = next
			}
			return
		}
	}
	parent.AppendChild(n)
}

func moveChildren(dst, src *html.Node) {
	for ch := src.FirstChild; ch != nil; {
		next := ch.NextSibling
		src.RemoveChild(ch)
		dst.AppendChild(ch)
		ch = next
	}
}

func styleKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

func elem(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
