// Package docxtest builds small .docx packages in memory for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsD = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"

	nsMC  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsV   = "urn:schemas-microsoft-com:vml"
	nsWPS = "http://schemas.microsoft.com/office/word/2010/wordprocessingShape"

	relHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Numbering ids defined by every built package.
const (
	BulletList   = 1
	NumberedList = 2
)

// Run is a formatted span of text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Strike bool
	Style  string
}

func Text(s string) Run { return Run{Text: s} }
func Bold(s string) Run { return Run{Text: s, Bold: true} }
func Italic(s string) Run { return Run{Text: s, Italic: true} }

type rel struct {
	id, typ, target string
	external        bool
}

// Builder accumulates body XML and package parts.
type Builder struct {
	body   strings.Builder
	styles []string
	rels   []rel
	media  map[string][]byte
}

func New() *Builder {
	return &Builder{media: map[string][]byte{}}
}

// Style declares a paragraph style so it resolves by name.
func (b *Builder) Style(id, name string) *Builder {
	b.styles = append(b.styles, fmt.Sprintf(
		`<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/></w:style>`, esc(id), esc(name)))
	return b
}

// Heading adds a paragraph in the built-in "heading N" style.
func (b *Builder) Heading(level int, text string) *Builder {
	id := fmt.Sprintf("Heading%d", level)
	b.Style(id, fmt.Sprintf("heading %d", level))
	return b.Styled(id, Text(text))
}

// Paragraph adds a Normal paragraph made of runs.
func (b *Builder) Paragraph(runs ...Run) *Builder {
	b.body.WriteString("<w:p>")
	b.writeRuns(runs)
	b.body.WriteString("</w:p>")
	return b
}

// Styled adds a paragraph with the given style id.
func (b *Builder) Styled(styleID string, runs ...Run) *Builder {
	fmt.Fprintf(&b.body, `<w:p><w:pPr><w:pStyle w:val="%s"/></w:pPr>`, esc(styleID))
	b.writeRuns(runs)
	b.body.WriteString("</w:p>")
	return b
}

// ListItem adds a numbered paragraph; numID is BulletList or NumberedList.
func (b *Builder) ListItem(numID, level int, runs ...Run) *Builder {
	fmt.Fprintf(&b.body, `<w:p><w:pPr><w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr></w:pPr>`, level, numID)
	b.writeRuns(runs)
	b.body.WriteString("</w:p>")
	return b
}

// Table adds a table with one text paragraph per cell.
func (b *Builder) Table(rows [][]string) *Builder {
	b.body.WriteString("<w:tbl>")
	for _, row := range rows {
		b.body.WriteString("<w:tr>")
		for _, cell := range row {
			fmt.Fprintf(&b.body, `<w:tc><w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`, esc(cell))
		}
		b.body.WriteString("</w:tr>")
	}
	b.body.WriteString("</w:tbl>")
	return b
}

// Link adds a paragraph holding one external hyperlink.
func (b *Builder) Link(target, text string) *Builder {
	id := fmt.Sprintf("rIdLink%d", len(b.rels)+1)
	b.rels = append(b.rels, rel{id: id, typ: relHyperlink, target: target, external: true})
	fmt.Fprintf(&b.body, `<w:p><w:hyperlink r:id="%s"><w:r><w:t>%s</w:t></w:r></w:hyperlink></w:p>`, id, esc(text))
	return b
}

// Image adds a paragraph with an inline picture stored at word/media/name.
func (b *Builder) Image(name string, data []byte, alt string) *Builder {
	id := fmt.Sprintf("rIdImg%d", len(b.rels)+1)
	b.rels = append(b.rels, rel{id: id, typ: relImage, target: "media/" + name})
	b.media[name] = data
	fmt.Fprintf(&b.body, `<w:p><w:r><w:drawing><wp:inline><wp:docPr id="1" name="%s" descr="%s"/>`+
		`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="%s"/></pic:blipFill></pic:pic>`+
		`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`, esc(name), esc(alt), id)
	return b
}

// TextBox adds a paragraph reading anchor that holds a legacy VML text box
// with one paragraph per entry of lines.
func (b *Builder) TextBox(anchor string, lines ...string) *Builder {
	fmt.Fprintf(&b.body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r><w:r><w:pict>`+
		`<v:shape><v:textbox><w:txbxContent>%s</w:txbxContent></v:textbox></v:shape></w:pict></w:r></w:p>`,
		esc(anchor), paragraphs(lines))
	return b
}

// ShapeTextBox adds a paragraph reading anchor that holds a text box the way
// current Word writes it: a wps shape with a VML fallback of the same text.
func (b *Builder) ShapeTextBox(anchor string, lines ...string) *Builder {
	content := paragraphs(lines)
	fmt.Fprintf(&b.body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r><w:r><mc:AlternateContent>`+
		`<mc:Choice Requires="wps"><w:drawing><wp:anchor><wp:docPr id="2" name="Text Box 1"/>`+
		`<a:graphic><a:graphicData><wps:wsp><wps:txbx><w:txbxContent>%s</w:txbxContent></wps:txbx></wps:wsp>`+
		`</a:graphicData></a:graphic></wp:anchor></w:drawing></mc:Choice>`+
		`<mc:Fallback><w:pict><v:shape><v:textbox><w:txbxContent>%s</w:txbxContent></v:textbox></v:shape></w:pict></mc:Fallback>`+
		`</mc:AlternateContent></w:r></w:p>`, esc(anchor), content, content)
	return b
}

// AlternateImage adds a paragraph whose picture sits inside
// mc:AlternateContent, with an empty VML fallback.
func (b *Builder) AlternateImage(name string, data []byte, alt string) *Builder {
	id := fmt.Sprintf("rIdImg%d", len(b.rels)+1)
	b.rels = append(b.rels, rel{id: id, typ: relImage, target: "media/" + name})
	b.media[name] = data
	fmt.Fprintf(&b.body, `<w:p><w:r><mc:AlternateContent><mc:Choice Requires="wpg"><w:drawing><wp:inline>`+
		`<wp:docPr id="3" name="%s" descr="%s"/><a:graphic><a:graphicData><pic:pic><pic:blipFill>`+
		`<a:blip r:embed="%s"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`+
		`</mc:Choice><mc:Fallback><w:pict/></mc:Fallback></mc:AlternateContent></w:r></w:p>`, esc(name), esc(alt), id)
	return b
}

func paragraphs(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, esc(l))
	}
	return sb.String()
}

// Raw appends body XML verbatim.
func (b *Builder) Raw(xml string) *Builder {
	b.body.WriteString(xml)
	return b
}

func (b *Builder) writeRuns(runs []Run) {
	for _, r := range runs {
		b.body.WriteString("<w:r>")
		if r.Bold || r.Italic || r.Strike || r.Style != "" {
			b.body.WriteString("<w:rPr>")
			if r.Style != "" {
				fmt.Fprintf(&b.body, `<w:rStyle w:val="%s"/>`, esc(r.Style))
			}
			if r.Bold {
				b.body.WriteString("<w:b/>")
			}
			if r.Italic {
				b.body.WriteString("<w:i/>")
			}
			if r.Strike {
				b.body.WriteString("<w:strike/>")
			}
			b.body.WriteString("</w:rPr>")
		}
		fmt.Fprintf(&b.body, `<w:t xml:space="preserve">%s</w:t></w:r>`, esc(r.Text))
	}
}

// Bytes returns the zipped package.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`+
		`</Types>`)
	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`+
		`</Relationships>`)
	write("word/document.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>`+
		`<w:document xmlns:w="%s" xmlns:r="%s" xmlns:a="%s" xmlns:pic="%s" xmlns:wp="%s" xmlns:mc="%s" xmlns:v="%s" xmlns:wps="%s">`+
			`<w:body>%s<w:sectPr/></w:body></w:document>`,
		nsW, nsR, nsA, nsP, nsD, nsMC, nsV, nsWPS, b.body.String()))
	write("word/styles.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><w:styles xmlns:w="%s">`+
		`<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>%s</w:styles>`,
		nsW, strings.Join(b.styles, "")))
	write("word/numbering.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><w:numbering xmlns:w="%s">`+
		`<w:abstractNum w:abstractNumId="0">%s</w:abstractNum>`+
		`<w:abstractNum w:abstractNumId="1">%s</w:abstractNum>`+
		`<w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num>`+
		`<w:num w:numId="%d"><w:abstractNumId w:val="1"/></w:num></w:numbering>`,
		nsW, levels("bullet"), levels("decimal"), BulletList, NumberedList))

	var rels strings.Builder
	for _, r := range b.rels {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.id, r.typ, esc(r.target), mode)
	}
	write("word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels.String()+`</Relationships>`)

	for name, data := range b.media {
		write("word/media/"+name, string(data))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile writes the package to path, creating parent directories.
func (b *Builder) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}

func levels(format string) string {
	var sb strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&sb, `<w:lvl w:ilvl="%d"><w:numFmt w:val="%s"/></w:lvl>`, i, format)
	}
	return sb.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}
