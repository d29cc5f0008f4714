package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const (
	relTypeOfficeDocument = "/officeDocument"
	defaultMainPart       = "word/document.xml"
)

// expansion bounds the uncompressed bytes read from a package, as a multiple
// of the part limit. XML parts routinely deflate several times over.
const expansion = 4

// opc is an opened Office Open XML package.
type opc struct {
	files map[string]*zip.File

	// limit caps each part; budget is what is left for the whole package.
	// Zero limit reads without bounds.
	limit  int64
	budget int64
}

func openPackage(data []byte, limit int64) (*opc, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, invalid("open package", err)
	}
	p := &opc{
		files:  make(map[string]*zip.File, len(zr.File)),
		limit:  limit,
		budget: limit * expansion,
	}
	for _, f := range zr.File {
		p.files[strings.ToLower(strings.TrimPrefix(f.Name, "/"))] = f
	}
	return p, nil
}

// read returns a part's bytes. ok is false when the part does not exist.
func (p *opc) read(name string) (data []byte, ok bool, err error) {
	f, found := p.files[strings.ToLower(strings.TrimPrefix(name, "/"))]
	if !found {
		return nil, false, nil
	}
	if p.limit <= 0 {
		rc, err := f.Open()
		if err != nil {
			return nil, true, err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		return data, true, err
	}

	allowed := min(p.limit, p.budget)
	if f.UncompressedSize64 > uint64(allowed) {
		return nil, true, fmt.Errorf("%w: part %s expands to %d bytes", ErrTooLarge, f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, true, err
	}
	defer rc.Close()
	// The header size is not trusted; the reader enforces the same bound.
	data, err = io.ReadAll(io.LimitReader(rc, allowed+1))
	if err != nil {
		return nil, true, err
	}
	if int64(len(data)) > allowed {
		return nil, true, fmt.Errorf("%w: part %s expands past %d bytes", ErrTooLarge, f.Name, allowed)
	}
	p.budget -= int64(len(data))
	return data, true, nil
}

// readXML parses a part. A missing part yields (nil, nil).
func (p *opc) readXML(name string) (*xnode, error) {
	data, ok, err := p.read(name)
	if !ok {
		return nil, nil
	}
	if err != nil {
		return nil, invalid("read "+name, err)
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, invalid("parse "+name, err)
	}
	return root, nil
}

type relationship struct {
	Type     string
	Target   string
	External bool
}

// relationships loads the .rels part belonging to partName, keyed by id.
// Internal targets are resolved to package part names.
func (p *opc) relationships(partName string) (map[string]relationship, error) {
	relsName := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	if partName == "" {
		relsName = "_rels/.rels"
	}
	root, err := p.readXML(relsName)
	if err != nil || root == nil {
		return map[string]relationship{}, err
	}

	rels := make(map[string]relationship)
	for _, r := range root.childrenNamed("Relationship") {
		rel := relationship{
			Type:     r.attr("Type"),
			Target:   r.attr("Target"),
			External: strings.EqualFold(r.attr("TargetMode"), "External"),
		}
		if !rel.External {
			rel.Target = resolvePart(path.Dir(partName), rel.Target)
		}
		rels[r.attr("Id")] = rel
	}
	return rels, nil
}

func resolvePart(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	if dir == "" || dir == "." {
		return path.Clean(target)
	}
	return path.Clean(path.Join(dir, target))
}

// mainPart finds the main document part through the package relationships.
func (p *opc) mainPart() (string, error) {
	rels, err := p.relationships("")
	if err != nil {
		return "", err
	}
	for _, r := range rels {
		if strings.HasSuffix(r.Type, relTypeOfficeDocument) && !r.External {
			return r.Target, nil
		}
	}
	return defaultMainPart, nil
}

type styleDef struct {
	ID      string
	Name    string
	Type    string
	NumID   string
	NumILvl int
}

// loadStyles reads styles.xml next to the main part. Absent styles are fine.
func (p *opc) loadStyles(dir string) (map[string]styleDef, error) {
	root, err := p.readXML(path.Join(dir, "styles.xml"))
	if err != nil || root == nil {
		return map[string]styleDef{}, err
	}
	styles := make(map[string]styleDef)
	for _, s := range root.childrenNamed("style") {
		def := styleDef{
			ID:   s.attr("styleId"),
			Name: s.child("name").attr("val"),
			Type: s.attr("type"),
		}
		if num := s.child("pPr").child("numPr"); num != nil {
			def.NumID = num.child("numId").attr("val")
			def.NumILvl, _ = strconv.Atoi(num.child("ilvl").attr("val"))
		}
		styles[def.Type+":"+def.ID] = def
	}
	return styles, nil
}

// numbering answers whether a list level is ordered.
type numbering struct {
	// formats maps numId -> ilvl -> numFmt.
	formats map[string]map[int]string
}

func (p *opc) loadNumbering(dir string) (*numbering, error) {
	n := &numbering{formats: map[string]map[int]string{}}
	root, err := p.readXML(path.Join(dir, "numbering.xml"))
	if err != nil || root == nil {
		return n, err
	}

	abstract := make(map[string]map[int]string)
	for _, a := range root.childrenNamed("abstractNum") {
		levels := make(map[int]string)
		for _, lvl := range a.childrenNamed("lvl") {
			ilvl, _ := strconv.Atoi(lvl.attr("ilvl"))
			levels[ilvl] = lvl.child("numFmt").attr("val")
		}
		abstract[a.attr("abstractNumId")] = levels
	}
	for _, num := range root.childrenNamed("num") {
		if levels, ok := abstract[num.child("abstractNumId").attr("val")]; ok {
			n.formats[num.attr("numId")] = levels
		}
	}
	return n, nil
}

// ordered reports whether numId/ilvl renders as <ol>. Unknown definitions
// and bullets render as <ul>.
func (n *numbering) ordered(numID string, ilvl int) bool {
	levels, ok := n.formats[numID]
	if !ok {
		return false
	}
	format, ok := levels[ilvl]
	if !ok || format == "" {
		return false
	}
	return format != "bullet" && format != "none"
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".emf":  "image/x-emf",
	".wmf":  "image/x-wmf",
}

func contentType(name string) (string, error) {
	if ct, ok := imageTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("unsupported image type %q", path.Ext(name))
}

var headingName = regexp.MustCompile(`(?i)^heading\s*([1-6])$`)
