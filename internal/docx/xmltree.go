package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// xnode is a minimal ordered XML element tree. WordprocessingML mixes
// paragraphs, tables and runs in document order, which struct unmarshalling
// would lose.
type xnode struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*xnode
	text     string
}

func parseXML(data []byte) (*xnode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &xnode{}
	stack := []*xnode{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xnode{name: t.Name, attrs: append([]xml.Attr(nil), t.Attr...)}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			top := stack[len(stack)-1]
			top.text += string(t)
		}
	}

	if len(root.children) == 0 {
		return nil, errors.New("no root element")
	}
	return root.children[0], nil
}

// attr returns the value of the first attribute with the given local name.
func (n *xnode) attr(local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n *xnode) hasAttr(local string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

func (n *xnode) child(local string) *xnode {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.name.Local == local {
			return c
		}
	}
	return nil
}

// elems returns the child elements, or nil for a missing node.
func (n *xnode) elems() []*xnode {
	if n == nil {
		return nil
	}
	return n.children
}

func (n *xnode) childrenNamed(local string) []*xnode {
	if n == nil {
		return nil
	}
	var out []*xnode
	for _, c := range n.children {
		if c.name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant with the given local name, depth first.
func (n *xnode) find(local string) *xnode {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.name.Local == local {
			return c
		}
		if d := c.find(local); d != nil {
			return d
		}
	}
	return nil
}

// findAll returns the descendants with the given local name, without
// looking inside a match.
func (n *xnode) findAll(local string) []*xnode {
	if n == nil {
		return nil
	}
	var out []*xnode
	for _, c := range n.children {
		if c.name.Local == local {
			out = append(out, c)
			continue
		}
		out = append(out, c.findAll(local)...)
	}
	return out
}

// toggle reads an OOXML on/off property such as <w:b/> or <w:b w:val="0"/>.
func (n *xnode) toggle(local string) bool {
	c := n.child(local)
	if c == nil {
		return false
	}
	switch c.attr("val") {
	case "0", "false", "off", "none":
		return false
	}
	return true
}
