package publist

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a minimal in-memory XML element. Lookups follow DOM
// getElementsByTagName rules: descendants only, document order, matched on
// the local name.
type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
	content  []any // string or *element, in document order
}

func (e *element) attr(name string) string {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (e *element) walk(fn func(*element) bool) bool {
	for _, c := range e.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

func (e *element) descendants(name string) []*element {
	var out []*element
	e.walk(func(c *element) bool {
		if c.name == name {
			out = append(out, c)
		}
		return true
	})
	return out
}

func (e *element) first(name string) *element {
	var found *element
	e.walk(func(c *element) bool {
		if c.name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// text is the concatenated character data of e and all its descendants.
func (e *element) text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	for _, c := range e.content {
		switch v := c.(type) {
		case string:
			b.WriteString(v)
		case *element:
			v.writeText(b)
		}
	}
}

// firstText returns the text of the first descendant named name, or def
// when it is missing or empty.
func (e *element) firstText(name, def string) string {
	if c := e.first(name); c != nil {
		if t := c.text(); t != "" {
			return t
		}
	}
	return def
}

var (
	errNoRoot        = errors.New("no root element")
	errMultipleRoots = errors.New("content after root element")
	errStrayText     = errors.New("text outside root element")
)

// buildTree tokenizes data with a strict decoder and returns a synthetic
// document node whose only child is the root element.
func buildTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	doc := &element{}
	stack := []*element{doc}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			if top == doc && len(doc.children) > 0 {
				return nil, errMultipleRoots
			}
			el := &element{name: t.Name.Local, attrs: t.Copy().Attr}
			top.children = append(top.children, el)
			top.content = append(top.content, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected end element </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if top == doc {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errStrayText
				}
				continue
			}
			top.content = append(top.content, string(t))
		}
	}
	if len(stack) != 1 {
		return nil, io.ErrUnexpectedEOF
	}
	if len(doc.children) == 0 {
		return nil, errNoRoot
	}
	return doc, nil
}
