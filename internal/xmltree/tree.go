// Package xmltree decodes a small XML document into an element tree with
// descendant search, the subset of ElementTree-style access the record
// builder needs.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is one element. Text holds the character data that precedes the
// first child element.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Node

	sawChild bool
}

// Parse decodes r and returns the document element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = CharsetReader
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("decode xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
				parent.sawChild = true
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				if !cur.sawChild {
					cur.Text += string(t)
				}
			}
		}
	}
	if root == nil {
		return nil, errors.New("decode xml: no root element")
	}
	return root, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte) (*Node, error) {
	return Parse(bytes.NewReader(b))
}

// Attr returns the value of an unqualified attribute.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or "" when absent.
func (n *Node) AttrOr(local string) string {
	v, _ := n.Attr(local)
	return v
}

// FindAll returns every descendant (not n itself) named {space}local, in
// document order.
func (n *Node) FindAll(space, local string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Name.Space == space && c.Name.Local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find returns the first descendant named {space}local, or nil.
func (n *Node) Find(space, local string) *Node {
	all := n.FindAll(space, local)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// TrimmedText is Text with surrounding whitespace removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}
