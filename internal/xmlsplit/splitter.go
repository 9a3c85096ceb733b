// Package xmlsplit cuts the registry XML export into one small document per
// sanctioned entity and keeps them on disk as an audit trail.
package xmlsplit

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/xmltree"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

type capture struct {
	seq   int
	depth int
	start int64
	decls []xml.Attr
}

// Split returns one fragment per entity element found at any depth in r.
// The namespace is taken from the document element. Input in another
// charset is transcoded so every fragment is UTF-8. A document that is not
// well-formed yields a PARSE_ERROR AppError and no fragments.
func Split(r io.Reader) ([]entity.Fragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, common.NewAppError(common.CodeInput, "read xml", err)
	}
	if data, err = xmltree.ToUTF8(data); err != nil {
		return nil, common.NewParseError("xml document encoding", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = xmltree.CharsetReader
	var (
		rootSpace string
		haveRoot  bool
		depth     int
		declStack [][]xml.Attr
		open      []capture
		frags     []entity.Fragment
		next      = 1
	)

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.NewParseError("xml document is not well-formed", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !haveRoot {
				rootSpace = t.Name.Space
				haveRoot = true
			}
			declStack = append(declStack, namespaceDecls(t.Attr))
			depth++
			if t.Name.Local == constants.EntityElement && t.Name.Space == rootSpace {
				open = append(open, capture{
					seq:   next,
					depth: depth,
					start: offset,
					decls: inScopeDecls(declStack[:len(declStack)-1]),
				})
				next++
			}
		case xml.EndElement:
			if n := len(open); n > 0 && open[n-1].depth == depth {
				c := open[n-1]
				open = open[:n-1]
				frags = append(frags, entity.Fragment{
					Seq: c.seq,
					XML: wrap(c.decls, data[c.start:dec.InputOffset()]),
				})
			}
			declStack = declStack[:len(declStack)-1]
			depth--
		}
	}
	if !haveRoot {
		return nil, common.NewParseError("xml document is empty", io.ErrUnexpectedEOF)
	}

	sort.Slice(frags, func(i, j int) bool { return frags[i].Seq < frags[j].Seq })
	slog.Debug("xmlsplit.split.ok", "entities", len(frags), "namespace", rootSpace)
	return frags, nil
}

// namespaceDecls keeps the xmlns attributes of a start element.
func namespaceDecls(attrs []xml.Attr) []xml.Attr {
	var out []xml.Attr
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			out = append(out, a)
		}
	}
	return out
}

// inScopeDecls flattens the declarations of every ancestor; inner
// declarations shadow outer ones.
func inScopeDecls(stack [][]xml.Attr) []xml.Attr {
	seen := make(map[string]int)
	var out []xml.Attr
	for _, level := range stack {
		for _, a := range level {
			key := a.Name.Space + ":" + a.Name.Local
			if i, ok := seen[key]; ok {
				out[i] = a
				continue
			}
			seen[key] = len(out)
			out = append(out, a)
		}
	}
	return out
}

func wrap(decls []xml.Attr, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString("<" + constants.FragmentRoot)
	for _, a := range decls {
		name := a.Name.Local
		if a.Name.Space == "xmlns" {
			name = "xmlns:" + a.Name.Local
		}
		fmt.Fprintf(&buf, ` %s="`, name)
		_ = xml.EscapeText(&buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	buf.WriteString(">")
	buf.Write(body)
	buf.WriteString("</" + constants.FragmentRoot + ">\n")
	return buf.Bytes()
}
