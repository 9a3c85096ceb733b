package xmltree

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// reDeclEncoding finds the encoding pseudo-attribute of a leading XML
// declaration. Group 1 is the label.
var reDeclEncoding = regexp.MustCompile(`^(?:\x{FEFF})?\s*<\?xml[^>]*?\bencoding\s*=\s*["']([A-Za-z0-9._:\-]+)["']`)

func lookupEncoding(label string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", label)
	}
	return enc, nil
}

func isUTF8(label string) bool {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return true
	}
	return false
}

// CharsetReader converts input in the named IANA charset to UTF-8. It has
// the shape xml.Decoder.CharsetReader expects.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	if isUTF8(label) {
		return input, nil
	}
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// ToUTF8 returns data transcoded to UTF-8 when its XML declaration names
// another charset. The declaration is rewritten to say utf-8 so byte ranges
// cut from the result stay consistent with it.
func ToUTF8(data []byte) ([]byte, error) {
	m := reDeclEncoding.FindSubmatchIndex(data)
	if m == nil {
		return data, nil
	}
	label := string(data[m[2]:m[3]])
	if isUTF8(label) {
		return data, nil
	}
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}

	// the declaration itself is ASCII in every charset it can name
	head := make([]byte, 0, len(data))
	head = append(head, data[:m[2]]...)
	head = append(head, "utf-8"...)
	decl := data[m[3]:m[1]]

	body, err := enc.NewDecoder().Bytes(data[m[1]:])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	out := append(head, decl...)
	return append(out, body...), nil
}
