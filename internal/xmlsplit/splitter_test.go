package xmlsplit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/xmltree"
)

const ns = "http://eu.europa.ec/fpi/fsd/export"

func registry(entities ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<export xmlns="` + ns + `" generationDate="2024-01-01">`)
	b.WriteString(`<group>`)
	for _, e := range entities {
		b.WriteString(e)
	}
	b.WriteString(`</group></export>`)
	return b.String()
}

func TestSplit_NumbersFragmentsInDocumentOrder(t *testing.T) {
	doc := registry(
		`<sanctionEntity logicalId="1"><nameAlias wholeName="Alpha One"/></sanctionEntity>`,
		`<sanctionEntity logicalId="2"><nameAlias wholeName="Beta Two"/></sanctionEntity>`,
		`<sanctionEntity logicalId="3"><nameAlias wholeName="Gamma Three"/></sanctionEntity>`,
	)

	frags, err := Split(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, frags, 3)

	want := []string{"Alpha One", "Beta Two", "Gamma Three"}
	for i, f := range frags {
		assert.Equal(t, i+1, f.Seq)

		root, err := xmltree.ParseBytes(f.XML)
		require.NoError(t, err, "fragment %d must parse", f.Seq)
		assert.Equal(t, "root", root.Name.Local)
		require.Len(t, root.Children, 1)
		assert.Equal(t, ns, root.Children[0].Name.Space)

		alias := root.Find(ns, "nameAlias")
		require.NotNil(t, alias)
		assert.Equal(t, want[i], alias.AttrOr("wholeName"))
	}
}

func TestSplit_PrefixedNamespace(t *testing.T) {
	doc := `<x:export xmlns:x="urn:reg"><x:sanctionEntity><x:nameAlias wholeName="A"/></x:sanctionEntity>` +
		`<sanctionEntity/></x:export>`

	frags, err := Split(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, frags, 1)

	root, err := xmltree.ParseBytes(frags[0].XML)
	require.NoError(t, err)
	assert.NotNil(t, root.Find("urn:reg", "nameAlias"))
}

func TestSplit_NoNamespace(t *testing.T) {
	frags, err := Split(strings.NewReader(`<export><sanctionEntity/><sanctionEntity/></export>`))
	require.NoError(t, err)
	assert.Len(t, frags, 2)
}

func TestSplit_ZeroEntities(t *testing.T) {
	frags, err := Split(strings.NewReader(registry()))
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestSplit_MalformedIsParseError(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unclosed", doc: `<export><sanctionEntity></export>`},
		{name: "empty", doc: ``},
		{name: "garbage", doc: `not xml at all <<`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags, err := Split(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Empty(t, frags)
			assert.True(t, errors.Is(err, common.ErrParse))

			var appErr *common.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, common.CodeParse, appErr.Code)
		})
	}
}

func TestSplit_DeclaredCharsets(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		raw      string
		want     string
	}{
		{name: "latin-1", encoding: "ISO-8859-1", raw: "Jos\xe9 N\xfa\xf1ez", want: "José Núñez"},
		{name: "windows-1252", encoding: "windows-1252", raw: "\x93Caf\xe9\x94", want: "\u201cCafé\u201d"},
		{name: "utf-8 untouched", encoding: "UTF-8", raw: "José", want: "José"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<?xml version="1.0" encoding="` + tt.encoding + `"?>` + "\n" +
				`<export xmlns="` + ns + `"><sanctionEntity><nameAlias wholeName="` + tt.raw + `"/></sanctionEntity></export>`

			frags, err := Split(strings.NewReader(doc))
			require.NoError(t, err)
			require.Len(t, frags, 1)
			assert.True(t, strings.HasPrefix(string(frags[0].XML), `<?xml version="1.0" encoding="utf-8"?>`))

			root, err := xmltree.ParseBytes(frags[0].XML)
			require.NoError(t, err)
			alias := root.Find(ns, "nameAlias")
			require.NotNil(t, alias)
			assert.Equal(t, tt.want, alias.AttrOr("wholeName"))
		})
	}
}

func TestSplit_UnknownCharsetIsParseError(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-no-such-charset"?><export><sanctionEntity/></export>`
	frags, err := Split(strings.NewReader(doc))
	require.Error(t, err)
	assert.Empty(t, frags)
	assert.True(t, errors.Is(err, common.ErrParse))
}

func TestWriteDirReadDir(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "entity99.xml")
	require.NoError(t, os.WriteFile(stale, []byte("<root/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("keep"), 0o644))

	var frags []entity.Fragment
	for i := 1; i <= 12; i++ {
		frags = append(frags, entity.Fragment{Seq: i, XML: []byte("<root/>")})
	}
	require.NoError(t, WriteDir(dir, frags))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oldentity3.xml"), []byte("<root/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entity5.xml.bak"), []byte("<root/>"), 0o644))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "notes.md"))
	assert.NoError(t, err)

	got, err := ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, got, 12)
	for i, f := range got {
		assert.Equal(t, i+1, f.Seq, "numeric, not lexical, order")
	}
}
