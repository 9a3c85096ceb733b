package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout []byte
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout, []byte("boom"), f.err
}

func writeFile(t *testing.T, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}

func TestExtract_PlainText(t *testing.T) {
	p := writeFile(t, "registry.txt", []byte("Entity 1\nName/Alias: Jos\xe9 Doe\n"))

	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, MethodPlainText, res.Method)
	assert.Equal(t, "Entity 1\nName/Alias: José Doe\n", res.Text)
}

func TestExtract_FallsBackToPdftotext(t *testing.T) {
	p := writeFile(t, "registry.pdf", []byte("%PDF-broken"))
	runner := &fakeRunner{stdout: []byte("page one\fpage two\f")}

	e := NewExtractor(Config{Pdftotext: "/usr/bin/pdftotext", FallbackPdftotext: true}, nil).WithRunner(runner)
	res, err := e.Extract(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, MethodPdftotext, res.Method)
	assert.Equal(t, "page one\npage two", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.NotEmpty(t, res.Warnings)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/usr/bin/pdftotext", runner.calls[0][0])
	assert.Equal(t, "-", runner.calls[0][len(runner.calls[0])-1])
}

func TestExtract_NoFallback(t *testing.T) {
	p := writeFile(t, "registry.pdf", []byte("%PDF-broken"))
	runner := &fakeRunner{}

	_, err := NewExtractor(Config{}, nil).WithRunner(runner).Extract(context.Background(), p)
	assert.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestExtract_BothFail(t *testing.T) {
	p := writeFile(t, "registry.pdf", []byte("%PDF-broken"))
	runner := &fakeRunner{err: errors.New("exit status 1")}

	res, err := NewExtractor(Config{FallbackPdftotext: true}, nil).WithRunner(runner).Extract(context.Background(), p)
	assert.Error(t, err)
	assert.Contains(t, res.Warnings, "boom")
}

func TestExtract_LibrarySuccess(t *testing.T) {
	p := writeFile(t, "registry.pdf", []byte("%PDF"))
	e := NewExtractor(Config{FallbackPdftotext: true}, nil).WithRunner(&fakeRunner{err: errors.New("unused")})
	e.readPDF = func(string) (string, int, error) { return "Entity 1\nEntity 2", 2, nil }

	res, err := e.Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, res.Method)
	assert.Equal(t, "Entity 1\nEntity 2", res.Text)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, "registry.docx", []byte("x"))
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), p)
	assert.Error(t, err)
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "Müller", DecodeText([]byte("Müller")))
	assert.Equal(t, "Müller", DecodeText([]byte("M\xfcller")))
}

func TestNormalize(t *testing.T) {
	in := "Entity 1\r\nName/Alias:\tJohn    Doe   \r\n\r\n\r\n\r\nNumber: 12\n"
	assert.Equal(t, "Entity 1\nName/Alias: John Doe\n\nNumber: 12", Normalize(in))
	assert.Equal(t, "", Normalize(""))
}

// minimalPDF lays out one line per entry with relative Td moves and a
// Helvetica font that carries no Widths array.
func minimalPDF(lines ...string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", l)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtract_LibraryKeepsLineMoves(t *testing.T) {
	p := writeFile(t, "registry.pdf", minimalPDF(
		"Entity 1",
		"Name/Alias: John Doe",
		"Number: 123",
		"Programme: AFG",
	))
	runner := &fakeRunner{err: errors.New("unused")}

	res, err := NewExtractor(Config{FallbackPdftotext: true}, nil).WithRunner(runner).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, res.Method)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "Entity 1\nName/Alias: John Doe\nNumber: 123\nProgramme: AFG", res.Text)
	assert.Empty(t, runner.calls)
}

func TestPageLines(t *testing.T) {
	glyphs := func(s string, x, y, w float64) []pdflib.Text {
		var out []pdflib.Text
		for i, r := range s {
			out = append(out, pdflib.Text{FontSize: 10, X: x + float64(i)*w, Y: y, W: w, S: string(r)})
		}
		return out
	}

	tests := []struct {
		name  string
		texts []pdflib.Text
		want  []string
	}{
		{
			name: "rows top to bottom",
			texts: append(append(glyphs("Number: 1", 50, 680, 5), glyphs("Entity 1", 50, 700, 5)...),
				glyphs("Name/Alias: X", 50, 690, 5)...),
			want: []string{"Entity 1", "Name/Alias: X", "Number: 1"},
		},
		{
			name:  "baseline jitter stays on one row",
			texts: append(glyphs("Programme:", 50, 700, 5), glyphs("AFG", 110, 701.2, 5)...),
			want:  []string{"Programme: AFG"},
		},
		{
			name:  "zero width glyphs keep emission order",
			texts: append(glyphs("Entity", 72, 700, 0), glyphs("2", 140, 700, 0)...),
			want:  []string{"Entity 2"},
		},
		{
			name:  "line breaks from TJ are dropped",
			texts: append(glyphs("abc", 10, 500, 5), pdflib.Text{S: "\n", X: 25, Y: 500}),
			want:  []string{"abc"},
		},
		{
			name: "empty page",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageLines(tt.texts))
		})
	}
}
