// Package pdftext turns the registry PDF into plain text. The pure-Go reader
// is tried first; pdftotext is the fallback. Pre-extracted .txt input is
// accepted as is.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
)

const (
	MethodLibrary   = "pdf-lib"
	MethodPdftotext = "pdftotext"
	MethodPlainText = "plain-text"
)

type Config struct {
	Pdftotext         string // binary name or absolute path; if empty -> "pdftotext"
	FallbackPdftotext bool
	Timeout           time.Duration // 0 = no limit
}

type Result struct {
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg     Config
	runner  Runner
	logger  *slog.Logger
	readPDF func(path string) (string, int, error)
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger, readPDF: readWithLibrary}
}

// WithRunner swaps the command runner, mainly for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract returns the document text with pages joined by a newline.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = common.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("pdftext.extract.start", "path", path, "ext", ext)

	var (
		res Result
		err error
	)
	switch ext {
	case "txt":
		res, err = e.extractPlain(path)
	case "pdf":
		res, err = e.extractPDF(ctx, path)
	default:
		err = fmt.Errorf("unsupported extension: %q", ext)
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("pdftext.extract.failed", "path", path, "error", err)
		return res, err
	}
	e.logger.Info("pdftext.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", utf8.RuneCountInString(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) extractPlain(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{Method: MethodPlainText}, fmt.Errorf("read text: %w", err)
	}
	return Result{Text: DecodeText(b), Pages: 1, Method: MethodPlainText}, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	text, pages, err := e.readPDF(path)
	if err == nil && strings.TrimSpace(text) != "" {
		return Result{Text: Normalize(text), Pages: pages, Method: MethodLibrary}, nil
	}

	var warns []string
	if err != nil {
		warns = append(warns, err.Error())
	} else {
		err = errors.New("pdf library produced no text")
		warns = append(warns, err.Error())
	}
	if !e.cfg.FallbackPdftotext {
		return Result{Method: MethodLibrary, Warnings: warns}, fmt.Errorf("extract pdf text: %w", err)
	}

	e.logger.Warn("pdftext.library.fallback", "path", path, "reason", err)
	out, errb, runErr := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if runErr != nil {
		warns = append(warns, strings.TrimSpace(string(errb)))
		return Result{Method: MethodPdftotext, Warnings: warns}, fmt.Errorf("pdftotext: %w", runErr)
	}
	// pdftotext separates pages with a form feed
	raw := strings.TrimRight(string(out), "\f")
	pageTexts := strings.Split(raw, "\f")
	return Result{
		Text:     Normalize(strings.Join(pageTexts, "\n")),
		Pages:    len(pageTexts),
		Method:   MethodPdftotext,
		Warnings: warns,
	}, nil
}

func readWithLibrary(path string) (text string, pages int, err error) {
	// the library panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	texts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if lines := pageLines(page.Content().Text); len(lines) > 0 {
			texts = append(texts, strings.Join(lines, "\n"))
			continue
		}
		t, perr := page.GetPlainText(nil)
		if perr != nil {
			continue
		}
		texts = append(texts, t)
	}
	return strings.Join(texts, "\n"), numPages, nil
}

// DecodeText reads b as UTF-8, falling back to ISO-8859-1 when b is not
// valid UTF-8.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
