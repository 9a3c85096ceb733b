package pdfindex

import (
	"log/slog"

	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/names"
)

// Index maps normalized name variants to PDF summaries. The first chunk to
// register a key owns it.
type Index struct {
	byKey map[string]string
	names int
}

// Build extracts every chunk in order and registers its summary under the
// three key variants of its name.
func Build(chunks []entity.PdfChunk, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{byKey: make(map[string]string)}
	for _, c := range chunks {
		sum, ok := Extract(c.Text)
		if !ok {
			logger.Debug("pdfindex.chunk.no_name", "seq", c.Seq, "programme", c.Programme)
			continue
		}
		idx.Add(sum)
	}
	logger.Info("pdfindex.build.ok", "chunks", len(chunks), "names", idx.names, "keys", len(idx.byKey))
	return idx
}

// Add registers one summary. Keys already present are left alone.
func (x *Index) Add(sum entity.PdfSummary) {
	if x.byKey == nil {
		x.byKey = make(map[string]string)
	}
	x.names++
	for _, key := range names.Variants(sum.Name) {
		if key == "" {
			continue
		}
		if _, taken := x.byKey[key]; !taken {
			x.byKey[key] = sum.Summary
		}
	}
}

// Lookup tries each candidate in order, and for each candidate its three
// variants in order. The first registered key wins even when its summary is
// empty.
func (x *Index) Lookup(candidates ...string) (string, bool) {
	if x == nil || len(x.byKey) == 0 {
		return "", false
	}
	for _, c := range candidates {
		for _, key := range names.Variants(c) {
			if key == "" {
				continue
			}
			if v, ok := x.byKey[key]; ok {
				return v, true
			}
		}
	}
	return "", false
}

// Len is the number of distinct keys.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byKey)
}
