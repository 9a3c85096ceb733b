package pipeline

import (
	"context"
	"os"

	"github.com/joseph-ayodele/sanctions-tracker/internal/chunker"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/xmlsplit"
)

// SplitXML cuts the XML document into fragments and rewrites the fragment
// trace. Any failure yields zero fragments.
func (p *Processor) SplitXML(ctx context.Context, path string) []entity.Fragment {
	logger := common.LoggerFromContext(ctx, p.Logger)
	if path == "" {
		logger.Warn("pipeline.split.skipped", "reason", "no xml input")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("pipeline.split.open_failed", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	frags, err := xmlsplit.Split(f)
	if err != nil {
		logger.Error("pipeline.split.failed", "path", path, "error", err)
		return nil
	}
	if err := xmlsplit.WriteDir(p.Paths.XMLChunksDir, frags); err != nil {
		logger.Warn("pipeline.split.trace_failed", "dir", p.Paths.XMLChunksDir, "error", err)
	}
	logger.Info("pipeline.split.ok", "path", path, "entities", len(frags))
	return frags
}

// ChunkPDF extracts the PDF text, chunks it and rewrites the chunk trace.
// Any failure yields no chunks.
func (p *Processor) ChunkPDF(ctx context.Context, path string) []entity.PdfChunk {
	logger := common.LoggerFromContext(ctx, p.Logger)
	if path == "" {
		logger.Warn("pipeline.pdf.skipped", "reason", "no pdf input")
		return nil
	}

	res, err := p.PDF.Extract(ctx, path)
	if err != nil {
		logger.Warn("pipeline.pdf.extract_failed", "path", path, "error", err, "warnings", res.Warnings)
		return nil
	}

	chunks := chunker.Split(res.Text)
	if err := chunker.WriteDir(p.Paths.PDFChunksDir, chunks); err != nil {
		logger.Warn("pipeline.pdf.trace_failed", "dir", p.Paths.PDFChunksDir, "error", err)
	}
	logger.Info("pipeline.pdf.ok", "path", path, "method", res.Method, "pages", res.Pages, "chunks", len(chunks))
	return chunks
}

func (p *Processor) readFragments(ctx context.Context) []entity.Fragment {
	logger := common.LoggerFromContext(ctx, p.Logger)
	frags, err := xmlsplit.ReadDir(p.Paths.XMLChunksDir)
	if err != nil {
		logger.Warn("pipeline.trace.fragments_failed", "dir", p.Paths.XMLChunksDir, "error", err)
		return nil
	}
	return frags
}

func (p *Processor) readChunks(ctx context.Context) []entity.PdfChunk {
	logger := common.LoggerFromContext(ctx, p.Logger)
	chunks, err := chunker.ReadDir(p.Paths.PDFChunksDir)
	if err != nil {
		logger.Warn("pipeline.trace.chunks_failed", "dir", p.Paths.PDFChunksDir, "error", err)
		return nil
	}
	return chunks
}
