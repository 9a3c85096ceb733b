// Package pipeline runs the batch: split the XML, chunk the PDF text, build
// and reconcile records, write the workbook.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/builder"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/export"
	"github.com/joseph-ayodele/sanctions-tracker/internal/gender"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pdfindex"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pdftext"
	"github.com/joseph-ayodele/sanctions-tracker/internal/reconcile"
)

// Paths are the trace folders and the output workbook.
type Paths struct {
	XMLChunksDir string
	PDFChunksDir string
	OutputPath   string
}

// Inputs are the resolved input documents. An empty path means the document
// is not available.
type Inputs struct {
	XMLPath string
	PDFPath string
}

// Report summarizes one run.
type Report struct {
	Entities   int
	Chunks     int
	IndexKeys  int
	Review     int
	Conflicts  int
	OutputPath string
	Duration   time.Duration
}

// Processor coordinates the stages. Only the final workbook write can fail a
// run; every other problem degrades to fewer rows or an empty index.
type Processor struct {
	Logger     *slog.Logger
	Paths      Paths
	PDF        *pdftext.Extractor
	Classifier gender.Classifier
	Export     *export.Service
	Options    builder.Options
}

func NewProcessor(logger *slog.Logger, paths Paths, pdf *pdftext.Extractor, classifier gender.Classifier, exp *export.Service, opts builder.Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if pdf == nil {
		pdf = pdftext.NewExtractor(pdftext.Config{}, logger)
	}
	if exp == nil {
		exp = export.NewService(logger)
	}
	return &Processor{Logger: logger, Paths: paths, PDF: pdf, Classifier: classifier, Export: exp, Options: opts}
}

// Run executes the full batch from the input documents.
func (p *Processor) Run(ctx context.Context, in Inputs) (Report, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, p.Logger)

	frags := p.SplitXML(ctx, in.XMLPath)
	chunks := p.ChunkPDF(ctx, in.PDFPath)

	rep, err := p.assemble(ctx, frags, chunks)
	rep.Duration = time.Since(start)
	if err != nil {
		logger.Error("pipeline.run.failed", "error", err)
		return rep, err
	}
	logger.Info("pipeline.run.ok",
		"entities", rep.Entities,
		"chunks", rep.Chunks,
		"review", rep.Review,
		"conflicts", rep.Conflicts,
		"output", rep.OutputPath,
		"elapsed_ms", rep.Duration.Milliseconds(),
	)
	return rep, nil
}

// Convert rebuilds the workbook from the fragment and chunk trace folders
// left by an earlier run.
func (p *Processor) Convert(ctx context.Context) (Report, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, p.Logger)

	frags := p.readFragments(ctx)
	chunks := p.readChunks(ctx)

	rep, err := p.assemble(ctx, frags, chunks)
	rep.Duration = time.Since(start)
	if err != nil {
		logger.Error("pipeline.convert.failed", "error", err)
		return rep, err
	}
	logger.Info("pipeline.convert.ok",
		"entities", rep.Entities,
		"chunks", rep.Chunks,
		"output", rep.OutputPath,
		"elapsed_ms", rep.Duration.Milliseconds(),
	)
	return rep, nil
}

func (p *Processor) assemble(ctx context.Context, frags []entity.Fragment, chunks []entity.PdfChunk) (Report, error) {
	logger := common.LoggerFromContext(ctx, p.Logger)
	rep := Report{Entities: len(frags), Chunks: len(chunks), OutputPath: p.Paths.OutputPath}

	table := &entity.Table{}
	if len(frags) > 0 {
		var err error
		if table, err = p.buildTable(ctx, frags, chunks, &rep); err != nil {
			return rep, err
		}
	} else {
		logger.Warn("pipeline.build.skipped", "reason", "no entities")
	}

	if err := p.Export.ExportFile(ctx, table, p.Paths.OutputPath); err != nil {
		return rep, err
	}
	return rep, nil
}

// buildTable derives and reconciles the rows. Data problems only ever flag
// cells, so a panic here is a bug and surfaces as an internal error.
func (p *Processor) buildTable(ctx context.Context, frags []entity.Fragment, chunks []entity.PdfChunk, rep *Report) (table *entity.Table, err error) {
	logger := common.LoggerFromContext(ctx, p.Logger)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline.build.panic", "panic", r)
			table, err = nil, common.NewInternalError("build records", r)
		}
	}()

	idx := pdfindex.Build(chunks, logger)
	rep.IndexKeys = idx.Len()

	b := builder.New(p.Classifier, idx, p.Options, logger)
	table, candidates := b.Build(frags)

	res := reconcile.Run(table, candidates)
	rep.Review = res.Count(constants.FlagReview)
	rep.Conflicts = res.Count(constants.FlagConflict)
	logger.Info("pipeline.reconcile.ok", "rows", table.Len(), "review", rep.Review, "conflicts", rep.Conflicts)

	builder.FinalizeNames(table)
	return table, nil
}
