package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/sanctions-tracker/internal/builder"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/export"
	"github.com/joseph-ayodele/sanctions-tracker/internal/gender"
	"github.com/joseph-ayodele/sanctions-tracker/internal/ingest"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pdftext"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sanctions-batch",
		Short: "Convert the EU sanctions registry (XML + PDF) into a reviewed spreadsheet",
		Long: `sanctions-batch splits the registry XML into one document per entity,
chunks the companion PDF text, derives one spreadsheet row per entity and
reconciles identifier remarks across rows that share a name.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("data-dir", "", "Data folder holding inputs and trace folders (env SANCTIONS_DATA_DIR)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output workbook path (env SANCTIONS_OUTPUT)")
	rootCmd.PersistentFlags().String("log-level", "", "debug | info | warn | error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "json | text (env LOG_FORMAT)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(pdftextCmd())

	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// app is what every subcommand needs after flags and environment are merged.
type app struct {
	cfg    *common.Config
	logger *slog.Logger
	ctx    context.Context
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg := common.LoadConfig()
	flags := cmd.Flags()
	if v, _ := flags.GetString("data-dir"); v != "" {
		cfg.SetDataDir(v)
	}
	if v, _ := flags.GetString("output"); v != "" {
		cfg.Output.Path = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if flags.Lookup("xml") != nil {
		if v, _ := flags.GetString("xml"); v != "" {
			cfg.Data.XMLPath = v
		}
	}
	if flags.Lookup("pdf") != nil {
		if v, _ := flags.GetString("pdf"); v != "" {
			cfg.Data.PDFPath = v
		}
	}
	if flags.Lookup("gender-dataset") != nil {
		if v, _ := flags.GetString("gender-dataset"); v != "" {
			cfg.Gender.DatasetPath = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := newLogger(cfg.Log).With("run_id", runID, "cmd", cmd.Name())
	slog.SetDefault(logger)

	ctx := common.WithRunID(cmd.Context(), runID)
	ctx = common.WithLogger(ctx, logger)
	return &app{cfg: cfg, logger: logger, ctx: ctx}, nil
}

func newLogger(cfg common.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func (a *app) extractor() *pdftext.Extractor {
	return pdftext.NewExtractor(pdftext.Config{
		Pdftotext:         a.cfg.PDF.Pdftotext,
		FallbackPdftotext: a.cfg.PDF.FallbackPdftotext,
		Timeout:           a.cfg.PDF.Timeout,
	}, a.logger)
}

func (a *app) processor() (*pipeline.Processor, error) {
	var ds *gender.Dataset
	if a.cfg.Gender.DatasetPath != "" {
		var err error
		if ds, err = gender.LoadDataset(a.cfg.Gender.DatasetPath); err != nil {
			return nil, err
		}
		a.logger.Info("gender.dataset.loaded", "path", a.cfg.Gender.DatasetPath)
	}
	det, err := gender.NewDetector(ds)
	if err != nil {
		return nil, err
	}
	paths := pipeline.Paths{
		XMLChunksDir: a.cfg.XMLChunksDir(),
		PDFChunksDir: a.cfg.PDFChunksDir(),
		OutputPath:   a.cfg.Output.Path,
	}
	opts := builder.Options{WebLink: a.cfg.Output.WebLink, Source: a.cfg.Output.SourceLabel}
	return pipeline.NewProcessor(a.logger, paths, a.extractor(), det, export.NewService(a.logger), opts), nil
}

// resolveInput returns "" when the input is unavailable so the pipeline can
// degrade instead of failing.
func (a *app) resolveInput(explicit, dir, kind string) string {
	in, err := ingest.Resolve(explicit, dir, kind)
	if err != nil {
		if common.IsNoInput(err) {
			a.logger.Warn("ingest.input.missing", "kind", kind, "dir", dir, "error", err)
		} else {
			a.logger.Error("ingest.input.failed", "kind", kind, "dir", dir, "error", err)
		}
		return ""
	}
	a.logger.Info("ingest.input.ok", "kind", kind, "path", in.Path, "bytes", in.Size, "sha256", in.HashHex)
	return in.Path
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Split, chunk, build, reconcile and write the workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			proc, err := a.processor()
			if err != nil {
				return err
			}
			in := pipeline.Inputs{
				XMLPath: a.resolveInput(a.cfg.Data.XMLPath, a.cfg.XMLInputDir(), "xml"),
				PDFPath: a.resolveInput(a.cfg.Data.PDFPath, a.cfg.PDFInputDir(), "pdf"),
			}
			rep, err := proc.Run(a.ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entities, %d chunks, %d to review, %d conflicts -> %s\n",
				rep.Entities, rep.Chunks, rep.Review, rep.Conflicts, rep.OutputPath)
			return nil
		},
	}
	cmd.Flags().String("xml", "", "Registry XML path (default: newest file in <data-dir>/xml_files)")
	cmd.Flags().String("pdf", "", "Registry PDF or extracted .txt path (default: newest file in <data-dir>/pdf)")
	cmd.Flags().String("gender-dataset", "", "YAML or JSON gender dataset replacing the embedded one")
	return cmd
}

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the registry XML into per-entity fragments only",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			proc, err := a.processor()
			if err != nil {
				return err
			}
			path := a.resolveInput(a.cfg.Data.XMLPath, a.cfg.XMLInputDir(), "xml")
			frags := proc.SplitXML(a.ctx, path)
			fmt.Fprintf(cmd.OutOrStdout(), "%d entities -> %s\n", len(frags), a.cfg.XMLChunksDir())
			return nil
		},
	}
	cmd.Flags().String("xml", "", "Registry XML path (default: newest file in <data-dir>/xml_files)")
	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rebuild the workbook from existing fragment and chunk folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			proc, err := a.processor()
			if err != nil {
				return err
			}
			rep, err := proc.Convert(a.ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entities, %d chunks, %d to review, %d conflicts -> %s\n",
				rep.Entities, rep.Chunks, rep.Review, rep.Conflicts, rep.OutputPath)
			return nil
		},
	}
	cmd.Flags().String("gender-dataset", "", "YAML or JSON gender dataset replacing the embedded one")
	return cmd
}

func pdftextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdftext",
		Short: "Print the text extracted from the registry PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			path := a.resolveInput(a.cfg.Data.PDFPath, a.cfg.PDFInputDir(), "pdf")
			if path == "" {
				return fmt.Errorf("pdf input: %w", common.ErrNoInput)
			}
			res, err := a.extractor().Extract(a.ctx, path)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), res.Text)
				return err
			}
			return os.WriteFile(out, []byte(res.Text), 0o644)
		},
	}
	cmd.Flags().String("pdf", "", "Registry PDF path (default: newest file in <data-dir>/pdf)")
	cmd.Flags().String("out", "", "Write the text to this file instead of stdout")
	return cmd
}
