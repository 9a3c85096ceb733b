package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

// SheetName is the single worksheet of the output workbook.
const SheetName = "Sheet1"

// Service serializes a record table into an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

type styles struct {
	header   int
	review   int
	conflict int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.review, err = f.NewStyle(solidFill(constants.ReviewFillColor)); err != nil {
		return s, err
	}
	if s.conflict, err = f.NewStyle(solidFill(constants.ConflictFillColor)); err != nil {
		return s, err
	}
	return s, nil
}

func solidFill(rgb string) *excelize.Style {
	return &excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}}}
}

// ExportXLSX returns the workbook bytes: a header row with the fixed column
// schema, then one row per record. Review cells are yellow; conflict cells,
// and every cell of a conflict row, are red.
func (s *Service) ExportXLSX(ctx context.Context, table *entity.Table) ([]byte, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, s.logger)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.GetSheetIndex(SheetName)
	if err != nil || idx == -1 {
		if idx, err = f.NewSheet(SheetName); err != nil {
			return nil, common.NewAppError(common.CodeExport, "create sheet", err)
		}
	}
	f.SetActiveSheet(idx)

	st, err := newStyles(f)
	if err != nil {
		return nil, common.NewAppError(common.CodeExport, "create styles", err)
	}

	cols := constants.Columns()
	for i, h := range constants.AsStringSlice() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(cols), 1)
	_ = f.SetCellStyle(SheetName, "A1", lastHeader, st.header)

	flagged := 0
	for i := 0; i < table.Len(); i++ {
		rec := table.Rows[i]
		row := i + 2
		values := rec.Values()
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellStr(SheetName, cell, values[c]); err != nil {
				return nil, common.NewAppError(common.CodeExport, fmt.Sprintf("write cell %s", cell), err)
			}
			var style int
			switch rec.FlagOf(col) {
			case constants.FlagReview:
				style = st.review
			case constants.FlagConflict:
				style = st.conflict
			default:
				continue
			}
			flagged++
			_ = f.SetCellStyle(SheetName, cell, cell, style)
		}
	}

	for c, col := range cols {
		name, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(SheetName, name, name, columnWidth(col))
	}
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	runID := common.RunIDFromContext(ctx)
	_ = f.SetDocProps(&excelize.DocProperties{
		Title:       "Sanctions registry export",
		Subject:     constants.DefaultSource,
		Creator:     "sanctions-batch",
		Identifier:  runID,
		Description: fmt.Sprintf("%d records", table.Len()),
		Created:     start.UTC().Format(time.RFC3339),
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.NewAppError(common.CodeExport, "xlsx write", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", table.Len(),
		"flagged_cells", flagged,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportFile writes the workbook to path, creating parent folders.
func (s *Service) ExportFile(ctx context.Context, table *entity.Table, path string) error {
	b, err := s.ExportXLSX(ctx, table)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.NewAppError(common.CodeExport, "create output dir", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return common.NewAppError(common.CodeExport, "write output", err)
	}
	return nil
}

func columnWidth(col constants.Column) float64 {
	switch col {
	case constants.ColFullName, constants.ColAlias:
		return 32
	case constants.ColAddress, constants.ColDetails, constants.ColRem1, constants.ColRem2:
		return 60
	case constants.ColWebLink:
		return 48
	default:
		return 16
	}
}
