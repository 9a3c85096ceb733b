package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

func openWorkbook(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func fillOf(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(SheetName, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return style.Fill.Color[0]
}

func sampleTable() *entity.Table {
	ok := entity.NewRecord(constants.DefaultWebLink, constants.DefaultSource)
	ok.Set(constants.ColFullName, "Ahmad Khan")
	ok.Set(constants.ColRem2, "Number: 123")

	review := entity.NewRecord(constants.DefaultWebLink, constants.DefaultSource)
	review.Set(constants.ColFullName, constants.Unknown)
	review.Flag(constants.ColFullName, constants.FlagReview)
	review.Flag(constants.ColRem2, constants.FlagReview)

	clash := entity.NewRecord(constants.DefaultWebLink, constants.DefaultSource)
	clash.Set(constants.ColFullName, "Ahmad Khan")
	clash.Flag(constants.ColRem2, constants.FlagConflict)
	clash.RowFlag = constants.FlagConflict

	return &entity.Table{Rows: []*entity.Record{ok, review, clash}}
}

func TestExportXLSX(t *testing.T) {
	ctx := common.WithRunID(context.Background(), "run-123")
	b, err := NewService(nil).ExportXLSX(ctx, sampleTable())
	require.NoError(t, err)

	f := openWorkbook(t, b)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, constants.AsStringSlice(), rows[0])

	assert.Equal(t, "Ahmad Khan", rows[1][0])
	rem2, _ := constants.ColumnIndex("REM2")
	assert.Equal(t, "Number: 123", rows[1][rem2-1])

	web, _ := f.GetCellValue(SheetName, "Q3")
	assert.Equal(t, constants.DefaultWebLink, web)
	src, _ := f.GetCellValue(SheetName, "S4")
	assert.Equal(t, constants.DefaultSource, src)

	assert.Equal(t, "", fillOf(t, f, "A2"))
	assert.Equal(t, "", fillOf(t, f, "Z2"))
	assert.Equal(t, constants.ReviewFillColor, fillOf(t, f, "A3"))
	assert.Equal(t, constants.ReviewFillColor, fillOf(t, f, "Z3"))
	assert.Equal(t, "", fillOf(t, f, "B3"))
	for _, cell := range []string{"A4", "B4", "Z4", "AB4"} {
		assert.Equal(t, constants.ConflictFillColor, fillOf(t, f, cell), cell)
	}

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "run-123", props.Identifier)
}

func TestExportXLSX_EmptyTable(t *testing.T) {
	b, err := NewService(nil).ExportXLSX(context.Background(), &entity.Table{})
	require.NoError(t, err)

	rows, err := openWorkbook(t, b).GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 28)
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sanctions_output.xlsx")
	require.NoError(t, NewService(nil).ExportFile(context.Background(), sampleTable(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
