package pdftext

import (
	"math"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is how far apart, in points, two glyph baselines may be
	// and still belong to the same line.
	rowTolerance = 2.0
	// wordGapRatio is the horizontal gap, as a share of the font size, that
	// separates two words when the document draws no space glyph.
	wordGapRatio = 0.25
)

type textRow struct {
	y     float64
	texts []pdflib.Text
}

// pageLines rebuilds the reading order of one page from positioned glyphs:
// glyphs are grouped into rows by baseline, rows run top to bottom, glyphs
// in a row left to right. Emission order breaks X ties, since fonts without
// a Widths array report every glyph of a string at the same X.
func pageLines(texts []pdflib.Text) []string {
	var rows []*textRow
	for _, t := range texts {
		if t.S == "" || t.S == "\n" || t.S == "\r" {
			continue
		}
		row := findRow(rows, t.Y)
		if row == nil {
			row = &textRow{y: t.Y}
			rows = append(rows, row)
		}
		row.texts = append(row.texts, t)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.texts, func(i, j int) bool { return row.texts[i].X < row.texts[j].X })
		lines = append(lines, joinRow(row.texts))
	}
	return lines
}

func findRow(rows []*textRow, y float64) *textRow {
	for _, r := range rows {
		if math.Abs(r.y-y) <= rowTolerance {
			return r
		}
	}
	return nil
}

func joinRow(texts []pdflib.Text) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 && needsSpace(texts[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
	}
	return strings.TrimRight(b.String(), " ")
}

func needsSpace(prev, cur pdflib.Text) bool {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return false
	}
	size := cur.FontSize
	if size <= 0 {
		size = prev.FontSize
	}
	if size <= 0 {
		size = 10
	}
	gap := cur.X - (prev.X + prev.W)
	return gap > size*wordGapRatio
}
