package entity

import (
	"github.com/joseph-ayodele/sanctions-tracker/constants"
)

// Record is one output row. Cells not set read as "".
type Record struct {
	cells map[constants.Column]string
	flags map[constants.Column]constants.Flag

	// MatchName is the derived full name before the final accent-stripping
	// pass. Reconciliation groups rows by it.
	MatchName string
	// RowFlag marks the whole row; FlagConflict overrides every cell flag.
	RowFlag constants.Flag
}

// NewRecord returns a row with the constant columns populated.
func NewRecord(webLink, source string) *Record {
	r := &Record{
		cells: make(map[constants.Column]string),
		flags: make(map[constants.Column]constants.Flag),
	}
	r.Set(constants.ColWebLink, webLink)
	r.Set(constants.ColSource, source)
	return r
}

func (r *Record) Get(col constants.Column) string {
	return r.cells[col]
}

func (r *Record) Set(col constants.Column, value string) {
	if r.cells == nil {
		r.cells = make(map[constants.Column]string)
	}
	r.cells[col] = value
}

// Flag sets the review state of one cell.
func (r *Record) Flag(col constants.Column, f constants.Flag) {
	if r.flags == nil {
		r.flags = make(map[constants.Column]constants.Flag)
	}
	if f == constants.FlagNone {
		delete(r.flags, col)
		return
	}
	r.flags[col] = f
}

// FlagOf returns the effective state of a cell, taking the row flag into account.
func (r *Record) FlagOf(col constants.Column) constants.Flag {
	if r.RowFlag == constants.FlagConflict {
		return constants.FlagConflict
	}
	return r.flags[col]
}

// CellFlag returns the cell's own flag, ignoring the row flag.
func (r *Record) CellFlag(col constants.Column) constants.Flag {
	return r.flags[col]
}

// Values returns the row in sheet column order.
func (r *Record) Values() []string {
	cols := constants.Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.cells[c]
	}
	return out
}

// Table is the in-memory sheet. Row order is significant: reconciliation
// depends on adjacency of rows as emitted.
type Table struct {
	Rows []*Record
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the values of one column, top to bottom.
func (t *Table) Column(col constants.Column) []string {
	out := make([]string, 0, t.Len())
	if t == nil {
		return out
	}
	for _, r := range t.Rows {
		out = append(out, r.Get(col))
	}
	return out
}

// MatchNames returns the reconciliation grouping key of every row.
func (t *Table) MatchNames() []string {
	out := make([]string, 0, t.Len())
	if t == nil {
		return out
	}
	for _, r := range t.Rows {
		out = append(out, r.MatchName)
	}
	return out
}
