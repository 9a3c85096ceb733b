// Package reconcile fills identifier remarks missing from rows that share a
// name with their neighbours, and flags rows it cannot settle.
package reconcile

import (
	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

// Direction of a neighbour scan.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Result holds the resolved identifier and flag of every row.
type Result struct {
	Values []string
	Flags  []constants.Flag
}

// Count returns how many rows carry flag f.
func (r Result) Count(f constants.Flag) int {
	n := 0
	for _, g := range r.Flags {
		if g == f {
			n++
		}
	}
	return n
}

// Nearest returns the closest non-empty value strictly before (Backward) or
// after (Forward) idx, or "" when there is none.
func Nearest(values []string, idx int, dir Direction) string {
	for j := idx + int(dir); j >= 0 && j < len(values); j += int(dir) {
		if values[j] != "" {
			return values[j]
		}
	}
	return ""
}

// agreed returns the shared value of idx's two nearest non-empty neighbours,
// if they exist and are identical.
func agreed(values []string, idx int) (string, bool) {
	prev := Nearest(values, idx, Backward)
	next := Nearest(values, idx, Forward)
	if prev != "" && prev == next {
		return prev, true
	}
	return "", false
}

// Resolve reconciles candidates row by row. names groups rows by exact match;
// rows named UNKNOWN never receive a value.
//
// The first pass reads only the raw candidates. The second pass revisits rows
// that are still empty and reads the values resolved so far, including those
// it fills itself.
func Resolve(names, candidates []string) Result {
	n := len(names)
	res := Result{Values: make([]string, n), Flags: make([]constants.Flag, n)}

	occurrences := make(map[string]int, n)
	for _, name := range names {
		occurrences[name]++
	}
	cand := func(i int) string {
		if i < len(candidates) {
			return candidates[i]
		}
		return ""
	}
	raw := make([]string, n)
	for i := range raw {
		raw[i] = cand(i)
	}

	for i, name := range names {
		switch {
		case name == constants.Unknown:
			res.Flags[i] = constants.FlagReview
		case raw[i] != "":
			res.Values[i] = raw[i]
		case occurrences[name] == 1:
			res.Flags[i] = constants.FlagReview
		default:
			if v, ok := agreed(raw, i); ok {
				res.Values[i] = v
			} else {
				res.Flags[i] = constants.FlagConflict
			}
		}
	}

	for i, name := range names {
		if name == constants.Unknown || res.Values[i] != "" || occurrences[name] <= 1 {
			continue
		}
		if v, ok := agreed(res.Values, i); ok {
			res.Values[i] = v
			res.Flags[i] = constants.FlagNone
		}
	}
	return res
}

// Apply writes REM2 and its flag into every row. Rows left in conflict are
// flagged as a whole.
func Apply(table *entity.Table, res Result) {
	if table == nil {
		return
	}
	for i, r := range table.Rows {
		if i >= len(res.Values) {
			break
		}
		r.Set(constants.ColRem2, res.Values[i])
		r.Flag(constants.ColRem2, res.Flags[i])
		if res.Flags[i] == constants.FlagConflict {
			r.RowFlag = constants.FlagConflict
		} else if r.RowFlag == constants.FlagConflict {
			r.RowFlag = constants.FlagNone
		}
	}
}

// Run resolves the table's identifier candidates in place.
func Run(table *entity.Table, candidates []string) Result {
	res := Resolve(table.MatchNames(), candidates)
	Apply(table, res)
	return res
}
