package constants

// Flag is the review state of a cell or row. The three values are mutually exclusive.
type Flag string

const (
	FlagNone     Flag = ""
	FlagReview   Flag = "REVIEW"   // missing data, non-fatal
	FlagConflict Flag = "CONFLICT" // ambiguous duplicate, needs a human
)

// Fill colours used for flagged cells in the output workbook.
const (
	ReviewFillColor   = "FFFF00"
	ConflictFillColor = "FF0000"
)

// Gender values written to the GENDER column.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)
