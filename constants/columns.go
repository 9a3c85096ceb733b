package constants

import (
	"strings"
)

type Column string

// Output columns in sheet order. The order is part of the output contract.
const (
	ColFullName       Column = "FULL_NAME"
	ColCategory       Column = "CATEGORY"
	ColFirstName      Column = "F_NAME"
	ColMiddleName     Column = "M_NAME"
	ColLastName       Column = "L_NAME"
	ColGender         Column = "GENDER"
	ColDOB            Column = "DOB"
	ColAddCity        Column = "ADD_CITY"
	ColAddCountry     Column = "ADD_COUNTRY"
	ColState          Column = "STATE"
	ColNationalities  Column = "NATIONALITIES"
	ColAddress        Column = "ADDRESS"
	ColIdentityNumber Column = "IDENTITY NUMBER"
	ColIdentityType   Column = "IDENTITY TYPE"
	ColRefDate        Column = "REF_DATE"
	ColDetails        Column = "DETAILS"
	ColWebLink        Column = "WEB_LINK"
	ColViolationID    Column = "VIOLATION_ID"
	ColSource         Column = "SOURCE"
	ColAlias          Column = "ALIAS"
	ColAssociates     Column = "ASSOCIATES"
	ColMainActivity   Column = "MAIN ACTIVITY"
	ColCitizenship    Column = "CITIZENSHIP INFORMATION"
	ColStatus         Column = "STATUS"
	ColRem1           Column = "REM1"
	ColRem2           Column = "REM2"
	ColRem3           Column = "REM3"
	ColRemarks        Column = "REMARKS"
)

var allColumns = []Column{
	ColFullName, ColCategory, ColFirstName, ColMiddleName, ColLastName, ColGender, ColDOB,
	ColAddCity, ColAddCountry, ColState, ColNationalities, ColAddress,
	ColIdentityNumber, ColIdentityType, ColRefDate, ColDetails, ColWebLink,
	ColViolationID, ColSource, ColAlias, ColAssociates, ColMainActivity,
	ColCitizenship, ColStatus, ColRem1, ColRem2, ColRem3, ColRemarks,
}

// Columns returns a copy of the output schema in sheet order.
func Columns() []Column {
	out := make([]Column, len(allColumns))
	copy(out, allColumns)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allColumns))
	for i, col := range allColumns {
		result[i] = string(col)
	}
	return result
}

// ColumnIndex returns the 1-based sheet position of a column, matching names
// case-insensitively. ok is false for unknown names.
func ColumnIndex(name string) (int, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for i, col := range allColumns {
		if normalized == string(col) {
			return i + 1, true
		}
	}
	return 0, false
}

const (
	// Unknown is stamped into FULL_NAME and CATEGORY when no value can be derived.
	Unknown = "UNKNOWN"

	DefaultWebLink = "https://www.sanctionsmap.eu/#/main/travel/ban"
	DefaultSource  = "EU TRAVEL BAN"
)
