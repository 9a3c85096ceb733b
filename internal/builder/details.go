package builder

import (
	"strings"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/names"
)

var detailFields = []string{"Title", "Birth date", "Birth place", "Citizenship", "Remark"}

// details assembles the DETAILS cell.
func details(src *entity.SourceEntity) string {
	fields := map[string][]string{
		"Title":       detailTitles(src),
		"Birth date":  secondaryBirthDates(src.Birthdates),
		"Birth place": birthPlaces(src.Birthdates),
		"Citizenship": secondCitizenship(src.Citizenships),
		"Remark":      remarks(src.Remarks),
	}

	var blocks []string
	for _, name := range detailFields {
		vals := dedupeFold(fields[name])
		if len(vals) == 0 {
			continue
		}
		trimmed := make([]string, len(vals))
		for i, v := range vals {
			trimmed[i] = strings.TrimSpace(v)
		}
		block := name + ": " + strings.TrimSpace(strings.Join(trimmed, " / "))
		blocks = append(blocks, strings.TrimSpace(block))
	}
	out := strings.Join(blocks, "; ")
	out = strings.NewReplacer("\n", " ", "\r", " ").Replace(out)
	return strings.TrimSpace(out)
}

func detailTitles(src *entity.SourceEntity) []string {
	var out []string
	for _, r := range src.Regulations {
		if r.NumberTitle != "" {
			out = append(out, strings.TrimSpace(r.NumberTitle))
		}
	}
	for _, a := range src.NameAliases {
		if a.Title == "" {
			continue
		}
		for _, p := range strings.Split(reWordMarker.ReplaceAllString(a.Title, ""), ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// secondaryBirthDates lists every full date after the first, bare years not
// covered by a full date, and year ranges.
func secondaryBirthDates(bds []entity.Birthdate) []string {
	var out []string
	years := make(map[string]struct{})
	full := 0
	for _, b := range bds {
		if b.Birthdate == "" {
			continue
		}
		full++
		parts := strings.Split(b.Birthdate, "-")
		if len(parts) != 3 {
			continue
		}
		years[parts[0]] = struct{}{}
		if full > 1 {
			out = append(out, parts[2]+"-"+parts[1]+"-"+parts[0])
		}
	}
	for _, b := range bds {
		if b.Year == "" || !isDigits(b.Year) {
			continue
		}
		if _, ok := years[b.Year]; !ok {
			out = append(out, b.Year)
		}
	}
	for _, b := range bds {
		if b.YearRangeFrom != "" && b.YearRangeTo != "" {
			out = append(out, b.YearRangeFrom+" to "+b.YearRangeTo)
		}
	}
	return out
}

func birthPlaces(bds []entity.Birthdate) []string {
	var out []string
	for _, b := range bds {
		if b.Place != "" {
			out = append(out, strings.TrimSpace(b.Place))
		}
	}
	return out
}

// secondCitizenship returns the second usable citizenship when it differs
// from the first.
func secondCitizenship(cits []entity.Citizenship) []string {
	var list []string
	for _, c := range cits {
		if d := strings.TrimSpace(c.CountryDescription); d != "" && strings.ToUpper(d) != constants.Unknown {
			list = append(list, names.Title(d))
		}
	}
	if len(list) < 2 {
		return nil
	}
	second := strings.TrimSpace(list[1])
	if second == "" || strings.ToLower(second) == strings.ToLower(strings.TrimSpace(list[0])) {
		return nil
	}
	return []string{second}
}

func remarks(texts []string) []string {
	var out []string
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || strings.ToLower(t) == "none" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
