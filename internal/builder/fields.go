package builder

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/names"
)

var (
	rePlaceTokenPunct = regexp.MustCompile(`[,.\-;:]`)
	reLetterMarker    = regexp.MustCompile(`\([a-z]\)`)
	reWordMarker      = regexp.MustCompile(`\([\p{L}\p{N}_]\)`)
	reSpaceRun        = regexp.MustCompile(`[\s\p{Z}]+`)
)

// valid reports whether an attribute carries a usable value.
func valid(s string) bool {
	t := strings.TrimSpace(s)
	return t != "" && strings.ToUpper(t) != constants.Unknown
}

// category returns the first subject type code, or UNKNOWN and false.
func category(src *entity.SourceEntity) (string, bool) {
	if src.SubjectType == nil || src.SubjectType.ClassificationCode == "" {
		return constants.Unknown, false
	}
	return src.SubjectType.ClassificationCode, true
}

// selectName picks the first Latin-script alias. marker is the gender
// attribute of the last alias carrying one, up to and including the
// selected alias.
func selectName(aliases []entity.NameAlias) (name, marker string) {
	for _, a := range aliases {
		if a.HasGender {
			marker = a.Gender
		}
		if a.WholeName != "" && names.IsLatin(a.WholeName) {
			return names.Clean(a.WholeName), marker
		}
	}
	return "", marker
}

func nationality(src *entity.SourceEntity) string {
	if len(src.Citizenships) == 0 {
		return ""
	}
	cd := src.Citizenships[0].CountryDescription
	if !valid(cd) {
		return ""
	}
	return names.Title(strings.TrimSpace(cd))
}

// reformatDate turns YYYY-MM-DD into DD-MM-YYYY. ok is false when the value
// does not split into exactly three parts.
func reformatDate(iso string) (string, bool) {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return "", false
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0], true
}

func dateOfBirth(src *entity.SourceEntity) string {
	for _, b := range src.Birthdates {
		bd := strings.TrimSpace(b.Birthdate)
		if bd == "" {
			continue
		}
		out, _ := reformatDate(bd)
		return out
	}
	return ""
}

// filterPlaceTokens drops "city" tokens, drops "province" together with the
// token before it, then removes case-insensitive repeats.
func filterPlaceTokens(s string) string {
	var kept []string
	for _, w := range strings.Fields(s) {
		w = strings.TrimSpace(rePlaceTokenPunct.ReplaceAllString(w, ""))
		switch strings.ToLower(w) {
		case "province":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
			continue
		case "city":
			continue
		}
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.TrimSpace(strings.Join(dedupeFold(kept), " "))
}

// firstAddress returns city, country and region of the first address.
func firstAddress(src *entity.SourceEntity) (city, country, region string) {
	if len(src.Addresses) == 0 {
		return "", "", ""
	}
	a := src.Addresses[0]
	if valid(a.City) {
		city = filterPlaceTokens(a.City)
	}
	if valid(a.CountryDescription) {
		country = names.Title(strings.TrimSpace(a.CountryDescription))
	}
	if valid(a.Region) {
		region = filterPlaceTokens(a.Region)
	}
	return city, country, region
}

func decomma(s string) string {
	return strings.TrimSpace(reSpaceRun.ReplaceAllString(strings.ReplaceAll(s, ",", " "), " "))
}

func addressList(src *entity.SourceEntity) string {
	var out []string
	for _, a := range src.Addresses {
		var parts []string
		if valid(a.CountryDescription) {
			parts = append(parts, names.Title(decomma(a.CountryDescription)))
		}
		for _, f := range []string{a.City, a.Street, a.Region, a.Place, a.ZipCode} {
			if valid(f) {
				parts = append(parts, decomma(f))
			}
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}
	return strings.Join(out, "; ")
}

// otherAliases lists every Latin alias whose cleaned form differs from the
// selected name, ignoring case.
func otherAliases(aliases []entity.NameAlias, selected string) string {
	sel := strings.ToLower(selected)
	var out []string
	for _, a := range aliases {
		if a.WholeName == "" {
			continue
		}
		if !names.IsLatin(a.WholeName) {
			continue
		}
		c := names.Clean(a.WholeName)
		if sel != "" && strings.ToLower(c) == sel {
			continue
		}
		out = append(out, c)
	}
	return strings.Join(out, "; ")
}

func designation(aliases []entity.NameAlias) string {
	var all []string
	for _, a := range aliases {
		if a.Function == "" {
			continue
		}
		fn := strings.TrimSpace(a.Function)
		if !reLetterMarker.MatchString(fn) {
			all = append(all, fn)
			continue
		}
		for _, p := range strings.Split(reLetterMarker.ReplaceAllString(fn, "|"), "|") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			all = append(all, strings.Trim(strings.TrimSpace(p), ","))
		}
	}
	if len(all) == 0 {
		return ""
	}
	return "Designation: " + strings.Join(all, "; ")
}

// lookupCandidates lists the names tried against the PDF index: every Latin
// alias, with the selected name first when it is not already among them.
func lookupCandidates(aliases []entity.NameAlias, selected string) []string {
	var out []string
	found := false
	for _, a := range aliases {
		if a.WholeName != "" && names.IsLatin(a.WholeName) {
			c := names.Clean(a.WholeName)
			if c == selected {
				found = true
			}
			out = append(out, c)
		}
	}
	if selected != "" && !found {
		out = append([]string{selected}, out...)
	}
	return out
}

func dedupeFold(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
