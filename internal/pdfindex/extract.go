// Package pdfindex pulls the name and the identifier/programme summary out of
// each PDF chunk and indexes the summaries by normalized name.
package pdfindex

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/names"
)

var (
	reNameAlias = regexp.MustCompile(`(?i)^Name/Alias\s*:\s*(.*)`)
	reSection   = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(title|function|birth information|birth date|citizenship information|` +
		`contact information|identity information|address|remark|url|programme)[\s\p{Z}]*:`)
	reNumber    = regexp.MustCompile(`(?i)^Number\s*:\s*`)
	reProgramme = regexp.MustCompile(`(?i)^Programme\s*:\s*`)
	reSpaceRun  = regexp.MustCompile(`[\s\p{Z}]+`)
)

var lineBreaks = strings.NewReplacer(
	"\r\n", "\n", "\r", "\n", "\v", "\n", "\f", "\n",
	"\x1c", "\n", "\x1d", "\n", "\x1e", "\n",
	"\u0085", "\n", "\u2028", "\n", "\u2029", "\n",
)

// Extract reads one chunk. ok is false when no Latin-script name was found;
// the summary is still returned for logging.
func Extract(text string) (entity.PdfSummary, bool) {
	lines := splitLines(strings.ReplaceAll(text, "\u00a0", " "))

	name := extractName(lines)
	sum := entity.PdfSummary{Name: name, Summary: extractSummary(lines)}
	return sum, name != ""
}

func splitLines(text string) []string {
	raw := strings.Split(lineBreaks.Replace(text), "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	for i := range raw {
		raw[i] = strings.TrimSpace(raw[i])
	}
	return raw
}

// nextNonBlank returns the index of the first non-blank line after i, or
// len(lines).
func nextNonBlank(lines []string, i int) int {
	j := i + 1
	for j < len(lines) && lines[j] == "" {
		j++
	}
	return j
}

// extractName scans Name/Alias lines in order and keeps the first candidate
// that passes the Latin-script gate.
func extractName(lines []string) string {
	for i, ln := range lines {
		m := reNameAlias.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" {
			if j := nextNonBlank(lines, i); j < len(lines) {
				candidate = lines[j]
			}
		}
		if candidate != "" {
			if loc := reSection.FindStringSubmatchIndex(candidate); loc != nil {
				candidate = candidate[:loc[2]]
			}
			candidate = strings.TrimSpace(candidate)
		}
		if candidate != "" && names.IsLatin(candidate) {
			return names.Clean(candidate)
		}
	}
	return ""
}

func extractSummary(lines []string) string {
	var (
		numbers      []string
		programme    string
		hasProgramme bool
	)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if reNumber.MatchString(line) {
			if rest := strings.TrimSpace(reNumber.ReplaceAllString(line, "")); rest != "" {
				numbers = append(numbers, rest)
			} else {
				j := nextNonBlank(lines, i)
				if j < len(lines) {
					numbers = append(numbers, lines[j])
				}
				i = j
			}
		}
		if !hasProgramme && reProgramme.MatchString(line) {
			if rest := strings.TrimSpace(reProgramme.ReplaceAllString(line, "")); rest != "" {
				programme, hasProgramme = rest, true
			} else {
				j := nextNonBlank(lines, i)
				if j < len(lines) {
					programme, hasProgramme = lines[j], true
				}
				i = j
			}
		}
	}

	var cleaned []string
	for _, n := range numbers {
		if n = strings.TrimSpace(reSpaceRun.ReplaceAllString(n, " ")); n != "" {
			cleaned = append(cleaned, n)
		}
	}

	var parts []string
	if len(cleaned) > 0 {
		parts = append(parts, "Number: "+strings.Join(cleaned, " / "))
	}
	if prog := lastSegment(programme); prog != "" {
		parts = append(parts, "Programme: "+prog)
	}
	return strings.Join(parts, "; ")
}

// lastSegment keeps the last non-empty pipe-delimited segment.
func lastSegment(programme string) string {
	programme = strings.TrimSpace(programme)
	if programme == "" {
		return ""
	}
	var last string
	for _, p := range strings.Split(programme, "|") {
		if p = strings.TrimSpace(p); p != "" {
			last = p
		}
	}
	if last == "" {
		return programme
	}
	return last
}
