// Package chunker partitions the extracted registry PDF text into one chunk
// per "Entity N" block.
package chunker

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

// RE2's \b and \d are ASCII-only, so the marker spells out the Unicode word
// boundary after the number. Only match starts are used.
var (
	reMarker      = regexp.MustCompile(`(?i)Entity[\s\p{Z}]+\p{Nd}+(?:[^\p{L}\p{N}_]|$)`)
	reProgramme   = regexp.MustCompile(`(?i)Programme\s*[:\-]\s*([A-Za-z0-9]+)`)
	reNotAlnumRun = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Split cuts text before every entity marker. Text ahead of the first marker
// is dropped.
func Split(text string) []entity.PdfChunk {
	starts := []int{0}
	for _, loc := range reMarker.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			starts = append(starts, loc[0])
		}
	}

	var chunks []entity.PdfChunk
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		part := strings.TrimSpace(text[start:end])
		if part == "" {
			continue
		}
		if loc := reMarker.FindStringIndex(part); loc == nil || loc[0] != 0 {
			continue
		}
		chunks = append(chunks, entity.PdfChunk{
			Seq:       len(chunks) + 1,
			Programme: Programme(part),
			Text:      part,
		})
	}
	return chunks
}

// Programme returns the upper-cased programme code declared in a chunk, or
// the default code.
func Programme(text string) string {
	m := reProgramme.FindStringSubmatch(text)
	if m == nil {
		return constants.DefaultProgramme
	}
	return strings.ToUpper(m[1])
}

// SafeProgramme makes a programme code usable in a filename.
func SafeProgramme(programme string) string {
	safe := strings.Trim(reNotAlnumRun.ReplaceAllString(programme, "_"), "_")
	if safe == "" {
		return constants.DefaultProgramme
	}
	return safe
}

// Join concatenates chunk texts the way they would appear in a document.
func Join(chunks []entity.PdfChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, "\n")
}
