package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pdftext"
)

var reChunkFile = regexp.MustCompile(`^(.*)_entity(\d+)\.txt$`)

// WriteDir replaces every *.txt in dir with the given chunks.
func WriteDir(dir string, chunks []entity.PdfChunk) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chunk dir: %w", err)
	}
	old, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list chunk dir: %w", err)
	}
	for _, p := range old {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("remove stale chunk %s: %w", p, err)
		}
	}
	for _, c := range chunks {
		prog := c.Programme
		if prog == "" {
			prog = constants.DefaultProgramme
		}
		p := filepath.Join(dir, constants.ChunkFilename(SafeProgramme(prog), c.Seq))
		if err := os.WriteFile(p, []byte(c.Text), 0o644); err != nil {
			return fmt.Errorf("write chunk %d: %w", c.Seq, err)
		}
	}
	return nil
}

// ReadDir loads the chunk trace of dir in sequence order. Files that are not
// valid UTF-8 are read as ISO-8859-1.
func ReadDir(dir string) ([]entity.PdfChunk, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list chunk dir: %w", err)
	}
	var chunks []entity.PdfChunk
	for _, p := range paths {
		m := reChunkFile.FindStringSubmatch(filepath.Base(p))
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read chunk %s: %w", p, err)
		}
		chunks = append(chunks, entity.PdfChunk{Seq: seq, Programme: m[1], Text: pdftext.DecodeText(b)})
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Seq < chunks[j].Seq })
	return chunks, nil
}
