package xmlsplit

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

var reFragmentSeq = regexp.MustCompile(`^entity(\d+)\.xml$`)

// WriteDir replaces every *.xml in dir with the given fragments.
func WriteDir(dir string, frags []entity.Fragment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create fragment dir: %w", err)
	}
	old, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return fmt.Errorf("list fragment dir: %w", err)
	}
	for _, p := range old {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("remove stale fragment %s: %w", p, err)
		}
	}
	for _, f := range frags {
		p := filepath.Join(dir, constants.FragmentFilename(f.Seq))
		if err := os.WriteFile(p, f.XML, 0o644); err != nil {
			return fmt.Errorf("write fragment %d: %w", f.Seq, err)
		}
	}
	return nil
}

// ReadDir loads the fragments of dir ordered by their numeric sequence id.
// Files whose name carries no sequence id are ignored.
func ReadDir(dir string) ([]entity.Fragment, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("list fragment dir: %w", err)
	}
	var frags []entity.Fragment
	for _, p := range paths {
		m := reFragmentSeq.FindStringSubmatch(filepath.Base(p))
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read fragment %s: %w", p, err)
		}
		frags = append(frags, entity.Fragment{Seq: seq, XML: b})
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].Seq < frags[j].Seq })
	return frags, nil
}
