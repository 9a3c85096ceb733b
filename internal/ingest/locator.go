// Package ingest locates the registry input documents on the local
// filesystem. Fetching them is someone else's job; this package only picks
// the newest file of the right kind.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
)

// Input is one candidate input document.
type Input struct {
	Path    string
	Ext     string
	Size    int64
	ModTime time.Time
	HashHex string
}

type DirStats struct {
	Scanned uint32
	Matched uint32
}

// Scan walks root and returns the files whose extension is in exts, newest
// first. Hidden files and folders are skipped.
func Scan(root string, exts map[string]struct{}) ([]Input, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, common.NewAppError(common.CodeInput, "root path is required", common.ErrInvalidInput)
	}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, stats, fmt.Errorf("%s: %w", root, common.ErrNoInput)
		}
		return nil, stats, fmt.Errorf("stat %s: %w", root, err)
	}

	var found []Input
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		stats.Scanned++
		if path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := exts[ext]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.Matched++
		found = append(found, Input{Path: path, Ext: ext, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if !found[i].ModTime.Equal(found[j].ModTime) {
			return found[i].ModTime.After(found[j].ModTime)
		}
		return found[i].Path > found[j].Path
	})
	return found, stats, nil
}

// Latest returns the newest input of the given kind ("xml" or "pdf") under
// dir, with its content hash filled in. It returns an error wrapping
// common.ErrNoInput when there is none.
func Latest(dir, kind string) (Input, error) {
	exts, ok := constants.AllowedExtensions[kind]
	if !ok {
		return Input{}, common.NewAppError(common.CodeInput, fmt.Sprintf("unknown input kind %q", kind), common.ErrInvalidInput)
	}
	found, _, err := Scan(dir, exts)
	if err != nil {
		return Input{}, err
	}
	if len(found) == 0 {
		return Input{}, fmt.Errorf("no %s input under %s: %w", kind, dir, common.ErrNoInput)
	}
	in := found[0]
	if in.HashHex, err = hashFile(in.Path); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Resolve returns explicit when set, otherwise the newest input of kind
// under dir.
func Resolve(explicit, dir, kind string) (Input, error) {
	if explicit == "" {
		return Latest(dir, kind)
	}
	info, err := os.Stat(explicit)
	if err != nil {
		if os.IsNotExist(err) {
			return Input{}, fmt.Errorf("%s: %w", explicit, common.ErrNoInput)
		}
		return Input{}, fmt.Errorf("stat %s: %w", explicit, err)
	}
	in := Input{
		Path:    explicit,
		Ext:     constants.NormalizeExt(filepath.Ext(explicit)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if in.HashHex, err = hashFile(explicit); err != nil {
		return Input{}, err
	}
	return in, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
