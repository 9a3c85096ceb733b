package gender

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Verdict is a first-name lookup result.
type Verdict string

const (
	VerdictFemale       Verdict = "female"
	VerdictMale         Verdict = "male"
	VerdictMostlyFemale Verdict = "mostly_female"
	VerdictMostlyMale   Verdict = "mostly_male"
	VerdictAndy         Verdict = "andy"
	VerdictUnknown      Verdict = "unknown"
)

// Dataset is the gate lists plus the first-name table.
type Dataset struct {
	MaleTitles   []string             `yaml:"male_titles" json:"male_titles"`
	MalePatterns []string             `yaml:"male_patterns" json:"male_patterns"`
	FirstNames   map[Verdict][]string `yaml:"first_names" json:"first_names"`
}

// DefaultDataset returns the embedded dataset.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(defaultDataset)
}

// LoadDataset reads a YAML (or JSON, which YAML accepts) dataset file.
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gender dataset: %w", err)
	}
	ds, err := ParseDataset(raw)
	if err != nil {
		return nil, common.WrapError(err, "gender dataset "+path)
	}
	return ds, nil
}

// ParseDataset validates raw against the dataset schema and decodes it.
func ParseDataset(raw []byte) (*Dataset, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validateDataset(doc); err != nil {
		return nil, err
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	ds.normalize()
	return &ds, nil
}

func (d *Dataset) normalize() {
	d.MaleTitles = lowerAll(d.MaleTitles)
	d.MalePatterns = lowerAll(d.MalePatterns)
	for k, v := range d.FirstNames {
		d.FirstNames[k] = lowerAll(v)
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
