// Package gender infers the GENDER column. The default strategy is tuned to
// the naming conventions of the registry this tool was built for; swap the
// dataset or the Classifier when that does not hold.
package gender

import (
	"strings"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
)

// Classifier decides the gender written for one entity.
// marker is the gender attribute of the name aliases, possibly empty.
type Classifier interface {
	Classify(name, marker string) string
}

// Detector is the default Classifier: explicit marker, then gate lists, then
// first-name lookup, then Male.
type Detector struct {
	titles     []string
	patterns   []string
	firstNames map[string]Verdict
}

var _ Classifier = (*Detector)(nil)

var verdictOrder = []Verdict{VerdictAndy, VerdictMostlyFemale, VerdictMostlyMale, VerdictFemale, VerdictMale}

// NewDetector builds a Detector from ds. A nil ds uses the embedded dataset.
func NewDetector(ds *Dataset) (*Detector, error) {
	if ds == nil {
		var err error
		if ds, err = DefaultDataset(); err != nil {
			return nil, err
		}
	}
	d := &Detector{
		titles:     ds.MaleTitles,
		patterns:   ds.MalePatterns,
		firstNames: make(map[string]Verdict),
	}
	// a name listed under several verdicts keeps the first in verdictOrder
	for _, verdict := range verdictOrder {
		for _, n := range ds.FirstNames[verdict] {
			if _, ok := d.firstNames[n]; !ok {
				d.firstNames[n] = verdict
			}
		}
	}
	return d, nil
}

func (d *Detector) Classify(name, marker string) string {
	if marker != "" {
		if strings.ToUpper(marker) == "F" {
			return constants.GenderFemale
		}
		return constants.GenderMale
	}
	if name == "" {
		return constants.GenderMale
	}
	if d.IsForcedMale(name) {
		return constants.GenderMale
	}
	first := strings.Fields(name)
	if len(first) == 0 {
		return constants.GenderMale
	}
	if d.Guess(first[0]) == VerdictFemale {
		return constants.GenderFemale
	}
	return constants.GenderMale
}

// IsForcedMale reports whether any gate-list entry occurs in the lower-cased name.
func (d *Detector) IsForcedMale(name string) bool {
	if name == "" {
		return false
	}
	n := strings.ToLower(name)
	for _, t := range d.titles {
		if strings.Contains(n, t) {
			return true
		}
	}
	for _, p := range d.patterns {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}

// Guess looks up a first name case-insensitively.
func (d *Detector) Guess(firstName string) Verdict {
	if v, ok := d.firstNames[strings.ToLower(firstName)]; ok {
		return v
	}
	return VerdictUnknown
}
