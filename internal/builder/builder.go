// Package builder derives one output record per entity fragment.
package builder

import (
	"log/slog"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/gender"
	"github.com/joseph-ayodele/sanctions-tracker/internal/names"
	"github.com/joseph-ayodele/sanctions-tracker/internal/pdfindex"
)

type Options struct {
	WebLink string
	Source  string
}

type Builder struct {
	classifier gender.Classifier
	index      *pdfindex.Index
	opts       Options
	logger     *slog.Logger
}

// New returns a Builder. A nil index means no identifier candidates are found.
func New(classifier gender.Classifier, index *pdfindex.Index, opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WebLink == "" {
		opts.WebLink = constants.DefaultWebLink
	}
	if opts.Source == "" {
		opts.Source = constants.DefaultSource
	}
	return &Builder{classifier: classifier, index: index, opts: opts, logger: logger}
}

// Build returns one row per fragment, in fragment order, and the identifier
// candidate of each row.
func (b *Builder) Build(frags []entity.Fragment) (*entity.Table, []string) {
	table := &entity.Table{Rows: make([]*entity.Record, 0, len(frags))}
	candidates := make([]string, 0, len(frags))
	unknown := 0
	for _, f := range frags {
		rec, cand := b.BuildRecord(f)
		if rec.MatchName == constants.Unknown {
			unknown++
		}
		table.Rows = append(table.Rows, rec)
		candidates = append(candidates, cand)
	}
	b.logger.Info("builder.build.ok", "rows", table.Len(), "unknown_names", unknown)
	return table, candidates
}

// BuildRecord derives a single row. A fragment that does not parse yields a
// row stamped UNKNOWN with an empty candidate.
func (b *Builder) BuildRecord(f entity.Fragment) (*entity.Record, string) {
	rec := entity.NewRecord(b.opts.WebLink, b.opts.Source)

	src, err := ParseFragment(f)
	if err != nil {
		b.logger.Warn("builder.fragment.parse_failed", "seq", f.Seq, "error", err)
		rec.MatchName = constants.Unknown
		rec.Set(constants.ColFullName, constants.Unknown)
		rec.Flag(constants.ColFullName, constants.FlagReview)
		rec.Set(constants.ColCategory, constants.Unknown)
		rec.Flag(constants.ColCategory, constants.FlagReview)
		return rec, ""
	}
	return b.fromSource(rec, src)
}

func (b *Builder) fromSource(rec *entity.Record, src *entity.SourceEntity) (*entity.Record, string) {
	cat, ok := category(src)
	rec.Set(constants.ColCategory, cat)
	if !ok {
		rec.Flag(constants.ColCategory, constants.FlagReview)
	}

	name, marker := selectName(src.NameAliases)
	if name == "" {
		rec.MatchName = constants.Unknown
		rec.Set(constants.ColFullName, constants.Unknown)
		rec.Flag(constants.ColFullName, constants.FlagReview)
	} else {
		rec.MatchName = name
		rec.Set(constants.ColFullName, name)
	}

	rec.Set(constants.ColNationalities, nationality(src))
	rec.Set(constants.ColDOB, dateOfBirth(src))

	city, country, region := firstAddress(src)
	rec.Set(constants.ColAddCity, city)
	rec.Set(constants.ColAddCountry, country)
	rec.Set(constants.ColState, region)
	rec.Set(constants.ColAddress, addressList(src))

	rec.Set(constants.ColAlias, otherAliases(src.NameAliases, name))
	if b.classifier != nil {
		rec.Set(constants.ColGender, b.classifier.Classify(name, marker))
	}
	rec.Set(constants.ColRem1, designation(src.NameAliases))
	rec.Set(constants.ColDetails, details(src))

	if name == "" {
		return rec, ""
	}
	cand, hit := b.index.Lookup(lookupCandidates(src.NameAliases, name)...)
	if !hit {
		b.logger.Debug("builder.identifier.miss", "seq", src.Seq, "name", name)
	}
	return rec, cand
}

// FinalizeNames applies the accent-stripping cleaner to every known
// FULL_NAME. Run it after reconciliation, which groups on the raw name.
func FinalizeNames(table *entity.Table) {
	if table == nil {
		return
	}
	for _, r := range table.Rows {
		v := r.Get(constants.ColFullName)
		if v == "" || v == constants.Unknown {
			continue
		}
		r.Set(constants.ColFullName, names.StripAccents(v))
	}
}
