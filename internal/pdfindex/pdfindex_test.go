package pdfindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantSum  string
		wantOK   bool
	}{
		{
			name:     "inline values",
			text:     "Entity 1\nName/Alias: ahmad   KHAN\nNumber: 123\nProgramme: AFG",
			wantName: "Ahmad Khan",
			wantSum:  "Number: 123; Programme: AFG",
			wantOK:   true,
		},
		{
			name:     "values on following lines",
			text:     "Entity 2\r\nName/Alias:\r\n\r\n  Jane Roe  \r\nNumber:\r\n\r\nAB  12\r\nNumber: 77\r\nProgramme:\r\n\r\nUKR | RUS |",
			wantName: "Jane Roe",
			wantSum:  "Number: AB 12 / 77; Programme: RUS",
			wantOK:   true,
		},
		{
			name:     "name truncated at section keyword",
			text:     "Entity 3\nName/Alias: John Smith Title: Mr Function: Minister",
			wantName: "John Smith",
			wantOK:   true,
		},
		{
			name:     "non latin first alias falls through to next",
			text:     "Entity 4\nName/Alias: Иван Петров\nName/Alias: Ivan Petrov\nProgramme: RUS",
			wantName: "Ivan Petrov",
			wantSum:  "Programme: RUS",
			wantOK:   true,
		},
		{
			name:    "no latin name",
			text:    "Entity 5\nName/Alias: Иван\nNumber: 9",
			wantSum: "Number: 9",
		},
		{
			name:     "only first programme counts",
			text:     "Entity 6\nName/Alias: Ali Reza\nProgramme: IRN\nProgramme: IRQ",
			wantName: "Ali Reza",
			wantSum:  "Programme: IRN",
			wantOK:   true,
		},
		{
			name:     "non breaking spaces",
			text:     "Entity 8\nName/Alias:\u00a0Mir\u00a0Wais\nNumber:\u00a042",
			wantName: "Mir Wais",
			wantSum:  "Number: 42",
			wantOK:   true,
		},
		{
			name:    "keyword glued to an accented letter is not a section",
			text:    "Entity 9\nName/Alias: Jos\u00e9address: Rue",
			wantSum: "",
		},
		{
			name:     "section keyword after punctuation",
			text:     "Entity 10\nName/Alias: Omar Ali,Title: Sheikh",
			wantName: "Omar Ali,",
			wantOK:   true,
		},
		{
			name:     "nothing to summarize",
			text:     "Entity 7\nName/Alias: Lone Name",
			wantName: "Lone Name",
			wantOK:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantSum, got.Summary)
		})
	}
}

func TestBuild_FirstWriterWins(t *testing.T) {
	chunks := []entity.PdfChunk{
		{Seq: 1, Text: "Entity 1\nName/Alias: José Núñez\nNumber: 1"},
		{Seq: 2, Text: "Entity 2\nName/Alias: Jose Nunez\nNumber: 2"},
		{Seq: 3, Text: "Entity 3\nName/Alias: Иван\nNumber: 3"},
	}
	idx := Build(chunks, nil)

	got, ok := idx.Lookup("José Núñez")
	require.True(t, ok)
	assert.Equal(t, "Number: 1", got)

	// the stripped-accent key of chunk 2 was already taken by chunk 1
	got, ok = idx.Lookup("Jose Nunez")
	require.True(t, ok)
	assert.Equal(t, "Number: 1", got)
}

func TestLookup_CandidateOrder(t *testing.T) {
	idx := &Index{}
	idx.Add(entity.PdfSummary{Name: "Alias Two", Summary: "Number: 2"})
	idx.Add(entity.PdfSummary{Name: "Alias Three", Summary: "Number: 3"})

	got, ok := idx.Lookup("Unknown Person", "Alias Three", "Alias Two")
	require.True(t, ok)
	assert.Equal(t, "Number: 3", got)

	_, ok = idx.Lookup("Nobody")
	assert.False(t, ok)
}

func TestLookup_PunctuationVariant(t *testing.T) {
	idx := &Index{}
	idx.Add(entity.PdfSummary{Name: "Abdul-Rahman O'Neil", Summary: "Number: 5"})

	// punctuation folds to a space in the second key
	got, ok := idx.Lookup("Abdul Rahman O Neil")
	require.True(t, ok)
	assert.Equal(t, "Number: 5", got)

	_, ok = idx.Lookup("AbdulRahman ONeil")
	assert.False(t, ok)
}

func TestLookup_EmptySummaryStillMatches(t *testing.T) {
	idx := &Index{}
	idx.Add(entity.PdfSummary{Name: "Quiet Person"})
	idx.Add(entity.PdfSummary{Name: "Other", Summary: "Number: 1"})

	got, ok := idx.Lookup("Quiet Person", "Other")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestLookup_NilIndex(t *testing.T) {
	var idx *Index
	_, ok := idx.Lookup("anyone")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}
