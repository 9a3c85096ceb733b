package entity

// PdfChunk is the text of one "Entity N" block from the registry PDF.
type PdfChunk struct {
	Seq       int    `json:"seq"`
	Programme string `json:"programme"`
	Text      string `json:"text"`
}

// PdfSummary is what the key-value extractor pulls out of one chunk.
// Summary is "Number: …; Programme: …" and may be empty.
type PdfSummary struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}
