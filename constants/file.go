package constants

import (
	"fmt"
	"strings"
)

// Trace folder names under the data directory.
const (
	XMLInputDir   = "xml_files"
	XMLChunksDir  = "xml_chunks"
	PDFInputDir   = "pdf"
	PDFChunksDir  = "pdf_text_chunks"
	OutputXLSX    = "sanctions_output.xlsx"
	EntityElement = "sanctionEntity"
	FragmentRoot  = "root"
)

// DefaultProgramme is used when a PDF chunk declares no programme.
const DefaultProgramme = "GEN"

// AllowedExtensions holds the input extensions the locator accepts, per input kind.
var AllowedExtensions = map[string]map[string]struct{}{
	"xml": {"xml": {}},
	"pdf": {"pdf": {}, "txt": {}},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FragmentFilename is the trace filename for the seq-th entity fragment.
func FragmentFilename(seq int) string {
	return fmt.Sprintf("entity%d.xml", seq)
}

// ChunkFilename is the trace filename for the seq-th PDF chunk.
func ChunkFilename(safeProgramme string, seq int) string {
	return fmt.Sprintf("%s_entity%d.txt", safeProgramme, seq)
}
