package prompt

import (
	"fmt"
	"time"

	"postcraft/internal/domain"
	"postcraft/pkg/zip"
)

// AllPromptsFile is the bundle entry holding every prompt in clipboard form.
const AllPromptsFile = "all.txt"

// exportEpoch stamps bundle entries so bundles are reproducible.
var exportEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ExportFiles lists one text file per prompt, numbered in canonical order,
// followed by AllPromptsFile.
func ExportFiles(prompts domain.ProductPrompts) []zip.Entry {
	entries := make([]zip.Entry, 0, len(prompts)+1)
	for i, p := range prompts {
		entries = append(entries, zip.Entry{
			Name: fmt.Sprintf("%02d-%s.txt", i+1, p.Type),
			Data: []byte(p.Prompt + "\n"),
		})
	}
	entries = append(entries, zip.Entry{Name: AllPromptsFile, Data: []byte(ConcatenateForClipboard(prompts) + "\n")})
	return entries
}

// Bundle zips ExportFiles.
func Bundle(prompts domain.ProductPrompts) ([]byte, error) {
	return zip.Archive(ExportFiles(prompts), exportEpoch)
}
