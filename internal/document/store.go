package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/didpress/didpress/internal/logging"
)

// Save writes a fetched document to path, creating parent directories as
// needed. JSON payloads are normalized with two-space indentation so commits
// diff cleanly; anything that fails to parse is written exactly as received,
// with a warning, rather than being dropped.
func Save(data []byte, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	out := data
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Warn("Document for %s is not valid JSON, saving raw response: %v", path, err)
	} else if formatted, err := json.MarshalIndent(doc, "", "  "); err != nil {
		logging.Warn("Failed to format document for %s, saving raw response: %v", path, err)
	} else {
		out = formatted
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// VerifyID re-reads the saved document at path and compares its declared id
// field against expectedID. Callers treat a mismatch as advisory: the
// upstream agent owns the document body, so this reports rather than rejects.
func VerifyID(path string, expectedID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if doc.ID == "" {
		return fmt.Errorf("document %s has no id field", path)
	}
	if doc.ID != expectedID {
		return fmt.Errorf("document id %q does not match expected %q", doc.ID, expectedID)
	}
	return nil
}
