package document

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSave_FormatsJSON verifies that valid JSON payloads are normalized with
// two-space indentation before hitting disk.
func TestSave_FormatsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "did.json")

	compact := []byte(`{"id":"did:web:acme.github.io:ssi-dids","service":[]}`)
	if err := Save(compact, path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}

	want := "{\n  \"id\": \"did:web:acme.github.io:ssi-dids\",\n  \"service\": []\n}"
	if string(got) != want {
		t.Errorf("saved document = %q, want %q", string(got), want)
	}
}

// TestSave_RawFallback verifies that payloads which do not parse as JSON are
// written byte for byte rather than dropped.
func TestSave_RawFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "did.json")

	raw := []byte("<html>not a document</html>")
	if err := Save(raw, path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("saved document = %q, want raw payload %q", string(got), string(raw))
	}
}

// TestSave_CreatesParents verifies that missing parent directories are
// created on the way to the target file.
func TestSave_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ssi-dids", "alice", "did.json")

	if err := Save([]byte(`{"id":"x"}`), path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestSave_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "did.json")

	if err := Save([]byte(`{"v":1}`), path); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	if err := Save([]byte(`{"v":2}`), path); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "{\n  \"v\": 2\n}" {
		t.Errorf("saved document = %q, want second payload", string(got))
	}
}

func TestVerifyID(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedID  string
		wantErr     bool
		description string
	}{
		{
			name:        "matching id",
			content:     `{"id": "did:web:acme.github.io:ssi-dids:alice"}`,
			expectedID:  "did:web:acme.github.io:ssi-dids:alice",
			wantErr:     false,
			description: "declared id matching the reconstruction should pass",
		},
		{
			name:        "mismatched id",
			content:     `{"id": "did:web:acme.github.io:ssi-dids:bob"}`,
			expectedID:  "did:web:acme.github.io:ssi-dids:alice",
			wantErr:     true,
			description: "declared id pointing at another subject should be reported",
		},
		{
			name:        "missing id field",
			content:     `{"service": []}`,
			expectedID:  "did:web:acme.github.io:ssi-dids:alice",
			wantErr:     true,
			description: "documents without an id field should be reported",
		},
		{
			name:        "not json",
			content:     `<html>not a document</html>`,
			expectedID:  "did:web:acme.github.io:ssi-dids:alice",
			wantErr:     true,
			description: "raw fallback saves cannot be verified and should be reported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "did.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			err := VerifyID(path, tt.expectedID)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyID() error = %v, wantErr %v: %s", err, tt.wantErr, tt.description)
			}
		})
	}
}

func TestVerifyID_MissingFile(t *testing.T) {
	err := VerifyID(filepath.Join(t.TempDir(), "absent.json"), "did:web:acme.github.io:ssi-dids")
	if err == nil {
		t.Error("VerifyID() on missing file succeeded, want error")
	}
}
