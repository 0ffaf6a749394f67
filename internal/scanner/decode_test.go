package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// writeUTF16File writes content as UTF-16LE with a BOM, the way SSMS
// scripts out DDL.
func writeUTF16File(t *testing.T, path, content string) {
	t.Helper()

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte(content))
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestReadUTF16File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sql")
	writeUTF16File(t, path, sampleDump)

	got, err := ReadUTF16File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sampleDump {
		t.Errorf("round-trip mismatch:\n%q\n%q", sampleDump, got)
	}
}

func TestReadUTF16FileNoBOM(t *testing.T) {
	// Little-endian without a BOM must still decode.
	path := filepath.Join(t.TempDir(), "dump.sql")
	content := "USE [FooDB]\nGO\n"

	raw := make([]byte, 0, len(content)*2)
	for _, r := range content {
		raw = append(raw, byte(r), 0)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := ReadUTF16File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestReadUTF16FileReplacesInvalid(t *testing.T) {
	// An odd trailing byte is a truncated code unit; decoding must not fail.
	path := filepath.Join(t.TempDir(), "dump.sql")
	raw := []byte{0xFF, 0xFE, 'U', 0, 'S', 0, 'E', 0, ' '}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := ReadUTF16File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected decoded text, got empty string")
	}
}

func TestReadUTF16FileMissing(t *testing.T) {
	if _, err := ReadUTF16File(filepath.Join(t.TempDir(), "missing.sql")); err == nil {
		t.Error("expected error for missing file")
	}
}
