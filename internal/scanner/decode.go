package scanner

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadUTF16File reads a DDL dump file and decodes it as UTF-16 text.
// SQL Server Management Studio writes script files as UTF-16LE with a BOM;
// the decoder honors a BOM when present and assumes little-endian otherwise.
// Invalid sequences decode to U+FFFD instead of failing, so a truncated or
// slightly corrupted dump still yields scannable text.
func ReadUTF16File(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16: %w", err)
	}

	return string(decoded), nil
}
