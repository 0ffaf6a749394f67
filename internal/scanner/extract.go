package scanner

import (
	"regexp"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// databaseRe finds the USE [dbname] statement at the top of a dump.
var databaseRe = regexp.MustCompile(`(?i)USE\s+\[(\w+)\]`)

// tableBlockRe locates CREATE TABLE / CREATE VIEW blocks with bracketed
// schema-qualified identifiers, capturing everything up to the next GO batch
// separator. The column capture is lazy; a block containing a stray GO inside
// a string literal will be cut short. That is an accepted limitation — this
// is a grep over dump text, not a SQL parser.
var tableBlockRe = regexp.MustCompile(
	`(?is)CREATE\s+(TABLE|VIEW)\s+\[([^\]]+)\]\.\[([^\]]+)\]\s*\(?(.*?)\)?\s*GO\b`)

// TableBlock is a single CREATE TABLE or CREATE VIEW span from a dump.
type TableBlock struct {
	Kind    string // "TABLE" or "VIEW"
	Schema  string // e.g. "dbo"
	Name    string // object name without brackets
	Columns string // raw text between the parens, up to GO
}

// ExtractDatabase returns the database named by the first USE statement,
// or models.UnknownDatabase when the dump carries none.
func ExtractDatabase(content string) string {
	if m := databaseRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return models.UnknownDatabase
}

// ExtractTableBlocks returns all table/view definition blocks in the dump,
// in file order.
func ExtractTableBlocks(content string) []TableBlock {
	var blocks []TableBlock
	for _, m := range tableBlockRe.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, TableBlock{
			Kind:    m[1],
			Schema:  m[2],
			Name:    m[3],
			Columns: m[4],
		})
	}
	return blocks
}
