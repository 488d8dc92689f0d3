// Package changelog implements the CHANGELOG.md transforms behind a release:
// extracting the Unreleased section into release notes and stamping the
// section with a dated version heading.
//
// The changelog is treated as an ordered sequence of lines, never as a parsed
// document tree. Rewrite guarantees that every line it does not insert is
// byte-identical to the input, so hand-edited formatting survives a release.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// UnreleasedHeading is the section marker that accumulates notes for
// changes not yet released. It must be present (modulo surrounding
// whitespace) before a release can be cut.
const UnreleasedHeading = "## Unreleased"

const (
	sectionMarker    = "## "
	subsectionMarker = "### "
)

// NoUnreleasedError indicates the changelog has no Unreleased section.
type NoUnreleasedError struct {
	Path string
}

func (e *NoUnreleasedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s has no %q section", e.Path, UnreleasedHeading)
	}
	return fmt.Sprintf("changelog has no %q section", UnreleasedHeading)
}

// IsNoUnreleased returns true if the error is a NoUnreleasedError.
func IsNoUnreleased(err error) bool {
	var nu *NoUnreleasedError
	return errors.As(err, &nu)
}

// Document is a changelog held as lines. The slice is the result of
// splitting the raw content on newlines, so a file ending in a newline
// carries a final empty element and String reproduces the input exactly.
type Document struct {
	// Path is the file the document was loaded from, empty for parsed strings.
	Path  string
	Lines []string
}

// Load reads a changelog file into a Document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	doc := Parse(string(data))
	doc.Path = path
	return doc, nil
}

// Parse splits raw changelog content into a Document.
func Parse(content string) *Document {
	return &Document{Lines: strings.Split(content, "\n")}
}

// String reassembles the document into file content.
func (d *Document) String() string {
	return strings.Join(d.Lines, "\n")
}

// unreleasedIndex returns the index of the Unreleased heading line, or -1.
// The match ignores surrounding whitespace but is otherwise exact.
func (d *Document) unreleasedIndex() int {
	for i, line := range d.Lines {
		if strings.TrimSpace(line) == UnreleasedHeading {
			return i
		}
	}
	return -1
}

// Extract returns the release-notes body of the Unreleased section.
//
// Collection starts after the heading and its separator line and stops at
// the next "## " section or end of input. Category subheadings ("### Added")
// lose their marker so the block can be embedded in a git tag annotation
// without git treating them as comments. Trailing blank lines are trimmed.
//
// Extract is a pure read; it never modifies the document.
func (d *Document) Extract() ([]string, error) {
	start := d.unreleasedIndex()
	if start < 0 {
		return nil, &NoUnreleasedError{Path: d.Path}
	}

	var block []string
	// start+2 skips the heading and the blank separator line under it.
	for i := start + 2; i < len(d.Lines); i++ {
		line := d.Lines[i]
		if strings.HasPrefix(line, sectionMarker) {
			break
		}
		if strings.HasPrefix(line, subsectionMarker) {
			line = line[len(subsectionMarker):]
		}
		block = append(block, line)
	}

	for len(block) > 0 && strings.TrimSpace(block[len(block)-1]) == "" {
		block = block[:len(block)-1]
	}
	return block, nil
}

// Heading formats the dated section heading inserted by Rewrite.
func Heading(version, date string) string {
	return fmt.Sprintf("## %s - %s", version, date)
}

// Rewrite returns a new document with a blank line and a "## version - date"
// heading inserted immediately after the Unreleased heading, demoting the
// accumulated notes under the new dated section. Every other line is copied
// unchanged, so len(out) == len(in)+2.
func (d *Document) Rewrite(version, date string) (*Document, error) {
	at := d.unreleasedIndex()
	if at < 0 {
		return nil, &NoUnreleasedError{Path: d.Path}
	}

	out := make([]string, 0, len(d.Lines)+2)
	out = append(out, d.Lines[:at+1]...)
	out = append(out, "", Heading(version, date))
	out = append(out, d.Lines[at+1:]...)
	return &Document{Path: d.Path, Lines: out}, nil
}
