// Package versionfile patches the project's version-declaration file, a
// small source file carrying exactly one line of the form:
//
//	VERSION = "1.2.3"
//
// The patch is a single textual substitution; everything around the
// declaration is left byte-for-byte intact.
package versionfile

import (
	"fmt"
	"os"
	"regexp"

	"github.com/ariel-frischer/relcut/internal/fsutil"
)

// declPattern matches the version declaration. The value is opaque; no
// format is enforced on it (or on the replacement).
var declPattern = regexp.MustCompile(`VERSION = "[^"]*"`)

// MatchCountError indicates the file did not contain exactly one version
// declaration, which would make the substitution ambiguous or a no-op.
type MatchCountError struct {
	Path  string
	Count int
}

func (e *MatchCountError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf(`%s contains no VERSION = "..." declaration`, e.Path)
	}
	return fmt.Sprintf(`%s contains %d VERSION = "..." declarations, expected exactly one`, e.Path, e.Count)
}

// Patch replaces the unique version declaration in content with the given
// version. Returns a MatchCountError (with an empty Path) when the
// declaration is missing or duplicated.
func Patch(content []byte, version string) ([]byte, error) {
	matches := declPattern.FindAllIndex(content, -1)
	if len(matches) != 1 {
		return nil, &MatchCountError{Count: len(matches)}
	}

	replacement := fmt.Sprintf(`VERSION = "%s"`, version)
	return declPattern.ReplaceAll(content, []byte(replacement)), nil
}

// PatchFile reads path, patches the version declaration, and atomically
// overwrites the file. Nothing is written when the patch fails.
func PatchFile(path, version string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading version file: %w", err)
	}

	patched, err := Patch(content, version)
	if err != nil {
		if mce, ok := err.(*MatchCountError); ok {
			mce.Path = path
		}
		return err
	}

	return fsutil.WriteFileAtomic(path, patched, 0o644)
}
