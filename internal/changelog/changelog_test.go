package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

## Unreleased

### Added
- thing one

## 1.0.0 - 2023-01-01
- old stuff
`

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    []string
	}{
		"stops at next section and strips category markers": {
			content: sampleChangelog,
			want:    []string{"Added", "- thing one"},
		},
		"unreleased section at end of file": {
			content: "# Changelog\n\n## Unreleased\n\n### Fixed\n- a fix\n",
			want:    []string{"Fixed", "- a fix"},
		},
		"trailing blank lines are trimmed": {
			content: "## Unreleased\n\n- change\n\n\n\n## 0.1.0 - 2020-01-01\n",
			want:    []string{"- change"},
		},
		"interior blank lines survive": {
			content: "## Unreleased\n\n### Added\n- a\n\n### Fixed\n- b\n\n## 0.1.0 - 2020-01-01\n",
			want:    []string{"Added", "- a", "", "Fixed", "- b"},
		},
		"heading match ignores surrounding whitespace": {
			content: "  ## Unreleased  \n\n- change\n",
			want:    []string{"- change"},
		},
		"non-heading lines keep their bytes": {
			content: "## Unreleased\n\n#### Deep heading stays\n  indented line\n",
			want:    []string{"#### Deep heading stays", "  indented line"},
		},
		"empty unreleased section": {
			content: "## Unreleased\n\n## 0.1.0 - 2020-01-01\n- old\n",
			want:    nil,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.content).Extract()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_MissingSection(t *testing.T) {
	t.Parallel()

	doc := Parse("# Changelog\n\n## 1.0.0 - 2023-01-01\n- old stuff\n")
	_, err := doc.Extract()
	require.Error(t, err)
	assert.True(t, IsNoUnreleased(err))
	assert.Contains(t, err.Error(), UnreleasedHeading)
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog)
	first, err := doc.Extract()
	require.NoError(t, err)
	second, err := doc.Extract()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleChangelog, doc.String(), "extract must not modify the document")
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog)
	out, err := doc.Rewrite("1.1.0", "2024-05-01")
	require.NoError(t, err)

	assert.Len(t, out.Lines, len(doc.Lines)+2)
	assert.Equal(t, `# Changelog

## Unreleased

## 1.1.0 - 2024-05-01

### Added
- thing one

## 1.0.0 - 2023-01-01
- old stuff
`, out.String())
}

func TestRewrite_PreservesAllInputLines(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog)
	out, err := doc.Rewrite("2.0.0", "2025-12-31")
	require.NoError(t, err)

	at := -1
	for i, line := range doc.Lines {
		if strings.TrimSpace(line) == UnreleasedHeading {
			at = i
			break
		}
	}
	require.GreaterOrEqual(t, at, 0)

	// Lines before and including the marker are untouched, the two inserted
	// lines follow, then the remainder shifted by two.
	for i := 0; i <= at; i++ {
		assert.Equal(t, doc.Lines[i], out.Lines[i])
	}
	assert.Equal(t, "", out.Lines[at+1])
	assert.Equal(t, "## 2.0.0 - 2025-12-31", out.Lines[at+2])
	for i := at + 1; i < len(doc.Lines); i++ {
		assert.Equal(t, doc.Lines[i], out.Lines[i+2])
	}
}

func TestRewrite_MissingSection(t *testing.T) {
	t.Parallel()

	_, err := Parse("# Changelog\n").Rewrite("1.0.0", "2024-01-01")
	require.Error(t, err)
	assert.True(t, IsNoUnreleased(err))
}

// The newly dated section of a rewritten changelog yields the same notes
// that were extracted before the rewrite.
func TestRewrite_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog)
	before, err := doc.Extract()
	require.NoError(t, err)

	out, err := doc.Rewrite("1.1.0", "2024-05-01")
	require.NoError(t, err)

	// Re-extract using the dated heading as the start marker.
	heading := Heading("1.1.0", "2024-05-01")
	start := -1
	for i, line := range out.Lines {
		if line == heading {
			start = i
			break
		}
	}
	require.GreaterOrEqual(t, start, 0)

	var after []string
	for i := start + 2; i < len(out.Lines); i++ {
		line := out.Lines[i]
		if strings.HasPrefix(line, "## ") {
			break
		}
		if strings.HasPrefix(line, "### ") {
			line = line[4:]
		}
		after = append(after, line)
	}
	for len(after) > 0 && strings.TrimSpace(after[len(after)-1]) == "" {
		after = after[:len(after)-1]
	}

	assert.Equal(t, before, after)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleChangelog), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, sampleChangelog, doc.String())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading changelog")
}

func TestHeading(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "## 3.2.1 - 2024-11-30", Heading("3.2.1", "2024-11-30"))
}
