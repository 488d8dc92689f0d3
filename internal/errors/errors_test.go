package errors

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIError_Categories(t *testing.T) {
	tests := map[string]struct {
		err  *CLIError
		want ErrorCategory
	}{
		"argument":      {NewArgumentError("bad arg"), Argument},
		"configuration": {NewConfigError("bad config"), Configuration},
		"prerequisite":  {NewPrerequisiteError("not ready"), Prerequisite},
		"runtime":       {NewRuntimeError("boom"), Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Category)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestWrapWithMessage(t *testing.T) {
	err := WrapWithMessage(assert.AnError, Runtime, "committing release", "Check the working tree")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "committing release")
	assert.Contains(t, err.Error(), assert.AnError.Error())
	assert.Equal(t, []string{"Check the working tree"}, err.Remediation)

	assert.Nil(t, WrapWithMessage(nil, Runtime, "ignored"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewRuntimeError("boom")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(assert.AnError))
}

func TestFormatError(t *testing.T) {
	// Force plain output so assertions are stable regardless of TTY.
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	err := NewPrerequisiteError(
		"changelog has no \"## Unreleased\" section",
		"Add a '## Unreleased' section to CHANGELOG.md",
	)
	err.Usage = "relcut <version>"

	out := FormatError(err)
	assert.Contains(t, out, "Error [Prerequisite Error]:")
	assert.Contains(t, out, "Usage: relcut <version>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• Add a '## Unreleased' section")

	var buf bytes.Buffer
	FprintError(&buf, err)
	assert.Equal(t, out, buf.String())
}
