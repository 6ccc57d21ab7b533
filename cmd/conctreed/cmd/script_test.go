package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	script := strings.Join([]string{
		"create /a/",
		"create /a/b/",
		"list /a/",
		"move /a/ /c/",
		"list /",
		"remove /x/",
	}, "\n")

	var out strings.Builder
	root := rootCmd
	root.SetOut(&out)
	require.NoError(t, runScript(root, strings.NewReader(script)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{"ok", "ok", "b", "ok", "c", "no such file or directory"}, lines)
}

func TestRunCommandUnknown(t *testing.T) {
	_, err := runCommand(nil, []string{"frobnicate", "/a/"})
	assert.Error(t, err)
}
