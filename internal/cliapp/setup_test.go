package cliapp

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func flagTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output-format", "structured", "")
	cmd.Flags().Bool("expand", false, "")
	return cmd
}

func TestExtractCLIFlagsEmptyWhenUntouched(t *testing.T) {
	cmd := flagTestCmd()
	assert.Empty(t, extractCLIFlags(cmd))
}

func TestExtractCLIFlagsOutputFormat(t *testing.T) {
	cmd := flagTestCmd()
	assert.NoError(t, cmd.Flags().Set("output-format", "json"))

	values := extractCLIFlags(cmd)
	assert.Equal(t, "json", values["output.format"])
}

func TestExtractCLIFlagsExpand(t *testing.T) {
	cmd := flagTestCmd()
	assert.NoError(t, cmd.Flags().Set("expand", "true"))

	values := extractCLIFlags(cmd)
	assert.Equal(t, 1000, values["output.head_lines"])
	assert.Equal(t, 1000, values["output.tail_lines"])
}

func TestRootCmdRegistersAllVerbs(t *testing.T) {
	root := RootCmd()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, verb := range []string{"create", "test", "build", "format", "script", "run", "list-scripts", "config", "version"} {
		assert.True(t, names[verb], "expected verb %q to be registered", verb)
	}
}
