package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"compare", "extract", "runs", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "reportrecon", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCompareCommand_Flags(t *testing.T) {
	for _, name := range []string{"doc", "xlsx", "output", "tolerance", "record"} {
		require.NotNil(t, compareCmd.Flags().Lookup(name), "compare command should have --%s flag", name)
	}
	assert.Equal(t, "0", compareCmd.Flags().Lookup("tolerance").DefValue)
}

func TestExtractCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range extractCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["doc"])
	assert.True(t, names["xlsx"])
}

func TestExtractDocCommand_Flags(t *testing.T) {
	flag := extractDocCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "html", flag.DefValue)
	require.NotNil(t, extractDocCmd.Flags().Lookup("out-dir"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["show"])
}
