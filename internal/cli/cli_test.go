package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"build", "clean", "inspect"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestBuildCommandFlags(t *testing.T) {
	cmd := newBuildCommand()
	for _, name := range []string{"output", "dependency-of", "platforms", "package-path", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
	flag := cmd.Flags().ShorthandLookup("d")
	require.NotNil(t, flag)
	assert.Equal(t, "dependency-of", flag.Name)
}

func TestCleanAndInspectCommandFlags(t *testing.T) {
	clean := newCleanCommand()
	assert.NotNil(t, clean.Flags().Lookup("package-path"))
	assert.NotNil(t, clean.Flags().Lookup("verbose"))

	inspect := newInspectCommand()
	assert.NotNil(t, inspect.Flags().Lookup("report"))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStringFromConfig(t *testing.T) {
	viper.Set("cli_test_platforms", "ios,macos")
	t.Cleanup(func() { viper.Set("cli_test_platforms", nil) })

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("platforms", "", "")
	assert.Equal(t, "ios,macos", resolveString(cmd, "", "cli_test_platforms", "platforms"))

	require.NoError(t, cmd.Flags().Set("platforms", "tvos"))
	assert.Equal(t, "tvos", resolveString(cmd, "tvos", "cli_test_platforms", "platforms"))
}

func TestResolveBool(t *testing.T) {
	got := resolveBool(nil, true, "test_key", "test-flag")
	assert.True(t, got)

	got = resolveBool(nil, false, "test_key", "test-flag")
	assert.False(t, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Logging tests ----------

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		verbose  bool
		expected zerolog.Level
	}{
		{name: "default", level: "", expected: zerolog.InfoLevel},
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "error", level: "error", expected: zerolog.ErrorLevel},
		{name: "verbose wins", level: "error", verbose: true, expected: zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newLogger(&bytes.Buffer{}, tt.level, tt.verbose)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewLoggerWritesPlainText(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger(&out, "info", false)
	logger.Info().Msg("Generating archives...")
	assert.Contains(t, out.String(), "Generating archives...")
	assert.NotContains(t, out.String(), "\x1b[", "non-terminal output has no colour")
}

func TestToolchainDefaults(t *testing.T) {
	require.NoError(t, initConfig(""))
	chain := toolchain()
	assert.Equal(t, "swift", chain.Swift)
	assert.Equal(t, "xcodebuild", chain.Xcodebuild)
}

func TestInitConfigMissingFile(t *testing.T) {
	err := initConfig("/nonexistent/xpm.yaml")
	require.Error(t, err)
}

func TestBuildRequestDependencyOf(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantSet bool
		wantVal string
	}{
		{name: "flag absent", args: nil, wantSet: false, wantVal: ""},
		{name: "flag given empty", args: []string{"--dependency-of", ""}, wantSet: true, wantVal: ""},
		{name: "shorthand", args: []string{"-d", "Foo"}, wantSet: true, wantVal: "Foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "build"}
			opts := buildOptions{}
			cmd.Flags().StringVarP(&opts.DependencyOf, "dependency-of", "d", "", "")
			require.NoError(t, cmd.Flags().Parse(tt.args))

			req := buildRequest(cmd, opts)
			assert.Equal(t, tt.wantSet, req.DependencyOfSet)
			assert.Equal(t, tt.wantVal, req.DependencyOf)
		})
	}
}
