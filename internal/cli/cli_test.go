package cli

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/parser"
	"github.com/xs-lang/xs/internal/position"
	"github.com/xs-lang/xs/internal/vfs"
)

func newTestLogger(verbose, debug bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(verbose, debug)
	l.SetOutput(&buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := newTestLogger(false, false)
	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("careful %d", 1)
	l.Error("broken")
	assert.Equal(t, "[WARN] 03:04:05: careful 1\n[ERROR] 03:04:05: broken\n", buf.String())

	l, buf = newTestLogger(true, true)
	l.Info("shown")
	l.Debug("also %s", "shown")
	assert.Equal(t, "[INFO] 03:04:05: shown\n[DEBUG] 03:04:05: also shown\n", buf.String())
	assert.Same(t, buf, l.Writer())
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, "xsc", false))
	assert.True(t, strings.HasPrefix(buf.String(), "xsc v"+Version+"\n"))
	assert.Contains(t, buf.String(), "Platform: "+runtime.GOOS+"/"+runtime.GOARCH)
	assert.NotContains(t, buf.String(), "Commit:")

	buf.Reset()
	require.NoError(t, PrintVersion(&buf, "xsc", true))
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "xsc", decoded.Tool)
	assert.Equal(t, Version, decoded.VersionInfo.Version)
}

func TestLoadConfigDefaults(t *testing.T) {
	fsys := vfs.NewMem()

	config, err := LoadConfig(fsys, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	config, err = LoadConfig(fsys, "missing/xs.toml")
	require.NoError(t, err)
	assert.Equal(t, "xs", config.Source.Extension)
	assert.Equal(t, "sexpr", config.Output.TreeFormat)
	assert.True(t, config.Output.WriteTokens)
	assert.Equal(t, runtime.GOMAXPROCS(0), config.Check.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	fsys := vfs.NewMem()
	require.NoError(t, fsys.WriteFile("xs.toml", []byte(`
[source]
extension = ".xsl"
auto_semicolons = true

[output]
dir = "golden"
tree_format = "yaml"
write_tree = false

[check]
workers = 3

[project]
requires = ">= 0.1, < 1.0"
`), 0o644))

	config, err := LoadConfig(fsys, "xs.toml")
	require.NoError(t, err)
	assert.Equal(t, "xsl", config.Source.Extension)
	assert.True(t, config.Source.AutoSemicolons)
	assert.Equal(t, "golden", config.Output.Dir)
	assert.Equal(t, "yaml", config.Output.TreeFormat)
	assert.True(t, config.Output.WriteTokens, "unset keys keep their defaults")
	assert.False(t, config.Output.WriteTree)
	assert.Equal(t, 3, config.Check.Workers)
	assert.NoError(t, CheckRequires(config.Project.Requires, Version))
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", "[source\n", "failed to parse config file"},
		{"format", "[output]\ntree_format = \"svg\"\n", `unknown output.tree_format "svg"`},
		{"workers", "[check]\nworkers = -1\n", "check.workers must not be negative"},
		{"requires", "[project]\nrequires = \"not a version\"\n", "invalid project.requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := vfs.NewMem()
			require.NoError(t, fsys.WriteFile("xs.toml", []byte(tt.content), 0o644))
			_, err := LoadConfig(fsys, "xs.toml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCheckRequires(t *testing.T) {
	assert.NoError(t, CheckRequires("", "0.1.0"))
	assert.NoError(t, CheckRequires("^0.1", "0.1.5"))
	assert.NoError(t, CheckRequires(">= 0.1.0", Version))

	err := CheckRequires(">= 2.0", "0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `xsc 0.1.0 does not satisfy ">= 2.0"`)

	assert.Error(t, CheckRequires("garbage!", "0.1.0"))
	assert.Error(t, CheckRequires(">= 1", "one"))
}

func TestFormatError(t *testing.T) {
	src := "var a = 1;\nvar b = a +;\n"
	_, err := parser.ParseString(src)
	require.Error(t, err)

	sf := position.NewSourceFile("main.xs", src)
	assert.Equal(t,
		"main.xs: [2,11] incomplete expression, end with `+`\n"+
			"   1 | var a = 1;\n"+
			"   2 | var b = a +;\n"+
			"     |           ^\n",
		FormatError(err, sf))

	assert.Equal(t, "[2,11] incomplete expression, end with `+`\n", FormatError(err, nil))

	loadErr := errors.Source("gone.xs", errors.CodeUnreadableSource, nil)
	assert.Equal(t, "cannot load gone.xs\n", FormatError(loadErr, sf))
}

func TestFormatErrorUnderlinesToken(t *testing.T) {
	src := "a;\nelse { }\n"
	_, err := parser.ParseString(src)
	require.Error(t, err)

	assert.Equal(t,
		"main.xs: [2,1] unmatched statement, got `else`\n"+
			"   1 | a;\n"+
			"   2 | else { }\n"+
			"     | ^^^^\n",
		FormatError(err, position.NewSourceFile("main.xs", src)))
}

func TestReport(t *testing.T) {
	l, buf := newTestLogger(false, true)
	_, err := parser.ParseString("x = ;")
	require.Error(t, err)

	l.Report(err, position.NewSourceFile("x.xs", "x = ;"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "x.xs: [1,5] expect expression, got `;`\n   1 | x = ;\n     |     ^\n"))
	assert.Contains(t, out, "[DEBUG] 03:04:05: [PARSE:EXPECTED_EXPRESSION]")
}
