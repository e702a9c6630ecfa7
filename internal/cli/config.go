package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/xs-lang/xs/internal/vfs"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "xs.toml"

// TreeFormats lists the renderings accepted for output.tree_format.
var TreeFormats = []string{"sexpr", "html", "yaml", "source", "dump"}

// Config is the project configuration read from xs.toml.
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Output  OutputConfig  `toml:"output"`
	Check   CheckConfig   `toml:"check"`
	Project ProjectConfig `toml:"project"`
}

type SourceConfig struct {
	Extension      string `toml:"extension"`
	AutoSemicolons bool   `toml:"auto_semicolons"`
}

type OutputConfig struct {
	// Dir receives golden outputs; empty means next to each source.
	Dir         string `toml:"dir"`
	TreeFormat  string `toml:"tree_format"`
	WriteTokens bool   `toml:"write_tokens"`
	WriteTree   bool   `toml:"write_tree"`
}

type CheckConfig struct {
	Workers int `toml:"workers"`
}

type ProjectConfig struct {
	// Requires is a semver constraint on the xsc version.
	Requires string `toml:"requires"`
}

// DefaultConfig returns the configuration used without an xs.toml.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{Extension: "xs"},
		Output: OutputConfig{
			TreeFormat:  "sexpr",
			WriteTokens: true,
			WriteTree:   true,
		},
		Check: CheckConfig{Workers: runtime.GOMAXPROCS(0)},
	}
}

// LoadConfig reads path from fsys over the defaults. An empty path or a
// missing file yields the defaults.
func LoadConfig(fsys vfs.FileSystem, path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	c.Source.Extension = strings.TrimPrefix(c.Source.Extension, ".")
	if c.Source.Extension == "" {
		c.Source.Extension = "xs"
	}
	if c.Check.Workers < 0 {
		return fmt.Errorf("check.workers must not be negative, got %d", c.Check.Workers)
	}
	if c.Check.Workers == 0 {
		c.Check.Workers = runtime.GOMAXPROCS(0)
	}
	if !ValidTreeFormat(c.Output.TreeFormat) {
		return fmt.Errorf("unknown output.tree_format %q", c.Output.TreeFormat)
	}
	if c.Project.Requires != "" {
		if _, err := semver.NewConstraint(c.Project.Requires); err != nil {
			return fmt.Errorf("invalid project.requires: %w", err)
		}
	}
	return nil
}

// ValidTreeFormat reports whether format is one of TreeFormats.
func ValidTreeFormat(format string) bool {
	for _, f := range TreeFormats {
		if f == format {
			return true
		}
	}
	return false
}

// CheckRequires verifies that version satisfies the constraint. An empty
// constraint accepts every version.
func CheckRequires(constraint, version string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint: %w", err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("xsc %s does not satisfy %q: %v", v, constraint, stderrors.Join(errs...))
	}
	return nil
}
