package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Version information for xsc
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-19"
)

// CommitSHA is set during build.
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) error {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// Logger provides leveled logging for xsc. Level tags are coloured when
// the output is a terminal.
type Logger struct {
	Verbose   bool
	DebugMode bool

	out io.Writer
	now func() time.Time

	info, debug, warn, fail *color.Color
}

// NewLogger creates a logger writing to stderr.
func NewLogger(verbose, debug bool) *Logger {
	l := &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		now:       time.Now,
		info:      color.New(color.FgCyan),
		debug:     color.New(color.FgMagenta),
		warn:      color.New(color.FgYellow),
		fail:      color.New(color.FgRed, color.Bold),
	}
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput redirects the logger. Colour stays on only for terminals.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, c := range []*color.Color{l.info, l.debug, l.warn, l.fail} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Writer returns the current output.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func (l *Logger) log(c *color.Color, tag, format string, args ...interface{}) {
	fmt.Fprintf(l.out, "%s %s: %s\n", c.Sprint("["+tag+"]"), l.now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.log(l.info, "INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.log(l.debug, "DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(l.warn, "WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(l.fail, "ERROR", format, args...)
}
