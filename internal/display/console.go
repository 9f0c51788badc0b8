// Package display renders user-facing output: per-file progress lines, the
// run summary, and dependency status.
package display

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/colorhash"

	"github.com/toolbox-cli/toolbox/imaging"
)

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✔")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✘")
	planMark = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("•")

	dim     = lipgloss.NewStyle().Faint(true)
	bold    = lipgloss.NewStyle().Bold(true)
	errText = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	link    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
)

// Console is an imaging.Reporter that prints styled lines to a writer.
// Colour is downsampled or stripped to suit the writer.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) println(v ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lipgloss.Fprintln(c.w, v...)
}

// File prints one progress line for a processed image.
func (c *Console) File(rel string, o imaging.Outcome) {
	if !o.OK() {
		c.println(failMark, TintPath(rel), errText.Render(reason(o.Err)))
		return
	}
	sizes := fmt.Sprintf("%s → %s", imaging.FormatBytes(o.OriginalBytes), imaging.FormatBytes(o.CompressedBytes))
	if pct, ok := imaging.PercentChange(o.OriginalBytes, o.CompressedBytes); ok {
		sizes += fmt.Sprintf(" (%.1f%%)", -pct)
	}
	c.println(okMark, TintPath(rel), dim.Render(sizes))
}

// Planned prints a dry-run line.
func (c *Console) Planned(rel, dest string) {
	c.println(planMark, TintPath(rel), dim.Render("→ "+dest))
}

// Summary prints the run summary block.
func (c *Console) Summary(s *imaging.Stats) {
	c.println()
	c.println(bold.Render("Summary"))
	c.println(strings.TrimRight(s.Render(), "\n"))
}

// MissingDependency prints the install hint for a codec that failed its
// probe.
func MissingDependency(w io.Writer, codec imaging.Codec) {
	lipgloss.Fprintln(w, errText.Render(fmt.Sprintf("%s is not installed or not runnable.", codec.Name())))
	lipgloss.Fprintln(w, warn.Render("Install it from:"), link.Render(codec.InstallHint()))
}

// Dependency prints one status line for the check command.
func Dependency(w io.Writer, name, versionLine string, err error) {
	if err != nil {
		lipgloss.Fprintln(w, failMark, bold.Render(name), errText.Render(reason(err)))
		return
	}
	lipgloss.Fprintln(w, okMark, bold.Render(name), dim.Render(versionLine))
}

// Listing prints one "path  size" line for the count command.
func Listing(w io.Writer, rel string, size int64) {
	lipgloss.Fprintln(w, TintPath(rel), dim.Render(imaging.FormatBytes(size)))
}

// TintPath colours the directory part of a slash-separated relative path
// with a stable colour derived from the directory name, so files from the
// same folder line up visually.
func TintPath(rel string) string {
	dir, file := path.Split(filepath.ToSlash(rel))
	if dir == "" {
		return file
	}
	return DirStyle(dir).Render(dir) + file
}

// DirStyle returns the style for a directory prefix. The colour is one of
// the 216 cube entries of the 256-colour palette.
func DirStyle(dir string) lipgloss.Style {
	h := colorhash.HashString(dir)
	if h < 0 {
		h = -h
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(16 + h%216)))
}

func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
