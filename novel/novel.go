// Package novel splits chapter-delimited plain-text novels into a CSV of
// title, serial and content columns.
package novel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// DefaultPattern matches headings such as "第十二章 风起" and captures the
// serial and the title.
const DefaultPattern = `^\s*第(.*)章\s*(.*)`

var (
	ErrNoChapters    = errors.New("no chapter headings found")
	ErrFileNotFound  = errors.New("file not found")
	ErrPatternGroups = errors.New("title pattern needs two capture groups (serial, title)")
)

var asciiDigits = regexp.MustCompile(`^\d*$`)

// Chapter is one heading and the lines that follow it.
type Chapter struct {
	Title   string
	Serial  int64
	Content string
}

// CompilePattern compiles a heading pattern. An empty pattern selects
// DefaultPattern.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile title pattern: %w", err)
	}
	if re.NumSubexp() < 2 {
		return nil, ErrPatternGroups
	}
	return re, nil
}

// Parse reads r and groups its lines into chapters. Empty lines are dropped
// and a trailing carriage return is removed from every line. Lines before
// the first heading are discarded.
func Parse(r io.Reader, heading *regexp.Regexp) ([]Chapter, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		chapters []Chapter
		content  strings.Builder
	)
	flush := func() {
		if len(chapters) > 0 {
			chapters[len(chapters)-1].Content = content.String()
		}
		content.Reset()
	}

	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if heading.MatchString(line) {
			flush()
			chapters = append(chapters, Chapter{
				Title:  strings.TrimSpace(replaceFirst(heading, line, "${2}")),
				Serial: serial(replaceFirst(heading, line, "${1}")),
			})
			continue
		}
		if len(chapters) > 0 {
			content.WriteString(line)
			content.WriteByte('\n')
		}
	}
	flush()
	return chapters, nil
}

// serial decodes a captured chapter number. Anything undecodable is 0.
func serial(s string) int64 {
	if asciiDigits.MatchString(s) {
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}
	n, err := DecodeNumeral(s)
	if err != nil {
		return 0
	}
	return n
}

// replaceFirst substitutes the first match of re in s with the expanded
// template, keeping any text around the match.
func replaceFirst(re *regexp.Regexp, s, template string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	var out []byte
	out = append(out, s[:m[0]]...)
	out = re.ExpandString(out, template, s, m)
	out = append(out, s[m[1]:]...)
	return string(out)
}

// WriteCSV writes a header row and one row per chapter.
func WriteCSV(w io.Writer, chapters []Chapter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "serial", "content"}); err != nil {
		return err
	}
	for _, c := range chapters {
		if err := cw.Write([]string{c.Title, strconv.FormatInt(c.Serial, 10), c.Content}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputName returns the default CSV name for src: its trimmed stem plus
// ".csv", without a directory.
func OutputName(src string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(stem) + ".csv"
}

// SplitFile parses src and writes the CSV to dst, returning the number of
// chapters written. No output file is created when src has no headings.
func SplitFile(fsys afero.Fs, src, dst string, heading *regexp.Regexp) (int, error) {
	f, err := fsys.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, src)
		}
		return 0, err
	}
	defer f.Close()

	chapters, err := Parse(f, heading)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src, err)
	}
	if len(chapters) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoChapters, src)
	}

	out, err := fsys.Create(dst)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(out, chapters); err != nil {
		out.Close()
		return 0, fmt.Errorf("write %s: %w", dst, err)
	}
	return len(chapters), out.Close()
}
