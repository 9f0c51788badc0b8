package imaging

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image format, named by its file extension.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
)

// ParseFormat normalises a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")); f {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "avif":
		return FormatAVIF, nil
	default:
		return "", fmt.Errorf("%w: %q (use jpg, png, webp or avif)", ErrUnknownFormat, s)
	}
}

const (
	// DefaultQuality is the quality used when the caller sets none.
	DefaultQuality = 75

	// SquooshDir is the directory squoosh conversions write into. In-place
	// runs never descend into it.
	SquooshDir = "squoosh"

	dependencyDir = "node_modules"
)

// Strategy describes what a Walker does at the leaves: which files are
// eligible, where each result goes, and at what quality.
type Strategy struct {
	// Name labels the strategy in reports ("compress" or "convert").
	Name string

	// Extensions is the allow-list of lower-case extensions without dots.
	Extensions map[string]bool

	// IgnoreDirs are directory names never descended into, in addition to
	// hidden directories.
	IgnoreDirs map[string]bool

	// OutputDir is the name of the mirrored output tree under the root.
	// Empty means files are rewritten in place.
	OutputDir string

	// Format is the target format for conversions.
	Format Format

	Quality int
}

// InPlace returns the strategy that recompresses jpg, jpeg, png and webp
// files over themselves.
func InPlace(quality int) Strategy {
	if quality == 0 {
		quality = DefaultQuality
	}
	return Strategy{
		Name:       "compress",
		Extensions: stringSet("jpg", "jpeg", "png", "webp"),
		IgnoreDirs: stringSet(SquooshDir, dependencyDir),
		Quality:    quality,
	}
}

// Conversion returns the strategy that converts jpg, jpeg and png files to
// format, writing each result under root/outDir with the source's relative
// directory preserved.
func Conversion(outDir string, format Format, quality int) Strategy {
	if quality == 0 {
		quality = DefaultQuality
	}
	if outDir == "" {
		outDir = string(format)
	}
	return Strategy{
		Name:       "convert",
		Extensions: stringSet("jpg", "jpeg", "png"),
		IgnoreDirs: stringSet(outDir, dependencyDir),
		OutputDir:  outDir,
		Format:     format,
		Quality:    quality,
	}
}

// Validate checks the strategy's quality and format.
func (s Strategy) Validate() error {
	if err := ValidateQuality(s.Quality); err != nil {
		return err
	}
	if s.OutputDir != "" {
		if _, err := ParseFormat(string(s.Format)); err != nil {
			return err
		}
		if strings.ContainsRune(s.OutputDir, filepath.Separator) || s.OutputDir == "." || s.OutputDir == ".." {
			return fmt.Errorf("output directory must be a plain name, got %q", s.OutputDir)
		}
	}
	return nil
}

// ValidateQuality rejects qualities outside 1-100.
func ValidateQuality(q int) error {
	if q < 1 || q > 100 {
		return fmt.Errorf("%w, got %d", ErrInvalidQuality, q)
	}
	return nil
}

// Overwrites reports whether results overwrite their sources.
func (s Strategy) Overwrites() bool {
	return s.OutputDir == ""
}

// Matches reports whether a file with the given extension is eligible.
func (s Strategy) Matches(ext string) bool {
	return ext != "" && s.Extensions[strings.ToLower(ext)]
}

// Ignored reports whether a directory name is excluded from traversal.
func (s Strategy) Ignored(name string) bool {
	return strings.HasPrefix(name, ".") || s.IgnoreDirs[name]
}

// Destination returns where the result for path goes. root must be the
// resolved root of the run and path must lie beneath it.
func (s Strategy) Destination(root, path string) (string, error) {
	if s.Overwrites() {
		return path, nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.Join(root, s.OutputDir, filepath.Dir(rel), stem+"."+string(s.Format)), nil
}

// Extension returns the lower-cased text after the last dot in name, or ""
// when name has no dot.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

func stringSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
