package imaging

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// DefaultSquooshBinary is the npm squoosh-cli entry point.
const DefaultSquooshBinary = "squoosh-cli"

// avifOptions mirrors the encoder settings squoosh.app uses for AVIF.
type avifOptions struct {
	CQLevel      int  `json:"cqLevel"`
	CQAlphaLevel int  `json:"cqAlphaLevel"`
	DenoiseLevel int  `json:"denoiseLevel"`
	TileColsLog2 int  `json:"tileColsLog2"`
	TileRowsLog2 int  `json:"tileRowsLog2"`
	Speed        int  `json:"speed"`
	Subsample    int  `json:"subsample"`
	ChromaDeltaQ bool `json:"chromaDeltaQ"`
	Sharpness    int  `json:"sharpness"`
	Tune         int  `json:"tune"`
}

type qualityOptions struct {
	Quality int `json:"quality"`
}

type oxipngOptions struct {
	Level int `json:"level"`
}

// Squoosh drives squoosh-cli. squoosh-cli writes its result into a
// directory, naming the file after the source stem and the encoder's
// extension, so Encode passes the destination's directory and relies on
// the destination having the source's stem.
type Squoosh struct {
	Binary string
}

// NewSquoosh returns a Squoosh codec for binary, or the default binary when
// binary is empty.
func NewSquoosh(binary string) *Squoosh {
	if binary == "" {
		binary = DefaultSquooshBinary
	}
	return &Squoosh{Binary: binary}
}

func (s *Squoosh) Name() string { return s.Binary }

func (s *Squoosh) InstallHint() string {
	return "Install squoosh-cli: npm install -g @squoosh/cli"
}

// Probe runs `squoosh-cli --version`.
func (s *Squoosh) Probe(ctx context.Context) error {
	_, err := s.Version(ctx)
	return err
}

// Version returns the first line of `squoosh-cli --version`.
func (s *Squoosh) Version(ctx context.Context) (string, error) {
	return probe(ctx, s.Binary, "--version")
}

// Encode runs `squoosh-cli --<encoder> '<options>' -d DIR SRC`.
func (s *Squoosh) Encode(ctx context.Context, src, dst string, quality int) ExecResult {
	args, err := s.Args(src, dst, quality)
	if err != nil {
		return ExecResult{Err: err}
	}
	return runCommand(ctx, s.Binary, args...)
}

// Args returns the argument list Encode passes to the executable. The
// encoder is chosen from dst's extension.
func (s *Squoosh) Args(src, dst string, quality int) ([]string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(dst), "."))

	var (
		encoder string
		options any
	)
	switch Format(ext) {
	case FormatAVIF:
		encoder = "--avif"
		options = avifOptions{
			CQLevel:      AVIFCQLevel(quality),
			CQAlphaLevel: -1,
			Speed:        6,
			Subsample:    1,
		}
	case FormatWebP:
		encoder = "--webp"
		options = qualityOptions{Quality: quality}
	case FormatJPEG:
		encoder = "--mozjpeg"
		options = qualityOptions{Quality: quality}
	case FormatPNG:
		encoder = "--oxipng"
		options = oxipngOptions{Level: 2}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return []string{encoder, string(raw), "-d", filepath.Dir(dst), src}, nil
}

// AVIFCQLevel maps a 1-100 quality onto libaom's 0-63 constant quality
// level, where lower is better.
func AVIFCQLevel(quality int) int {
	return int(math.Round(float64(100-quality) * 63 / 100))
}
