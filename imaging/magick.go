package imaging

import (
	"context"
	"strconv"
)

// DefaultMagickBinary is the ImageMagick 7 entry point.
const DefaultMagickBinary = "magick"

// Magick drives ImageMagick. The output format follows the destination
// file's extension, so the same codec serves in-place recompression and
// format conversion.
type Magick struct {
	Binary string
}

// NewMagick returns a Magick codec for binary, or the default binary when
// binary is empty.
func NewMagick(binary string) *Magick {
	if binary == "" {
		binary = DefaultMagickBinary
	}
	return &Magick{Binary: binary}
}

func (m *Magick) Name() string { return m.Binary }

func (m *Magick) InstallHint() string {
	return "Install ImageMagick: https://imagemagick.org/script/download.php"
}

// Probe runs `magick -version`.
func (m *Magick) Probe(ctx context.Context) error {
	_, err := m.Version(ctx)
	return err
}

// Version returns the first line of `magick -version`.
func (m *Magick) Version(ctx context.Context) (string, error) {
	return probe(ctx, m.Binary, "-version")
}

// Encode runs `magick SRC -quality Q DST`.
func (m *Magick) Encode(ctx context.Context, src, dst string, quality int) ExecResult {
	return runCommand(ctx, m.Binary, m.Args(src, dst, quality)...)
}

// Args returns the argument list Encode passes to the executable.
func (m *Magick) Args(src, dst string, quality int) []string {
	return []string{src, "-quality", strconv.Itoa(quality), dst}
}
