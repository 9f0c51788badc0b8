// Package config holds runtime settings: defaults, .env and environment
// overrides, and validation. Command-line flags are applied on top by the
// cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/toolbox-cli/toolbox/imaging"
	"github.com/toolbox-cli/toolbox/internal/logging"
)

// CodecName selects the external executable used for conversions.
type CodecName string

const (
	CodecMagick  CodecName = "magick"  // ImageMagick (default).
	CodecSquoosh CodecName = "squoosh" // squoosh-cli.
)

// Environment variables read by Load.
const (
	EnvMagick   = "TOOLBOX_MAGICK"
	EnvSquoosh  = "TOOLBOX_SQUOOSH"
	EnvQuality  = "TOOLBOX_QUALITY"
	EnvFormat   = "TOOLBOX_FORMAT"
	EnvCodec    = "TOOLBOX_CODEC"
	EnvLogLevel = "TOOLBOX_LOG_LEVEL"
)

// Config holds all runtime settings.
type Config struct {
	// Executables.
	MagickBinary  string // Default: "magick".
	SquooshBinary string // Default: "squoosh-cli".

	// Conversion settings.
	Codec   CodecName // Default: "magick".
	Format  string    // Default: "webp".
	Quality int       // Default: 75. Must be 1-100.
	OutDir  string    // Default: "" (derived from codec and format).

	// Diagnostics.
	LogLevel string // Default: "warn".
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		MagickBinary:  imaging.DefaultMagickBinary,
		SquooshBinary: imaging.DefaultSquooshBinary,
		Codec:         CodecMagick,
		Format:        string(imaging.FormatWebP),
		Quality:       imaging.DefaultQuality,
		LogLevel:      logging.DefaultLevel,
	}
}

// Load returns DefaultConfig with a ./.env file (if present) and the
// process environment applied. Variables already set in the environment
// win over .env entries.
func Load() (Config, error) {
	return LoadFiles()
}

// LoadFiles is Load reading the given .env files instead of ./.env. A
// missing file is skipped; a malformed one is an error.
func LoadFiles(dotenv ...string) (Config, error) {
	cfg := DefaultConfig()
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TOOLBOX_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvMagick); v != "" {
		c.MagickBinary = v
	}
	if v := getenv(EnvSquoosh); v != "" {
		c.SquooshBinary = v
	}
	if v := getenv(EnvCodec); v != "" {
		c.Codec = CodecName(strings.ToLower(v))
	}
	if v := getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvQuality); v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid quality %q", EnvQuality, v)
		}
		c.Quality = q
	}
	return nil
}

// Validate checks the codec, format and quality.
func (c *Config) Validate() error {
	switch c.Codec {
	case CodecMagick, CodecSquoosh:
		// valid
	default:
		return errors.New("invalid codec (use 'magick' or 'squoosh')")
	}
	if _, err := imaging.ParseFormat(c.Format); err != nil {
		return err
	}
	return imaging.ValidateQuality(c.Quality)
}

// NewCodec returns the conversion codec selected by c.Codec.
func (c *Config) NewCodec() imaging.Codec {
	if c.Codec == CodecSquoosh {
		return imaging.NewSquoosh(c.SquooshBinary)
	}
	return imaging.NewMagick(c.MagickBinary)
}

// ConversionStrategy builds the conversion strategy. Squoosh conversions
// default to the "squoosh" output directory; magick conversions to a
// directory named after the format.
func (c *Config) ConversionStrategy() (imaging.Strategy, error) {
	format, err := imaging.ParseFormat(c.Format)
	if err != nil {
		return imaging.Strategy{}, err
	}
	outDir := c.OutDir
	if outDir == "" && c.Codec == CodecSquoosh {
		outDir = imaging.SquooshDir
	}
	s := imaging.Conversion(outDir, format, c.Quality)
	return s, s.Validate()
}
