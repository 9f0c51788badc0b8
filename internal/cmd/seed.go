package cmd

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math/rand/v2"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed subcommand. It generates a throwaway tree of
// small placeholder images for trying compress and convert.
func NewSeedCmd(app *App) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a tree of placeholder images",
		Long: `Generate placeholder PNG and JPEG images in a randomized directory tree.

Files are named with UUIDs and spread over nested album directories up to
--depth levels deep. A few decoys are added that the image commands must
skip: a GIF, a text file, and images inside node_modules and a hidden
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := progressbar.NewOptions(opts.count,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(15),
				progressbar.OptionSetDescription("Seeding images..."),
				progressbar.OptionShowElapsedTimeOnFinish(),
			)
			res, err := seedTree(app.Fs, opts, bar)
			bar.Finish()
			if err != nil {
				return err
			}
			app.Log.Info("seed finished", "output", opts.output, "images", res.images, "dirs", len(res.dirs))
			fmt.Fprintf(cmd.OutOrStdout(), "\nCreated %d images and %d decoys in %d directories under %s\n",
				res.images, res.decoys, len(res.dirs), opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&opts.count, "count", "c", 200, "Number of images to generate")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 3, "Maximum directory depth")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for a reproducible tree (0 picks one)")

	cmd.MarkFlagRequired("output")

	return cmd
}

type seedOptions struct {
	output string
	count  int
	depth  int
	seed   uint64
}

type seedResult struct {
	images int
	decoys int
	dirs   map[string]int
}

// seedTree writes opts.count eligible images plus the decoys under
// opts.output.
func seedTree(fsys afero.Fs, opts seedOptions, bar *progressbar.ProgressBar) (seedResult, error) {
	if opts.count < 0 {
		return seedResult{}, fmt.Errorf("count must not be negative: %d", opts.count)
	}
	if opts.depth < 0 {
		opts.depth = 0
	}
	seed := opts.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	// One ChaCha8 stream drives both the layout and the UUID names, so a
	// given seed reproduces the same tree.
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	if err := fsys.MkdirAll(opts.output, 0o755); err != nil {
		return seedResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := seedResult{dirs: make(map[string]int)}
	for res.images < opts.count {
		dir := opts.output
		for level := rng.IntN(opts.depth + 1); level > 0; level-- {
			dir = filepath.Join(dir, fmt.Sprintf("album-%02d", rng.IntN(8)))
		}
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return res, err
		}

		ext := "png"
		switch rng.IntN(3) {
		case 1:
			ext = "jpg"
		case 2:
			ext = "jpeg"
		}
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return res, err
		}
		path := filepath.Join(dir, id.String()+"."+ext)
		if err := writeImage(fsys, path, ext, placeholder(rng)); err != nil {
			return res, err
		}
		res.dirs[dir]++
		res.images++
		bar.Add(1)
	}

	decoys := []struct {
		path string
		ext  string
	}{
		{filepath.Join(opts.output, "animation.gif"), "gif"},
		{filepath.Join(opts.output, "notes.txt"), "txt"},
		{filepath.Join(opts.output, "node_modules", "pkg", "logo.png"), "png"},
		{filepath.Join(opts.output, ".cache", "thumb.jpg"), "jpg"},
	}
	for _, d := range decoys {
		if err := fsys.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
			return res, err
		}
		if err := writeImage(fsys, d.path, d.ext, placeholder(rng)); err != nil {
			return res, err
		}
		res.decoys++
	}
	return res, nil
}

// placeholder draws a small two-colour gradient.
func placeholder(rng *rand.Rand) image.Image {
	w, h := 32+rng.IntN(96), 32+rng.IntN(96)
	from := color.RGBA{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255}
	to := color.RGBA{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := color.RGBA{
			R: lerp(from.R, to.R, x, w),
			G: lerp(from.G, to.G, x, w),
			B: lerp(from.B, to.B, x, w),
			A: 255,
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerp(a, b uint8, i, n int) uint8 {
	return uint8(int(a) + (int(b)-int(a))*i/n)
}

func writeImage(fsys afero.Fs, path, ext string, img image.Image) error {
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, ext, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "gif":
		return gif.Encode(w, img, nil)
	default:
		_, err := io.WriteString(w, "placeholder, not an image\n")
		return err
	}
}
