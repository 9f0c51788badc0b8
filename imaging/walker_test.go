package imaging

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// fakeCodec halves every file it encodes and fails on chosen base names.
type fakeCodec struct {
	fs       afero.Fs
	probeErr error
	failOn   map[string]bool
	probes   int
	calls    []string // destination paths
	sources  []string
}

func (f *fakeCodec) Name() string        { return "fake" }
func (f *fakeCodec) InstallHint() string { return "install fake" }

func (f *fakeCodec) Probe(ctx context.Context) error {
	f.probes++
	return f.probeErr
}

func (f *fakeCodec) Encode(ctx context.Context, src, dst string, quality int) ExecResult {
	f.sources = append(f.sources, src)
	f.calls = append(f.calls, dst)
	if f.failOn[filepath.Base(src)] {
		return ExecResult{Stderr: "fake: improper image header\n", Err: errors.New("exit status 1")}
	}
	data, err := afero.ReadFile(f.fs, src)
	if err != nil {
		return ExecResult{Err: err}
	}
	if err := afero.WriteFile(f.fs, dst, data[:len(data)/2], 0o644); err != nil {
		return ExecResult{Err: err}
	}
	return ExecResult{}
}

// recorder captures reporter calls in order.
type recorder struct {
	files     []string
	outcomes  []Outcome
	planned   []string
	summaries int
}

func (r *recorder) File(rel string, o Outcome) {
	r.files = append(r.files, rel)
	r.outcomes = append(r.outcomes, o)
}
func (r *recorder) Planned(rel, dest string) { r.planned = append(r.planned, rel) }
func (r *recorder) Summary(*Stats)           { r.summaries++ }

func writeFile(t *testing.T, fsys afero.Fs, path string, size int) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(strings.Repeat("x", size)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestWalker(fsys afero.Fs, s Strategy) (*Walker, *fakeCodec, *recorder) {
	codec := &fakeCodec{fs: fsys, failOn: map[string]bool{}}
	rec := &recorder{}
	return &Walker{Fs: fsys, Codec: codec, Strategy: s, Reporter: rec}, codec, rec
}

func relPaths(root string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		r, _ := filepath.Rel(root, p)
		out[i] = r
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRun_InPlaceTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/photos"
	writeFile(t, fsys, root+"/x.jpg", 100)
	writeFile(t, fsys, root+"/y.txt", 100)
	writeFile(t, fsys, root+"/sub/z.png", 200)
	writeFile(t, fsys, root+"/sub/sub2/w.webp", 300)
	writeFile(t, fsys, root+"/node_modules/pkg/logo.png", 50)
	writeFile(t, fsys, root+"/.cache/thumb.jpg", 50)
	writeFile(t, fsys, root+"/squoosh/old.jpg", 50)

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	stats, err := w.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Listings are name-sorted, so "sub" is visited before "x.jpg".
	want := []string{"sub/sub2/w.webp", "sub/z.png", "x.jpg"}
	if got := relPaths(root, codec.sources); !sliceEqual(got, want) {
		t.Errorf("codec sources = %v, want %v", got, want)
	}
	if !sliceEqual(codec.sources, codec.calls) {
		t.Errorf("in-place destinations %v differ from sources %v", codec.calls, codec.sources)
	}
	if !sliceEqual(rec.files, want) {
		t.Errorf("progress lines = %v, want %v", rec.files, want)
	}
	if stats.Succeeded != 3 || stats.Failed != 0 {
		t.Errorf("succeeded=%d failed=%d, want 3/0", stats.Succeeded, stats.Failed)
	}
	if stats.OriginalBytes != 600 || stats.CompressedBytes != 300 {
		t.Errorf("bytes = %d -> %d, want 600 -> 300", stats.OriginalBytes, stats.CompressedBytes)
	}
	if rec.summaries != 1 {
		t.Errorf("summary rendered %d times, want 1", rec.summaries)
	}
	if codec.probes != 1 {
		t.Errorf("probe ran %d times, want 1", codec.probes)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/photos"
	writeFile(t, fsys, root+"/a.jpg", 10)
	writeFile(t, fsys, root+"/b.jpg", 10)
	writeFile(t, fsys, root+"/c.jpg", 10)

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	codec.failOn["b.jpg"] = true

	stats, err := w.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(codec.calls) != 3 {
		t.Errorf("codec called %d times, want 3", len(codec.calls))
	}
	if stats.Succeeded != 2 || stats.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 2/1", stats.Succeeded, stats.Failed)
	}
	if stats.OriginalBytes != 20 || stats.CompressedBytes != 10 {
		t.Errorf("failed file leaked into byte totals: %d -> %d", stats.OriginalBytes, stats.CompressedBytes)
	}
	if rec.outcomes[1].OK() || !errors.Is(rec.outcomes[1].Err, ErrCodecFailed) {
		t.Errorf("b.jpg outcome = %v, want ErrCodecFailed", rec.outcomes[1].Err)
	}
	if !strings.Contains(rec.outcomes[1].Err.Error(), "improper image header") {
		t.Errorf("failure reason should carry stderr, got %q", rec.outcomes[1].Err)
	}
	summary := stats.Render()
	if !strings.Contains(summary, "Processed: 2") || !strings.Contains(summary, "Failed: 1") {
		t.Errorf("summary missing counts:\n%s", summary)
	}
}

func TestRun_PathNotFound(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w, codec, rec := newTestWalker(fsys, InPlace(0))

	_, err := w.Run(context.Background(), "/does/not/exist")
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("err = %v, want ErrPathNotFound", err)
	}
	if len(codec.calls) != 0 || codec.probes != 0 {
		t.Errorf("calls=%d probes=%d, want none", len(codec.calls), codec.probes)
	}
	if rec.summaries != 0 {
		t.Error("summary should not be rendered when the root is missing")
	}
}

func TestRun_RootIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/photo.jpg", 10)
	w, codec, _ := newTestWalker(fsys, InPlace(0))

	_, err := w.Run(context.Background(), "/photo.jpg")
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("err = %v, want ErrNotDirectory", err)
	}
	if len(codec.calls) != 0 {
		t.Errorf("codec called %d times, want 0", len(codec.calls))
	}
}

func TestRun_MissingDependency(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/photos/a.jpg", 10)
	writeFile(t, fsys, "/photos/sub/b.png", 10)

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	codec.probeErr = errors.New("exec: \"magick\": executable file not found in $PATH")

	_, err := w.Run(context.Background(), "/photos")
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("err = %v, want ErrMissingDependency", err)
	}
	if len(codec.calls) != 0 {
		t.Errorf("codec called %d times, want 0", len(codec.calls))
	}
	if rec.summaries != 0 {
		t.Error("summary should not be rendered when the codec is missing")
	}
}

func TestRun_EmptyTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fsys.MkdirAll("/empty/sub", 0o755)

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	stats, err := w.Run(context.Background(), "/empty")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Succeeded != 0 || stats.Failed != 0 || len(codec.calls) != 0 {
		t.Errorf("succeeded=%d failed=%d calls=%d, want zeros", stats.Succeeded, stats.Failed, len(codec.calls))
	}
	if strings.Contains(stats.Render(), "Saved") {
		t.Errorf("empty run should not print a savings line:\n%s", stats.Render())
	}
	if rec.summaries != 1 {
		t.Errorf("summary rendered %d times, want 1", rec.summaries)
	}
}

func TestRun_ExtensionMatching(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/mixed"
	writeFile(t, fsys, root+"/UPPER.JPG", 10)
	writeFile(t, fsys, root+"/Mixed.JpEg", 10)
	writeFile(t, fsys, root+"/jpg", 10)
	writeFile(t, fsys, root+"/photo.jpg.bak", 10)
	writeFile(t, fsys, root+"/trailing.", 10)
	fsys.MkdirAll(root+"/album.png", 0o755)
	writeFile(t, fsys, root+"/album.png/inner.png", 10)

	w, codec, _ := newTestWalker(fsys, InPlace(0))
	if _, err := w.Run(context.Background(), root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"Mixed.JpEg", "UPPER.JPG", "album.png/inner.png"}
	if got := relPaths(root, codec.sources); !sliceEqual(got, want) {
		t.Errorf("codec sources = %v, want %v", got, want)
	}
}

func TestRun_Conversion(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/site"
	writeFile(t, fsys, root+"/a/b/photo.png", 40)
	writeFile(t, fsys, root+"/cover.JPG", 20)
	writeFile(t, fsys, root+"/anim.webp", 20)
	writeFile(t, fsys, root+"/webp/stale.png", 20)

	w, codec, _ := newTestWalker(fsys, Conversion("", FormatWebP, 80))
	stats, err := w.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"webp/a/b/photo.webp", "webp/cover.webp"}
	if got := relPaths(root, codec.calls); !sliceEqual(got, want) {
		t.Errorf("destinations = %v, want %v", got, want)
	}
	if ok, _ := afero.DirExists(fsys, root+"/webp/a/b"); !ok {
		t.Error("intermediate output directories were not created")
	}
	if ok, _ := afero.Exists(fsys, root+"/a/b/photo.png"); !ok {
		t.Error("conversion must leave the source in place")
	}
	if stats.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2", stats.Succeeded)
	}
}

func TestRun_ConversionMkdirFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/ro/a.png", 10)
	writeFile(t, base, "/ro/b.png", 10)
	fsys := afero.NewReadOnlyFs(base)

	w, codec, rec := newTestWalker(fsys, Conversion("out", FormatWebP, 0))
	stats, err := w.Run(context.Background(), "/ro")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(codec.calls) != 0 {
		t.Errorf("codec called %d times, want 0", len(codec.calls))
	}
	if stats.Failed != 2 || len(rec.files) != 2 {
		t.Errorf("failed=%d lines=%d, want 2/2", stats.Failed, len(rec.files))
	}
}

func TestRun_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/photos/a.jpg", 10)
	writeFile(t, fsys, "/photos/sub/b.png", 10)

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	codec.probeErr = errors.New("not installed")
	w.DryRun = true

	stats, err := w.Run(context.Background(), "/photos")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if codec.probes != 0 || len(codec.calls) != 0 {
		t.Errorf("dry run probed %d times and encoded %d files", codec.probes, len(codec.calls))
	}
	if stats.Planned != 2 || stats.Visited() != 0 {
		t.Errorf("planned=%d visited=%d, want 2/0", stats.Planned, stats.Visited())
	}
	if !sliceEqual(rec.planned, []string{"a.jpg", "sub/b.png"}) {
		t.Errorf("planned = %v", rec.planned)
	}
}

func TestRun_Cancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/photos/a.jpg", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, codec, rec := newTestWalker(fsys, InPlace(0))
	_, err := w.Run(ctx, "/photos")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(codec.calls) != 0 {
		t.Errorf("codec called %d times after cancel", len(codec.calls))
	}
	if rec.summaries != 1 {
		t.Error("summary should still be rendered for an interrupted run")
	}
}

func TestRun_InvalidQuality(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fsys.MkdirAll("/photos", 0o755)

	for _, q := range []int{-1, 101} {
		w, codec, _ := newTestWalker(fsys, Conversion("out", FormatWebP, q))
		_, err := w.Run(context.Background(), "/photos")
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("quality %d: err = %v, want ErrInvalidQuality", q, err)
		}
		if codec.probes != 0 {
			t.Errorf("quality %d: probe should not run", q)
		}
	}
}

func TestDiscover(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/site"
	writeFile(t, fsys, root+"/a/b/photo.png", 1)
	writeFile(t, fsys, root+"/readme.md", 1)
	writeFile(t, fsys, root+"/top.jpeg", 1)

	entries, err := Discover(context.Background(), fsys, root, Conversion("squoosh", FormatAVIF, 0))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Rel != "a/b/photo.png" || entries[0].Path != "/site/squoosh/a/b/photo.avif" || entries[0].Size != 1 {
		t.Errorf("entry[0] = %+v", entries[0])
	}
	if ok, _ := afero.DirExists(fsys, root+"/squoosh"); ok {
		t.Error("Discover must not create output directories")
	}

	if _, err := Discover(context.Background(), fsys, "/nope", InPlace(0)); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("missing root: err = %v, want ErrPathNotFound", err)
	}
}
