package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindSkip Kind = iota
	KindImage
	KindDir
)

// Entry is one directory entry seen during a traversal.
type Entry struct {
	Path string // absolute
	Rel  string // relative to the run's root
	Name string
	Ext  string // lower-case, no dot, "" when Name has no dot
	Size int64
	Kind Kind
}

// Walker recursively applies a Strategy to every eligible image under a
// root directory, one file at a time.
type Walker struct {
	Fs       afero.Fs
	Codec    Codec
	Strategy Strategy
	Reporter Reporter
	Log      *log.Logger

	// DryRun reports eligible files without probing or invoking the codec.
	DryRun bool

	plan func(e Entry, dst string)
}

// Run checks preconditions once, visits the whole tree under root and
// reports the summary. An empty root means the working directory.
//
// Run fails before touching any file when root does not exist or the
// codec cannot be launched. Per-file failures never fail the run: they are
// counted in the returned Stats. The only error returned after traversal
// has started is a cancelled ctx or an unreadable root directory.
func (w *Walker) Run(ctx context.Context, root string) (*Stats, error) {
	w.init()

	if err := w.Strategy.Validate(); err != nil {
		return nil, err
	}

	root, err := w.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	if !w.DryRun {
		if w.Codec == nil {
			return nil, fmt.Errorf("%w: no codec configured", ErrMissingDependency)
		}
		if err := w.Codec.Probe(ctx); err != nil {
			if !errors.Is(err, ErrMissingDependency) {
				err = fmt.Errorf("%w: %s: %v", ErrMissingDependency, w.Codec.Name(), err)
			}
			return nil, err
		}
	}

	stats := NewStats()
	stats.Root = root
	w.Log.Debug("run started",
		"id", stats.RunID,
		"root", root,
		"strategy", w.Strategy.Name,
		"quality", w.Strategy.Quality,
		"dry_run", w.DryRun,
	)

	err = w.visit(ctx, root, root, stats)
	stats.Finished = time.Now()
	w.Reporter.Summary(stats)

	w.Log.Debug("run finished",
		"id", stats.RunID,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"elapsed", stats.Elapsed(),
	)
	return stats, err
}

func (w *Walker) init() {
	if w.Fs == nil {
		w.Fs = afero.NewOsFs()
	}
	if w.Reporter == nil {
		w.Reporter = nopReporter{}
	}
	if w.Log == nil {
		w.Log = log.New(io.Discard)
	}
}

// resolveRoot returns the absolute root or a precondition error.
func (w *Walker) resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := w.Fs.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return abs, nil
}

// visit processes one directory and recurses into eligible children. It
// assumes Run's preconditions hold and never reports a summary.
func (w *Walker) visit(ctx context.Context, root, dir string, stats *Stats) error {
	infos, err := afero.ReadDir(w.Fs, dir)
	if err != nil {
		if dir == root {
			return err
		}
		w.Log.Warn("skipping unreadable directory", "path", dir, "err", err)
		return nil
	}

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := classify(root, dir, info, w.Strategy)
		switch e.Kind {
		case KindImage:
			w.process(ctx, root, e, stats)
		case KindDir:
			if err := w.visit(ctx, root, e.Path, stats); err != nil {
				return err
			}
		}
	}
	return nil
}

// process runs the codec on one image and folds the outcome into stats.
func (w *Walker) process(ctx context.Context, root string, e Entry, stats *Stats) {
	dst, err := w.Strategy.Destination(root, e.Path)
	if err != nil {
		w.fail(e, stats, err)
		return
	}

	if w.DryRun {
		stats.Planned++
		if w.plan != nil {
			w.plan(e, dst)
		}
		w.Reporter.Planned(e.Rel, dst)
		return
	}

	if !w.Strategy.Overwrites() {
		if err := w.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			w.fail(e, stats, err)
			return
		}
	}

	o := Invoke(ctx, w.Fs, w.Codec, e.Path, dst, w.Strategy.Quality)
	stats.Fold(o)
	w.Reporter.File(e.Rel, o)
	if !o.OK() {
		w.Log.Debug("codec failed", "path", e.Path, "err", o.Err)
	}
}

func (w *Walker) fail(e Entry, stats *Stats, err error) {
	o := Outcome{Source: e.Path, Err: fmt.Errorf("%w: %v", ErrCodecFailed, err)}
	stats.Fold(o)
	w.Reporter.File(e.Rel, o)
}

// classify decides what the walker does with one listing entry. It uses
// the entry's own metadata, so symlinks are never followed.
func classify(root, dir string, info fs.FileInfo, s Strategy) Entry {
	path := filepath.Join(dir, info.Name())
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	e := Entry{
		Path: path,
		Rel:  rel,
		Name: info.Name(),
		Ext:  Extension(info.Name()),
		Size: info.Size(),
	}
	switch {
	case info.Mode().IsRegular() && s.Matches(e.Ext):
		e.Kind = KindImage
	case info.IsDir() && !s.Ignored(e.Name):
		e.Kind = KindDir
	}
	return e
}

// Discover lists the images a run with strategy s would process under root,
// in processing order. Each returned Entry's Path is the planned
// destination; Size is the source size.
func Discover(ctx context.Context, fsys afero.Fs, root string, s Strategy) ([]Entry, error) {
	var entries []Entry
	w := &Walker{Fs: fsys, Strategy: s, DryRun: true}
	w.plan = func(e Entry, dst string) {
		e.Path = dst
		entries = append(entries, e)
	}
	w.init()
	root, err := w.resolveRoot(root)
	if err != nil {
		return nil, err
	}
	if err := w.visit(ctx, root, root, NewStats()); err != nil {
		return nil, err
	}
	return entries, nil
}
