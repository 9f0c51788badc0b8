package cmd

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/toolbox-cli/toolbox/internal/config"
	"github.com/toolbox-cli/toolbox/internal/logging"
)

// ErrRunHadFailures is returned after a walk that completed but had at
// least one per-file failure, so the process exits non-zero.
var ErrRunHadFailures = errors.New("some files failed")

// App carries the state shared by all subcommands. The root command fills
// Config and Log before any subcommand runs.
type App struct {
	Config config.Config
	Log    *log.Logger
	Fs     afero.Fs
	Now    func() time.Time
}

// NewApp returns an App backed by the OS filesystem and the real clock.
func NewApp() *App {
	return &App{
		Config: config.DefaultConfig(),
		Log:    logging.Discard(),
		Fs:     afero.NewOsFs(),
		Now:    time.Now,
	}
}
