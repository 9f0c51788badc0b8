package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbox-cli/toolbox/imaging"
	"github.com/toolbox-cli/toolbox/internal/display"
)

// walkOptions are the flags shared by compress and convert.
type walkOptions struct {
	dryRun bool
	report string
}

func (o *walkOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "List the images that would be processed without running the encoder")
	cmd.Flags().StringVar(&o.report, "report", "", "Write a JSON run report to this file")
}

// rootArg returns the optional PATH argument. Empty means the working
// directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// runWalk drives one walker run and maps its result to the command's exit
// status.
func runWalk(cmd *cobra.Command, app *App, codec imaging.Codec, s imaging.Strategy, root string, o walkOptions) error {
	reporters := imaging.MultiReporter{display.NewConsole(cmd.OutOrStdout())}
	var rec *imaging.Recorder
	if o.report != "" {
		rec = imaging.NewRecorder(root, s, codec)
		reporters = append(reporters, rec)
	}

	w := &imaging.Walker{
		Fs:       app.Fs,
		Codec:    codec,
		Strategy: s,
		Reporter: reporters,
		Log:      app.Log,
		DryRun:   o.dryRun,
	}

	stats, err := w.Run(cmd.Context(), root)
	if errors.Is(err, imaging.ErrMissingDependency) {
		display.MissingDependency(cmd.ErrOrStderr(), codec)
		return err
	}

	if rec != nil && stats != nil {
		if serr := rec.Save(o.report); serr != nil {
			app.Log.Error("failed to write report", "path", o.report, "err", serr)
		} else {
			app.Log.Info("report written", "path", o.report)
		}
	}

	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRunHadFailures, stats.Failed, stats.Visited())
	}
	return nil
}
