package imaging

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// Codec is an external image-processing executable. Implementations shell
// out once per call and block until the process exits.
type Codec interface {
	// Name is the executable's display name, e.g. "magick".
	Name() string
	// InstallHint tells the user where to get the executable.
	InstallHint() string
	// Probe runs the executable's version query. A nil error means the
	// executable can be launched and exits zero.
	Probe(ctx context.Context) error
	// Encode reads src and writes the encoded image to dst at the given
	// quality. src and dst may be the same path.
	Encode(ctx context.Context, src, dst string, quality int) ExecResult
}

// ExecResult holds the outcome of a single external process invocation.
type ExecResult struct {
	Stdout string
	Stderr string
	Err    error
}

// Failed reports whether the process failed to launch or exited non-zero.
func (r ExecResult) Failed() bool {
	return r.Err != nil
}

// Reason returns a one-line explanation of a failed invocation, preferring
// the first line the process wrote to stderr.
func (r ExecResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	if line := firstLine(r.Stderr); line != "" {
		return line
	}
	return r.Err.Error()
}

// Outcome is the result of compressing or converting one file.
// A nil Err means success; failures carry no byte counts.
type Outcome struct {
	Source          string
	Dest            string
	OriginalBytes   int64
	CompressedBytes int64
	Err             error
}

// OK reports whether the codec produced the destination file.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Invoke runs codec on one file and translates the result into an Outcome.
// The source size is captured before the call because in-place encodes
// overwrite it. Errors never escape: every failure is folded into the
// returned Outcome so the caller can carry on with the next file.
func Invoke(ctx context.Context, fsys afero.Fs, codec Codec, src, dst string, quality int) Outcome {
	out := Outcome{Source: src, Dest: dst}

	info, err := fsys.Stat(src)
	if err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrCodecFailed, err)
		return out
	}
	original := info.Size()

	res := codec.Encode(ctx, src, dst, quality)
	if res.Failed() {
		out.Err = fmt.Errorf("%w: %s: %s", ErrCodecFailed, codec.Name(), res.Reason())
		return out
	}

	info, err = fsys.Stat(dst)
	if err != nil {
		out.Err = fmt.Errorf("%w: %s produced no output: %v", ErrCodecFailed, codec.Name(), err)
		return out
	}

	out.OriginalBytes = original
	out.CompressedBytes = info.Size()
	return out
}

// runCommand runs name with args, capturing stdout and stderr.
func runCommand(ctx context.Context, name string, args ...string) ExecResult {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
}

// probe runs a version query and returns its first output line.
func probe(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%w: %s not found on PATH", ErrMissingDependency, name)
	}
	res := runCommand(ctx, name, args...)
	if res.Failed() {
		return "", fmt.Errorf("%w: %s %s: %s", ErrMissingDependency, name, strings.Join(args, " "), res.Reason())
	}
	line := firstLine(res.Stdout)
	if line == "" {
		line = firstLine(res.Stderr)
	}
	return line, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
