package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kalambet/calico/internal/platform"
)

// Executable is the game binary's base name.
const Executable = "calico-doom"

// failExitCode is what a child reports when exec itself failed.
const failExitCode = 0x80

var ErrGameFailed = errors.New("could not start the game")

// Runner starts the game and waits for it.
type Runner struct {
	// Program overrides the game binary. When empty the binary next to
	// the running executable is used, then a PATH lookup.
	Program string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Path returns the binary Run would start.
func (r Runner) Path() string {
	if r.Program != "" {
		return r.Program
	}
	if self, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(self), Executable)
		if platform.Exists(p) {
			return p
		}
	}
	if p, err := exec.LookPath(Executable); err == nil {
		return p
	}
	return Executable
}

// Run starts the game with args and waits for it to exit. The game's own
// exit status is returned as-is, except that a failure to start or exit code
// 0x80 is reported as ErrGameFailed.
func (r Runner) Run(ctx context.Context, args []string) (int, error) {
	path := r.Path()
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	slog.Info("launching game", "cmd", CommandLine(path, args))
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return -1, fmt.Errorf("%w: %v", ErrGameFailed, err)
	}
	code := ee.ExitCode()
	if code == failExitCode || code < 0 {
		return code, fmt.Errorf("%w: %v", ErrGameFailed, err)
	}
	slog.Debug("game exited", "code", code)
	return code, nil
}
