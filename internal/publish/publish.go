// Package publish delegates the actual name claim to the ecosystem's own
// publishing tool. The repository reservation only parks a name; running the
// registry's publisher against a seeded project is what claims it.
package publish

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Runner executes publish commands for package-index registries.
type Runner struct {
	// Dir is the project directory the tools run in.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// commands maps each publishable kind to the tool invocations that claim the
// name, in order.
var commands = map[core.RegistryKind][][]string{
	core.KindNPM:    {{"npm", "publish"}},
	core.KindCrates: {{"cargo", "publish"}},
	core.KindPyPI:   {{"python", "-m", "build"}, {"twine", "upload", "dist/*"}},
}

// Supported reports whether the kind has a publish path.
func Supported(kind core.RegistryKind) bool {
	_, ok := commands[kind]
	return ok
}

// Publish runs the registry's publish tooling in the runner's directory. The
// tools' own output streams through unchanged; credentials are the tools'
// concern, never read here.
func (r *Runner) Publish(ctx context.Context, kind core.RegistryKind) error {
	cmds, ok := commands[kind]
	if !ok {
		return fmt.Errorf("no publish command for %s", kind.Label())
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, argv := range cmds {
		if _, err := exec.LookPath(argv[0]); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", argv[0], err)
		}

		logger.Info("running publish command",
			zap.String("registry", string(kind)),
			zap.Strings("command", argv))

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = r.Dir
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s failed: %w", argv[0], err)
		}
	}
	return nil
}
