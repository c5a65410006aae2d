// Package probe runs informational checks alongside a verification run.
// Probe results decorate the report and never influence the outcome.
package probe

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Unavailable is displayed when the runtime cannot be probed.
const Unavailable = "unavailable"

// Docker asks the container runtime for its version in the background and
// delivers the first output line over the returned channel. The channel is
// buffered so an unread result never leaks the goroutine.
func Docker(ctx context.Context, bin string, log *zap.Logger) <-chan string {
	if log == nil {
		log = zap.NewNop()
	}
	ch := make(chan string, 1)
	go func() {
		out, err := exec.CommandContext(ctx, bin, "--version").Output()
		if err != nil {
			log.Debug("runtime probe failed", zap.String("bin", bin), zap.Error(err))
			ch <- Unavailable
			return
		}
		line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
		line = strings.TrimSpace(line)
		if line == "" {
			line = Unavailable
		}
		ch <- line
	}()
	return ch
}
