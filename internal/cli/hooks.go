package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolink/pkg/observability"
)

// logHooks reports schedule events at debug level.
type logHooks struct {
	observability.NoopScheduleHooks
	logger *log.Logger
}

func (h *logHooks) OnPhaseStart(_ context.Context, phase string, commands int) {
	h.logger.Debug("phase started", "phase", phase, "commands", commands)
}

func (h *logHooks) OnPhaseComplete(_ context.Context, phase string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("phase aborted", "phase", phase, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("phase finished", "phase", phase, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnCommandComplete(_ context.Context, pkg string, args []string, d time.Duration, err error) {
	h.logger.Debug("command finished",
		"package", pkg,
		"args", strings.Join(args, " "),
		"duration", d.Round(time.Millisecond),
		"ok", err == nil)
}
