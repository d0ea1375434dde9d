// Package observability provides hooks for resolution and schedule events.
//
// Libraries emit events through the registered hooks; nothing here depends on
// a particular backend. The CLI registers logging hooks at startup, and tests
// register recorders.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScheduleHooks(&myScheduleHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Schedule().OnCommandStart(ctx, pkg, args)
//	// ... run command ...
//	observability.Schedule().OnCommandComplete(ctx, pkg, args, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from the resolution pipeline.
type ResolveHooks interface {
	OnResolveStart(ctx context.Context, root string)
	OnResolveComplete(ctx context.Context, root string, packages, edges int, duration time.Duration, err error)
}

// =============================================================================
// Schedule Hooks
// =============================================================================

// ScheduleHooks receives events from the orchestrator.
type ScheduleHooks interface {
	// Phase events, one pair per install, link or clean phase
	OnPhaseStart(ctx context.Context, phase string, commands int)
	OnPhaseComplete(ctx context.Context, phase string, duration time.Duration, err error)

	// Command events, one pair per external command
	OnCommandStart(ctx context.Context, pkg string, args []string)
	OnCommandComplete(ctx context.Context, pkg string, args []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(context.Context, string) {}
func (NoopResolveHooks) OnResolveComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopScheduleHooks is a no-op implementation of ScheduleHooks.
type NoopScheduleHooks struct{}

func (NoopScheduleHooks) OnPhaseStart(context.Context, string, int)                     {}
func (NoopScheduleHooks) OnPhaseComplete(context.Context, string, time.Duration, error) {}
func (NoopScheduleHooks) OnCommandStart(context.Context, string, []string)              {}
func (NoopScheduleHooks) OnCommandComplete(context.Context, string, []string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resolveHooks  ResolveHooks  = NoopResolveHooks{}
	scheduleHooks ScheduleHooks = NoopScheduleHooks{}
	hooksMu       sync.RWMutex
)

// SetResolveHooks registers custom resolve hooks. Nil is ignored.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetScheduleHooks registers custom schedule hooks.
// This should be called once at application startup before any schedule runs.
func SetScheduleHooks(h ScheduleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scheduleHooks = h
	}
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
}

// Schedule returns the registered schedule hooks.
func Schedule() ScheduleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scheduleHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	resolveHooks = NoopResolveHooks{}
	scheduleHooks = NoopScheduleHooks{}
}
