// Package notify is the user-facing alert channel. The core invokes it with a
// structured payload and the presentation layer decides how to render it;
// no error codes ever reach the user.
package notify

import "log/slog"

// Alert names the action that failed (or completed) and a human message.
type Alert struct {
	Action  string
	Message string
}

// Notifier receives alerts from the core.
type Notifier interface {
	Notify(alert Alert)
}

// Func adapts a plain function to the Notifier interface.
type Func func(Alert)

func (f Func) Notify(alert Alert) { f(alert) }

// Log is a Notifier that records alerts to slog. Used by non-interactive
// commands where there is no modal surface.
type Log struct{}

func (Log) Notify(alert Alert) {
	slog.Error("action failed", "action", alert.Action, "message", alert.Message)
}

// Discard drops all alerts. Useful in tests.
type Discard struct{}

func (Discard) Notify(Alert) {}
