// ABOUTME: Bridge connecting a backend analysis run to the Bubble Tea message loop.
// ABOUTME: Provides EventBridge for message injection plus tea.Cmd factories for runs, file loads, and ticks.
package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/algoscope/algoscope/backend"
	"github.com/algoscope/algoscope/events"
)

// EventBridge injects messages into a running Bubble Tea program from the
// backend goroutine. Bind must be called with program.Send before the first
// run starts; messages sent before binding are dropped.
type EventBridge struct {
	mu   sync.RWMutex
	send func(msg tea.Msg)
}

// NewEventBridge creates an unbound EventBridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{}
}

// Bind attaches the program's Send function.
func (b *EventBridge) Bind(send func(msg tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// Send injects a message into the message loop, if bound.
func (b *EventBridge) Send(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

// Hooks returns backend run hooks that forward entries and phase changes
// into the message loop.
func (b *EventBridge) Hooks() backend.RunHooks {
	return backend.RunHooks{
		OnEntry: func(e events.LogEntry) { b.Send(LogEntryMsg{Entry: e}) },
		OnPhase: func(p backend.Phase) { b.Send(PhaseMsg{Phase: p}) },
	}
}

// RunAnalysisCmd returns a tea.Cmd that runs a full analysis through the
// client. Streaming entries and phase changes arrive via the bridge; the
// final report (or error) is returned as a RunResultMsg.
func RunAnalysisCmd(ctx context.Context, client *backend.Client, code string, bridge *EventBridge) tea.Cmd {
	return func() tea.Msg {
		rep, err := client.Run(ctx, code, bridge.Hooks())
		return RunResultMsg{Report: rep, Err: err}
	}
}

// TickCmd returns a tea.Cmd that sends a TickMsg after the given interval.
// Used for spinner animation and elapsed time refreshes.
func TickCmd(interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(interval)
		return TickMsg{Time: time.Now()}
	}
}
