// Package live renders run progress as a terminal UI fed by workflow
// events.
package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"surveyor/internal/workflow"
)

// Controller runs the live UI and implements workflow.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards the run banner to the UI.
func (c *Controller) OnRunStart(runID, provider, model string, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Provider: provider, Model: model, Total: total})
}

// OnEvent forwards question status updates to the UI.
func (c *Controller) OnEvent(event workflow.Event) {
	c.send(Event{Kind: EventQuestion, Question: event})
}

// OnRunEnd marks the run finished; the caller closes the UI afterwards.
func (c *Controller) OnRunEnd() {
	c.send(Event{Kind: EventRunEnd})
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
