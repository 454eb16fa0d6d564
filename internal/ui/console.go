package ui

import (
	"fmt"
	"io"
	"sync"
)

// Console prints run progress. It satisfies the scaffold reporter.
// A step between Begin and End shows a spinner when interactive.
type Console struct {
	theme *Theme
	hm    *HeadlessManager
	out   io.Writer

	mu      sync.Mutex
	spinner Spinner
	warned  []string
}

// NewConsole creates a Console writing to out.
func NewConsole(theme *Theme, hm *HeadlessManager, out io.Writer) *Console {
	return &Console{theme: theme, hm: hm, out: out}
}

// Info prints a plain message.
func (c *Console) Info(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line(c.theme.style(c.theme.Colors.Muted).Render("·"), msg)
}

// Warn prints a warning and keeps it for the summary.
func (c *Console) Warn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warned = append(c.warned, msg)
	c.line(c.theme.style(c.theme.Colors.Warning).Render("!"), msg)
}

// Begin starts a step.
func (c *Console) Begin(step string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()
	c.spinner = newSpinner(c.theme, c.hm, step, c.out)
}

// End finishes a step with a success or failure mark.
func (c *Console) End(step string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()
	if err != nil {
		c.line(c.theme.style(c.theme.Colors.Error).Render("✗"), fmt.Sprintf("%s: %v", step, err))
		return
	}
	c.line(c.theme.style(c.theme.Colors.Success).Render("✓"), step)
}

// Warnings returns every warning printed so far.
func (c *Console) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.warned...)
}

// Close stops a spinner left running by an interrupted step.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()
}

func (c *Console) stopSpinner() {
	if c.spinner != nil {
		c.spinner.Stop()
		c.spinner = nil
	}
}

// line prints one message. While a step is running the spinner owns the
// writer, so the line goes through it.
func (c *Console) line(mark, msg string) {
	text := mark + " " + msg
	if c.spinner != nil {
		c.spinner.Println(text)
		return
	}
	_, _ = fmt.Fprintln(c.out, text)
}
