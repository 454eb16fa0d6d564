package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func testTheme() *Theme {
	return NewTheme(ThemeConfig{NoColor: true})
}

func headless() *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return hm
}

// newTestProgram creates a tea.Program that never touches the terminal.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

func TestHeadlessManager_Force(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless should report headless")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive should not report headless")
	}
	hm.ClearForce()
	if hm.forced != nil {
		t.Error("ClearForce should remove the override")
	}
}

func TestSpinnerModel_Messages(t *testing.T) {
	m := newSpinnerModel(NewTheme(ThemeConfig{}), "Installing")

	if !strings.Contains(m.View(), "Installing") {
		t.Errorf("View() = %q, want title", m.View())
	}

	next, _ := m.Update(spinnerTitleMsg("Patching"))
	m = next.(spinnerModel)
	if m.title != "Patching" {
		t.Errorf("title = %q, want Patching", m.title)
	}

	next, cmd := m.Update(spinnerStopMsg{})
	m = next.(spinnerModel)
	if !m.done || cmd == nil {
		t.Fatal("stop should mark done and quit")
	}
	if m.View() != "" {
		t.Errorf("View() after stop = %q, want empty", m.View())
	}
}

func TestSpinnerModel_ProgramQuitsOnStop(t *testing.T) {
	p := newTestProgram(newSpinnerModel(testTheme(), "Working"))
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()
	p.Send(spinnerStopMsg{})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		p.Kill()
		t.Fatal("program did not stop")
	}
}

func TestHeadlessSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(testTheme(), headless(), "Checking tooling", &buf)
	s.SetTitle("Installing pnpm")
	s.Stop()

	want := "Checking tooling...\nInstalling pnpm...\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole_Headless(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(testTheme(), headless(), &buf)

	c.Begin("database")
	c.End("database", nil)
	c.Begin("redis")
	c.End("redis", errors.New("boom"))
	c.Warn("main.ts: anchor not found")
	c.Info("done")
	c.Close()

	want := strings.Join([]string{
		"database...",
		"✓ database",
		"redis...",
		"✗ redis: boom",
		"! main.ts: anchor not found",
		"· done",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"main.ts: anchor not found"}, c.Warnings()); diff != "" {
		t.Errorf("Warnings() mismatch (-want +got):\n%s", diff)
	}
}

type recordingSpinner struct {
	lines   []string
	stopped bool
}

func (s *recordingSpinner) SetTitle(string) {}
func (s *recordingSpinner) Println(line string) { s.lines = append(s.lines, line) }
func (s *recordingSpinner) Stop() { s.stopped = true }

func TestConsole_LinesGoThroughRunningSpinner(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(testTheme(), headless(), &buf)
	sp := &recordingSpinner{}
	c.spinner = sp

	c.Warn("pnpm 7.0.0 is older than v8.0.0")
	c.Info("using store /tmp/pnpm")
	if buf.Len() != 0 {
		t.Errorf("wrote around the spinner: %q", buf.String())
	}
	want := []string{"! pnpm 7.0.0 is older than v8.0.0", "· using store /tmp/pnpm"}
	if diff := cmp.Diff(want, sp.lines); diff != "" {
		t.Errorf("spinner lines mismatch (-want +got):\n%s", diff)
	}

	c.End("tooling", nil)
	if !sp.stopped {
		t.Error("End should stop the spinner")
	}
	if diff := cmp.Diff("✓ tooling\n", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSpinnerModel_PrintlnDuringRun(t *testing.T) {
	var buf bytes.Buffer
	s := newInteractiveSpinner(testTheme(), "Installing", &buf)
	s.Println("! warning")
	s.Stop()

	if !strings.Contains(buf.String(), "! warning") {
		t.Errorf("output %q does not contain the printed line", buf.String())
	}
}

func TestRenderMarkdown_Plain(t *testing.T) {
	out, err := RenderMarkdown(testTheme(), headless(), "# Next steps\n\n- `cd shop-api`\n")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains escape sequences: %q", out)
	}
	for _, s := range []string{"Next steps", "cd shop-api"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
