package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/logger"
)

// openFile picks a program for the kind of file: a configured viewer,
// the editor for text, else the system opener.
func (m *model) openFile(req browser.OpenRequest) tea.Cmd {
	if viewer := m.config.Viewer(req.Kind); viewer != "" {
		return startDetached(viewer, req.Path)
	}

	switch req.Kind {
	case classify.Text:
		return m.editFile(req.Path)
	case classify.Other:
		m.engine.SetMessage("no viewer for this kind of file")
		return nil
	}

	path := req.Path
	return func() tea.Msg {
		if err := open.Start(path); err != nil {
			return externalDoneMsg{path: path, err: err}
		}
		return nil
	}
}

// editFile runs the editor in the foreground, handing it the terminal.
func (m *model) editFile(path string) tea.Cmd {
	args := strings.Fields(m.editor())
	if len(args) == 0 {
		m.engine.SetMessage("no editor configured")
		return nil
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalDoneMsg{path: path, err: err}
	})
}

func (m *model) editor() string {
	if m.config.Editor != "" {
		return m.config.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	for _, editor := range []string{"vim", "nano", "vi"} {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}
	return ""
}

// startDetached launches program on path without waiting for it.
func startDetached(program, path string) tea.Cmd {
	args := strings.Fields(program)
	if len(args) == 0 {
		return nil
	}
	return func() tea.Msg {
		cmd := exec.Command(args[0], append(args[1:], path)...)
		if err := cmd.Start(); err != nil {
			return externalDoneMsg{path: path, err: err}
		}
		go cmd.Wait() // reap
		return nil
	}
}

func (m *model) copyToClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warn("Failed to copy %s to clipboard: %v", text, err)
		m.engine.SetMessage("clipboard unavailable")
		return
	}
	logger.Info("Copied %s", filepath.Base(text))
}
