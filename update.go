package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/git"
	"github.com/LFroesch/trio/internal/logger"
)

func (m *model) Init() tea.Cmd {
	m.gitDir = m.engine.Pwd()
	return tea.Batch(
		tea.SetWindowTitle("trio"),
		gitStatus(m.gitDir),
		m.waitForChange(),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleRequest(m.engine.HandleKey(msg))
		return m, tea.Batch(cmd, m.followPwd())

	case dirChangedMsg:
		if msg.dir == m.engine.Pwd() {
			m.engine.Reload()
		}
		return m, tea.Batch(m.waitForChange(), gitStatus(m.engine.Pwd()))

	case gitStatusMsg:
		if msg.dir == m.engine.Pwd() {
			m.git = msg.info
		}
		return m, nil

	case externalDoneMsg:
		if msg.err != nil {
			logger.Warn("Failed to open %s: %v", msg.path, msg.err)
			m.engine.SetMessage("cant open " + filepath.Base(msg.path))
		}
		// an editor may have changed the listing
		m.engine.Reload()
		return m, gitStatus(m.engine.Pwd())
	}

	return m, nil
}

// handleRequest performs the side effect the engine asked for.
func (m *model) handleRequest(req browser.Request) tea.Cmd {
	switch req := req.(type) {
	case browser.QuitRequest:
		return tea.Quit
	case browser.HelpRequest:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case browser.ClipboardRequest:
		m.copyToClipboard(req.Text)
	case browser.OpenRequest:
		return m.openFile(req)
	}
	return nil
}

// followPwd re-targets the watcher and git status once the engine has
// moved to another directory.
func (m *model) followPwd() tea.Cmd {
	pwd := m.engine.Pwd()
	if pwd == m.gitDir {
		return nil
	}
	m.gitDir = pwd
	m.git = git.Info{}

	if m.watcher != nil {
		if err := m.watcher.Watch(pwd); err != nil {
			logger.Warn("Failed to watch %s: %v", pwd, err)
		}
	}
	return gitStatus(pwd)
}

// waitForChange blocks on the watcher until the next debounced change.
func (m *model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		dir, ok := <-changes
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

func gitStatus(dir string) tea.Cmd {
	return func() tea.Msg {
		return gitStatusMsg{dir: dir, info: git.Status(dir)}
	}
}
