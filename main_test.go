package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/config"
	"github.com/LFroesch/trio/internal/git"
	"github.com/LFroesch/trio/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	engine := browser.New(browser.Options{Pwd: dir})
	return newModel(engine, config.Default(), nil)
}

func TestStartDir(t *testing.T) {
	dir := t.TempDir()

	got, err := startDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err = startDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, wd, got)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	got, err = startDir(file)
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		n, cursor, rows    int
		wantStart, wantEnd int
	}{
		{"fits", 3, 2, 10, 0, 3},
		{"top", 20, 0, 5, 0, 5},
		{"centered", 20, 10, 5, 8, 13},
		{"bottom", 20, 19, 5, 15, 20},
		{"empty", 0, 0, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.n, tt.cursor, tt.rows)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "..", truncate("abcdefghij", 2))
}

func TestHighlightMatchesKeepsText(t *testing.T) {
	assert.Equal(t, "plain", highlightMatches("plain", nil))

	out := highlightMatches("abc", []int{0, 2, 9})
	assert.Contains(t, out, "b")
}

func TestHandleRequest(t *testing.T) {
	m := newTestModel(t)

	cmd := m.handleRequest(browser.QuitRequest{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Nil(t, m.handleRequest(browser.HelpRequest{}))
	assert.True(t, m.showHelp)
	assert.True(t, m.help.ShowAll)
	m.handleRequest(browser.HelpRequest{})
	assert.False(t, m.showHelp)

	assert.Nil(t, m.handleRequest(nil))
}

func TestOpenFileWithoutViewer(t *testing.T) {
	m := newTestModel(t)

	cmd := m.openFile(browser.OpenRequest{Path: filepath.Join(m.engine.Pwd(), "x.bin"), Kind: classify.Other})
	assert.Nil(t, cmd)
	assert.Equal(t, "no viewer for this kind of file", m.engine.Message())
}

func TestEditorFallsBackToEnv(t *testing.T) {
	m := newTestModel(t)
	t.Setenv("EDITOR", "myeditor --wait")
	assert.Equal(t, "myeditor --wait", m.editor())

	m.config.Editor = "configured"
	assert.Equal(t, "configured", m.editor())
}

func TestUpdateIgnoresStaleGitStatus(t *testing.T) {
	m := newTestModel(t)

	m.Update(gitStatusMsg{dir: "/elsewhere", info: git.Info{Branch: "main"}})
	assert.Empty(t, m.git.Branch)

	m.Update(gitStatusMsg{dir: m.engine.Pwd(), info: git.Info{Branch: "main"}})
	assert.Equal(t, "main", m.git.Branch)
}

func TestViewRendersPanes(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	out := m.View()
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "sub")
	assert.Contains(t, out, "NORMAL")
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 3})
	assert.Contains(t, m.View(), "Terminal too small")
}
