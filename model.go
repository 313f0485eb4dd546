package main

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/config"
	"github.com/LFroesch/trio/internal/git"
	"github.com/LFroesch/trio/internal/watch"
)

// Terminal dimension constants
const (
	minTerminalWidth  = 40
	minTerminalHeight = 6
	uiOverhead        = 2 // header + status bar
)

// dirChangedMsg is sent by the watcher after a burst of events in dir.
type dirChangedMsg struct{ dir string }

// gitStatusMsg carries the repository state of dir.
type gitStatusMsg struct {
	dir  string
	info git.Info
}

// externalDoneMsg reports the end of a foreground editor or a failed
// viewer launch.
type externalDoneMsg struct {
	path string
	err  error
}

type model struct {
	engine  *browser.Engine
	config  *config.Config
	help    help.Model
	watcher *watch.Watcher // nil unless watching is enabled
	git     git.Info
	gitDir  string // directory git was last queried for
	width   int
	height  int

	showHelp bool
}

func newModel(engine *browser.Engine, cfg *config.Config, watcher *watch.Watcher) *model {
	return &model{
		engine:  engine,
		config:  cfg,
		help:    help.New(),
		watcher: watcher,
	}
}
