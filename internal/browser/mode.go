package browser

import (
	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/pathset"
)

// Mode is the live input state. Exactly one variant is active; a
// transition replaces the value.
type Mode interface {
	isMode()
	String() string
}

// Normal interprets keys as navigation and single-key actions.
type Normal struct{}

// Command accumulates a multi-key sequence such as dd or sn.
type Command struct {
	Buffer string
}

// Input edits a line: a ":" command, a "/" prefix search or ":find ".
type Input struct {
	Buffer string
	Origin string // path highlighted when the line was opened, "" for none
}

// Confirmation waits for a single key before running Action.
type Confirmation struct {
	Action   PendingAction
	Expected rune
}

// Select accumulates marked paths.
type Select struct {
	Paths *pathset.Set
}

func (Normal) isMode()       {}
func (Command) isMode()      {}
func (Input) isMode()        {}
func (Confirmation) isMode() {}
func (Select) isMode()       {}

func (Normal) String() string       { return "NORMAL" }
func (Command) String() string      { return "COMMAND" }
func (Input) String() string        { return "INPUT" }
func (Confirmation) String() string { return "CONFIRM" }
func (Select) String() string       { return "SELECT" }

// PendingAction is a destructive action held until confirmed.
type PendingAction interface {
	isPendingAction()
}

// DeleteOne purges a single non-empty directory.
type DeleteOne struct {
	Path string
}

// DeleteSelection deletes every marked path.
type DeleteSelection struct {
	Paths []string
}

func (DeleteOne) isPendingAction()       {}
func (DeleteSelection) isPendingAction() {}

// Request asks the host for a side effect the engine cannot perform
// itself. A nil Request means nothing to do.
type Request interface {
	isRequest()
}

// OpenRequest opens a regular file with a viewer for its kind.
type OpenRequest struct {
	Path string
	Kind classify.Kind
}

// ClipboardRequest puts Text on the system clipboard.
type ClipboardRequest struct {
	Text string
}

// QuitRequest ends the program.
type QuitRequest struct{}

// HelpRequest toggles the full key help.
type HelpRequest struct{}

func (OpenRequest) isRequest()      {}
func (ClipboardRequest) isRequest() {}
func (QuitRequest) isRequest()      {}
func (HelpRequest) isRequest()      {}
