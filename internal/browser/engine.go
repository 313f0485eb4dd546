// Package browser is the modal input engine: it turns keystrokes into
// navigation, register and filesystem actions over a three-column view.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/columns"
	"github.com/LFroesch/trio/internal/fileops"
	"github.com/LFroesch/trio/internal/listing"
	"github.com/LFroesch/trio/internal/logger"
	"github.com/LFroesch/trio/internal/pathset"
	"github.com/LFroesch/trio/internal/register"
	"github.com/LFroesch/trio/internal/search"
)

// Options configures a new Engine. Zero values get defaults.
type Options struct {
	Pwd        string
	ShowHidden bool
	Order      listing.Order
	Tags       []string

	// Purge removes a non-empty directory once deletion is confirmed.
	// Defaults to os.RemoveAll.
	Purge func(path string) error
	// Classify picks the viewer kind for files being opened.
	Classify func(path string) classify.Kind
	Keys     *KeyMap
}

// highlight is the matched rune positions of one entry name
type highlight struct {
	path      string
	positions []int
}

// Engine owns the columns, the register, the tag set and the input mode.
// It is not safe for concurrent use.
type Engine struct {
	cols       *columns.Set
	tags       *pathset.Set
	reg        register.Register
	mode       Mode
	showHidden bool
	order      listing.Order
	message    string
	highlight  highlight

	purge    func(string) error
	classify func(string) classify.Kind
	keys     KeyMap
}

// New lists the three columns around opts.Pwd.
func New(opts Options) *Engine {
	e := &Engine{
		tags:       pathset.New(opts.Tags...),
		mode:       Normal{},
		showHidden: opts.ShowHidden,
		order:      opts.Order,
		purge:      opts.Purge,
		classify:   opts.Classify,
		keys:       DefaultKeyMap(),
	}
	if e.purge == nil {
		e.purge = os.RemoveAll
	}
	if e.classify == nil {
		e.classify = classify.Classify
	}
	if opts.Keys != nil {
		e.keys = *opts.Keys
	}

	e.cols = columns.New(opts.Pwd, e.list)
	return e
}

func (e *Engine) list(dir string) []listing.Entry {
	return listing.List(dir, e.showHidden, e.order, e.tags)
}

func (e *Engine) Columns() *columns.Set { return e.cols }
func (e *Engine) Pwd() string             { return e.cols.Pwd() }
func (e *Engine) Mode() Mode              { return e.mode }
func (e *Engine) Message() string         { return e.message }
func (e *Engine) Keys() KeyMap            { return e.keys }
func (e *Engine) ShowHidden() bool        { return e.showHidden }
func (e *Engine) Order() listing.Order    { return e.order }

// SetMessage replaces the status line, for host side effects that fail.
func (e *Engine) SetMessage(msg string) { e.message = msg }

// Tags returns the tag set in insertion order, for saving.
func (e *Engine) Tags() []string { return e.tags.Paths() }

// Register reports how many paths are yanked and for what.
func (e *Engine) Register() (int, register.Mode) {
	return e.reg.Len(), e.reg.Mode()
}

// Marked reports whether path is in the Select working set.
func (e *Engine) Marked(path string) bool {
	sel, ok := e.mode.(Select)
	return ok && sel.Paths.Contains(path)
}

// Highlight returns the matched rune positions of path's name during a
// live search.
func (e *Engine) Highlight(path string) []int {
	if e.highlight.path != path {
		return nil
	}
	return e.highlight.positions
}

// Metadata describes the highlighted entry: size for files, then its
// position in the middle column.
func (e *Engine) Metadata() string {
	sel, ok := e.cols.Selected()
	if !ok {
		return ""
	}

	size := ""
	if info, err := os.Stat(sel.Path); err == nil && !info.IsDir() {
		size = humanize.Bytes(uint64(info.Size()))
	}
	i, _ := e.cols.Middle.Cursor()
	return strings.TrimSpace(fmt.Sprintf("%s  %d/%d", size, i+1, e.cols.Middle.Len()))
}

// Reload re-lists every column keeping the cursor, for changes made
// outside the engine.
func (e *Engine) Reload() {
	e.cols.Refresh(columns.All, true)
}

// typed returns the text a key inserts, if any.
func typed(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return "", false
		}
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}

// HandleKey is the single entry point for keystrokes.
func (e *Engine) HandleKey(msg tea.KeyMsg) Request {
	if key.Matches(msg, e.keys.ForceQuit) {
		return QuitRequest{}
	}

	switch m := e.mode.(type) {
	case Command:
		return e.handleCommand(m, msg)
	case Input:
		return e.handleInput(m, msg)
	case Confirmation:
		return e.handleConfirmation(m, msg)
	case Select:
		return e.handleSelect(m, msg)
	default:
		return e.handleNormal(msg)
	}
}

// navigate handles the cursor and directory keys shared by several modes.
func (e *Engine) navigate(msg tea.KeyMsg) (Request, bool) {
	switch {
	case key.Matches(msg, e.keys.Down):
		e.cols.Down()
	case key.Matches(msg, e.keys.Up):
		e.cols.Up()
	case key.Matches(msg, e.keys.Top):
		e.cols.Top()
	case key.Matches(msg, e.keys.Bottom):
		e.cols.Bottom()
	case key.Matches(msg, e.keys.Descend):
		return e.descend(), true
	case key.Matches(msg, e.keys.Ascend):
		e.cols.Ascend()
	default:
		return nil, false
	}
	return nil, true
}

func (e *Engine) handleNormal(msg tea.KeyMsg) Request {
	if req, ok := e.navigate(msg); ok {
		return req
	}

	switch {
	case key.Matches(msg, e.keys.Quit):
		return QuitRequest{}
	case key.Matches(msg, e.keys.Help):
		return HelpRequest{}
	case key.Matches(msg, e.keys.Command):
		return e.runCommand(msg.String())
	case key.Matches(msg, e.keys.Line):
		e.openInput(":")
	case key.Matches(msg, e.keys.Search):
		e.openInput("/")
	case key.Matches(msg, e.keys.Find):
		e.openInput(":find ")
	case key.Matches(msg, e.keys.Rename):
		sel, ok := e.cols.Selected()
		if !ok {
			e.message = "nothing selected"
			return nil
		}
		e.openInput(":rename " + sel.Name())
	case key.Matches(msg, e.keys.ToggleHidden):
		e.showHidden = !e.showHidden
		e.cols.Refresh(columns.All, true)
		if e.showHidden {
			e.message = "showing hidden files"
		} else {
			e.message = "hiding hidden files"
		}
	case key.Matches(msg, e.keys.Tag):
		e.toggleTag()
	case key.Matches(msg, e.keys.Select):
		e.mode = Select{Paths: pathset.New()}
		e.message = "space marks, m moves, c copies, D deletes"
	case key.Matches(msg, e.keys.Paste):
		return e.paste()
	case key.Matches(msg, e.keys.Refresh):
		e.Reload()
		e.message = "refreshed"
	}
	return nil
}

// handleCommand keeps navigation keys live so a yank can be carried to
// another directory; other typed runes extend the buffer.
func (e *Engine) handleCommand(m Command, msg tea.KeyMsg) Request {
	if key.Matches(msg, e.keys.Cancel) {
		e.mode = Normal{}
		e.message = "canceled"
		return nil
	}
	if req, ok := e.navigate(msg); ok {
		return req
	}
	if text, ok := typed(msg); ok {
		return e.runCommand(m.Buffer + text)
	}
	return nil
}

func (e *Engine) openInput(seed string) {
	origin := ""
	if sel, ok := e.cols.Selected(); ok {
		origin = sel.Path
	}
	e.mode = Input{Buffer: seed, Origin: origin}
	e.message = ""
}

func (e *Engine) handleInput(m Input, msg tea.KeyMsg) Request {
	switch {
	case key.Matches(msg, e.keys.Submit):
		e.mode = Normal{}
		e.highlight = highlight{}
		e.execute(m.Buffer)
		return nil

	case key.Matches(msg, e.keys.Cancel):
		e.cancelInput(m)
		return nil

	case key.Matches(msg, e.keys.Erase):
		runes := []rune(m.Buffer)
		if len(runes) <= 1 {
			e.cancelInput(m)
			return nil
		}
		m.Buffer = string(runes[:len(runes)-1])

	default:
		text, ok := typed(msg)
		if !ok {
			return nil
		}
		m.Buffer += text
	}

	e.mode = m
	e.live(m)
	return nil
}

func (e *Engine) cancelInput(m Input) {
	e.cols.SelectIndex(e.cols.Middle.IndexOf(m.Origin))
	e.mode = Normal{}
	e.highlight = highlight{}
	e.message = "canceled"
}

// live re-runs the incremental search the buffer's prefix selects.
func (e *Engine) live(m Input) {
	var (
		query string
		match func(string, []string) (int, []int, bool)
	)
	switch {
	case strings.HasPrefix(m.Buffer, "/"):
		query = strings.TrimPrefix(m.Buffer, "/")
		match = func(q string, names []string) (int, []int, bool) {
			i, ok := search.PrefixIndex(q, names)
			return i, search.PrefixPositions(q), ok
		}
	case strings.HasPrefix(m.Buffer, ":find "):
		query = strings.TrimPrefix(m.Buffer, ":find ")
		match = func(q string, names []string) (int, []int, bool) {
			i, ok := search.FindBest(q, names)
			if !ok {
				return -1, nil, false
			}
			pos, _ := search.Score(q, names[i])
			return i, pos, true
		}
	default:
		return
	}

	e.highlight = highlight{}
	if query == "" {
		e.cols.SelectIndex(e.cols.Middle.IndexOf(m.Origin))
		return
	}

	i, positions, ok := match(query, e.middleNames())
	if !ok {
		e.cols.SelectIndex(-1)
		return
	}
	e.cols.SelectIndex(i)
	if sel, ok := e.cols.Selected(); ok {
		e.highlight = highlight{path: sel.Path, positions: positions}
	}
}

func (e *Engine) handleConfirmation(m Confirmation, msg tea.KeyMsg) Request {
	e.mode = Normal{}
	if text, ok := typed(msg); !ok || text != string(m.Expected) {
		e.message = "aborted"
		return nil
	}

	switch action := m.Action.(type) {
	case DeleteOne:
		if err := e.purge(action.Path); err != nil {
			logger.Warn("Delete %s failed: %v", action.Path, err)
			e.message = "cant delete"
			return nil
		}
		e.refreshAfterRemoval()
		e.message = "deleted!"
	case DeleteSelection:
		n := fileops.DeleteSelection(action.Paths, e.purge)
		e.cols.Refresh(columns.All, true)
		e.message = fmt.Sprintf("deleted %d of %d", n, len(action.Paths))
	}
	return nil
}

func (e *Engine) handleSelect(m Select, msg tea.KeyMsg) Request {
	switch {
	case key.Matches(msg, e.keys.Cancel):
		e.mode = Normal{}
		e.message = "canceled"
	case key.Matches(msg, e.keys.Mark):
		sel, ok := e.cols.Selected()
		if !ok {
			return nil
		}
		m.Paths.Toggle(sel.Path)
		e.mode = Select{Paths: m.Paths}
		e.message = fmt.Sprintf("%d marked", m.Paths.Len())
	case key.Matches(msg, e.keys.CommitMove):
		e.commitSelection(m, register.Move)
	case key.Matches(msg, e.keys.CommitCopy):
		e.commitSelection(m, register.Copy)
	case key.Matches(msg, e.keys.DeleteMarked):
		if m.Paths.Len() == 0 {
			e.mode = Normal{}
			e.message = "nothing marked"
			return nil
		}
		e.mode = Confirmation{Action: DeleteSelection{Paths: m.Paths.Paths()}, Expected: 'y'}
		e.message = fmt.Sprintf("delete %d marked items? [y/n]", m.Paths.Len())
	default:
		req, _ := e.navigate(msg)
		return req
	}
	return nil
}

func (e *Engine) commitSelection(m Select, mode register.Mode) {
	e.mode = Normal{}
	if m.Paths.Len() == 0 {
		e.message = "nothing marked"
		return
	}
	e.reg.Set(mode, m.Paths.Paths()...)
	e.message = fmt.Sprintf("%d items in register for %s, p to paste", e.reg.Len(), mode)
}

func (e *Engine) descend() Request {
	sel, ok := e.cols.Selected()
	if !ok {
		return nil
	}

	d := e.cols.Descend()
	switch {
	case d.File != "":
		return OpenRequest{Path: d.File, Kind: e.classify(d.File)}
	case d.Entered == "":
		e.message = fmt.Sprintf("cant open %s", sel.Name())
	default:
		e.message = ""
	}
	return nil
}

func (e *Engine) deleteCurrent() Request {
	sel, ok := e.cols.Selected()
	if !ok {
		e.message = "nothing selected"
		return nil
	}

	switch fileops.Inspect(sel.Path) {
	case fileops.KindFile, fileops.KindEmptyDir:
		if err := fileops.Remove(sel.Path); err != nil {
			logger.Warn("Delete %s failed: %v", sel.Path, err)
			e.message = fileops.FormatError(err, sel.Path, "delete").Error()
			return nil
		}
		e.refreshAfterRemoval()
		e.message = "deleted " + sel.Name()
	case fileops.KindDir:
		e.mode = Confirmation{Action: DeleteOne{Path: sel.Path}, Expected: 'y'}
		e.message = fmt.Sprintf("delete %s and all of its contents? [y/n]", sel.Name())
	case fileops.KindMissing:
		e.cols.Refresh(columns.Middle, true)
		e.message = sel.Name() + " no longer exists"
	default:
		e.message = "this type of file isn't handled"
	}
	return nil
}

// refreshAfterRemoval re-lists the middle column keeping the cursor near
// where the removed entry was.
func (e *Engine) refreshAfterRemoval() {
	i, _ := e.cols.Middle.Cursor()
	e.cols.Refresh(columns.Middle, false)
	if n := e.cols.Middle.Len(); n > 0 {
		e.cols.SelectIndex(min(i, n-1))
	}
}

func (e *Engine) yank(mode register.Mode) Request {
	sel, ok := e.cols.Selected()
	if !ok {
		e.message = "nothing selected"
		return nil
	}
	e.reg.Set(mode, sel.Path)
	e.message = fmt.Sprintf("%s in register for %s, p to paste", sel.Name(), mode)
	return nil
}

func (e *Engine) paste() Request {
	if e.reg.Empty() {
		e.message = "register is empty"
		return nil
	}

	paths, mode := e.reg.Take()
	sum := fileops.Paste(paths, mode, e.cols.Pwd())
	e.cols.Refresh(columns.All, true)
	e.selectPath(filepath.Join(e.cols.Pwd(), filepath.Base(paths[0])))
	e.message = sum.String()
	return nil
}

func (e *Engine) clip(nameOnly bool) Request {
	sel, ok := e.cols.Selected()
	if !ok {
		e.message = "nothing selected"
		return nil
	}
	text := sel.Path
	if nameOnly {
		text = sel.Name()
	}
	e.message = "copied " + text
	return ClipboardRequest{Text: text}
}

func (e *Engine) toggleTag() {
	sel, ok := e.cols.Selected()
	if !ok {
		e.message = "nothing selected"
		return
	}
	tagged := e.tags.Toggle(sel.Path)
	e.cols.Middle.SetTagged(sel.Path, tagged)
	if tagged {
		e.message = "tagged " + sel.Name()
	} else {
		e.message = "untagged " + sel.Name()
	}
}

// selectPath moves the middle cursor to path when it is listed.
func (e *Engine) selectPath(path string) {
	if i := e.cols.Middle.IndexOf(path); i >= 0 {
		e.cols.SelectIndex(i)
	}
}

func (e *Engine) middleNames() []string {
	entries := e.cols.Middle.Entries()
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names
}
