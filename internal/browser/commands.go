package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/LFroesch/trio/internal/columns"
	"github.com/LFroesch/trio/internal/fileops"
	"github.com/LFroesch/trio/internal/listing"
	"github.com/LFroesch/trio/internal/logger"
	"github.com/LFroesch/trio/internal/pathset"
	"github.com/LFroesch/trio/internal/register"
	"github.com/LFroesch/trio/internal/search"
)

type command struct {
	keys string
	help string
	run  func(e *Engine) Request
}

// commands is the multi-key table matched in Command mode
var commands = []command{
	{"dD", "delete", (*Engine).deleteCurrent},
	{"dd", "yank to move", func(e *Engine) Request { return e.yank(register.Move) }},
	{"ddp", "paste the move register", (*Engine).paste},
	{"yy", "yank to copy", func(e *Engine) Request { return e.yank(register.Copy) }},
	{"yyp", "paste the copy register", (*Engine).paste},
	{"yc", "copy path", func(e *Engine) Request { return e.clip(false) }},
	{"yn", "copy name", func(e *Engine) Request { return e.clip(true) }},
	{"sn", "sort by name", sortBy(listing.Name)},
	{"sN", "sort by name, reversed", sortBy(listing.NameReverse)},
	{"sm", "sort by modified", sortBy(listing.Modified)},
	{"sM", "sort by modified, newest first", sortBy(listing.ModifiedReverse)},
	{"sc", "sort by created", sortBy(listing.Created)},
	{"sC", "sort by created, newest first", sortBy(listing.CreatedReverse)},
	{"sd", "directories first", sortBy(listing.DirsFirst)},
	{"sf", "files first", sortBy(listing.FilesFirst)},
	{"s0", "unsorted", sortBy(listing.Default)},
}

func sortBy(order listing.Order) func(e *Engine) Request {
	return func(e *Engine) Request {
		e.order = order
		e.cols.Refresh(columns.All, true)
		e.message = "sorted by " + order.String()
		return nil
	}
}

// lookup returns the command bound to exactly buf, and whether buf is a
// proper prefix of some longer command.
func lookup(buf string) (*command, bool) {
	var exact *command
	longer := false
	for i := range commands {
		c := &commands[i]
		switch {
		case c.keys == buf:
			exact = c
		case strings.HasPrefix(c.keys, buf):
			longer = true
		}
	}
	return exact, longer
}

// runCommand matches buf after a keystroke. A full match fires; the mode
// stays in Command only while buf can still grow into a longer entry.
func (e *Engine) runCommand(buf string) Request {
	cmd, longer := lookup(buf)
	if longer {
		e.mode = Command{Buffer: buf}
	} else {
		e.mode = Normal{}
	}

	if cmd != nil {
		return cmd.run(e)
	}
	if !longer {
		e.message = "no such command"
	}
	return nil
}

// lineCommands take exactly one argument
var lineCommands = map[string]func(e *Engine, arg string){
	":rename": (*Engine).renameCurrent,
	":touch":  func(e *Engine, name string) { e.create(name, false) },
	":mkdir":  func(e *Engine, name string) { e.create(name, true) },
	":find":   (*Engine).findSubmit,
	":cd":     (*Engine).changeDir,
	":tag":    (*Engine).jumpToTag,
	":mark":   (*Engine).markGlob,
}

// execute runs a submitted line. The mode is already Normal; some
// commands move on to Select.
func (e *Engine) execute(line string) {
	if strings.HasPrefix(line, "/") {
		e.message = ""
		return
	}

	name, arg, hasArg := strings.Cut(line, " ")
	run, known := lineCommands[name]

	if !hasArg {
		switch {
		case name == ":q" || name == ":quit":
			e.message = "press q to quit"
		case known:
			e.message = "missing argument"
		default:
			e.message = "command not recognized"
		}
		return
	}

	if !known {
		e.message = "command not found"
		return
	}
	if strings.TrimSpace(arg) == "" && name != ":find" {
		e.message = "missing argument"
		return
	}
	run(e, arg)
}

func (e *Engine) renameCurrent(newName string) {
	sel, ok := e.cols.Selected()
	if !ok {
		e.message = "nothing selected"
		return
	}
	if newName == sel.Name() {
		e.message = "nothing to do"
		return
	}

	if err := fileops.Rename(sel.Path, newName); err != nil {
		logger.Warn("Rename %s to %s failed: %v", sel.Path, newName, err)
		e.message = fileops.FormatError(err, sel.Path, "rename").Error()
		return
	}

	newPath := filepath.Join(filepath.Dir(sel.Path), newName)
	e.retag(sel.Path, newPath)
	e.cols.Refresh(columns.Middle, false)
	e.selectPath(newPath)
	e.message = "renamed file"
}

// retag moves tags on oldPath and anything below it to newPath.
func (e *Engine) retag(oldPath, newPath string) {
	for _, tag := range e.tags.Paths() {
		rel, err := filepath.Rel(oldPath, tag)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		e.tags.Remove(tag)
		e.tags.Add(filepath.Join(newPath, rel))
	}
}

func (e *Engine) create(name string, dir bool) {
	create, what := fileops.CreateFile, "file"
	if dir {
		create, what = fileops.CreateDir, "directory"
	}

	if err := create(e.cols.Pwd(), name); err != nil {
		if errors.Is(err, fileops.ErrExists) {
			e.message = "path already exists"
			return
		}
		logger.Warn("Create %s %s failed: %v", what, name, err)
		e.message = fileops.FormatError(err, name, "create "+what).Error()
		return
	}

	e.cols.Refresh(columns.Middle, false)
	e.selectPath(filepath.Join(e.cols.Pwd(), name))
	e.message = what + " created"
}

func (e *Engine) findSubmit(query string) {
	i, ok := search.FindBest(query, e.middleNames())
	if !ok {
		i = 0
	}
	e.cols.SelectIndex(i)
	e.cols.Refresh(columns.Middle, true)
	e.highlight = highlight{}
	e.message = ""
}

func (e *Engine) changeDir(target string) {
	target = strings.TrimSpace(target)
	if target == "~" || strings.HasPrefix(target, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			e.message = "no home directory"
			return
		}
		target = filepath.Join(home, strings.TrimPrefix(target, "~"))
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(e.cols.Pwd(), target)
	}

	if err := e.cols.JumpTo(target); err != nil {
		e.message = "no such directory"
		return
	}
	e.message = ""
}

func (e *Engine) jumpToTag(query string) {
	ranked := search.RankPaths(strings.TrimSpace(query), e.tags.Paths())
	if len(ranked) == 0 {
		e.message = "no tagged path matches"
		return
	}
	if err := e.cols.JumpTo(ranked[0]); err != nil {
		e.message = filepath.Base(ranked[0]) + " no longer exists"
		return
	}
	e.message = ""
}

func (e *Engine) markGlob(pattern string) {
	g, err := glob.Compile(strings.TrimSpace(pattern))
	if err != nil {
		e.message = "invalid pattern"
		return
	}

	marked := pathset.New()
	for _, entry := range e.cols.Middle.Entries() {
		if g.Match(entry.Name()) {
			marked.Add(entry.Path)
		}
	}
	e.mode = Select{Paths: marked}
	e.message = fmt.Sprintf("%d marked", marked.Len())
}
