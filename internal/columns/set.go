package columns

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/trio/internal/listing"
)

// Lister produces the entries of a directory. Visibility, order and tag
// state are the lister's business.
type Lister func(dir string) []listing.Entry

// Scope picks the columns a Refresh re-derives.
type Scope uint8

const (
	Left Scope = 1 << iota
	Middle
	Right

	All = Left | Middle | Right
)

// Descent reports what Descend did.
type Descent struct {
	Entered string // new pwd when a directory was entered
	File    string // regular file under the cursor, left for the caller to open
}

// Set is the parent, current and child columns around pwd.
type Set struct {
	pwd  string
	list Lister

	Left   *Column
	Middle *Column
	Right  *Column
}

// New lists pwd, its parent and the child under the first entry.
func New(pwd string, list Lister) *Set {
	s := &Set{pwd: filepath.Clean(pwd), list: list}
	s.rebuild("")
	return s
}

func (s *Set) Pwd() string { return s.pwd }

func (s *Set) parent() (string, bool) {
	p := filepath.Dir(s.pwd)
	return p, p != s.pwd
}

// rebuild re-derives all three columns, selecting sel in the middle if set.
func (s *Set) rebuild(sel string) {
	s.Left = s.deriveLeft()
	s.Middle = NewColumn(s.list(s.pwd))
	if sel != "" {
		if i := s.Middle.IndexOf(sel); i >= 0 {
			s.Middle.Select(i)
		}
	}
	s.deriveRight()
}

func (s *Set) deriveLeft() *Column {
	parent, ok := s.parent()
	if !ok {
		return NewColumn(nil)
	}
	left := NewColumn(s.list(parent))
	left.Select(left.IndexOf(s.pwd))
	return left
}

func (s *Set) deriveRight() {
	sel, ok := s.Middle.Selected()
	if !ok || !sel.Dir {
		s.Right = NewColumn(nil)
		return
	}
	s.Right = NewColumn(s.list(sel.Path))
}

// Descend enters the highlighted directory. Old middle becomes left and old
// right becomes middle, so no listing is repeated. A regular file is
// returned for opening; anything else is ignored.
func (s *Set) Descend() Descent {
	sel, ok := s.Middle.Selected()
	if !ok {
		return Descent{}
	}

	if !sel.Dir {
		info, err := os.Stat(sel.Path)
		if err != nil || !info.Mode().IsRegular() {
			return Descent{}
		}
		return Descent{File: sel.Path}
	}

	s.pwd = sel.Path
	s.Left, s.Middle = s.Middle, s.Right
	s.deriveRight()
	return Descent{Entered: s.pwd}
}

// Ascend moves to the parent directory with the cursor on the directory
// just left. It returns false at the filesystem root.
func (s *Set) Ascend() bool {
	parent, ok := s.parent()
	if !ok {
		return false
	}

	prev := s.pwd
	s.pwd = parent
	s.Middle, s.Right = s.Left, s.Middle
	if i := s.Middle.IndexOf(prev); i >= 0 {
		s.Middle.Select(i)
	}
	s.Left = s.deriveLeft()
	return true
}

// Refresh re-lists the columns in scope. With preserve the middle cursor
// follows its path; otherwise it falls back to the first entry. The right
// column always follows a refreshed middle.
func (s *Set) Refresh(scope Scope, preserve bool) {
	if scope&Left != 0 {
		s.Left = s.deriveLeft()
	}
	if scope&Middle != 0 {
		var keep string
		if sel, ok := s.Middle.Selected(); ok && preserve {
			keep = sel.Path
		}
		s.Middle.SetEntries(s.list(s.pwd))
		if keep != "" {
			if i := s.Middle.IndexOf(keep); i >= 0 {
				s.Middle.Select(i)
			}
		}
		s.deriveRight()
		return
	}
	if scope&Right != 0 {
		s.deriveRight()
	}
}

// JumpTo makes a directory the new pwd, or selects a file inside its
// parent.
func (s *Set) JumpTo(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("jump to %s: %w", path, err)
	}
	if info.IsDir() {
		s.pwd = path
		s.rebuild("")
		return nil
	}
	s.pwd = filepath.Dir(path)
	s.rebuild(path)
	return nil
}

// Down, Up, Top, Bottom and SelectIndex move the middle cursor and
// re-derive the right column.

func (s *Set) Down() {
	s.Middle.Next()
	s.deriveRight()
}

func (s *Set) Up() {
	s.Middle.Prev()
	s.deriveRight()
}

func (s *Set) Top() {
	s.Middle.First()
	s.deriveRight()
}

func (s *Set) Bottom() {
	s.Middle.Last()
	s.deriveRight()
}

// SelectIndex moves the middle cursor to i, or clears it when i is out of
// range.
func (s *Set) SelectIndex(i int) {
	s.Middle.Select(i)
	s.deriveRight()
}

// Selected is the highlighted middle entry.
func (s *Set) Selected() (listing.Entry, bool) {
	return s.Middle.Selected()
}
