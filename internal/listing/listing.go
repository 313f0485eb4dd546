package listing

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Entry is one child of a listed directory
type Entry struct {
	Path    string
	Dir     bool // follows symlinks
	Tagged  bool
	Preview string // reserved for content preview
}

// Name returns the base name of the entry
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Lookup answers tag membership for a path
type Lookup interface {
	Contains(path string) bool
}

// Order selects how List sorts its result
type Order int

const (
	Default Order = iota
	Name
	NameReverse
	Modified
	ModifiedReverse
	Created
	CreatedReverse
	DirsFirst
	FilesFirst
)

var orderNames = map[Order]string{
	Default:         "default",
	Name:            "name",
	NameReverse:     "name-reverse",
	Modified:        "modified",
	ModifiedReverse: "modified-reverse",
	Created:         "created",
	CreatedReverse:  "created-reverse",
	DirsFirst:       "dirs-first",
	FilesFirst:      "files-first",
}

func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOrder maps a config name back to an Order
func ParseOrder(name string) (Order, bool) {
	for o, n := range orderNames {
		if n == name {
			return o, true
		}
	}
	return Default, false
}

// List reads the immediate children of dir. Read failures yield an empty
// listing: an unreadable directory is a normal browsing state.
func List(dir string, showHidden bool, order Order, tags Lookup) []Entry {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, de.Name())
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}

		entries = append(entries, Entry{
			Path:   path,
			Dir:    isDir,
			Tagged: tags != nil && tags.Contains(path),
		})
	}

	sortEntries(entries, order)
	return entries
}

func sortEntries(entries []Entry, order Order) {
	switch order {
	case Name:
		slices.SortStableFunc(entries, byName)
	case NameReverse:
		slices.SortStableFunc(entries, reverse(byName))
	case Modified:
		slices.SortStableFunc(entries, byTime(modTime))
	case ModifiedReverse:
		slices.SortStableFunc(entries, reverse(byTime(modTime)))
	case Created:
		slices.SortStableFunc(entries, byTime(createTime))
	case CreatedReverse:
		slices.SortStableFunc(entries, reverse(byTime(createTime)))
	case DirsFirst:
		slices.SortStableFunc(entries, func(a, b Entry) int { return boolCmp(!a.Dir, !b.Dir) })
	case FilesFirst:
		slices.SortStableFunc(entries, func(a, b Entry) int { return boolCmp(a.Dir, b.Dir) })
	}
}

func byName(a, b Entry) int {
	return strings.Compare(a.Name(), b.Name())
}

func reverse(cmp func(a, b Entry) int) func(a, b Entry) int {
	return func(a, b Entry) int { return cmp(b, a) }
}

// byTime stats each entry once per comparison; listings are small enough
func byTime(stamp func(string) time.Time) func(a, b Entry) int {
	return func(a, b Entry) int {
		return stamp(a.Path).Compare(stamp(b.Path))
	}
}

// boolCmp orders false before true
func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Unix(0, 0)
	}
	return info.ModTime()
}
