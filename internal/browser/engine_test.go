package browser

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/listing"
	"github.com/LFroesch/trio/internal/logger"
	"github.com/LFroesch/trio/internal/register"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func press(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// keys feeds each key in turn and returns the last request
func keys(e *Engine, seq ...string) Request {
	var req Request
	for _, k := range seq {
		req = e.HandleKey(press(k))
	}
	return req
}

// line opens the command line and submits text, which starts with ':'
func line(e *Engine, text string) {
	keys(e, ":")
	for _, r := range []rune(text)[1:] {
		keys(e, string(r))
	}
	keys(e, "enter")
}

type fixture struct {
	root   string
	purged []string
	e      *Engine
}

func (f *fixture) path(parts ...string) string {
	return filepath.Join(append([]string{f.root}, parts...)...)
}

func (f *fixture) selected(t *testing.T) string {
	t.Helper()
	sel, ok := f.e.Columns().Selected()
	require.True(t, ok, "nothing selected")
	return sel.Path
}

// newFixture builds root/{alpha/one.txt, beta/, docs/{a.md,sub/b.md}, gamma.txt, .hidden}
func newFixture(t *testing.T, tags ...string) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir()}

	write := func(rel, content string) {
		p := f.path(rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	write("alpha/one.txt", "1")
	write("docs/a.md", "a")
	write("docs/sub/b.md", "b")
	write("gamma.txt", "gamma")
	write(".hidden", "h")
	require.NoError(t, os.Mkdir(f.path("beta"), 0755))

	f.e = New(Options{
		Pwd:   f.root,
		Order: listing.Name,
		Tags:  tags,
		Purge: func(p string) error {
			f.purged = append(f.purged, p)
			return os.RemoveAll(p)
		},
	})
	return f
}

func TestStartsNormal(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, f.path("alpha"), f.selected(t))
	assert.Equal(t, 4, f.e.Columns().Middle.Len())
}

func TestDescendAscendRoundTrip(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "j", "j")
	require.Equal(t, f.path("docs"), f.selected(t))

	keys(f.e, "l")
	assert.Equal(t, f.path("docs"), f.e.Pwd())
	assert.Equal(t, f.path("docs", "a.md"), f.selected(t))

	keys(f.e, "h")
	assert.Equal(t, f.root, f.e.Pwd())
	assert.Equal(t, f.path("docs"), f.selected(t))
}

func TestCursorWraps(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "k")
	assert.Equal(t, f.path("gamma.txt"), f.selected(t))
	keys(f.e, "down")
	assert.Equal(t, f.path("alpha"), f.selected(t))
}

func TestDescendOnFileRequestsOpen(t *testing.T) {
	f := newFixture(t)
	req := keys(f.e, "G", "l")
	assert.Equal(t, OpenRequest{Path: f.path("gamma.txt"), Kind: classify.Text}, req)
	assert.Equal(t, f.root, f.e.Pwd())
}

func TestUnknownCommandRejected(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "d")
	assert.Equal(t, Command{Buffer: "d"}, f.e.Mode())

	keys(f.e, "x")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "no such command", f.e.Message())
}

func TestCommandArrowsNavigate(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "s", "down")
	assert.Equal(t, Command{Buffer: "s"}, f.e.Mode())
	assert.Equal(t, f.path("beta"), f.selected(t))

	keys(f.e, "esc")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "canceled", f.e.Message())

	// vim keys navigate too once a yank has fired
	keys(f.e, "g", "y", "y", "j")
	assert.Equal(t, Command{Buffer: "yy"}, f.e.Mode())
	assert.Equal(t, f.path("beta"), f.selected(t))
	assert.Equal(t, "alpha in register for copy, p to paste", f.e.Message())

	keys(f.e, "G", "k", "g")
	assert.Equal(t, Command{Buffer: "yy"}, f.e.Mode())
	assert.Equal(t, f.path("alpha"), f.selected(t))

	keys(f.e, "l", "h")
	assert.Equal(t, Command{Buffer: "yy"}, f.e.Mode())
	assert.Equal(t, f.root, f.e.Pwd())
}

func TestYankMoveCarriedIntoOtherDir(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "G", "d", "d")
	assert.Equal(t, Command{Buffer: "dd"}, f.e.Mode())
	n, mode := f.e.Register()
	assert.Equal(t, 1, n)
	assert.Equal(t, register.Move, mode)

	keys(f.e, "up", "right")
	assert.Equal(t, Command{Buffer: "dd"}, f.e.Mode())
	assert.Equal(t, f.path("docs"), f.e.Pwd())

	keys(f.e, "p")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "1/1 items moved", f.e.Message())
	assert.FileExists(t, f.path("docs", "gamma.txt"))
	assert.NoFileExists(t, f.path("gamma.txt"))
	assert.FileExists(t, f.path("docs", "a.md"))
	assert.Equal(t, f.path("docs", "gamma.txt"), f.selected(t))

	n, _ = f.e.Register()
	assert.Zero(t, n)
}

func TestYankCopyCarriedIntoOtherDir(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "G", "y", "y", "k", "l")
	assert.Equal(t, Command{Buffer: "yy"}, f.e.Mode())
	assert.Equal(t, f.path("docs"), f.e.Pwd())

	keys(f.e, "p")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "1/1 items copied", f.e.Message())
	assert.FileExists(t, f.path("docs", "gamma.txt"))
	assert.FileExists(t, f.path("gamma.txt"))
	assert.FileExists(t, f.path("docs", "a.md"))
}

func TestYankCopyPasteIntoOtherDir(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "G", "y", "y", "esc")
	n, mode := f.e.Register()
	require.Equal(t, 1, n)
	assert.Equal(t, register.Copy, mode)

	keys(f.e, "g", "l", "p")
	assert.Equal(t, "1/1 items copied", f.e.Message())
	assert.FileExists(t, f.path("alpha", "gamma.txt"))
	assert.FileExists(t, f.path("gamma.txt"))
	assert.Equal(t, f.path("alpha", "gamma.txt"), f.selected(t))

	n, _ = f.e.Register()
	assert.Zero(t, n)
}

func TestPasteWithVanishedPath(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "v", "G", " ", "k", " ", "c")
	assert.Equal(t, Normal{}, f.e.Mode())
	n, mode := f.e.Register()
	require.Equal(t, 2, n)
	assert.Equal(t, register.Copy, mode)

	require.NoError(t, os.Remove(f.path("gamma.txt")))

	keys(f.e, "g", "j", "l", "p")
	assert.Equal(t, f.path("beta"), f.e.Pwd())
	assert.Equal(t, "1/2 items copied", f.e.Message())
	assert.FileExists(t, f.path("beta", "docs", "sub", "b.md"))

	n, _ = f.e.Register()
	assert.Zero(t, n)
}

func TestDeleteFileAndEmptyDirImmediately(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "G", "d", "D")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.NoFileExists(t, f.path("gamma.txt"))
	assert.Equal(t, f.path("docs"), f.selected(t))

	keys(f.e, "g", "j", "d", "D")
	assert.NoDirExists(t, f.path("beta"))
	assert.Empty(t, f.purged)
}

func TestDeleteNonEmptyDirNeedsConfirmation(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "j", "j", "d", "D")
	assert.IsType(t, Confirmation{}, f.e.Mode())
	assert.Equal(t, Confirmation{Action: DeleteOne{Path: f.path("docs")}, Expected: 'y'}, f.e.Mode())
	assert.DirExists(t, f.path("docs"))
	assert.Empty(t, f.purged)

	keys(f.e, "y")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "deleted!", f.e.Message())
	assert.Equal(t, []string{f.path("docs")}, f.purged)
	assert.NoDirExists(t, f.path("docs"))
}

func TestConfirmationMismatchAborts(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "j", "j", "d", "D", "Y")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "aborted", f.e.Message())
	assert.DirExists(t, f.path("docs"))
	assert.Empty(t, f.purged)
}

func TestTagToggleIsSymmetric(t *testing.T) {
	f := newFixture(t)
	alpha := f.path("alpha")

	keys(f.e, "t")
	assert.Equal(t, []string{alpha}, f.e.Tags())
	assert.True(t, f.e.Columns().Middle.Entries()[0].Tagged)

	keys(f.e, "t")
	assert.Empty(t, f.e.Tags())
	assert.False(t, f.e.Columns().Middle.Entries()[0].Tagged)
}

func TestTagsSurviveRelisting(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "t", "r")
	assert.True(t, f.e.Columns().Middle.Entries()[0].Tagged)
}

func TestToggleHidden(t *testing.T) {
	f := newFixture(t)

	keys(f.e, ".")
	assert.Equal(t, 5, f.e.Columns().Middle.Len())
	assert.True(t, f.e.ShowHidden())
	assert.Equal(t, "showing hidden files", f.e.Message())

	keys(f.e, "backspace")
	assert.Equal(t, 4, f.e.Columns().Middle.Len())
}

func TestSortCommand(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "s", "N")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, listing.NameReverse, f.e.Order())
	assert.Equal(t, "sorted by name-reverse", f.e.Message())
	assert.Equal(t, f.path("gamma.txt"), f.e.Columns().Middle.Entries()[0].Path)
	// cursor follows the entry it was on
	assert.Equal(t, f.path("alpha"), f.selected(t))
}

func TestPrefixSearch(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "/", "d", "o")
	assert.Equal(t, Input{Buffer: "/do", Origin: f.path("alpha")}, f.e.Mode())
	assert.Equal(t, f.path("docs"), f.selected(t))
	assert.Equal(t, []int{0, 1}, f.e.Highlight(f.path("docs")))

	keys(f.e, "enter")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, f.path("docs"), f.selected(t))
	assert.Nil(t, f.e.Highlight(f.path("docs")))
}

func TestPrefixSearchNoMatchClearsCursor(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "/", "z")
	_, ok := f.e.Columns().Middle.Cursor()
	assert.False(t, ok)
}

func TestInputEscRestoresCursor(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "j", "/", "g")
	assert.Equal(t, f.path("gamma.txt"), f.selected(t))

	keys(f.e, "esc")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "canceled", f.e.Message())
	assert.Equal(t, f.path("beta"), f.selected(t))
	assert.Zero(t, f.e.Columns().Right.Len())
}

func TestInputEscFindsOriginAfterRelisting(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "j", "/", "g")
	require.NoError(t, os.WriteFile(f.path("aaa.txt"), nil, 0644))
	f.e.Reload()

	keys(f.e, "esc")
	assert.Equal(t, f.path("beta"), f.selected(t))
}

func TestBackspaceOnSeedCancels(t *testing.T) {
	f := newFixture(t)

	keys(f.e, ":", "backspace")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, "canceled", f.e.Message())
}

func TestFuzzyFind(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "f", "a", "t")
	assert.Equal(t, f.path("gamma.txt"), f.selected(t))
	assert.Equal(t, []int{1, 6}, f.e.Highlight(f.path("gamma.txt")))

	keys(f.e, "enter")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.Equal(t, f.path("gamma.txt"), f.selected(t))
}

func TestFindSubmitWithoutMatchSelectsFirst(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "j", "f", "z", "z", "enter")
	assert.Equal(t, f.path("alpha"), f.selected(t))
}

func TestLineCommands(t *testing.T) {
	tests := []struct {
		line    string
		message string
	}{
		{":touch new.txt", "file created"},
		{":mkdir newdir", "directory created"},
		{":touch gamma.txt", "path already exists"},
		{":mkdir docs", "path already exists"},
		{":touch", "missing argument"},
		{":rename  ", "missing argument"},
		{":bogus arg", "command not found"},
		{":bogus", "command not recognized"},
		{":q", "press q to quit"},
		{":quit", "press q to quit"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t)
			line(f.e, tt.line)
			assert.Equal(t, Normal{}, f.e.Mode())
			assert.Equal(t, tt.message, f.e.Message())
		})
	}
}

func TestTouchSelectsNewFile(t *testing.T) {
	f := newFixture(t)
	line(f.e, ":touch new.txt")
	assert.FileExists(t, f.path("new.txt"))
	assert.Equal(t, f.path("new.txt"), f.selected(t))
}

func TestRename(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "G", "a")
	assert.Equal(t, Input{Buffer: ":rename gamma.txt", Origin: f.path("gamma.txt")}, f.e.Mode())
	keys(f.e, "enter")
	assert.Equal(t, "nothing to do", f.e.Message())

	keys(f.e, "t")
	line(f.e, ":rename delta.txt")
	assert.Equal(t, "renamed file", f.e.Message())
	assert.FileExists(t, f.path("delta.txt"))
	assert.Equal(t, f.path("delta.txt"), f.selected(t))
	// the tag follows the rename
	assert.Equal(t, []string{f.path("delta.txt")}, f.e.Tags())
}

func TestRenameDirMovesNestedTags(t *testing.T) {
	f := newFixture(t)
	f.e.tags.Add(f.path("docs"))
	f.e.tags.Add(f.path("docs", "sub", "b.md"))
	f.e.tags.Add(f.path("docs2"))
	f.e.tags.Add(f.path("gamma.txt"))

	keys(f.e, "j", "j")
	require.Equal(t, f.path("docs"), f.selected(t))
	line(f.e, ":rename notes")
	assert.Equal(t, "renamed file", f.e.Message())

	assert.ElementsMatch(t, []string{
		f.path("notes"),
		f.path("notes", "sub", "b.md"),
		f.path("docs2"),
		f.path("gamma.txt"),
	}, f.e.Tags())
	assert.FileExists(t, f.path("notes", "sub", "b.md"))
}

func TestSelectCommitMove(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "v", " ", "j", " ")
	assert.True(t, f.e.Marked(f.path("alpha")))
	assert.True(t, f.e.Marked(f.path("beta")))
	assert.Equal(t, "2 marked", f.e.Message())

	keys(f.e, "m")
	assert.Equal(t, Normal{}, f.e.Mode())
	assert.False(t, f.e.Marked(f.path("alpha")))
	n, mode := f.e.Register()
	assert.Equal(t, 2, n)
	assert.Equal(t, register.Move, mode)
}

func TestSelectMarkIsToggle(t *testing.T) {
	f := newFixture(t)
	keys(f.e, "v", " ", " ")
	assert.False(t, f.e.Marked(f.path("alpha")))

	keys(f.e, "esc")
	assert.Equal(t, Normal{}, f.e.Mode())
	n, _ := f.e.Register()
	assert.Zero(t, n)
}

func TestSelectDelete(t *testing.T) {
	f := newFixture(t)

	keys(f.e, "v", "G", " ", "k", " ", "D")
	assert.IsType(t, Confirmation{}, f.e.Mode())
	assert.FileExists(t, f.path("gamma.txt"))

	keys(f.e, "y")
	assert.Equal(t, "deleted 2 of 2", f.e.Message())
	assert.Equal(t, []string{f.path("docs")}, f.purged)
	assert.NoFileExists(t, f.path("gamma.txt"))
	assert.Equal(t, 2, f.e.Columns().Middle.Len())
}

func TestMarkGlob(t *testing.T) {
	f := newFixture(t)

	line(f.e, ":mark *a*")
	assert.IsType(t, Select{}, f.e.Mode())
	assert.Equal(t, "3 marked", f.e.Message())
	assert.True(t, f.e.Marked(f.path("alpha")))
	assert.True(t, f.e.Marked(f.path("beta")))
	assert.True(t, f.e.Marked(f.path("gamma.txt")))
	assert.False(t, f.e.Marked(f.path("docs")))
}

func TestChangeDirAndTagJump(t *testing.T) {
	f := newFixture(t)
	f.e.tags.Add(f.path("docs", "sub", "b.md"))

	line(f.e, ":cd docs")
	assert.Equal(t, f.path("docs"), f.e.Pwd())

	line(f.e, ":cd missing")
	assert.Equal(t, "no such directory", f.e.Message())

	line(f.e, ":tag b.md")
	assert.Equal(t, f.path("docs", "sub"), f.e.Pwd())
	assert.Equal(t, f.path("docs", "sub", "b.md"), f.selected(t))
}

func TestClipboardRequests(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, ClipboardRequest{Text: f.path("alpha")}, keys(f.e, "y", "c"))
	assert.Equal(t, ClipboardRequest{Text: "alpha"}, keys(f.e, "y", "n"))
	assert.Equal(t, Normal{}, f.e.Mode())
}

func TestQuitRequests(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, QuitRequest{}, keys(f.e, "q"))

	// q is text on the command line
	assert.Nil(t, keys(f.e, ":", "q"))
	assert.Equal(t, Input{Buffer: ":q", Origin: f.path("alpha")}, f.e.Mode())

	assert.Equal(t, QuitRequest{}, keys(f.e, "ctrl+c"))
}

func TestMetadata(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "1/4", f.e.Metadata())

	keys(f.e, "G")
	assert.Equal(t, "5 B  4/4", f.e.Metadata())
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.NotEmpty(t, km.ShortHelp())

	var total int
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	assert.Greater(t, total, len(commands))
}
