package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every single-key binding. Multi-key sequences live in the
// command table and are listed in FullHelp only.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Descend key.Binding
	Ascend  key.Binding

	Command      key.Binding
	Line         key.Binding
	Search       key.Binding
	Find         key.Binding
	Rename       key.Binding
	ToggleHidden key.Binding
	Tag          key.Binding
	Select       key.Binding
	Paste        key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding

	Submit key.Binding
	Cancel key.Binding
	Erase  key.Binding

	Mark         key.Binding
	CommitMove   key.Binding
	CommitCopy   key.Binding
	DeleteMarked key.Binding
}

// DefaultKeyMap returns the vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "pgup"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "pgdown"),
			key.WithHelp("G", "last"),
		),
		Descend: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("→/l", "open"),
		),
		Ascend: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "parent"),
		),
		Command: key.NewBinding(
			key.WithKeys("d", "y", "s"),
			key.WithHelp("d/y/s", "commands"),
		),
		Line: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command line"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Find: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fuzzy find"),
		),
		Rename: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "rename"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("backspace", "."),
			key.WithHelp(".", "hidden files"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tag"),
		),
		Select: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "mark"),
		),
		CommitMove: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "yank to move"),
		),
		CommitCopy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c/y", "yank to copy"),
		),
		DeleteMarked: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete marked"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Descend, k.Ascend, k.Command, k.Line, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	sequences := make([]key.Binding, 0, len(commands))
	for _, c := range commands {
		sequences = append(sequences, key.NewBinding(
			key.WithKeys(c.keys),
			key.WithHelp(c.keys, c.help),
		))
	}

	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Descend, k.Ascend},
		{k.Line, k.Search, k.Find, k.Rename, k.ToggleHidden, k.Tag, k.Paste, k.Refresh},
		{k.Select, k.Mark, k.CommitMove, k.CommitCopy, k.DeleteMarked, k.Cancel},
		sequences[:len(sequences)/2],
		sequences[len(sequences)/2:],
		{k.Help, k.Quit},
	}
}
