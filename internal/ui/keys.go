package ui

import "github.com/charmbracelet/bubbles/key"

// pageStep 翻页一次移动的行数。
const pageStep = 12

// listKeyMap 列表视图按键。
type listKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Toggle     key.Binding
	Expand     key.Binding
	Collapse   key.Binding
	SelectAll  key.Binding
	Copy       key.Binding
	ViewPicker key.Binding
	Rebuild    key.Binding
	Queue      key.Binding
	Quit       key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn/f", "page down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x", "enter"), key.WithHelp("space", "select")),
		Expand:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "details")),
		Collapse:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "collapse")),
		SelectAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		ViewPicker: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Rebuild:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild")),
		Queue:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "queue")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp bubbles/help 接口。
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Expand, k.ViewPicker, k.Rebuild, k.Copy, k.Quit}
}

// FullHelp bubbles/help 接口。
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Toggle, k.SelectAll, k.Expand, k.Collapse},
		{k.ViewPicker, k.Rebuild, k.Queue, k.Copy, k.Quit},
	}
}

// rebuildKeyMap 重建视图按键。
type rebuildKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Left       key.Binding
	Right      key.Binding
	Search     key.Binding
	SearchBack key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	Queue      key.Binding
	Export     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func newRebuildKeyMap() rebuildKeyMap {
	return rebuildKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn/space", "page down")),
		Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "pan left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "pan right")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchBack: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "search back")),
		NextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Queue:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "queue")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export log")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k rebuildKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.NextMatch, k.Queue, k.Export, k.Back, k.Quit}
}

func (k rebuildKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Left, k.Right, k.Search, k.SearchBack, k.NextMatch, k.PrevMatch},
		{k.Queue, k.Export, k.Back, k.Quit},
	}
}
