package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding of the explorer. It satisfies help.KeyMap.
type keyMap struct {
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ResetView  key.Binding
	Search     key.Binding
	Tags       key.Binding
	SwitchView key.Binding
	Mode       key.Binding
	Reroll     key.Binding
	Reset      key.Binding
	Labels     key.Binding
	Sidebar    key.Binding
	Copy       key.Binding
	Follow     key.Binding
	Next       key.Binding
	Prev       key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ResetView:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Tags:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "filter tags")),
		SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "graph/list")),
		Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "explore/view all")),
		Reroll:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new starting term")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset discoveries")),
		Labels:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "show all labels")),
		Sidebar:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle sidebar")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy term")),
		Follow:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "follow link")),
		Next:       key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next term")),
		Prev:       key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous term")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Tags, k.SwitchView, k.Mode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.ResetView, k.Labels},
		{k.Search, k.Tags, k.SwitchView, k.Sidebar},
		{k.Mode, k.Reroll, k.Reset, k.Follow},
		{k.Next, k.Prev, k.Copy, k.Help, k.Quit},
	}
}
