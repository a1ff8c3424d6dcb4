package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	ZoomIn, ZoomOut       key.Binding
	Clear                 key.Binding
	Seed                  key.Binding
	Focus                 key.Binding
	Submit                key.Binding
	Blur                  key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear solutions")),
		Seed:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seed at center")),
		Focus:   key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "edit ode")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plot")),
		Blur:    key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "back to plot")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.ZoomIn, k.ZoomOut, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Seed, k.Clear},
		{k.Focus, k.Submit, k.Blur, k.Help, k.Quit},
	}
}
