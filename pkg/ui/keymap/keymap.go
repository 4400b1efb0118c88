package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is a map of key bindings for the UI.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	DragLeft   key.Binding
	DragRight  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default key map.
func DefaultKeyMap() *KeyMap {
	km := new(KeyMap)

	km.Quit = key.NewBinding(
		key.WithKeys(
			"ctrl+c",
			"q",
		),
		key.WithHelp(
			"q",
			"quit",
		),
	)

	km.Help = key.NewBinding(
		key.WithKeys(
			"?",
		),
		key.WithHelp(
			"?",
			"toggle help",
		),
	)

	km.NextTab = key.NewBinding(
		key.WithKeys(
			"tab",
		),
		key.WithHelp(
			"tab",
			"next tab",
		),
	)

	km.PrevTab = key.NewBinding(
		key.WithKeys(
			"shift+tab",
		),
		key.WithHelp(
			"shift+tab",
			"prev tab",
		),
	)

	km.NextPage = key.NewBinding(
		key.WithKeys(
			"right",
			"l",
		),
		key.WithHelp(
			"→/l",
			"next page",
		),
	)

	km.PrevPage = key.NewBinding(
		key.WithKeys(
			"left",
			"h",
		),
		key.WithHelp(
			"←/h",
			"prev page",
		),
	)

	km.DragLeft = key.NewBinding(
		key.WithKeys(
			"shift+left",
			"H",
		),
		key.WithHelp(
			"H",
			"drag left",
		),
	)

	km.DragRight = key.NewBinding(
		key.WithKeys(
			"shift+right",
			"L",
		),
		key.WithHelp(
			"L",
			"drag right",
		),
	)

	km.ScrollUp = key.NewBinding(
		key.WithKeys(
			"up",
			"k",
		),
		key.WithHelp(
			"↑/k",
			"scroll up",
		),
	)

	km.ScrollDown = key.NewBinding(
		key.WithKeys(
			"down",
			"j",
		),
		key.WithHelp(
			"↓/j",
			"scroll down",
		),
	)

	return km
}
