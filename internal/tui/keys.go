package tui

// Key bindings, as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keySearch   = "/"
	keyLeft     = "left"
	keyRight    = "right"
	keyPgUp     = "pgup"
	keyPgDown   = "pgdown"
	keyUp       = "up"
	keyDown     = "down"
	keyVimUp    = "k"
	keyVimDown  = "j"
	keyPlus     = "+"
	keyEquals   = "="
	keyMinus    = "-"
	keyRefresh  = "r"
	keyPending  = "1"
	keyApproved = "2"
	keyRejected = "3"
)

const listHelp = "1/2/3 tabs • / search • ←/→ page • +/- page size • ↑/↓ move • enter open • r refresh • q quit"
