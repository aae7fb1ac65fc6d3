/*
Package tui
File: keys.go
Description: Key bindings. Digits hire staff in the order the config lists them.
*/

package tui

import "github.com/gdamore/tcell/v2"

// CommandKind is what a key press asks the client to do.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdService
	CmdOutreach
	CmdUpgrade
	CmdHire
	CmdScroll
)

// Command is a decoded key press.
type Command struct {
	Kind   CommandKind
	Role   string // staff role key for CmdHire
	DX, DY int    // cells to scroll for CmdScroll
}

// DecodeKey maps a key to a command. roles lists staff role keys in
// display order.
func DecodeKey(key tcell.Key, r rune, mod tcell.ModMask, roles []string) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyLeft:
		return Command{Kind: CmdScroll, DX: -2}
	case tcell.KeyRight:
		return Command{Kind: CmdScroll, DX: 2}
	case tcell.KeyUp:
		return Command{Kind: CmdScroll, DY: -1}
	case tcell.KeyDown:
		return Command{Kind: CmdScroll, DY: 1}
	case tcell.KeyRune:
	default:
		return Command{}
	}

	if mod&tcell.ModCtrl != 0 {
		return Command{}
	}
	switch r {
	case 'q', 'Q':
		return Command{Kind: CmdQuit}
	case 's', 'S':
		return Command{Kind: CmdService}
	case 'o', 'O':
		return Command{Kind: CmdOutreach}
	case 'u', 'U':
		return Command{Kind: CmdUpgrade}
	}
	if r >= '1' && r <= '9' {
		if i := int(r - '1'); i < len(roles) {
			return Command{Kind: CmdHire, Role: roles[i]}
		}
	}
	return Command{}
}
