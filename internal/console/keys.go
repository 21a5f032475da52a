package console

import (
	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/conui/retained"
)

var keyMap = map[tcell.Key]retained.Key{
	tcell.KeyBackspace:  retained.KeyBackspace,
	tcell.KeyBackspace2: retained.KeyBackspace,
	tcell.KeyTab:        retained.KeyTab,
	tcell.KeyBacktab:    retained.KeyBacktab,
	tcell.KeyEnter:      retained.KeyEnter,
	tcell.KeyEscape:     retained.KeyEscape,
	tcell.KeyLeft:       retained.KeyLeft,
	tcell.KeyRight:      retained.KeyRight,
	tcell.KeyUp:         retained.KeyUp,
	tcell.KeyDown:       retained.KeyDown,
	tcell.KeyHome:       retained.KeyHome,
	tcell.KeyEnd:        retained.KeyEnd,
	tcell.KeyPgUp:       retained.KeyPgUp,
	tcell.KeyPgDn:       retained.KeyPgDn,
	tcell.KeyInsert:     retained.KeyInsert,
	tcell.KeyDelete:     retained.KeyDelete,
	tcell.KeyF1:         retained.KeyF1,
	tcell.KeyF2:         retained.KeyF2,
	tcell.KeyF3:         retained.KeyF3,
	tcell.KeyF4:         retained.KeyF4,
	tcell.KeyF5:         retained.KeyF5,
	tcell.KeyF6:         retained.KeyF6,
	tcell.KeyF7:         retained.KeyF7,
	tcell.KeyF8:         retained.KeyF8,
	tcell.KeyF9:         retained.KeyF9,
	tcell.KeyF10:        retained.KeyF10,
	tcell.KeyF11:        retained.KeyF11,
	tcell.KeyF12:        retained.KeyF12,
}

// convertKey maps a tcell key event to a key-down record. Terminals do not
// report key releases, so no key-up records are produced. Control
// combinations arrive as the letter with ModCtrl set.
func convertKey(ev *tcell.EventKey) retained.Input {
	in := retained.KeyInput{
		Modifiers: convertModifiers(ev.Modifiers()),
		Down:      true,
	}
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		in.Key, in.Char = retained.KeyRune, ev.Rune()
	case keyMap[k] != retained.KeyNone:
		in.Key = keyMap[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		in.Key, in.Char = retained.KeyRune, rune('a'+(k-tcell.KeyCtrlA))
		in.Modifiers |= retained.ModCtrl
	case k == tcell.KeyCtrlSpace:
		in.Key, in.Char = retained.KeyRune, ' '
		in.Modifiers |= retained.ModCtrl
	default:
		return nil
	}
	return in
}

func convertModifiers(m tcell.ModMask) retained.Modifiers {
	var out retained.Modifiers
	if m&tcell.ModShift != 0 {
		out |= retained.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= retained.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= retained.ModAlt
	}
	return out
}
