// Package sdlkey maps SDL2 keycodes to the display names SDL_GetKeyName
// produces, and back. The game reads kb_key_* values with
// SDL_GetKeyFromName, so the names here must match SDL exactly.
package sdlkey

import (
	"strconv"
	"strings"
	"unicode"
)

// Keycode is an SDL_Keycode value.
type Keycode int32

const scancodeMask = 1 << 30

func fromScancode(sc int32) Keycode { return Keycode(sc | scancodeMask) }

const (
	Unknown   Keycode = 0
	Return    Keycode = '\r'
	Escape    Keycode = 27
	Backspace Keycode = '\b'
	Tab       Keycode = '\t'
	Space     Keycode = ' '
	Delete    Keycode = 127
)

const (
	CapsLock    Keycode = 57 | scancodeMask
	PrintScreen Keycode = 70 | scancodeMask
	ScrollLock  Keycode = 71 | scancodeMask
	Pause       Keycode = 72 | scancodeMask
	Insert      Keycode = 73 | scancodeMask
	Home        Keycode = 74 | scancodeMask
	PageUp      Keycode = 75 | scancodeMask
	End         Keycode = 77 | scancodeMask
	PageDown    Keycode = 78 | scancodeMask
	Right       Keycode = 79 | scancodeMask
	Left        Keycode = 80 | scancodeMask
	Down        Keycode = 81 | scancodeMask
	Up          Keycode = 82 | scancodeMask
	NumLock     Keycode = 83 | scancodeMask
	KPDivide    Keycode = 84 | scancodeMask
	KPMultiply  Keycode = 85 | scancodeMask
	KPMinus     Keycode = 86 | scancodeMask
	KPPlus      Keycode = 87 | scancodeMask
	KPEnter     Keycode = 88 | scancodeMask
	KPPeriod    Keycode = 99 | scancodeMask
	LCtrl       Keycode = 224 | scancodeMask
	LShift      Keycode = 225 | scancodeMask
	LAlt        Keycode = 226 | scancodeMask
	LGUI        Keycode = 227 | scancodeMask
	RCtrl       Keycode = 228 | scancodeMask
	RShift      Keycode = 229 | scancodeMask
	RAlt        Keycode = 230 | scancodeMask
	RGUI        Keycode = 231 | scancodeMask
)

// F returns the keycode of function key n (1..12).
func F(n int) Keycode {
	if n < 1 || n > 12 {
		return Unknown
	}
	return fromScancode(int32(57 + n))
}

// Keypad returns the keycode of keypad digit d (0..9).
func Keypad(d int) Keycode {
	switch {
	case d == 0:
		return fromScancode(98)
	case d >= 1 && d <= 9:
		return fromScancode(int32(88 + d))
	}
	return Unknown
}

var names = map[Keycode]string{
	Return:      "Return",
	Escape:      "Escape",
	Backspace:   "Backspace",
	Tab:         "Tab",
	Space:       "Space",
	Delete:      "Delete",
	CapsLock:    "CapsLock",
	PrintScreen: "PrintScreen",
	ScrollLock:  "ScrollLock",
	Pause:       "Pause",
	Insert:      "Insert",
	Home:        "Home",
	PageUp:      "PageUp",
	End:         "End",
	PageDown:    "PageDown",
	Right:       "Right",
	Left:        "Left",
	Down:        "Down",
	Up:          "Up",
	NumLock:     "Numlock",
	KPDivide:    "Keypad /",
	KPMultiply:  "Keypad *",
	KPMinus:     "Keypad -",
	KPPlus:      "Keypad +",
	KPEnter:     "Keypad Enter",
	KPPeriod:    "Keypad .",
	LCtrl:       "Left Ctrl",
	LShift:      "Left Shift",
	LAlt:        "Left Alt",
	LGUI:        "Left GUI",
	RCtrl:       "Right Ctrl",
	RShift:      "Right Shift",
	RAlt:        "Right Alt",
	RGUI:        "Right GUI",
}

var byName map[string]Keycode

func init() {
	for n := 1; n <= 12; n++ {
		names[F(n)] = "F" + strconv.Itoa(n)
	}
	for d := 0; d <= 9; d++ {
		names[Keypad(d)] = "Keypad " + strconv.Itoa(d)
	}
	byName = make(map[string]Keycode, len(names))
	for code, name := range names {
		byName[strings.ToLower(name)] = code
	}
}

// Name returns the SDL display name of code, or "" if it has none.
func Name(code Keycode) string {
	if n, ok := names[code]; ok {
		return n
	}
	if code > ' ' && code < 127 {
		return string(unicode.ToUpper(rune(code)))
	}
	return ""
}

// FromName returns the keycode whose display name matches name, ignoring
// case. Unrecognized names return Unknown.
func FromName(name string) Keycode {
	if name == "" {
		return Unknown
	}
	if code, ok := byName[strings.ToLower(name)]; ok {
		return code
	}
	if len(name) == 1 && name[0] > ' ' && name[0] < 127 {
		return Keycode(unicode.ToLower(rune(name[0])))
	}
	return Unknown
}

// Namer adapts the package functions to binding.KeyNamer.
type Namer struct{}

func (Namer) KeyName(code Keycode) string { return Name(code) }

func (Namer) KeyFromName(name string) Keycode { return FromName(name) }
