package binding

import (
	"fmt"

	"github.com/kalambet/calico/internal/sdlkey"
)

// KeyNamer converts between physical key codes and their display names.
type KeyNamer interface {
	KeyName(code sdlkey.Keycode) string
	KeyFromName(name string) sdlkey.Keycode
}

// KeyCodes holds one physical key per action.
type KeyCodes [Count]sdlkey.Keycode

// DefaultKeys returns the compiled-in keyboard layout. Actions past the
// phone pad start out unassigned.
func DefaultKeys() KeyCodes {
	var k KeyCodes
	k[A] = sdlkey.RShift
	k[B] = sdlkey.RCtrl
	k[C] = sdlkey.RAlt
	k[Up] = sdlkey.Up
	k[Down] = sdlkey.Down
	k[Left] = sdlkey.Left
	k[Right] = sdlkey.Right
	k[Option] = sdlkey.Escape
	k[Pause] = sdlkey.Pause
	k[Num] = sdlkey.KPDivide
	k[Star] = sdlkey.KPMultiply
	for d := Digit0; d <= Digit9; d++ {
		k[d] = sdlkey.Keycode('0' + int(d-Digit0))
	}
	return k
}

// Keyboard binds each logical action to one physical key. This is the
// inverse of ButtonTable, which binds physical buttons to actions.
type Keyboard struct {
	namer KeyNamer
	codes KeyCodes
	names [Count]string
}

// NewKeyboard returns a keyboard table holding DefaultKeys with no names.
func NewKeyboard(namer KeyNamer) *Keyboard {
	return &Keyboard{namer: namer, codes: DefaultKeys()}
}

// InitFromNames derives names for actions that have none and key codes for
// actions that do.
func (k *Keyboard) InitFromNames() {
	for a := A; a < Count; a++ {
		if k.names[a] == "" {
			k.names[a] = k.namer.KeyName(k.codes[a])
		} else {
			k.codes[a] = k.namer.KeyFromName(k.names[a])
		}
	}
}

// SetKey binds action a to code and regenerates its name.
func (k *Keyboard) SetKey(a Action, code sdlkey.Keycode) error {
	if !a.Valid() {
		return fmt.Errorf("keyboard action %d: %w", a, ErrUnknownAction)
	}
	k.codes[a] = code
	k.names[a] = k.namer.KeyName(code)
	return nil
}

// ClearKey unbinds action a.
func (k *Keyboard) ClearKey(a Action) error {
	return k.SetKey(a, sdlkey.Unknown)
}

// SetName stores a persisted key name for a and looks up its code.
func (k *Keyboard) SetName(a Action, name string) error {
	if !a.Valid() {
		return fmt.Errorf("keyboard action %d: %w", a, ErrUnknownAction)
	}
	k.names[a] = name
	k.codes[a] = k.namer.KeyFromName(name)
	return nil
}

// Name returns the persisted key name for a.
func (k *Keyboard) Name(a Action) string {
	if !a.Valid() {
		return ""
	}
	return k.names[a]
}

// Code returns the key bound to a.
func (k *Keyboard) Code(a Action) sdlkey.Keycode {
	if !a.Valid() {
		return sdlkey.Unknown
	}
	return k.codes[a]
}

// CurrentBinding returns the display name of the key bound to a, or
// "Error" when a is not an action.
func (k *Keyboard) CurrentBinding(a Action) string {
	if !a.Valid() {
		return "Error"
	}
	return k.namer.KeyName(k.codes[a])
}

// Lookup returns the first action bound to code, or Unbound.
func (k *Keyboard) Lookup(code sdlkey.Keycode) Action {
	if code == sdlkey.Unknown {
		return Unbound
	}
	for a := A; a < Count; a++ {
		if k.codes[a] == code {
			return a
		}
	}
	return Unbound
}

// Apply replaces the whole layout and regenerates every name.
func (k *Keyboard) Apply(codes KeyCodes) {
	k.codes = codes
	for a := A; a < Count; a++ {
		k.names[a] = k.namer.KeyName(codes[a])
	}
}

// Codes returns a copy of the current layout.
func (k *Keyboard) Codes() KeyCodes { return k.codes }

// ConfigName returns the kb_key_* variable name used to persist a.
func ConfigName(a Action) string {
	if !a.Valid() {
		return ""
	}
	return "kb_key_" + a.String()
}
