package binding

import (
	"fmt"

	"github.com/kalambet/calico/internal/sdlkey"
)

// Set groups the three device tables.
type Set struct {
	Keyboard *Keyboard
	Mouse    *ButtonTable
	Gamepad  *ButtonTable
}

// NewSet returns tables holding compiled-in defaults.
func NewSet(namer KeyNamer) *Set {
	return &Set{
		Keyboard: NewKeyboard(namer),
		Mouse:    NewMouseTable(),
		Gamepad:  NewGamepadTable(),
	}
}

// InitFromNames resolves every table from its stored names.
func (s *Set) InitFromNames() {
	s.Keyboard.InitFromNames()
	s.Mouse.InitFromNames()
	s.Gamepad.InitFromNames()
}

// Table returns the button table for device ("mouse" or "gamepad").
func (s *Set) Table(device string) (*ButtonTable, error) {
	switch device {
	case "mouse":
		return s.Mouse, nil
	case "gamepad":
		return s.Gamepad, nil
	}
	return nil, fmt.Errorf("%q: %w", device, ErrUnknownDevice)
}

// Key returns the action bound to a physical key, or Unbound.
func (s *Set) Key(code sdlkey.Keycode) Action { return s.Keyboard.Lookup(code) }

// MouseButton returns the action bound to an SDL mouse button, or Unbound
// for buttons the table does not know.
func (s *Set) MouseButton(button int) Action {
	id, ok := MouseSlotFromSDL(button)
	if !ok {
		return Unbound
	}
	return s.Mouse.Resolve(id)
}

// GamepadButton returns the action bound to an SDL controller button.
func (s *Set) GamepadButton(button int) Action {
	id, ok := GamepadSlotFromSDL(button)
	if !ok {
		return Unbound
	}
	return s.Gamepad.Resolve(id)
}
