// Package binding resolves physical inputs (keyboard keys, mouse buttons,
// gamepad buttons) to the logical Jaguar controller actions the game
// consumes, and keeps each binding's persisted symbolic name in step with
// its logical value.
package binding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSlot   = errors.New("unknown button slot")
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownDevice = errors.New("unknown device")
)

// Action is one of the logical controller actions. Valid actions are
// 0 through Count-1; Unbound marks a slot with no action.
type Action int

const (
	A Action = iota
	B
	C
	Up
	Down
	Left
	Right
	Option
	Pause
	Num
	Star
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Strafe
	StrafeLeft
	StrafeRight
	Use
	PrevWeapon
	NextWeapon
	Attack
	Speed

	Count
	Unbound = Count
)

const unboundName = "unbound"

var actionNames = [Count + 1]string{
	"a", "b", "c",
	"up", "down", "left", "right",
	"option", "pause", "num", "star",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"strafeon", "strafeleft", "straferight",
	"use", "prevweapon", "nextweapon", "attack", "speed",
	unboundName,
}

var actionLabels = [Count]string{
	"A", "B", "C",
	"Move forward", "Move backward", "Turn left", "Turn right",
	"Toggle menu", "Pause game", "Pound", "Star",
	"0", "Weapon 1", "Weapon 2", "Weapon 3", "Weapon 4",
	"Weapon 5", "Weapon 6", "Weapon 7", "Weapon 8", "Toggle map",
	"Strafe on", "Strafe left", "Strafe right",
	"Use", "Previous weapon", "Next weapon", "Fire/Attack", "Speed on",
}

// Valid reports whether a names a real action.
func (a Action) Valid() bool { return a >= 0 && a < Count }

// String returns the persisted symbolic name of a, or "unbound".
func (a Action) String() string {
	if !a.Valid() {
		return unboundName
	}
	return actionNames[a]
}

// Label returns the menu caption for a.
func (a Action) Label() string {
	if !a.Valid() {
		return "Unbound"
	}
	return actionLabels[a]
}

// ParseAction looks name up in the action table, ignoring case. Names that
// match nothing resolve to Unbound.
func ParseAction(name string) Action {
	for i := A; i < Count; i++ {
		if strings.EqualFold(actionNames[i], name) {
			return i
		}
	}
	return Unbound
}

// LookupAction is ParseAction for user input: a name that matches no
// action and is not "unbound" is an error rather than Unbound.
func LookupAction(name string) (Action, error) {
	a := ParseAction(name)
	if a == Unbound && !strings.EqualFold(name, unboundName) {
		return Unbound, fmt.Errorf("%q: %w", name, ErrUnknownAction)
	}
	return a, nil
}

// Actions lists every valid action in order.
func Actions() []Action {
	out := make([]Action, Count)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// TriggerAction is what an analog gamepad trigger does once pressed past
// its threshold.
type TriggerAction int

const (
	TriggerNone TriggerAction = iota
	TriggerStrafeLeft
	TriggerStrafeRight
	TriggerPrevWeapon
	TriggerNextWeapon
	TriggerAttack
	TriggerUse

	TriggerCount
)

var triggerLabels = [TriggerCount]string{
	"None", "Strafe Left", "Strafe Right", "Prev Weapon", "Next Weapon", "Attack", "Use",
}

func (t TriggerAction) String() string {
	if t < 0 || t >= TriggerCount {
		return "Invalid"
	}
	return triggerLabels[t]
}

// Action returns the controller action the trigger emulates.
func (t TriggerAction) Action() Action {
	switch t {
	case TriggerStrafeLeft:
		return StrafeLeft
	case TriggerStrafeRight:
		return StrafeRight
	case TriggerPrevWeapon:
		return PrevWeapon
	case TriggerNextWeapon:
		return NextWeapon
	case TriggerAttack:
		return Attack
	case TriggerUse:
		return Use
	}
	return Unbound
}
