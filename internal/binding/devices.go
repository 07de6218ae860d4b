package binding

// Gamepad slots, in SDL_GameControllerButton order.
const (
	PadA          SlotID = "a"
	PadB          SlotID = "b"
	PadX          SlotID = "x"
	PadY          SlotID = "y"
	PadBack       SlotID = "back"
	PadGuide      SlotID = "guide"
	PadStart      SlotID = "start"
	PadLeftStick  SlotID = "lstick"
	PadRightStick SlotID = "rstick"
	PadLeftShldr  SlotID = "lshldr"
	PadRightShldr SlotID = "rshldr"
	PadUp         SlotID = "up"
	PadDown       SlotID = "down"
	PadLeft       SlotID = "left"
	PadRight      SlotID = "right"
)

var gamepadDefs = []SlotDef{
	{PadA, "gamepad_button_a", "A", Use},
	{PadB, "gamepad_button_b", "B", Speed},
	{PadX, "gamepad_button_x", "X", Strafe},
	{PadY, "gamepad_button_y", "Y", Digit9},
	{PadBack, "gamepad_button_back", "Back", Pause},
	{PadGuide, "gamepad_button_guide", "Guide", Unbound}, // not usable on Windows
	{PadStart, "gamepad_button_start", "Start", Option},
	{PadLeftStick, "gamepad_button_lstick", "Left stick", Star},
	{PadRightStick, "gamepad_button_rstick", "Right stick", Num},
	{PadLeftShldr, "gamepad_button_lshldr", "Left shoulder", PrevWeapon},
	{PadRightShldr, "gamepad_button_rshldr", "Right shoulder", NextWeapon},
	{PadUp, "gamepad_button_up", "D-pad up", Up},
	{PadDown, "gamepad_button_down", "D-pad down", Down},
	{PadLeft, "gamepad_button_left", "D-pad left", Left},
	{PadRight, "gamepad_button_right", "D-pad right", Right},
}

// Mouse slots.
const (
	MouseLeft   SlotID = "left"
	MouseMiddle SlotID = "middle"
	MouseRight  SlotID = "right"
	MouseX1     SlotID = "x1"
	MouseX2     SlotID = "x2"
)

var mouseDefs = []SlotDef{
	{MouseLeft, "mouse_button_left", "Left", Attack},
	{MouseMiddle, "mouse_button_middle", "Middle", Strafe},
	{MouseRight, "mouse_button_right", "Right", Use},
	{MouseX1, "mouse_button_x1", "X1", Digit9},
	{MouseX2, "mouse_button_x2", "X2", Pause},
}

// NewGamepadTable returns the gamepad table with compiled-in defaults.
func NewGamepadTable() *ButtonTable { return newButtonTable("gamepad", gamepadDefs) }

// NewMouseTable returns the mouse table with compiled-in defaults.
func NewMouseTable() *ButtonTable { return newButtonTable("mouse", mouseDefs) }

// GamepadSlotFromSDL translates an SDL_GameControllerButton value.
func GamepadSlotFromSDL(button int) (SlotID, bool) {
	if button < 0 || button >= len(gamepadDefs) {
		return "", false
	}
	return gamepadDefs[button].ID, true
}

// GamepadSlotToSDL is the inverse of GamepadSlotFromSDL.
func GamepadSlotToSDL(id SlotID) (int, bool) {
	for i, d := range gamepadDefs {
		if d.ID == id {
			return i, true
		}
	}
	return -1, false
}

// MouseSlotFromSDL translates an SDL_BUTTON_* value (1-based).
func MouseSlotFromSDL(button int) (SlotID, bool) {
	if button < 1 || button > len(mouseDefs) {
		return "", false
	}
	return mouseDefs[button-1].ID, true
}

// MouseSlotToSDL is the inverse of MouseSlotFromSDL.
func MouseSlotToSDL(id SlotID) (int, bool) {
	for i, d := range mouseDefs {
		if d.ID == id {
			return i + 1, true
		}
	}
	return 0, false
}
