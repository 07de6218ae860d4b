package setup

import (
	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/config"
	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/sdlkey"
)

// SensibleKeys is the WASD-style layout offered by "reset to defaults".
// It differs from binding.DefaultKeys, which mirrors the Jaguar pad.
func SensibleKeys() binding.KeyCodes {
	var k binding.KeyCodes
	k[binding.A] = sdlkey.Unknown
	k[binding.B] = sdlkey.Unknown
	k[binding.C] = sdlkey.Unknown
	k[binding.Up] = 'w'
	k[binding.Down] = 's'
	k[binding.Left] = sdlkey.Left
	k[binding.Right] = sdlkey.Right
	k[binding.Option] = sdlkey.Escape
	k[binding.Pause] = sdlkey.Pause
	k[binding.Num] = sdlkey.KPDivide
	k[binding.Star] = sdlkey.KPMultiply
	for d := binding.Digit0; d <= binding.Digit8; d++ {
		k[d] = sdlkey.Keycode('0' + int(d-binding.Digit0))
	}
	k[binding.Digit9] = sdlkey.Tab
	k[binding.Strafe] = sdlkey.RAlt
	k[binding.StrafeLeft] = 'a'
	k[binding.StrafeRight] = 'd'
	k[binding.Use] = sdlkey.Space
	k[binding.PrevWeapon] = '['
	k[binding.NextWeapon] = ']'
	k[binding.Attack] = sdlkey.RCtrl
	k[binding.Speed] = sdlkey.LShift
	return k
}

// ResetToDefaults applies the recommended settings for a keyboard and
// mouse player with a gamepad plugged in. Gamepad device selection and
// EEPROM progress are kept.
func (s *Session) ResetToDefaults() {
	st := s.Settings

	st.Game.Autorun = true
	st.Video.LinearFiltering = false
	st.Gamepad.Enabled = true
	st.Gamepad.InvertY = false
	st.Gamepad.Threshold = 8000
	st.Gamepad.TriggerThreshold = 3000
	st.Gamepad.LTrigger = binding.TriggerNone
	st.Gamepad.RTrigger = binding.TriggerAttack
	st.Mouse = config.MouseSettings{
		Enabled:      true,
		Acceleration: 2.0,
		Threshold:    10,
		Sensitivity:  5,
	}
	st.Sound = config.SoundSettings{
		LowFreq:   880.0,
		HighFreq:  5000.0,
		PreampMul: 0.93896,
		LowGain:   1.2,
		MidGain:   1.0,
		HighGain:  0.8,
	}
	st.Video.ScreenWidth = 320
	st.Video.ScreenHeight = 224
	st.Video.Fullscreen = 0
	st.Video.MonitorNum = 0
	st.Video.AspectNum = 4
	st.Video.AspectDenom = 3
	st.Video.Renderer = config.RendererGL4

	d := eeprom.Defaults()
	s.EEPROM.Record.SFXVolume = d.SFXVolume
	s.EEPROM.Record.MusicVolume = d.MusicVolume
	s.EEPROM.Record.ControlType = d.ControlType

	b := st.Bindings
	b.Keyboard.Apply(SensibleKeys())
	b.Mouse.Reset()
	b.Gamepad.Reset()
}
