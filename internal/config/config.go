// Package config holds the front end's user-tunable settings and the
// registry that binds each one to a stable textual name for calico.cfg.
package config

import (
	"github.com/kalambet/calico/internal/binding"
)

// Settings is the owned configuration context. One instance is built at
// startup and passed to everything that reads or edits settings.
type Settings struct {
	Game     GameSettings
	Video    VideoSettings
	Gamepad  GamepadSettings
	Mouse    MouseSettings
	Sound    SoundSettings
	Bindings *binding.Set
}

type GameSettings struct {
	Autorun bool
}

// Renderer selects the video backend.
type Renderer int

const (
	RendererGL11 Renderer = iota
	RendererGL4
)

func (r Renderer) String() string {
	switch r {
	case RendererGL11:
		return "OpenGL 1.1"
	case RendererGL4:
		return "OpenGL 4"
	}
	return "unknown"
}

type VideoSettings struct {
	LinearFiltering bool
	ScreenWidth     int
	ScreenHeight    int
	Fullscreen      int // -1 desktop, 0 windowed, 1 exclusive
	MonitorNum      int
	AspectNum       int
	AspectDenom     int
	Renderer        Renderer
}

type GamepadSettings struct {
	Enabled          bool
	Device           string // SDL joystick GUID; empty means first found
	InvertY          bool
	Threshold        int
	TriggerThreshold int
	LTrigger         binding.TriggerAction
	RTrigger         binding.TriggerAction
}

type MouseSettings struct {
	Enabled      bool
	Acceleration float64
	Threshold    int
	Sensitivity  int
}

type SoundSettings struct {
	LowFreq   float64
	HighFreq  float64
	PreampMul float64
	LowGain   float64
	MidGain   float64
	HighGain  float64
}

func defaults() Settings {
	return Settings{
		Video: VideoSettings{
			ScreenWidth:  320,
			ScreenHeight: 224,
			AspectNum:    4,
			AspectDenom:  3,
			Renderer:     RendererGL11,
		},
		Gamepad: GamepadSettings{
			Threshold:        8000,
			TriggerThreshold: 3000,
			LTrigger:         binding.TriggerNone,
			RTrigger:         binding.TriggerAttack,
		},
		Mouse: MouseSettings{
			Enabled:      true,
			Acceleration: 2.0,
			Threshold:    10,
			Sensitivity:  5,
		},
		Sound: SoundSettings{
			LowFreq:   880.0,
			HighFreq:  5000.0,
			PreampMul: 0.93896,
			LowGain:   1.2,
			MidGain:   1.0,
			HighGain:  0.8,
		},
	}
}

// New returns settings holding compiled-in defaults, with binding tables
// that name keys through namer.
func New(namer binding.KeyNamer) *Settings {
	s := defaults()
	s.Bindings = binding.NewSet(namer)
	return &s
}

// ResetValues restores every scalar setting to its compiled-in default.
// Binding tables are left alone.
func (s *Settings) ResetValues() {
	b := s.Bindings
	*s = defaults()
	s.Bindings = b
}
