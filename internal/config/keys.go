package config

import (
	"github.com/kalambet/calico/internal/binding"
)

var (
	triggerRange    = IntRange{int(binding.TriggerNone), int(binding.TriggerCount) - 1}
	mouseAccelRange = FloatRange{1.0, 5.0}
	mouseThreshRng  = IntRange{0, 32}
	mouseSenseRange = IntRange{1, 256}
	preampRange     = FloatRange{0.0, 1.0}
	gainRange       = FloatRange{0.0, 3.0}
	widthRange      = IntRange{320, 32768}
	heightRange     = IntRange{224, 32768}
	fullscreenRange = IntRange{-1, 1}
	aspectNumRange  = IntRange{3, 100}
	aspectDenRange  = IntRange{2, 100}
	rendererRange   = IntRange{int(RendererGL11), int(RendererGL4)}
)

// ForSettings returns a registry declaring every persisted variable of s.
// Declaration order is the order calico.cfg is written in.
func ForSettings(s *Settings) *Registry {
	r := NewRegistry()
	b := s.Bindings

	r.MustDeclare(
		BoolVar("g_autorun", &s.Game.Autorun),
		BoolVar("linear_filtering", &s.Video.LinearFiltering),
	)

	for _, a := range binding.Actions() {
		r.MustDeclare(StringFunc(binding.ConfigName(a),
			func() string { return b.Keyboard.Name(a) },
			func(v string) error { return b.Keyboard.SetName(a, v) },
		))
	}

	r.MustDeclare(
		BoolVar("use_gamepad", &s.Gamepad.Enabled),
		StringVar("gamepad", &s.Gamepad.Device),
		BoolVar("gamepad_inverty", &s.Gamepad.InvertY),
		IntVar("gamepad_xythreshold", &s.Gamepad.Threshold, nil),
		IntVar("gamepad_triggerthreshold", &s.Gamepad.TriggerThreshold, nil),
		triggerVar("gamepad_ltrigger", &s.Gamepad.LTrigger),
		triggerVar("gamepad_rtrigger", &s.Gamepad.RTrigger),
	)
	declareButtons(r, b.Gamepad)

	r.MustDeclare(
		BoolVar("useMouse", &s.Mouse.Enabled),
		FloatVar("mouseAcceleration", &s.Mouse.Acceleration, &mouseAccelRange),
		IntVar("mouseThreshold", &s.Mouse.Threshold, &mouseThreshRng),
		IntVar("mouseSensitivity", &s.Mouse.Sensitivity, &mouseSenseRange),
	)
	declareButtons(r, b.Mouse)

	r.MustDeclare(
		FloatVar("s_lowfreq", &s.Sound.LowFreq, nil),
		FloatVar("s_highfreq", &s.Sound.HighFreq, nil),
		FloatVar("s_preampmul", &s.Sound.PreampMul, &preampRange),
		FloatVar("s_lowgain", &s.Sound.LowGain, &gainRange),
		FloatVar("s_midgain", &s.Sound.MidGain, &gainRange),
		FloatVar("s_highgain", &s.Sound.HighGain, &gainRange),
	)

	r.MustDeclare(
		IntVar("screenwidth", &s.Video.ScreenWidth, &widthRange),
		IntVar("screenheight", &s.Video.ScreenHeight, &heightRange),
		IntVar("fullscreen", &s.Video.Fullscreen, &fullscreenRange),
		IntVar("monitornum", &s.Video.MonitorNum, nil),
		IntVar("aspectnum", &s.Video.AspectNum, &aspectNumRange),
		IntVar("aspectdenom", &s.Video.AspectDenom, &aspectDenRange),
		IntFunc("renderer",
			func() int { return int(s.Video.Renderer) },
			func(n int) { s.Video.Renderer = Renderer(n) },
			&rendererRange,
		),
	)

	return r
}

func triggerVar(name string, p *binding.TriggerAction) Var {
	return IntFunc(name,
		func() int { return int(*p) },
		func(n int) { *p = binding.TriggerAction(n) },
		&triggerRange,
	)
}

func declareButtons(r *Registry, t *binding.ButtonTable) {
	for _, d := range t.Slots() {
		id := d.ID
		r.MustDeclare(StringFunc(d.ConfigName,
			func() string { return t.Name(id) },
			func(v string) error { return t.SetName(id, v) },
		))
	}
}
