package api

import (
	"time"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/storage"
)

type KeyView struct {
	Action     string `json:"action"`
	Label      string `json:"label"`
	Key        string `json:"key"`
	ConfigName string `json:"config_name"`
}

type ButtonView struct {
	Slot        string `json:"slot"`
	Label       string `json:"label"`
	ConfigName  string `json:"config_name"`
	Action      string `json:"action"`
	ActionLabel string `json:"action_label"`
}

type BindingsView struct {
	Keyboard []KeyView    `json:"keyboard"`
	Mouse    []ButtonView `json:"mouse"`
	Gamepad  []ButtonView `json:"gamepad"`
}

func bindingsView(b *binding.Set) BindingsView {
	v := BindingsView{
		Keyboard: make([]KeyView, 0, binding.Count),
		Mouse:    buttonViews(b.Mouse),
		Gamepad:  buttonViews(b.Gamepad),
	}
	for _, a := range binding.Actions() {
		v.Keyboard = append(v.Keyboard, KeyView{
			Action:     a.String(),
			Label:      a.Label(),
			Key:        b.Keyboard.CurrentBinding(a),
			ConfigName: binding.ConfigName(a),
		})
	}
	return v
}

func buttonViews(t *binding.ButtonTable) []ButtonView {
	bs := t.Bindings()
	out := make([]ButtonView, len(bs))
	for i, b := range bs {
		out[i] = ButtonView{
			Slot:        string(b.Slot),
			Label:       b.Label,
			ConfigName:  b.ConfigName,
			Action:      b.Action.String(),
			ActionLabel: b.Action.Label(),
		}
	}
	return out
}

type EEPROMView struct {
	Record   eeprom.Record `json:"record"`
	State    string        `json:"state"`
	Skill    string        `json:"skill_label"`
	Scheme   string        `json:"control_scheme"`
	Checksum uint16        `json:"checksum"`
}

func eepromView(e *eeprom.EEPROM) EEPROMView {
	v := EEPROMView{
		Record:   e.Record,
		State:    e.State().String(),
		Skill:    e.Record.Skill.String(),
		Checksum: e.Record.Encode()[eeprom.WordCount-1],
	}
	if s, ok := eeprom.Scheme(e.Record.ControlType); ok {
		v.Scheme = s.String()
	}
	return v
}

type ProfileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func profileView(p storage.Profile) ProfileView {
	return ProfileView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
