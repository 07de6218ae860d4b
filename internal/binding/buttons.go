package binding

import (
	"fmt"
	"log/slog"
)

// SlotID names a physical button independently of any input library's
// numbering.
type SlotID string

// SlotDef is the compiled-in description of one physical button.
type SlotDef struct {
	ID         SlotID
	ConfigName string
	Label      string
	Default    Action
}

// Binding is a snapshot of one slot's current state.
type Binding struct {
	Slot       SlotID
	ConfigName string
	Label      string
	Action     Action
	Name       string
}

type slot struct {
	def    SlotDef
	action Action
	name   string
}

// ButtonTable maps the physical buttons of one device class to actions.
type ButtonTable struct {
	device string
	slots  []slot
	index  map[SlotID]int
}

func newButtonTable(device string, defs []SlotDef) *ButtonTable {
	t := &ButtonTable{
		device: device,
		slots:  make([]slot, len(defs)),
		index:  make(map[SlotID]int, len(defs)),
	}
	for i, d := range defs {
		t.slots[i] = slot{def: d, action: d.Default}
		t.index[d.ID] = i
	}
	return t
}

// Device returns the device class name ("mouse" or "gamepad").
func (t *ButtonTable) Device() string { return t.device }

// InitFromNames resolves every slot from its stored symbolic name. Slots
// without a name take the name of their current action instead.
func (t *ButtonTable) InitFromNames() {
	for i := range t.slots {
		t.resolve(&t.slots[i])
	}
}

func (t *ButtonTable) resolve(s *slot) {
	if s.name == "" {
		s.name = s.action.String()
		if !s.action.Valid() {
			s.action = Unbound
		}
		return
	}
	s.action = ParseAction(s.name)
	if s.action == Unbound && s.name != unboundName {
		slog.Debug("unresolved binding name", "device", t.device, "slot", s.def.ID, "name", s.name)
	}
}

func (t *ButtonTable) lookup(id SlotID) (*slot, error) {
	i, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%s slot %q: %w", t.device, id, ErrUnknownSlot)
	}
	return &t.slots[i], nil
}

// Update binds slot id to a and regenerates its symbolic name. Actions
// outside the valid range bind the slot to Unbound.
func (t *ButtonTable) Update(id SlotID, a Action) error {
	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	if !a.Valid() {
		a = Unbound
	}
	s.action = a
	s.name = a.String()
	return nil
}

// SetName stores a symbolic name for slot id and re-derives its action.
// An empty name falls back to the slot's current action.
func (t *ButtonTable) SetName(id SlotID, name string) error {
	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.name = name
	t.resolve(s)
	return nil
}

// Name returns the stored symbolic name of slot id.
func (t *ButtonTable) Name(id SlotID) string {
	s, err := t.lookup(id)
	if err != nil {
		return ""
	}
	return s.name
}

// Resolve returns the action bound to slot id, or Unbound.
func (t *ButtonTable) Resolve(id SlotID) Action {
	s, err := t.lookup(id)
	if err != nil {
		return Unbound
	}
	return s.action
}

// Reset restores every slot to its compiled-in default.
func (t *ButtonTable) Reset() {
	for i := range t.slots {
		s := &t.slots[i]
		s.action = s.def.Default
		s.name = s.action.String()
	}
}

// Slots returns every slot definition in table order.
func (t *ButtonTable) Slots() []SlotDef {
	out := make([]SlotDef, len(t.slots))
	for i, s := range t.slots {
		out[i] = s.def
	}
	return out
}

// Bindings returns the current state of every slot in table order.
func (t *ButtonTable) Bindings() []Binding {
	out := make([]Binding, len(t.slots))
	for i, s := range t.slots {
		out[i] = Binding{
			Slot:       s.def.ID,
			ConfigName: s.def.ConfigName,
			Label:      s.def.Label,
			Action:     s.action,
			Name:       s.name,
		}
	}
	return out
}
