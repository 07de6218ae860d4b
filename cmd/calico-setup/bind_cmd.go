package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/sdlkey"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Inspect and edit mouse and gamepad bindings",
}

type bindingRow struct {
	Device string `json:"device"`
	Slot   string `json:"slot"`
	Label  string `json:"label"`
	Action string `json:"action"`
	// SDL is the keycode or SDL button number behind the slot.
	SDL int `json:"sdl"`
}

func sdlButton(device string, slot binding.SlotID) int {
	if device == "mouse" {
		n, _ := binding.MouseSlotToSDL(slot)
		return n
	}
	n, _ := binding.GamepadSlotToSDL(slot)
	return n
}

var bindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every binding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		b := openSession().Bindings()

		var rows []bindingRow
		for _, a := range binding.Actions() {
			rows = append(rows, bindingRow{
				Device: "keyboard",
				Slot:   a.String(),
				Label:  a.Label(),
				Action: b.Keyboard.CurrentBinding(a),
				SDL:    int(b.Keyboard.Code(a)),
			})
		}
		for _, t := range []*binding.ButtonTable{b.Mouse, b.Gamepad} {
			for _, bt := range t.Bindings() {
				rows = append(rows, bindingRow{
					Device: t.Device(),
					Slot:   string(bt.Slot),
					Label:  bt.Label,
					Action: bt.Action.Label(),
					SDL:    sdlButton(t.Device(), bt.Slot),
				})
			}
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), rows)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DEVICE\tSLOT\tSDL\tLABEL\tBOUND TO")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Device, r.Slot, r.SDL, r.Label, r.Action)
		}
		return tw.Flush()
	},
}

var bindSetCmd = &cobra.Command{
	Use:   "set <device> <slot> <action>",
	Short: "Bind a mouse or gamepad button and save",
	Long: `Bind a mouse or gamepad button to an action and save.

Examples:
  calico-setup bind set mouse right use
  calico-setup bind set gamepad lshldr attack
  calico-setup bind set gamepad x unbound`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, slot, name := args[0], binding.SlotID(args[1]), args[2]
		a, err := binding.LookupAction(name)
		if err != nil {
			return err
		}
		s := openSession()
		t, err := s.Bindings().Table(device)
		if err != nil {
			return err
		}
		if err := t.Update(slot, a); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("Bound %s %s to %s", device, slot, a.Label())
		return nil
	},
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Edit keyboard bindings",
}

var keySetCmd = &cobra.Command{
	Use:   "set <action> <key>",
	Short: "Bind a key to an action and save",
	Long: `Bind a key to an action and save. Keys use SDL names.

Examples:
  calico-setup key set attack "Right Ctrl"
  calico-setup key set up W`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := keyboardAction(args[0])
		if err != nil {
			return err
		}
		code := sdlkey.FromName(args[1])
		if code == sdlkey.Unknown {
			return fmt.Errorf("unknown key name %q", args[1])
		}
		s := openSession()
		kb := s.Bindings().Keyboard
		if err := kb.SetKey(a, code); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("%s = %s", a.Label(), kb.CurrentBinding(a))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear <action>",
	Short: "Unbind an action's key and save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := keyboardAction(args[0])
		if err != nil {
			return err
		}
		s := openSession()
		if err := s.Bindings().Keyboard.ClearKey(a); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("Cleared key for %s", a.Label())
		return nil
	},
}

func keyboardAction(name string) (binding.Action, error) {
	a, err := binding.LookupAction(name)
	if err != nil {
		return a, err
	}
	if !a.Valid() {
		return a, fmt.Errorf("%q: %w", name, binding.ErrUnknownAction)
	}
	return a, nil
}

func init() {
	bindListCmd.Flags().Bool("json", false, "output JSON")

	bindCmd.AddCommand(bindListCmd)
	bindCmd.AddCommand(bindSetCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
}
