package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/launch"
)

var eepromCmd = &cobra.Command{
	Use:   "eeprom",
	Short: "Inspect and edit the emulated EEPROM record",
}

var eepromShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the record and whether it validated",
	Long: `Show the record and whether it validated. With --file, any record
file is decoded instead of the one in the write directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		file, _ := cmd.Flags().GetString("file")

		var r eeprom.Record
		var st eeprom.State
		if file != "" {
			r, st = eeprom.ReadFile(file)
		} else {
			s := openSession()
			r, st = s.EEPROM.Record, s.EEPROM.State()
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"record": r,
				"state":  st.String(),
			})
		}

		w := cmd.OutOrStdout()
		printStatus(w, "State", "%s", st)
		printStatus(w, "Skill", "%d (%s)", r.Skill, r.Skill)
		printStatus(w, "Start map", "%s", launch.WarpLabel(r.StartMap))
		printStatus(w, "Max level", "%d", r.MaxLevel)
		printStatus(w, "SFX volume", "%d", r.SFXVolume)
		printStatus(w, "Music volume", "%d", r.MusicVolume)
		scheme := "?"
		if c, ok := eeprom.Scheme(r.ControlType); ok {
			scheme = c.String()
		}
		printStatus(w, "Controls", "%d (%s)", r.ControlType, scheme)
		return nil
	},
}

var eepromSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change record fields and save",
	Long: `Change record fields and save. Only the flags given are changed.

Examples:
  calico-setup eeprom set --skill 3 --startmap 7
  calico-setup eeprom set --sfx 255 --music 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		r := s.EEPROM.Record

		flags := cmd.Flags()
		if flags.Changed("skill") {
			n, _ := flags.GetInt("skill")
			r.Skill = eeprom.Skill(n)
		}
		for name, field := range map[string]*int{
			"startmap": &r.StartMap,
			"maxlevel": &r.MaxLevel,
			"sfx":      &r.SFXVolume,
			"music":    &r.MusicVolume,
			"controls": &r.ControlType,
		} {
			if flags.Changed(name) {
				*field, _ = flags.GetInt(name)
			}
		}

		if got, st := eeprom.Decode(r.Encode()); st != eeprom.StateValid || got != r {
			return fmt.Errorf("record out of range: %+v", r)
		}
		s.EEPROM.Record = r
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("EEPROM saved to %s", s.Paths.EEPROM())
		return nil
	},
}

var eepromResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the first-run record and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		s.EEPROM.Reset()
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("EEPROM reset")
		return nil
	},
}

func init() {
	eepromShowCmd.Flags().Bool("json", false, "output JSON")
	eepromShowCmd.Flags().String("file", "", "decode this record file instead")

	var levels strings.Builder
	levels.WriteString("\n\nSkill levels:")
	for _, sk := range eeprom.Skills() {
		fmt.Fprintf(&levels, "\n  %d  %s", sk, sk)
	}
	eepromSetCmd.Long += levels.String()

	f := eepromSetCmd.Flags()
	f.Int("skill", 0, fmt.Sprintf("skill %d..%d, see levels above", eeprom.SkillBaby, eeprom.SkillNightmare))
	f.Int("startmap", 0, fmt.Sprintf("start map %d..%d", eeprom.MinStartMap, eeprom.MaxStartMap))
	f.Int("maxlevel", 0, fmt.Sprintf("highest level reached %d..%d", eeprom.MinMaxLevel, eeprom.MaxMaxLevel))
	f.Int("sfx", 0, fmt.Sprintf("sound effects volume 0..%d", eeprom.MaxVolume))
	f.Int("music", 0, fmt.Sprintf("music volume 0..%d", eeprom.MaxVolume))
	f.Int("controls", 0, fmt.Sprintf("control scheme 0..%d", eeprom.NumControlSchemes-1))

	eepromCmd.AddCommand(eepromShowCmd)
	eepromCmd.AddCommand(eepromSetCmd)
	eepromCmd.AddCommand(eepromResetCmd)
}
