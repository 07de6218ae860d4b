package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit calico.cfg variables",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List every variable with its value and range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		s := openSession()
		entries := s.Registry.Entries()
		if asJSON {
			return printJSON(cmd.OutOrStdout(), entries)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tVALUE\tKIND\tRANGE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Value, e.Kind, e.Range)
		}
		return tw.Flush()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print one variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		v, err := s.Registry.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Assign a variable and save",
	Long: `Assign a variable and save both stores.

Numbers outside the variable's range are clamped. Values that do not parse
are rejected and the file is left alone.

Examples:
  calico-setup config set screenwidth 640
  calico-setup config set kb_key_attack "Right Ctrl"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, raw := args[0], args[1]
		s := openSession()
		if err := s.Apply(map[string]string{name: raw}); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		v, _ := s.Registry.Get(name)
		printSuccess("Set %s = %s", name, v)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Apply the recommended defaults and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		s.ResetToDefaults()
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("Reset to defaults in %s", s.Paths.Dir)
		return nil
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every variable as a YAML map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		s := openSession()
		data, err := yaml.Marshal(s.Registry.Values())
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		printSuccess("Exported %d variables to %s", len(s.Registry.Names()), out)
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Assign variables from a YAML map and save",
	Long: `Assign variables from a YAML map of name to value and save.

Unknown names and values that do not parse are reported; every other entry
is still applied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var values map[string]string
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		s := openSession()
		applyErr := s.Apply(values)
		if applyErr != nil {
			printWarning("%v", applyErr)
		}
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("Imported %s", args[0])
		return nil
	},
}

func init() {
	configShowCmd.Flags().Bool("json", false, "output JSON")
	configExportCmd.Flags().StringP("output", "o", "", "file to write (default stdout)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configImportCmd)
}
