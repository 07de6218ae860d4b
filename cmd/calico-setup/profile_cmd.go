package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Save and restore named configurations",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Store the current configuration under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		s := openSession()
		store, err := openStore(s.Paths)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := s.SaveProfile(store, args[0], desc)
		if err != nil {
			return err
		}
		printSuccess("Saved profile %s (%s)", p.Name, p.ID)
		return nil
	},
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the configuration with a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		store, err := openStore(s.Paths)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := s.ApplyProfile(store, args[0])
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		printSuccess("Loaded profile %s (eeprom %s)", args[0], st)
		return nil
	},
}

type profileRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		store, err := openStore(paths())
		if err != nil {
			return err
		}
		defer store.Close()

		profiles, err := store.ListProfiles()
		if err != nil {
			return err
		}
		rows := make([]profileRow, len(profiles))
		for i, p := range profiles {
			rows[i] = profileRow{ID: p.ID, Name: p.Name, Description: p.Description, UpdatedAt: p.UpdatedAt}
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tUPDATED\tDESCRIPTION")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.UpdatedAt.Local().Format(time.DateTime), r.Description)
		}
		return tw.Flush()
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(paths())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteProfile(args[0]); err != nil {
			return fmt.Errorf("profile %q: %w", args[0], err)
		}
		printSuccess("Deleted profile %s", args[0])
		return nil
	},
}

func init() {
	profileSaveCmd.Flags().StringP("description", "d", "", "short description")
	profileListCmd.Flags().Bool("json", false, "output JSON")

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}
