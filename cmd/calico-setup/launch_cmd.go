package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/launch"
	"github.com/kalambet/calico/internal/storage"
)

var launchCmd = &cobra.Command{
	Use:   "launch [flags] [-- game args...]",
	Short: "Save the configuration and start the game",
	Long: `Save the configuration and start Calico Doom.

Skill and warp default to the EEPROM record. Arguments after -- are passed
to the game unchanged.

Examples:
  calico-setup launch
  calico-setup launch --skill 4 --warp 12 --fast
  calico-setup launch --iwad ./doom.jag --file mymod.wad --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		program, _ := flags.GetString("program")
		iwad, _ := flags.GetString("iwad")
		dryRun, _ := flags.GetBool("dry-run")

		s := openSession()
		opts := launch.FromRecord(s.EEPROM.Record)
		opts.IWAD = launch.ResolveIWAD(envDefault(iwad, "CALICO_IWAD"))
		if flags.Changed("skill") {
			n, _ := flags.GetInt("skill")
			opts.Skill = eeprom.Skill(n - 1)
		}
		if flags.Changed("warp") {
			opts.Warp, _ = flags.GetInt("warp")
		}
		opts.NoMonsters, _ = flags.GetBool("nomonsters")
		opts.Fast, _ = flags.GetBool("fast")
		opts.WADs, _ = flags.GetStringSlice("file")
		opts.Extra, _ = flags.GetStringArray("extra")
		opts.PassThrough = args
		if err := opts.Validate(); err != nil {
			return err
		}

		runner := launch.Runner{
			Program: envDefault(program, "CALICO_GAME"),
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		}
		gameArgs := opts.Args()
		line := launch.CommandLine(runner.Path(), gameArgs)
		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		}

		if err := s.Save(); err != nil {
			return err
		}
		printStep("Starting %s (skill %s, warp %s)", line, opts.Skill, launch.WarpLabel(opts.Warp))

		started := time.Now()
		code, runErr := runner.Run(cmd.Context(), gameArgs)
		recordLaunch(s.Paths.Dir, storage.Launch{
			StartedAt: started,
			Command:   line,
			ExitCode:  code,
			Error:     errString(runErr),
		})
		if runErr != nil {
			return runErr
		}
		if code != 0 {
			printWarning("Game exited with code %d", code)
			return nil
		}
		printSuccess("Game exited normally")
		return nil
	},
}

// recordLaunch appends to the launch history. Failures only warn: the game
// has already run.
func recordLaunch(dir string, l storage.Launch) {
	store, err := storage.Open(dir)
	if err != nil {
		printWarning("recording launch: %v", err)
		return
	}
	defer store.Close()
	if err := store.RecordLaunch(l); err != nil {
		printWarning("recording launch: %v", err)
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent game launches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		store, err := openStore(paths())
		if err != nil {
			return err
		}
		defer store.Close()

		launches, err := store.RecentLaunches(limit)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), launches)
		}
		if len(launches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No launches recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tEXIT\tCOMMAND")
		for _, l := range launches {
			exit := fmt.Sprint(l.ExitCode)
			if l.Error != "" {
				exit = "failed"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", l.StartedAt.Local().Format(time.DateTime), exit, l.Command)
		}
		return tw.Flush()
	},
}

func envDefault(v, env string) string {
	if v != "" {
		return v
	}
	return os.Getenv(env)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func init() {
	f := launchCmd.Flags()
	f.String("program", "", "game executable (default $CALICO_GAME, then calico-doom)")
	f.String("iwad", "", "game data file (default $CALICO_IWAD, then ./jagdoom.wad or ./doom.jag)")
	f.Int("skill", 3, "skill 1..5 (default from the EEPROM record)")
	f.Int("warp", 0, fmt.Sprintf("start at map %d..%d, 0 for the title screen (default from the EEPROM record)", launch.MinWarp, launch.MaxWarp))
	f.Bool("nomonsters", false, "start without monsters")
	f.Bool("fast", false, "fast monsters")
	f.StringSlice("file", nil, "extra WAD files to load")
	f.StringArray("extra", nil, "argument placed before all others (repeatable)")
	f.Bool("dry-run", false, "print the command line instead of running it")

	historyCmd.Flags().Int("limit", 20, "number of launches to show")
	historyCmd.Flags().Bool("json", false, "output JSON")

}
