package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalambet/calico/internal/platform"
)

var version = "dev"

var (
	noColor bool
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "calico-setup",
	Short: "Configure Calico Doom",
	Long: `calico-setup edits calico.cfg, the input bindings and the emulated EEPROM
used by Calico Doom, and starts the game.

Files live in the write directory: --dir, then $CALICO_HOME, then
$XDG_DATA_HOME/calico, then ~/.local/share/calico.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := platform.LoadDotEnv(".env"); err != nil {
			printWarning("%v", err)
		}
		setupLogging()
		return nil
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(os.Getenv("CALICO_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "write directory (default $CALICO_HOME or the XDG data dir)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail to stderr")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(bindCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(eepromCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
