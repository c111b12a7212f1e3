// Package main is used for the nextcloud-charm binary.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	varPath = "/var/lib/nextcloud-charm/"
	runPath = "/run/nextcloud-charm/"
)

type cmdGlobal struct {
	flagHelp    bool
	flagVersion bool
}

func main() {
	// Charm hooks and the background jobs daemon both manage system services.
	if os.Getuid() != 0 {
		_, _ = fmt.Fprintf(os.Stderr, "nextcloud-charm must be run as root\n")
		os.Exit(1)
	}

	// Prepare a logger. Hook output ends up in the Juju unit log.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Global flags.
	globalCmd := cmdGlobal{}

	app := &cobra.Command{
		Use:               "nextcloud-charm",
		Short:             "Nextcloud machine charm",
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	app.PersistentFlags().BoolVarP(&globalCmd.flagHelp, "help", "h", false, "Print help command")
	app.PersistentFlags().BoolVarP(&globalCmd.flagVersion, "version", "v", false, "Print binary version")

	// hook sub-command.
	hookCmd := cmdHook{global: &globalCmd}
	app.AddCommand(hookCmd.command())

	// action sub-command.
	actionCmd := cmdAction{global: &globalCmd}
	app.AddCommand(actionCmd.command())

	// background-jobs sub-command.
	backgroundJobsCmd := cmdBackgroundJobs{global: &globalCmd}
	app.AddCommand(backgroundJobsCmd.command())

	// Version handling.
	app.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if globalCmd.flagVersion {
			_, _ = fmt.Println("nextcloud-charm version " + version) //nolint:forbidigo

			os.Exit(0)
		}
	}

	// Run the main command and handle errors.
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
