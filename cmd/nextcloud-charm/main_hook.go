package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/charm"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/hookenv"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/occ"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
)

type cmdHook struct {
	global *cmdGlobal
}

func (c *cmdHook) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "hook [name]"
	cmd.Short = "Run a charm hook"
	cmd.Long = `Run a charm hook

Without an argument the hook name is taken from JUJU_DISPATCH_PATH, which is
how the charm's dispatch script invokes the binary.
`
	cmd.RunE = c.run

	return cmd
}

func (c *cmdHook) run(_ *cobra.Command, args []string) error {
	ctx := context.TODO()

	// Resolve the event being delivered.
	event := hookenv.HookName()
	if len(args) > 0 {
		event = args[0]
	}

	if event == "" {
		return errors.New("no hook name given and JUJU_DISPATCH_PATH is unset")
	}

	// Get persistent state.
	s, err := state.LoadOrCreate(filepath.Join(varPath, "state.json"))
	if err != nil {
		return err
	}

	return charm.New(hookenv.NewExecContext(), s, occ.NewClient()).Dispatch(ctx, event)
}
