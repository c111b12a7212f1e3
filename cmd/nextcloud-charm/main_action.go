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

type cmdAction struct {
	global *cmdGlobal
}

func (c *cmdAction) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "action [name]"
	cmd.Short = "Run a charm action"
	cmd.Long = `Run a charm action

Without an argument the action name is taken from JUJU_DISPATCH_PATH.
`
	cmd.RunE = c.run

	return cmd
}

func (c *cmdAction) run(_ *cobra.Command, args []string) error {
	ctx := context.TODO()

	// Resolve the action being delivered.
	name := hookenv.ActionName()
	if len(args) > 0 {
		name = args[0]
	}

	if name == "" {
		return errors.New("no action name given and JUJU_DISPATCH_PATH is unset")
	}

	// Get persistent state.
	s, err := state.LoadOrCreate(filepath.Join(varPath, "state.json"))
	if err != nil {
		return err
	}

	defer func() { _ = s.Save() }()

	return charm.New(hookenv.NewExecContext(), s, occ.NewClient()).RunAction(ctx, name)
}
