// Package systemd wraps the systemctl interactions the charm needs.
package systemd

import (
	"context"

	"github.com/lxc/incus/v6/shared/subprocess"
)

// EnableUnit enables the given units, starting them immediately when now is set.
func EnableUnit(ctx context.Context, now bool, units ...string) error {
	args := []string{"enable"}

	if now {
		args = append(args, "--now")
	}

	args = append(args, units...)

	_, err := subprocess.RunCommandContext(ctx, "systemctl", args...)
	if err != nil {
		return err
	}

	return nil
}

// RestartUnit restarts the given units.
func RestartUnit(ctx context.Context, units ...string) error {
	args := []string{"restart"}
	args = append(args, units...)

	_, err := subprocess.RunCommandContext(ctx, "systemctl", args...)
	if err != nil {
		return err
	}

	return nil
}

// ReloadUnit reloads the given units.
func ReloadUnit(ctx context.Context, units ...string) error {
	args := []string{"reload"}
	args = append(args, units...)

	_, err := subprocess.RunCommandContext(ctx, "systemctl", args...)
	if err != nil {
		return err
	}

	return nil
}

// DaemonReload reloads the systemd manager configuration.
func DaemonReload(ctx context.Context) error {
	_, err := subprocess.RunCommandContext(ctx, "systemctl", "daemon-reload")
	if err != nil {
		return err
	}

	return nil
}
