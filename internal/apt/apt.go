// Package apt wraps the system package manager.
package apt

import (
	"context"
	"fmt"
	"os"

	"github.com/lxc/incus/v6/shared/subprocess"
)

// Packages is the fixed set of OS packages Nextcloud requires on the unit.
var Packages = []string{
	"apache2",
	"libapache2-mod-php",
	"php-gd",
	"php-json",
	"php-mysql",
	"php-pgsql",
	"php-curl",
	"php-mbstring",
	"php-intl",
	"php-imagick",
	"php-zip",
	"php-xml",
	"php-apcu",
	"php-redis",
	"php-smbclient",
}

// Install installs the given packages, accepting all prompts.
func Install(ctx context.Context, packages ...string) error {
	args := []string{"install", "-y"}
	args = append(args, packages...)

	env := append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")

	_, _, err := subprocess.RunCommandSplit(ctx, env, nil, "apt-get", args...)
	if err != nil {
		return fmt.Errorf("apt-get install: %w", err)
	}

	return nil
}
