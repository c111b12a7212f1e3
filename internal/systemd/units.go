package systemd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BackgroundJobsUnit is the service running the charm's background-jobs daemon.
const BackgroundJobsUnit = "nextcloud-charm-background-jobs.service"

// unitDir is where locally managed units are installed.
var unitDir = "/etc/systemd/system"

var backgroundJobsUnitTemplate = `[Unit]
Description=Nextcloud charm background jobs
After=network-online.target

[Service]
Type=simple
ExecStart=/usr/local/bin/nextcloud-charm background-jobs --schedule "%s"
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// InstallBackgroundJobsUnit writes and enables the background jobs service
// with the given crontab schedule. Re-installing with a new schedule restarts
// the service.
func InstallBackgroundJobsUnit(ctx context.Context, schedule string) error {
	err := WriteUnit(BackgroundJobsUnit, fmt.Sprintf(backgroundJobsUnitTemplate, schedule))
	if err != nil {
		return err
	}

	err = DaemonReload(ctx)
	if err != nil {
		return err
	}

	err = EnableUnit(ctx, true, BackgroundJobsUnit)
	if err != nil {
		return err
	}

	return RestartUnit(ctx, BackgroundJobsUnit)
}

// WriteUnit installs a unit file under the system unit directory.
func WriteUnit(name string, content string) error {
	return os.WriteFile(filepath.Join(unitDir, name), []byte(content), 0o644)
}
