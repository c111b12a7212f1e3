package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lxc/incus/v6/shared/subprocess"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/nextcloud"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/rest"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/scheduling"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
)

const cronJobName = scheduling.JobName("nextcloud_cron")

type cmdBackgroundJobs struct {
	global *cmdGlobal

	flagSchedule string
	flagSocket   string
}

func (c *cmdBackgroundJobs) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "background-jobs"
	cmd.Short = "Run the background jobs daemon"
	cmd.Long = `Run the background jobs daemon

Drives Nextcloud's cron.php on a schedule and serves a read-only state
introspection API on a local unix socket.
`
	cmd.RunE = c.run

	cmd.Flags().StringVar(&c.flagSchedule, "schedule", "*/5 * * * *", "Crontab schedule for cron.php runs")
	cmd.Flags().StringVar(&c.flagSocket, "socket", filepath.Join(runPath, "unix.socket"), "Path to the introspection API socket")

	return cmd
}

func (c *cmdBackgroundJobs) run(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Get persistent state (read-only, served over the API).
	s, err := state.LoadOrCreate(filepath.Join(varPath, "state.json"))
	if err != nil {
		return err
	}

	// Setup the scheduler.
	scheduler, err := scheduling.NewScheduler()
	if err != nil {
		return err
	}

	err = scheduler.RegisterJob(cronJobName, c.flagSchedule, runNextcloudCron)
	if err != nil {
		return err
	}

	// Setup the API server.
	server, err := rest.NewServer(ctx, s, c.flagSocket)
	if err != nil {
		return err
	}

	slog.Info("Starting background jobs daemon", "schedule", c.flagSchedule, "socket", c.flagSocket)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := server.Serve(ctx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		scheduler.Start()

		<-ctx.Done()

		return scheduler.Shutdown()
	})

	return group.Wait()
}

// runNextcloudCron runs one pass of Nextcloud's background job processor.
func runNextcloudCron(ctx context.Context) error {
	_, err := subprocess.RunCommandContext(ctx, "sudo", "-u", "www-data", "php", "-f", filepath.Join(nextcloud.InstallDir, "cron.php"))

	return err
}
