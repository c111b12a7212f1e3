package charm

import (
	"context"
	"errors"
	"fmt"

	"github.com/muesli/crunchy"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/hookenv"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/nextcloud"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/occ"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/php"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/scheduling"
)

// onInstall runs the installation sequence. Each step records its condition
// in state on success, so a redelivered install picks up where it left off.
func (c *Charm) onInstall(ctx context.Context) error {
	config, err := c.hook.ConfigGet(ctx)
	if err != nil {
		return err
	}

	err = c.hook.StatusSet(ctx, hookenv.StatusMaintenance, "Installing packages")
	if err != nil {
		return err
	}

	err = c.installPackages(ctx)
	if err != nil {
		return err
	}

	if dataDir := config.String("data-dir"); dataDir != "" {
		c.state.Nextcloud.DataDir = dataDir
	}

	if !c.state.Nextcloud.Fetched {
		err = c.hook.StatusSet(ctx, hookenv.StatusMaintenance, "Fetching Nextcloud sources")
		if err != nil {
			return err
		}

		err = c.fetchSources(ctx, nextcloud.Source{
			URL:    config.String("source"),
			SHA256: config.String("source-checksum"),
		})
		if err != nil {
			return err
		}

		c.state.MarkFetched()
	}

	err = c.hook.StatusSet(ctx, hookenv.StatusMaintenance, "Configuring Apache")
	if err != nil {
		return err
	}

	err = c.configureApache(ctx)
	if err != nil {
		return err
	}

	c.state.MarkApacheConfigured()

	err = c.hook.StatusSet(ctx, hookenv.StatusMaintenance, "Configuring PHP")
	if err != nil {
		return err
	}

	err = c.configurePHP(ctx, phpOptions(config))
	if err != nil {
		return err
	}

	c.state.MarkPHPConfigured()

	schedule, err := backgroundJobsSchedule(config)
	if err != nil {
		return err
	}

	err = c.setupBackgroundJobs(ctx, schedule)
	if err != nil {
		return err
	}

	if !c.state.Database.Available {
		err = c.hook.StatusSet(ctx, hookenv.StatusBlocked, "Missing postgresql relation data.")
		if err != nil {
			return err
		}

		return ErrDefer
	}

	if !c.state.Nextcloud.Initialized {
		return c.initNextcloud(ctx, config)
	}

	return nil
}

// onConfigChanged re-renders the operator tunable PHP configuration and
// reschedules the background jobs.
func (c *Charm) onConfigChanged(ctx context.Context) error {
	if !c.state.PHP.Configured {
		return nil
	}

	config, err := c.hook.ConfigGet(ctx)
	if err != nil {
		return err
	}

	err = c.configurePHP(ctx, phpOptions(config))
	if err != nil {
		return err
	}

	schedule, err := backgroundJobsSchedule(config)
	if err != nil {
		return err
	}

	return c.setupBackgroundJobs(ctx, schedule)
}

// backgroundJobsSchedule validates the configured crontab, falling back to
// every five minutes.
func backgroundJobsSchedule(config hookenv.Config) (string, error) {
	schedule := config.String("backgroundjobs-schedule")
	if schedule == "" {
		return "*/5 * * * *", nil
	}

	err := scheduling.ValidateCron(schedule)
	if err != nil {
		return "", fmt.Errorf("backgroundjobs-schedule %q: %w", schedule, err)
	}

	return schedule, nil
}

// initNextcloud creates the database schema and admin account through the
// administration CLI, then makes the unit reachable.
func (c *Charm) initNextcloud(ctx context.Context, config hookenv.Config) error {
	err := c.hook.StatusSet(ctx, hookenv.StatusMaintenance, "Initializing Nextcloud")
	if err != nil {
		return err
	}

	adminUser := config.String("admin-user")
	adminPassword := config.String("admin-password")

	err = checkAdminPassword(adminPassword)
	if err != nil {
		return err
	}

	err = c.occ.MaintenanceInstall(ctx, occ.InstallOptions{
		DatabaseType:     c.state.Database.Kind,
		DatabaseName:     c.state.Database.Name,
		DatabaseHost:     c.state.Database.Host,
		DatabaseUser:     c.state.Database.User,
		DatabasePassword: c.state.Database.Password,
		AdminUser:        adminUser,
		AdminPassword:    adminPassword,
		DataDir:          c.state.Nextcloud.DataDir,
	})
	if err != nil {
		return err
	}

	domain := config.String("fqdn")
	if domain == "" {
		domain, err = c.hook.PrivateAddress(ctx)
		if err != nil {
			return err
		}
	}

	// Rewrite the specific configuration keys instead of substituting
	// strings in config.php.
	err = c.occ.AddTrustedDomain(ctx, domain, 1)
	if err != nil {
		return err
	}

	err = c.occ.SystemSet(ctx, "overwrite.cli.url", "http://"+domain)
	if err != nil {
		return err
	}

	err = c.hook.OpenPort(ctx, "80/tcp")
	if err != nil {
		return err
	}

	err = c.state.MarkInitialized()
	if err != nil {
		return err
	}

	return c.publishClusterConfig(ctx)
}

// checkAdminPassword refuses empty or guessable admin passwords.
func checkAdminPassword(password string) error {
	if password == "" {
		return errors.New("admin-password must be set before Nextcloud can be initialized")
	}

	err := crunchy.NewValidator().Check(password)
	if err != nil {
		return fmt.Errorf("admin-password rejected: %w", err)
	}

	return nil
}

// phpOptions maps the charm configuration onto the PHP limits, with the
// defaults from config.yaml as fallback.
func phpOptions(config hookenv.Config) php.Options {
	opts := php.Options{
		MaxFileUploads:    "20",
		UploadMaxFilesize: "512M",
		PostMaxSize:       "512M",
		MemoryLimit:       "512M",
	}

	if v := config.String("php_max_file_uploads"); v != "" {
		opts.MaxFileUploads = v
	}

	if v := config.String("php_upload_max_filesize"); v != "" {
		opts.UploadMaxFilesize = v
	}

	if v := config.String("php_post_max_size"); v != "" {
		opts.PostMaxSize = v
	}

	if v := config.String("php_memory_limit"); v != "" {
		opts.MemoryLimit = v
	}

	return opts
}
