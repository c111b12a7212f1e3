// Package charm implements the Nextcloud charm's event handlers.
//
// Handlers receive the host runtime through the hookenv.Context capability
// set and record durable progress in the unit state, so every handler can be
// exercised without a Juju controller or an installed Nextcloud.
package charm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/apache"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/apt"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/hookenv"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/nextcloud"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/occ"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/php"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/systemd"
)

const (
	// dbRelationName is the PostgreSQL relation from metadata.yaml.
	dbRelationName = "db"

	// clusterRelationName is the peer relation from metadata.yaml.
	clusterRelationName = "cluster"

	// databaseName is the database requested from PostgreSQL.
	databaseName = "nextcloud"

	// databaseExtensions is the extension list requested from PostgreSQL.
	databaseExtensions = "citext"
)

// ErrDefer signals that the current event hit an unmet precondition and
// should be redelivered on a later dispatch.
var ErrDefer = errors.New("event deferred")

// OccClient is the subset of the administration CLI the handlers use.
type OccClient interface {
	MaintenanceInstall(ctx context.Context, opts occ.InstallOptions) error
	Status(ctx context.Context) (*occ.Status, error)
	MaintenanceMode(ctx context.Context, enable bool) (string, error)
	AddMissingIndices(ctx context.Context) (string, error)
	ConvertFilecacheBigint(ctx context.Context) (string, error)
	SystemSet(ctx context.Context, key string, value string) error
	TrustedDomains(ctx context.Context) ([]string, error)
	AddTrustedDomain(ctx context.Context, domain string, index int) error
	UpdateTrustedDomainsPeerAddresses(ctx context.Context, addresses []string) error
}

// Charm wires the event handlers to their collaborators.
type Charm struct {
	hook  hookenv.Context
	state *state.State
	occ   OccClient

	// AppName is the local application name, used to address databags.
	AppName string

	// ConfigPath is the Nextcloud configuration file location.
	ConfigPath string

	installPackages     func(ctx context.Context) error
	fetchSources        func(ctx context.Context, src nextcloud.Source) error
	configureApache     func(ctx context.Context) error
	configurePHP        func(ctx context.Context, opts php.Options) error
	setupBackgroundJobs func(ctx context.Context, schedule string) error
}

// New returns a Charm with production collaborators wired in.
func New(hook hookenv.Context, st *state.State, occClient OccClient) *Charm {
	appName, _, _ := strings.Cut(hookenv.UnitName(), "/")

	return &Charm{
		hook:  hook,
		state: st,
		occ:   occClient,

		AppName:    appName,
		ConfigPath: nextcloud.ConfigPath,

		installPackages: func(ctx context.Context) error {
			return apt.Install(ctx, apt.Packages...)
		},
		fetchSources: func(ctx context.Context, src nextcloud.Source) error {
			err := nextcloud.Fetch(ctx, src, nextcloud.WebRoot)
			if err != nil {
				return err
			}

			return nextcloud.ChownWWWData(ctx, nextcloud.InstallDir)
		},
		configureApache: func(ctx context.Context) error {
			return apache.Configure(ctx, apache.SiteOptions{DocumentRoot: nextcloud.InstallDir})
		},
		configurePHP:        php.Configure,
		setupBackgroundJobs: systemd.InstallBackgroundJobsUnit,
	}
}

// Dispatch replays any deferred events, runs the incoming one and refreshes
// the unit status. Deferrals are persisted for the next dispatch; any other
// error is fatal to this delivery.
func (c *Charm) Dispatch(ctx context.Context, event string) error {
	defer func() {
		err := c.state.Save()
		if err != nil {
			slog.Error("Failed to save charm state", "error", err)
		}
	}()

	events := append(c.state.TakeDeferredEvents(), event)
	deferred := false

	for i, name := range events {
		slog.Info("Running event", "event", name)

		err := c.runEvent(ctx, name)
		if errors.Is(err, ErrDefer) {
			slog.Info("Deferring event", "event", name)
			c.state.DeferEvent(name)
			deferred = true

			continue
		}

		if err != nil {
			// Requeue the failing event and everything not yet run so
			// a later dispatch retries them; Juju only redelivers the
			// hook that failed.
			for _, pending := range events[i:] {
				c.state.DeferEvent(pending)
			}

			return fmt.Errorf("event %s: %w", name, err)
		}
	}

	if deferred {
		// A handler already reported the blocking precondition; leave
		// its status message in place.
		return nil
	}

	return c.updateStatus(ctx)
}

func (c *Charm) runEvent(ctx context.Context, event string) error {
	switch event {
	case "install", "upgrade-charm":
		return c.onInstall(ctx)
	case "config-changed":
		return c.onConfigChanged(ctx)
	case "start", "update-status", "leader-elected", "leader-settings-changed":
		return nil
	case "db-relation-joined":
		return c.onDatabaseJoined(ctx, hookenv.RelationID())
	case "db-relation-changed":
		return c.onDatabaseChanged(ctx, hookenv.RelationID(), hookenv.RemoteUnit())
	case "db-relation-broken":
		return c.onDatabaseBroken(ctx)
	case "cluster-relation-joined":
		return c.onClusterJoined(ctx, hookenv.RelationID())
	case "cluster-relation-changed", "cluster-relation-departed":
		return c.onClusterChanged(ctx, hookenv.RelationID())
	case "redis-relation-changed":
		return c.onCacheChanged(ctx, hookenv.RelationID(), hookenv.RemoteUnit())
	case "redis-relation-departed", "redis-relation-broken":
		return c.onCacheBroken(ctx)
	}

	slog.Debug("Ignoring unhandled event", "event", event)

	return nil
}

// updateStatus derives the workload status from the recorded conditions,
// reporting the first unmet one in the fixed lifecycle order.
func (c *Charm) updateStatus(ctx context.Context) error {
	condition, ok := c.state.FirstUnmet()
	if !ok {
		return c.hook.StatusSet(ctx, hookenv.StatusBlocked, condition.Message())
	}

	leader, err := c.hook.IsLeader(ctx)
	if err != nil {
		return err
	}

	if leader {
		status, err := c.occ.Status(ctx)
		if err != nil {
			return err
		}

		c.state.Nextcloud.Version = status.VersionString

		err = c.hook.ApplicationVersionSet(ctx, status.VersionString)
		if err != nil {
			return err
		}
	}

	return c.hook.StatusSet(ctx, hookenv.StatusActive, "")
}

// localAppData reads this application's own databag on a relation.
func (c *Charm) localAppData(ctx context.Context, relationID string) (map[string]string, error) {
	return c.hook.RelationGetApp(ctx, relationID, c.AppName)
}
