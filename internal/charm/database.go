package charm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/pgsql"
)

// onDatabaseJoined requests the database from PostgreSQL. The leader states
// the requirements; other units wait until those are visible in the
// application databag in case they inherit leadership before then.
func (c *Charm) onDatabaseJoined(ctx context.Context, relationID string) error {
	leader, err := c.hook.IsLeader(ctx)
	if err != nil {
		return err
	}

	if leader {
		return c.hook.RelationSetApp(ctx, relationID, map[string]string{
			"database":   databaseName,
			"extensions": databaseExtensions,
		})
	}

	requested, err := c.localAppData(ctx, relationID)
	if err != nil {
		// Older controllers restrict non-leader reads of the local
		// application databag on non-peer relations; wait for a later
		// event rather than failing the hook.
		slog.Warn("Cannot read local application databag", "relation", relationID, "error", err)

		return ErrDefer
	}

	if requested["database"] != databaseName {
		return ErrDefer
	}

	return nil
}

// onDatabaseChanged reacts to the primary database moving. Only the leader
// persists connection parameters and performs one-time initialization;
// secondaries receive their configuration over the cluster relation instead.
func (c *Charm) onDatabaseChanged(ctx context.Context, relationID string, remoteUnit string) error {
	leader, err := c.hook.IsLeader(ctx)
	if err != nil {
		return err
	}

	if !leader {
		return nil
	}

	requested, err := c.localAppData(ctx, relationID)
	if err != nil {
		return err
	}

	if requested["database"] != databaseName {
		// The requirements have not been stated yet. Wait for a later
		// event rather than risk recording the wrong database.
		return nil
	}

	values, err := c.hook.RelationGet(ctx, relationID, remoteUnit)
	if err != nil {
		return err
	}

	master := values["master"]
	if master == "" {
		slog.Info("Primary database gone, clearing connection details")
		c.state.SetDatabase("", "", "", "", "", "", "")

		return nil
	}

	cs, err := pgsql.ParseConnectionString(master)
	if err != nil {
		return err
	}

	if cs.DBName != databaseName {
		return nil
	}

	c.state.SetDatabase(master, cs.URI(), cs.DBName, cs.User, cs.Password, cs.Host, cs.Port)
	c.state.SetStandbys(standbyURIs(values["standbys"]))

	if !c.state.Nextcloud.Initialized && c.state.Nextcloud.Fetched {
		config, err := c.hook.ConfigGet(ctx)
		if err != nil {
			return err
		}

		return c.initNextcloud(ctx, config)
	}

	return nil
}

// onDatabaseBroken drops the stored connection details.
func (c *Charm) onDatabaseBroken(_ context.Context) error {
	c.state.SetDatabase("", "", "", "", "", "", "")
	c.state.SetStandbys(nil)

	return nil
}

// standbyURIs splits the newline separated standby connection strings into
// read-only URIs.
func standbyURIs(raw string) []string {
	var uris []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cs, err := pgsql.ParseConnectionString(line)
		if err != nil {
			slog.Warn("Skipping malformed standby connection string", "error", err)

			continue
		}

		uris = append(uris, cs.URI())
	}

	return uris
}
