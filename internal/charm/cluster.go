package charm

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/hookenv"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/nextcloud"
)

// configPayloadKey is the peer databag key carrying the rendered config.php.
const configPayloadKey = "nextcloud_config"

// onClusterJoined advertises this unit's address to its peers, then runs the
// regular peer reconciliation.
func (c *Charm) onClusterJoined(ctx context.Context, relationID string) error {
	address, err := c.hook.PrivateAddress(ctx)
	if err != nil {
		return err
	}

	err = c.hook.RelationSet(ctx, relationID, map[string]string{
		"ingress-address": address,
	})
	if err != nil {
		return err
	}

	return c.onClusterChanged(ctx, relationID)
}

// onClusterChanged keeps the peers in sync. The leader recomputes the trusted
// domains from all peer addresses and republishes its configuration file;
// secondaries mirror that configuration instead of initializing themselves.
func (c *Charm) onClusterChanged(ctx context.Context, relationID string) error {
	leader, err := c.hook.IsLeader(ctx)
	if err != nil {
		return err
	}

	if leader {
		return c.leaderSyncCluster(ctx, relationID)
	}

	return c.adoptLeaderConfig(ctx, relationID)
}

func (c *Charm) leaderSyncCluster(ctx context.Context, relationID string) error {
	if !c.state.Nextcloud.Initialized {
		// Nothing to publish until initialization has happened; the
		// configuration is pushed once it has.
		return nil
	}

	addresses, err := c.peerAddresses(ctx, relationID)
	if err != nil {
		return err
	}

	err = c.occ.UpdateTrustedDomainsPeerAddresses(ctx, addresses)
	if err != nil {
		return err
	}

	return c.publishClusterConfig(ctx)
}

// publishClusterConfig pushes the full rendered configuration file into the
// peer application databag for secondaries to copy.
func (c *Charm) publishClusterConfig(ctx context.Context) error {
	content, err := nextcloud.ReadConfig(c.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("No configuration file to publish yet", "path", c.ConfigPath)

			return nil
		}

		return err
	}

	relationIDs, err := c.hook.RelationIDs(ctx, clusterRelationName)
	if err != nil {
		return err
	}

	for _, relationID := range relationIDs {
		err = c.hook.RelationSetApp(ctx, relationID, map[string]string{
			configPayloadKey: content,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// adoptLeaderConfig copies the leader's published configuration verbatim and
// marks this unit ready to serve without its own initialization.
func (c *Charm) adoptLeaderConfig(ctx context.Context, relationID string) error {
	data, err := c.localAppData(ctx, relationID)
	if err != nil {
		return err
	}

	payload := data[configPayloadKey]
	if payload == "" || !c.state.Nextcloud.Fetched {
		err = c.hook.StatusSet(ctx, hookenv.StatusWaiting, "Waiting for leader configuration.")
		if err != nil {
			return err
		}

		return ErrDefer
	}

	err = nextcloud.WriteConfig(c.ConfigPath, payload)
	if err != nil {
		return err
	}

	err = nextcloud.EnsureDataDir(c.state.Nextcloud.DataDir)
	if err != nil {
		return err
	}

	return c.state.AdoptPeerConfiguration()
}

// peerAddresses collects the advertised addresses of all peers on a relation.
func (c *Charm) peerAddresses(ctx context.Context, relationID string) ([]string, error) {
	units, err := c.hook.RelationUnits(ctx, relationID)
	if err != nil {
		return nil, err
	}

	sort.Strings(units)

	var addresses []string

	for _, unit := range units {
		values, err := c.hook.RelationGet(ctx, relationID, unit)
		if err != nil {
			return nil, err
		}

		address := values["ingress-address"]
		if address == "" {
			address = values["private-address"]
		}

		if address != "" {
			addresses = append(addresses, address)
		}
	}

	return addresses, nil
}
