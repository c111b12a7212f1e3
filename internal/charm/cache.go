package charm

import (
	"context"
	"log/slog"
)

// onCacheChanged records the cache backend published by a redis unit. The
// relation carries hostname and port in the remote unit databag.
func (c *Charm) onCacheChanged(ctx context.Context, relationID string, remoteUnit string) error {
	if remoteUnit == "" {
		return nil
	}

	values, err := c.hook.RelationGet(ctx, relationID, remoteUnit)
	if err != nil {
		return err
	}

	host := values["hostname"]
	if host == "" {
		return nil
	}

	slog.Info("Cache backend available", "host", host, "port", values["port"])
	c.state.SetCache(host, values["port"])

	return nil
}

// onCacheBroken drops the stored cache backend address.
func (c *Charm) onCacheBroken(_ context.Context) error {
	c.state.SetCache("", "")

	return nil
}
