// Package occ wraps the Nextcloud administration CLI.
//
// All commands run as the www-data user against the occ entry point inside
// the Nextcloud installation directory.
package occ

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lxc/incus/v6/shared/subprocess"
)

// DefaultRoot is the default Nextcloud installation directory.
const DefaultRoot = "/var/www/nextcloud"

// Client runs occ commands against one Nextcloud installation.
type Client struct {
	// Root is the Nextcloud installation directory.
	Root string
}

// NewClient returns a Client for the default installation directory.
func NewClient() *Client {
	return &Client{Root: DefaultRoot}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := []string{"-u", "www-data", "php", filepath.Join(c.Root, "occ")}
	cmd = append(cmd, args...)

	output, err := subprocess.RunCommandContext(ctx, "sudo", cmd...)
	if err != nil {
		return "", fmt.Errorf("occ %s: %w", args[0], err)
	}

	return output, nil
}

// InstallOptions holds the parameters for first time initialization.
type InstallOptions struct {
	DatabaseType     string
	DatabaseName     string
	DatabaseHost     string
	DatabaseUser     string
	DatabasePassword string
	AdminUser        string
	AdminPassword    string
	DataDir          string
}

// MaintenanceInstall initializes the Nextcloud database schema and admin account.
func (c *Client) MaintenanceInstall(ctx context.Context, opts InstallOptions) error {
	_, err := c.run(ctx, "maintenance:install",
		"--database", opts.DatabaseType,
		"--database-name", opts.DatabaseName,
		"--database-host", opts.DatabaseHost,
		"--database-user", opts.DatabaseUser,
		"--database-pass", opts.DatabasePassword,
		"--admin-user", opts.AdminUser,
		"--admin-pass", opts.AdminPassword,
		"--data-dir", opts.DataDir)

	return err
}

// MaintenanceMode switches maintenance mode on or off, returning the CLI output.
func (c *Client) MaintenanceMode(ctx context.Context, enable bool) (string, error) {
	flag := "--off"
	if enable {
		flag = "--on"
	}

	return c.run(ctx, "maintenance:mode", flag)
}

// AddMissingIndices creates any database indices Nextcloud reports as missing.
func (c *Client) AddMissingIndices(ctx context.Context) (string, error) {
	return c.run(ctx, "db:add-missing-indices")
}

// ConvertFilecacheBigint converts the filecache columns to bigint.
func (c *Client) ConvertFilecacheBigint(ctx context.Context) (string, error) {
	return c.run(ctx, "db:convert-filecache-bigint", "--no-interaction")
}

// SystemSet writes a single system configuration value into config.php.
func (c *Client) SystemSet(ctx context.Context, key string, value string) error {
	_, err := c.run(ctx, "config:system:set", key, "--value="+value)

	return err
}

// TrustedDomains returns the currently configured trusted domains.
func (c *Client) TrustedDomains(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "config:system:get", "trusted_domains")
	if err != nil {
		return nil, err
	}

	return strings.Fields(output), nil
}

// AddTrustedDomain sets the trusted domain at the given index.
func (c *Client) AddTrustedDomain(ctx context.Context, domain string, index int) error {
	_, err := c.run(ctx, "config:system:set", "trusted_domains", strconv.Itoa(index), "--value="+domain)

	return err
}

// DeleteTrustedDomains removes all trusted domains from config.php.
func (c *Client) DeleteTrustedDomains(ctx context.Context) error {
	_, err := c.run(ctx, "config:system:delete", "trusted_domains")

	return err
}

// SetTrustedDomains replaces the trusted domains with the given list,
// reindexed from zero.
func (c *Client) SetTrustedDomains(ctx context.Context, domains []string) error {
	err := c.DeleteTrustedDomains(ctx)
	if err != nil {
		return err
	}

	for index, domain := range domains {
		err = c.AddTrustedDomain(ctx, domain, index)
		if err != nil {
			return err
		}
	}

	return nil
}

// UpdateTrustedDomainsPeerAddresses keeps the first two configured entries
// (localhost and the external hostname) and replaces the remainder with the
// given peer addresses.
func (c *Client) UpdateTrustedDomainsPeerAddresses(ctx context.Context, addresses []string) error {
	current, err := c.TrustedDomains(ctx)
	if err != nil {
		return err
	}

	if len(current) > 2 {
		current = current[:2]
	}

	return c.SetTrustedDomains(ctx, append(current, addresses...))
}
