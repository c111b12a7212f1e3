// Package apache manages the Apache virtual host serving Nextcloud.
package apache

import (
	"context"
	"embed"
	"os"
	"text/template"

	"github.com/lxc/incus/v6/shared/subprocess"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/systemd"
)

//go:embed templates/*
var templates embed.FS

// SitePath is where the Nextcloud virtual host configuration is installed.
const SitePath = "/etc/apache2/sites-available/nextcloud.conf"

// modules is the fixed list of Apache modules Nextcloud needs enabled.
var modules = []string{"rewrite", "headers", "env", "dir", "mime"}

// SiteOptions parameterizes the rendered virtual host.
type SiteOptions struct {
	DocumentRoot string
}

// Configure renders the virtual host, enables the required modules and the
// site, then reloads Apache to pick them up.
func Configure(ctx context.Context, opts SiteOptions) error {
	err := Render(SitePath, opts)
	if err != nil {
		return err
	}

	for _, module := range modules {
		_, err = subprocess.RunCommandContext(ctx, "a2enmod", module)
		if err != nil {
			return err
		}
	}

	_, err = subprocess.RunCommandContext(ctx, "a2ensite", "nextcloud")
	if err != nil {
		return err
	}

	return systemd.ReloadUnit(ctx, "apache2")
}

// Render writes the virtual host configuration to the given path.
func Render(target string, opts SiteOptions) error {
	tmpl, err := template.ParseFS(templates, "templates/nextcloud.conf.tmpl")
	if err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}

	defer f.Close()

	return tmpl.Execute(f, opts)
}
