// Package php manages the Nextcloud specific PHP module configuration.
//
// A dedicated mods-available entry is rendered instead of touching the
// system wide php.ini, which other packages may rewrite.
package php

import (
	"context"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"text/template"

	"github.com/lxc/incus/v6/shared/subprocess"
)

//go:embed templates/*
var templates embed.FS

// Options holds the operator tunable PHP limits.
type Options struct {
	MaxFileUploads    string
	UploadMaxFilesize string
	PostMaxSize       string
	MemoryLimit       string
}

// ErrNoPHP is returned when no PHP installation can be located.
var ErrNoPHP = errors.New("no PHP mods-available directory found")

// ModsAvailableDir locates the mods-available directory of the installed PHP.
func ModsAvailableDir() (string, error) {
	matches, err := filepath.Glob("/etc/php/*/mods-available")
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return "", ErrNoPHP
	}

	return matches[0], nil
}

// Configure renders the nextcloud.ini module configuration and enables it.
func Configure(ctx context.Context, opts Options) error {
	dir, err := ModsAvailableDir()
	if err != nil {
		return err
	}

	err = Render(filepath.Join(dir, "nextcloud.ini"), opts)
	if err != nil {
		return err
	}

	_, err = subprocess.RunCommandContext(ctx, "phpenmod", "nextcloud")

	return err
}

// Render writes the nextcloud.ini module configuration to the given path.
func Render(target string, opts Options) error {
	tmpl, err := template.ParseFS(templates, "templates/nextcloud.ini.tmpl")
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
