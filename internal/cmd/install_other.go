//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errLinuxOnly = errors.New("gadget provisioning and service install are only supported on linux")

func install(logger *slog.Logger, opts *Install) error {
	return errLinuxOnly
}

func uninstall(logger *slog.Logger, opts *Uninstall) error {
	return errLinuxOnly
}
