//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zane-programs/helldivers-stratagem-pad/internal/gadget"
)

const (
	serviceName = "stratapad.service"
	servicePath = "/etc/systemd/system/stratapad.service"
)

func install(logger *slog.Logger, opts *Install) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	if !opts.SkipGadget {
		if err := gadget.Create(gadget.Config{UDC: opts.UDC}, logger); err != nil {
			return err
		}
	}
	if opts.GadgetOnly {
		return nil
	}

	unit := systemdUnitContent(exePath)
	if err := os.WriteFile(servicePath, []byte(unit), 0o644); err != nil {
		return err
	}

	steps := [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	}

	for _, args := range steps {
		if err := runSystemctl(args...); err != nil {
			return err
		}
	}

	logger.Info("stratapad systemd service installed", "path", servicePath, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger, opts *Uninstall) error {
	var errs []error

	if err := runSystemctl("stop", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := runSystemctl("disable", serviceName); err != nil {
		errs = append(errs, err)
	}

	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}

	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}

	if !opts.KeepGadget && gadget.Exists(gadget.DefaultName) {
		if err := gadget.Remove(gadget.DefaultName, logger); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("stratapad systemd service removed", "path", servicePath)
	return nil
}

// systemdUnitContent re-provisions the gadget before every start; the
// configfs tree does not survive a reboot.
func systemdUnitContent(exePath string) string {
	workingDir := filepath.Dir(exePath)
	return fmt.Sprintf(`[Unit]
Description=stratapad server
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStartPre=%q install --gadget-only
ExecStart=%q server
WorkingDirectory=%s
Restart=on-failure

[Install]
WantedBy=multi-user.target
`, exePath, exePath, workingDir)
}

func runSystemctl(args ...string) error {
	cmd := exec.Command("systemctl", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
