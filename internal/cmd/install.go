package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Install provisions the configfs USB gadget and registers stratapad as a
// systemd service so the pad comes up on boot.
type Install struct {
	GadgetOnly bool   `help:"Only provision the configfs gadget tree; skip the systemd unit"`
	SkipGadget bool   `help:"Only install the systemd unit; skip gadget provisioning"`
	UDC        string `help:"USB device controller to bind (first available when empty)" env:"STRATAPAD_UDC"`
}

// Run is called by Kong when the install command is executed.
func (i *Install) Run(logger *slog.Logger) error {
	return install(logger, i)
}

// Uninstall removes the systemd service and tears the USB gadget down.
type Uninstall struct {
	KeepGadget bool `help:"Leave the configfs gadget tree in place"`
}

// Run is called by Kong when the uninstall command is executed.
func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger, u)
}

func currentExecutable() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}
	return exePath, nil
}
