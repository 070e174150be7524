// Package config defines the stratapad command line grammar. The struct tags
// double as the schema for config files loaded through kong's JSON/YAML/TOML
// resolvers; flags and environment variables override file values.
package config

import (
	"github.com/zane-programs/helldivers-stratagem-pad/internal/cmd"
)

// CLI is the root of the kong grammar shared by all stratapad commands.
type CLI struct {
	Log struct {
		Level   string `help:"Log level (trace, debug, info, warn, error)" enum:"trace,debug,info,warn,error" default:"info" env:"STRATAPAD_LOG_LEVEL"`
		File    string `help:"Log file path; stdout/stderr only when empty" env:"STRATAPAD_LOG_FILE"`
		RawFile string `help:"File receiving a hex line per HID report written" env:"STRATAPAD_LOG_RAW_FILE"`
	} `embed:"" prefix:"log."`

	// ConfigFile is resolved before kong parses, so the chosen file can feed
	// kong's configuration resolvers. Declared here so it shows in help.
	ConfigFile string `help:"Explicit config file path (JSON, YAML or TOML)" name:"config" env:"STRATAPAD_CONFIG"`

	Server    cmd.Server        `cmd:"" help:"Run the HID keyboard engine and its API server"`
	Client    cmd.Client        `cmd:"" help:"Drive a running stratapad server"`
	Config    cmd.ConfigCommand `cmd:"" help:"Configuration utilities"`
	Install   cmd.Install       `cmd:"" help:"Provision the USB gadget and install the systemd service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the systemd service and tear down the USB gadget"`
}
