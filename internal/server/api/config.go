package api

import "time"

// ServerConfig represents the server subcommand configuration.
type ServerConfig struct {
	Addr              string        `help:"API server listen address" default:":4242" env:"STRATAPAD_API_ADDR"`
	Password          string        `help:"API password clients must present; resolved from the key file when empty" env:"STRATAPAD_API_PASSWORD"`
	ConnectionTimeout time.Duration `kong:"-"`
}
