package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/internal/configpaths"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/light"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/log"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/auth"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/handler"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

const keyFileName = "stratapad.key.txt"

type Server struct {
	Keyboard          keyboard.Config  `embed:"" prefix:"hid."`
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	Light             light.Config     `embed:"" prefix:"light."`
	AutoConnect       bool             `help:"Open the gadget device at startup instead of waiting for a connect command" default:"true" env:"STRATAPAD_AUTO_CONNECT"`
	ConnectionTimeout time.Duration    `help:"API connection read timeout" default:"30s" env:"STRATAPAD_CONNECTION_TIMEOUT"`
}

// Run is called by Kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, rawLogger log.ReportLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

// StartServer wires the engine to the API server and blocks until ctx ends.
func (s *Server) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.ReportLogger) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout

	logger.Info("Starting stratapad server", "device", s.Keyboard.DevicePath, "addr", s.ApiServerConfig.Addr)

	if s.ApiServerConfig.Password == "" {
		pwd, err := s.resolveKeyFilePassword(logger)
		if err != nil {
			return err
		}
		s.ApiServerConfig.Password = pwd
	}

	kb := keyboard.New(s.Keyboard, keymap.New(), logger, rawLogger)

	if s.AutoConnect {
		if err := kb.Connect(); err != nil {
			logger.Warn("gadget device not ready, connect via the API once it appears",
				"device", s.Keyboard.DevicePath, "error", err)
		}
	}

	if s.ApiServerConfig.Addr == "" {
		logger.Error("API server address must be set (default :4242).")
		return fmt.Errorf("API server address must be set (default :4242)")
	}

	apiSrv := api.New(kb, s.ApiServerConfig.Addr, s.ApiServerConfig, logger)
	r := apiSrv.Router()
	r.Register("ping", handler.Ping())
	r.Register("status", handler.Status(kb))
	r.Register("connect", handler.Connect(kb))
	r.Register("disconnect", handler.Disconnect(kb))
	r.Register("key/hold", handler.KeyHold(kb))
	r.Register("key/release", handler.KeyRelease(kb))
	r.Register("key/press", handler.KeyPress(kb))
	r.Register("key/tap", handler.KeyTap(kb))
	r.Register("release-all", handler.ReleaseAll(kb))
	r.Register("combo", handler.Combo(kb))
	r.Register("type", handler.TypeText(kb))
	r.Register("sequence/run", handler.SequenceRun(kb))
	r.Register("report/send", handler.ReportSend(kb))
	r.Register("keys/list", handler.KeysList(kb))
	r.RegisterStream("events/watch", handler.EventsWatch(apiSrv.Events()))

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}

	if beacon := light.New(s.Light, logger); beacon != nil {
		events, cancel := apiSrv.Events().Subscribe()
		defer cancel()
		go beacon.Watch(events)
	}

	<-ctx.Done()
	logger.Info("Shutting down stratapad server")
	apiSrv.Close()
	kb.Disconnect()
	return nil
}

// resolveKeyFilePassword reads the persistent API password, generating and
// persisting a fresh one on first start.
func (s *Server) resolveKeyFilePassword(logger *slog.Logger) (string, error) {
	keyFileDir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve key file path: %w", err)
	}
	keyFilePath := path.Join(keyFileDir, keyFileName)
	if pwd, err := os.ReadFile(keyFilePath); err == nil {
		return strings.TrimSpace(string(pwd)), nil
	}

	newPwd, err := auth.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := os.MkdirAll(keyFileDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
		return "", fmt.Errorf("failed to write new API password to file: %w", err)
	}
	logger.Info("Generated API server password", "path", keyFilePath)
	logger.Info("-------------------------------------")
	logger.Info("Your stratapad API server password is:")
	logger.Info("-------------------------------------")
	logger.Info(newPwd)
	logger.Info("-------------------------------------")
	logger.Info("You can change this password at any time by editing the file")
	return newPwd, nil
}
