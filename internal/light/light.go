// Package light drives a sysfs LED as a completion beacon. The server
// command points a Beacon at the engine event stream; a completed sequence
// blinks the LED so a pad without a display still confirms the macro fired.
// LED failures are logged and swallowed, they never reach the engine.
package light

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

const ledClassDir = "/sys/class/leds"

// Config describes the beacon. An empty LED name disables it.
type Config struct {
	LED     string        `help:"Name of the sysfs LED to flash when a sequence completes (empty disables the beacon)" env:"STRATAPAD_LED"`
	Flashes int           `help:"Flashes per completed sequence" default:"3" env:"STRATAPAD_LED_FLASHES"`
	OnTime  time.Duration `help:"LED on time per flash" default:"120ms" env:"STRATAPAD_LED_ON_TIME"`
	OffTime time.Duration `help:"LED off time between flashes" default:"80ms" env:"STRATAPAD_LED_OFF_TIME"`
}

// Beacon flashes one LED. It owns no goroutine of its own; the caller runs
// Watch on the event channel it subscribed.
type Beacon struct {
	brightnessPath string
	flashes        int
	onTime         time.Duration
	offTime        time.Duration
	logger         *slog.Logger
}

// New returns a Beacon for the configured LED, or nil when no LED is set.
func New(cfg Config, logger *slog.Logger) *Beacon {
	if cfg.LED == "" {
		return nil
	}
	if cfg.Flashes <= 0 {
		cfg.Flashes = 3
	}
	if cfg.OnTime <= 0 {
		cfg.OnTime = 120 * time.Millisecond
	}
	if cfg.OffTime <= 0 {
		cfg.OffTime = 80 * time.Millisecond
	}
	return &Beacon{
		brightnessPath: filepath.Join(ledClassDir, cfg.LED, "brightness"),
		flashes:        cfg.Flashes,
		onTime:         cfg.OnTime,
		offTime:        cfg.OffTime,
		logger:         logger.With("led", cfg.LED),
	}
}

// Watch consumes engine events until the channel closes, flashing on every
// completed sequence. Meant to run on its own goroutine.
func (b *Beacon) Watch(events <-chan keyboard.Event) {
	for ev := range events {
		if ev.Kind != keyboard.EventSequenceCompleted {
			continue
		}
		b.Flash()
	}
}

// Flash runs one blink pattern synchronously.
func (b *Beacon) Flash() {
	for i := 0; i < b.flashes; i++ {
		if err := b.set(true); err != nil {
			b.logger.Warn("beacon LED write failed", "error", err)
			return
		}
		time.Sleep(b.onTime)
		if err := b.set(false); err != nil {
			b.logger.Warn("beacon LED write failed", "error", err)
			return
		}
		if i < b.flashes-1 {
			time.Sleep(b.offTime)
		}
	}
}

func (b *Beacon) set(on bool) error {
	value := "0"
	if on {
		value = "1"
	}
	if err := os.WriteFile(b.brightnessPath, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.brightnessPath, err)
	}
	return nil
}
