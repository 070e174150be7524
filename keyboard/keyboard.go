// Package keyboard emulates a USB HID boot keyboard on top of a Linux
// USB gadget device node.
//
// The engine tracks which modifiers and keys are currently held, builds
// 8-byte boot-protocol reports from that state, and writes them to the
// gadget device. All operations are safe for concurrent use; each one holds
// the engine lock for its full duration, including hold and settle waits, so
// concurrent callers cannot interleave reports.
package keyboard

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/hidg"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/log"
	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

// Engine defaults, used for zero Config fields.
const (
	DefaultDevicePath = "/dev/hidg0"
	DefaultHoldTime   = 45 * time.Millisecond
	DefaultTypeDelay  = 15 * time.Millisecond
	DefaultSettleTime = 5 * time.Millisecond
)

// eventBacklog is the event channel capacity; events beyond it are dropped
// rather than blocking an operation.
const eventBacklog = 64

// Config controls the engine's device path and timing behavior.
type Config struct {
	DevicePath  string        `help:"Path to the HID gadget device node." default:"/dev/hidg0" env:"STRATAPAD_DEVICE"`
	KeyHoldTime time.Duration `help:"How long a pressed key stays down." default:"45ms" env:"STRATAPAD_HOLD_TIME"`
	TypeDelay   time.Duration `help:"Delay between typed characters." default:"15ms" env:"STRATAPAD_TYPE_DELAY"`
	SettleTime  time.Duration `help:"Pause after each press completes." default:"5ms" env:"STRATAPAD_SETTLE_TIME"`
	AutoRelease bool          `help:"Release all keys after each press unless the request says otherwise." default:"true" env:"STRATAPAD_AUTO_RELEASE"`

	// Clock and OpenDevice are seams for tests, not flags.
	Clock      Clock                                  `kong:"-"`
	OpenDevice func(path string) (hidg.Device, error) `kong:"-"`
}

func (c Config) withDefaults() Config {
	if c.DevicePath == "" {
		c.DevicePath = DefaultDevicePath
	}
	if c.KeyHoldTime <= 0 {
		c.KeyHoldTime = DefaultHoldTime
	}
	if c.TypeDelay <= 0 {
		c.TypeDelay = DefaultTypeDelay
	}
	if c.SettleTime <= 0 {
		c.SettleTime = DefaultSettleTime
	}
	if c.Clock == nil {
		c.Clock = wallClock{}
	}
	if c.OpenDevice == nil {
		c.OpenDevice = hidg.Open
	}
	return c
}

// Keyboard is the emulation engine. The zero value is not usable; construct
// with New.
type Keyboard struct {
	config    *Config
	table     *keymap.Table
	logger    *slog.Logger
	rawLogger log.ReportLogger

	mu       sync.Mutex
	dev      hidg.Device
	heldMods keymap.Modifier
	heldKeys []keymap.KeyCode

	events  chan Event
	dropped atomic.Uint64
}

// New creates an engine. A nil table uses the built-in key map; nil logger
// and rawLogger disable the respective output.
func New(config Config, table *keymap.Table, logger *slog.Logger, rawLogger log.ReportLogger) *Keyboard {
	if table == nil {
		table = keymap.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rawLogger == nil {
		rawLogger = log.NewReport(nil)
	}
	config = config.withDefaults()
	return &Keyboard{
		config:    &config,
		table:     table,
		logger:    logger,
		rawLogger: rawLogger,
		events:    make(chan Event, eventBacklog),
	}
}

// Connect opens the gadget device node. Connecting while already connected
// is a no-op.
func (k *Keyboard) Connect() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.dev != nil {
		k.logger.Debug("already connected", "device", k.config.DevicePath)
		return nil
	}

	dev, err := k.config.OpenDevice(k.config.DevicePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	k.dev = dev
	k.logger.Info("hid gadget connected", "device", k.config.DevicePath)
	k.emit(Event{Kind: EventConnected, Device: k.config.DevicePath})
	return nil
}

// Disconnect releases all keys, closes the device and clears held state.
// Failures while releasing or closing are logged and emitted as error
// events but never surfaced; disconnect always completes.
func (k *Keyboard) Disconnect() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.dev == nil {
		return
	}

	// The host must not be left with keys latched down.
	k.heldMods = 0
	k.heldKeys = nil
	if err := k.writeReport(0, nil); err != nil {
		k.logger.Warn("release on disconnect failed", "error", err)
	}

	if err := k.dev.Close(); err != nil {
		k.logger.Warn("device close failed", "error", err)
		k.emit(Event{Kind: EventError, Err: err.Error()})
	}
	k.dev = nil
	k.logger.Info("hid gadget disconnected", "device", k.config.DevicePath)
	k.emit(Event{Kind: EventDisconnected, Device: k.config.DevicePath})
}

// Connected reports whether the gadget device is open.
func (k *Keyboard) Connected() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.dev != nil
}

// DevicePath returns the configured gadget device node path.
func (k *Keyboard) DevicePath() string {
	return k.config.DevicePath
}

// Held returns the current modifier mask and a copy of the held key codes.
func (k *Keyboard) Held() (keymap.Modifier, []keymap.KeyCode) {
	k.mu.Lock()
	defer k.mu.Unlock()
	keys := make([]keymap.KeyCode, len(k.heldKeys))
	copy(keys, k.heldKeys)
	return k.heldMods, keys
}

// HeldNames returns the held modifiers and keys as canonical names, for
// status reporting.
func (k *Keyboard) HeldNames() (mods, keys []string) {
	mask, codes := k.Held()
	mods = k.table.ModifierNames(mask)
	keys = make([]string, 0, len(codes))
	for _, c := range codes {
		keys = append(keys, k.table.KeyName(c))
	}
	return mods, keys
}

// Catalog lists the keys and modifiers the engine's table can resolve.
func (k *Keyboard) Catalog() keymap.Catalog {
	return k.table.Catalog()
}

// SendReport writes a raw report built from the given mask and key codes.
// Held state is not consulted or changed.
func (k *Keyboard) SendReport(mask keymap.Modifier, keys []keymap.KeyCode) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.writeReport(mask, keys)
}

// ReleaseAll clears all held modifiers and keys and sends an empty report.
func (k *Keyboard) ReleaseAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.releaseAll()
}

// Events returns the engine's event stream. Events are dropped, not
// blocking, when the channel is full; DroppedEvents counts them.
func (k *Keyboard) Events() <-chan Event {
	return k.events
}

// DroppedEvents returns how many events were discarded because no consumer
// kept up with the stream.
func (k *Keyboard) DroppedEvents() uint64 {
	return k.dropped.Load()
}

func (k *Keyboard) emit(ev Event) {
	select {
	case k.events <- ev:
	default:
		k.dropped.Add(1)
	}
}

// releaseAll writes the empty report and resets held state. Caller holds the
// lock. State stays untouched when the write fails.
func (k *Keyboard) releaseAll() error {
	if err := k.writeReport(0, nil); err != nil {
		return err
	}
	k.heldMods = 0
	k.heldKeys = nil
	return nil
}

// writeReport is the single path every report takes to the device. Caller
// holds the lock. Held state is never modified here; callers commit state
// only after a successful write.
func (k *Keyboard) writeReport(mask keymap.Modifier, keys []keymap.KeyCode) error {
	if k.dev == nil {
		return ErrNotConnected
	}
	report, err := BuildReport(mask, keys)
	if err != nil {
		return err
	}
	if _, err := k.dev.Write(report[:]); err != nil {
		k.logger.Error("report write failed", "device", k.config.DevicePath, "error", err)
		k.emit(Event{Kind: EventError, Err: err.Error()})
		return fmt.Errorf("%w: write: %v", ErrDeviceUnavailable, err)
	}
	k.rawLogger.Log(report[:])
	k.emit(Event{
		Kind:   EventReportSent,
		Mask:   mask,
		Keys:   keyInts(keys),
		Report: report.Hex(),
	})
	return nil
}

func keyInts(keys []keymap.KeyCode) []int {
	if len(keys) == 0 {
		return nil
	}
	out := make([]int, len(keys))
	for i, c := range keys {
		out[i] = int(c)
	}
	return out
}
