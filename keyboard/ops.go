package keyboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

// PressOptions adjusts a single press. Zero values fall back to the engine
// config; a nil AutoRelease uses the configured default.
type PressOptions struct {
	Modifiers   []string
	HoldTime    time.Duration
	AutoRelease *bool
}

// TypeOptions adjusts text typing. A nil PreserveCase keeps the input casing.
type TypeOptions struct {
	Delay        time.Duration
	PreserveCase *bool
}

// HoldKey adds a key or modifier to the held state and sends the updated
// report. Holding an already-held modifier or key is a no-op; a seventh key
// returns ErrMaxKeys with state unchanged.
func (k *Keyboard) HoldKey(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if bit, ok := k.table.ResolveModifier(name); ok {
		mods := k.heldMods | bit
		if err := k.writeReport(mods, k.heldKeys); err != nil {
			return err
		}
		k.heldMods = mods
		k.emit(Event{Kind: EventKeyHeld, Key: name, Mask: mods})
		return nil
	}

	code, ok := k.table.ResolveKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	if containsKey(k.heldKeys, code) {
		return nil
	}
	if len(k.heldKeys) >= MaxKeys {
		return fmt.Errorf("%w: %d keys down, cannot hold %q", ErrMaxKeys, len(k.heldKeys), name)
	}

	keys := append(cloneKeys(k.heldKeys), code)
	if err := k.writeReport(k.heldMods, keys); err != nil {
		return err
	}
	k.heldKeys = keys
	k.emit(Event{Kind: EventKeyHeld, Key: name, Keys: keyInts(keys)})
	return nil
}

// ReleaseKey removes a key or modifier from the held state and re-sends the
// report. Releasing something that is not held is a no-op, not an error.
func (k *Keyboard) ReleaseKey(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if bit, ok := k.table.ResolveModifier(name); ok {
		mods := k.heldMods &^ bit
		if err := k.writeReport(mods, k.heldKeys); err != nil {
			return err
		}
		k.heldMods = mods
		k.emit(Event{Kind: EventKeyReleased, Key: name, Mask: mods})
		return nil
	}

	code, ok := k.table.ResolveKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}

	keys := removeKey(k.heldKeys, code)
	if err := k.writeReport(k.heldMods, keys); err != nil {
		return err
	}
	k.heldKeys = keys
	k.emit(Event{Kind: EventKeyReleased, Key: name, Keys: keyInts(keys)})
	return nil
}

// PressKey performs a full press-and-release of one key with an optional
// modifier mask. Unknown modifier names in the options are skipped, not
// fatal. With auto-release off, the pressed key and mask fold into the held
// state instead of being released.
func (k *Keyboard) PressKey(name string, opts PressOptions) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.press(name, opts)
}

// press implements PressKey. Caller holds the lock.
func (k *Keyboard) press(name string, opts PressOptions) error {
	code, ok := k.table.ResolveKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}

	var mask keymap.Modifier
	for _, m := range opts.Modifiers {
		bit, ok := k.table.ResolveModifier(m)
		if !ok {
			k.logger.Warn("skipping unknown modifier", "modifier", m, "key", name)
			k.emit(Event{Kind: EventCharacterSkipped, Char: m, Key: name})
			continue
		}
		mask |= bit
	}

	if err := k.writeReport(mask, []keymap.KeyCode{code}); err != nil {
		return err
	}

	hold := opts.HoldTime
	if hold <= 0 {
		hold = k.config.KeyHoldTime
	}
	k.config.Clock.Sleep(hold)

	autoRelease := k.config.AutoRelease
	if opts.AutoRelease != nil {
		autoRelease = *opts.AutoRelease
	}
	if autoRelease {
		if err := k.releaseAll(); err != nil {
			return err
		}
	} else {
		k.heldMods |= mask
		if !containsKey(k.heldKeys, code) {
			if len(k.heldKeys) < MaxKeys {
				k.heldKeys = append(k.heldKeys, code)
			} else {
				k.logger.Warn("held state full, pressed key not retained", "key", name)
			}
		}
	}
	k.config.Clock.Sleep(k.config.SettleTime)

	k.emit(Event{Kind: EventKeyPressed, Key: name, Mask: mask})
	return nil
}

// PressWithHeld taps a key while keeping the currently held keys and
// modifiers down, then restores the held state. When all six slots are
// already occupied the new key is omitted and only the held state is sent.
func (k *Keyboard) PressWithHeld(name string, holdTime time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	code, ok := k.table.ResolveKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}

	keys := cloneKeys(k.heldKeys)
	if !containsKey(keys, code) && len(keys) < MaxKeys {
		keys = append(keys, code)
	}

	if err := k.writeReport(k.heldMods, keys); err != nil {
		return err
	}
	if holdTime <= 0 {
		holdTime = k.config.KeyHoldTime
	}
	k.config.Clock.Sleep(holdTime)

	if err := k.writeReport(k.heldMods, k.heldKeys); err != nil {
		return err
	}
	k.config.Clock.Sleep(k.config.SettleTime)

	k.emit(Event{Kind: EventKeyPressed, Key: name, Mask: k.heldMods})
	return nil
}

// SendCombination parses a "+"-separated combination like "ctrl+shift+tab"
// and presses it. Every token before the last must resolve as a modifier;
// the last token is the key.
func (k *Keyboard) SendCombination(combo string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.combination(combo)
}

// combination implements SendCombination. Caller holds the lock.
func (k *Keyboard) combination(combo string) error {
	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return fmt.Errorf("%w: %q needs at least one modifier and a key", ErrInvalidCombination, combo)
	}

	mods := parts[:len(parts)-1]
	key := parts[len(parts)-1]
	for _, m := range mods {
		if !k.table.IsModifier(m) {
			return fmt.Errorf("%w: %q in %q", ErrUnknownModifier, m, combo)
		}
	}
	return k.press(key, PressOptions{Modifiers: mods})
}

// TypeText presses the keys for each character of text in order. Uppercase
// letters and shifted symbols become Shift-modified presses of their base
// key; characters with no mapping are skipped and reported via a
// characterSkipped event.
func (k *Keyboard) TypeText(text string, opts TypeOptions) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.typeText(text, opts)
}

// typeText implements TypeText. Caller holds the lock.
func (k *Keyboard) typeText(text string, opts TypeOptions) error {
	delay := opts.Delay
	if delay <= 0 {
		delay = k.config.TypeDelay
	}
	if opts.PreserveCase != nil && !*opts.PreserveCase {
		text = strings.ToLower(text)
	}

	runes := []rune(text)
	for i, r := range runes {
		var name string
		var mods []string
		if base, ok := k.table.ShiftedBase(r); ok {
			name = base
			mods = []string{"shift"}
		} else if r == ' ' {
			name = "space"
		} else if _, ok := k.table.ResolveKey(string(r)); ok {
			name = string(r)
		} else {
			k.logger.Debug("skipping untypeable character", "char", string(r))
			k.emit(Event{Kind: EventCharacterSkipped, Char: string(r)})
			continue
		}

		if err := k.press(name, PressOptions{Modifiers: mods}); err != nil {
			return err
		}
		if i < len(runes)-1 {
			k.config.Clock.Sleep(delay)
		}
	}
	return nil
}

// ActionKind discriminates sequence actions.
type ActionKind string

const (
	// ActionKeys presses a single key or a "+"-separated combination.
	ActionKeys ActionKind = "keys"
	// ActionText types free text.
	ActionText ActionKind = "text"
	// ActionDelay pauses between steps.
	ActionDelay ActionKind = "delay"
	// ActionReleaseAll clears all held keys and modifiers.
	ActionReleaseAll ActionKind = "releaseAll"
)

// Action is one step of a sequence.
type Action struct {
	Kind  ActionKind
	Keys  string
	Text  string
	Delay time.Duration
}

// RunSequence executes actions in order and stops at the first failure,
// wrapping it in a SequenceError that carries the failing index.
func (k *Keyboard) RunSequence(actions []Action) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i, a := range actions {
		var err error
		switch a.Kind {
		case ActionKeys:
			if strings.Contains(a.Keys, "+") {
				err = k.combination(a.Keys)
			} else {
				err = k.press(a.Keys, PressOptions{})
			}
		case ActionText:
			err = k.typeText(a.Text, TypeOptions{})
		case ActionDelay:
			k.config.Clock.Sleep(a.Delay)
		case ActionReleaseAll:
			err = k.releaseAll()
		default:
			err = fmt.Errorf("unknown action kind %q", a.Kind)
		}
		if err != nil {
			idx := i
			k.logger.Error("sequence aborted", "action", i, "error", err)
			k.emit(Event{Kind: EventSequenceError, Action: &idx, Err: err.Error()})
			return &SequenceError{Index: i, Err: err}
		}
	}

	k.emit(Event{Kind: EventSequenceCompleted, Count: len(actions)})
	return nil
}

func containsKey(keys []keymap.KeyCode, code keymap.KeyCode) bool {
	for _, c := range keys {
		if c == code {
			return true
		}
	}
	return false
}

func removeKey(keys []keymap.KeyCode, code keymap.KeyCode) []keymap.KeyCode {
	out := make([]keymap.KeyCode, 0, len(keys))
	for _, c := range keys {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}

func cloneKeys(keys []keymap.KeyCode) []keymap.KeyCode {
	out := make([]keymap.KeyCode, len(keys))
	copy(out, keys)
	return out
}
