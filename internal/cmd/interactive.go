package cmd

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"

	"golang.org/x/term"
)

// ClientInteractive puts the local terminal into raw mode and forwards every
// keystroke to the server: printable characters are typed, named keys are
// tapped, ctrl-letter chords become combos.
type ClientInteractive struct {
	HoldMs int `help:"How long each forwarded key stays down, in milliseconds (0 uses the server default)"`
}

func (ci *ClientInteractive) Run(c *Client) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("interactive mode needs a terminal on stdin")
	}

	api, err := c.api()
	if err != nil {
		return err
	}
	if _, err := api.Ping(); err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	// Raw mode swallows the usual line discipline; \r\n keeps output sane.
	fmt.Printf("Forwarding keystrokes to %s. Press ctrl-q to quit.\r\n", c.Addr)

	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		input := buf[:n]
		for len(input) > 0 {
			ks, consumed := decodeKeystroke(input)
			input = input[consumed:]
			if ks.quit {
				fmt.Print("\r\n")
				return nil
			}
			if err := ci.forward(api, ks); err != nil {
				// A rejected keystroke is not fatal; show it and keep going.
				fmt.Printf("\r\n%v\r\n", err)
			}
		}
	}
}

func (ci *ClientInteractive) forward(api clientAPI, ks keystroke) error {
	switch {
	case ks.char != "":
		_, err := api.TypeText(apitypes.TypeRequest{Text: ks.char})
		return err
	case ks.combo != "":
		_, err := api.Combo(ks.combo)
		return err
	case ks.key != "":
		_, err := api.TapKey(ks.key, ci.HoldMs)
		return err
	}
	return nil
}

// clientAPI is the slice of the API client interactive forwarding needs.
type clientAPI interface {
	TypeText(req apitypes.TypeRequest) (*apitypes.TypeResponse, error)
	Combo(combo string) (*apitypes.ComboResponse, error)
	TapKey(key string, holdMs int) (*apitypes.KeyResponse, error)
}

type keystroke struct {
	key   string // named key to tap
	combo string // modifier combination to press
	char  string // literal character to type
	quit  bool
}

// vt100Keys maps the final byte of a CSI arrow/navigation sequence.
var vt100Keys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
}

// tildeKeys maps "ESC [ <n> ~" sequences.
var tildeKeys = map[byte]string{
	'1': "home",
	'2': "insert",
	'3': "delete",
	'4': "end",
	'5': "pageup",
	'6': "pagedown",
}

// decodeKeystroke reads one keystroke from the front of b and returns it with
// the number of bytes consumed. Unknown escape sequences decode to nothing.
func decodeKeystroke(b []byte) (keystroke, int) {
	switch {
	case b[0] == 0x1b:
		return decodeEscape(b)
	case b[0] == 0x11 || b[0] == 0x03: // ctrl-q, ctrl-c
		return keystroke{quit: true}, 1
	case b[0] == '\r' || b[0] == '\n':
		return keystroke{key: "enter"}, 1
	case b[0] == '\t':
		return keystroke{key: "tab"}, 1
	case b[0] == 0x7f || b[0] == 0x08:
		return keystroke{key: "backspace"}, 1
	case b[0] == ' ':
		return keystroke{key: "space"}, 1
	case b[0] < 0x20: // remaining ctrl-letter chords
		letter := b[0] + 'a' - 1
		if letter >= 'a' && letter <= 'z' {
			return keystroke{combo: "ctrl+" + string(rune(letter))}, 1
		}
		return keystroke{}, 1
	default:
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return keystroke{}, 1
		}
		return keystroke{char: string(r)}, size
	}
}

func decodeEscape(b []byte) (keystroke, int) {
	if len(b) == 1 {
		return keystroke{key: "esc"}, 1
	}
	switch b[1] {
	case '[':
		if len(b) >= 3 {
			if name, ok := vt100Keys[b[2]]; ok {
				return keystroke{key: name}, 3
			}
			if len(b) >= 4 && b[3] == '~' {
				if name, ok := tildeKeys[b[2]]; ok {
					return keystroke{key: name}, 4
				}
				return keystroke{}, 4
			}
		}
		// Unrecognized CSI; drop the rest of the chunk rather than typing it.
		return keystroke{}, len(b)
	case 'O':
		if len(b) >= 3 && b[2] >= 'P' && b[2] <= 'S' {
			return keystroke{key: fmt.Sprintf("f%d", b[2]-'P'+1)}, 3
		}
		return keystroke{}, len(b)
	default:
		return keystroke{key: "esc"}, 1
	}
}
