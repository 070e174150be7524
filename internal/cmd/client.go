package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"syscall"

	"github.com/zane-programs/helldivers-stratagem-pad/apiclient"
	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/configpaths"

	"golang.org/x/term"
)

// Client groups the subcommands that talk to a running stratapad server.
type Client struct {
	Addr        string `help:"Address of the stratapad API server" default:"localhost:4242" env:"STRATAPAD_ADDR"`
	Password    string `help:"API password; read from the key file when empty" env:"STRATAPAD_PASSWORD"`
	AskPassword bool   `help:"Prompt for the API password instead of reading the key file"`

	Ping        ClientPing        `cmd:"" help:"Check the server is reachable"`
	Status      ClientStatus      `cmd:"" help:"Show device connection state and held keys"`
	Connect     ClientConnect     `cmd:"" help:"Open the HID gadget device"`
	Disconnect  ClientDisconnect  `cmd:"" help:"Release all keys and close the HID gadget device"`
	Press       ClientPress       `cmd:"" help:"Press a key, optionally with modifiers"`
	Tap         ClientTap         `cmd:"" help:"Tap a key without disturbing held keys"`
	Hold        ClientHold        `cmd:"" help:"Hold a key or modifier down"`
	Release     ClientRelease     `cmd:"" help:"Release a held key or modifier"`
	ReleaseAll  ClientReleaseAll  `cmd:"" name:"release-all" help:"Release everything currently held"`
	Combo       ClientCombo       `cmd:"" help:"Press a modifier combination like ctrl+alt+delete"`
	Type        ClientType        `cmd:"" help:"Type a text string"`
	Seq         ClientSeq         `cmd:"" help:"Run a sequence of keys, combos, text and delays"`
	Report      ClientReport      `cmd:"" help:"Send a raw 8-byte boot report"`
	Keys        ClientKeys        `cmd:"" help:"List every key and modifier name the server accepts"`
	Watch       ClientWatch       `cmd:"" help:"Stream engine events as JSON lines"`
	Interactive ClientInteractive `cmd:"" help:"Forward keystrokes from this terminal to the server"`
}

// api builds the transport for one command invocation.
func (c *Client) api() (*apiclient.Client, error) {
	pwd, err := c.resolvePassword()
	if err != nil {
		return nil, err
	}
	if pwd == "" {
		return apiclient.New(c.Addr), nil
	}
	return apiclient.NewWithPassword(c.Addr, pwd), nil
}

func (c *Client) resolvePassword() (string, error) {
	if c.AskPassword {
		fmt.Fprint(os.Stderr, "Password: ")
		pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(pwd)), nil
	}
	if c.Password != "" {
		return c.Password, nil
	}
	// Fall back to the key file the server writes on first start. A missing
	// file means an unsecured server; connect plain.
	if dir, err := configpaths.DefaultConfigDir(); err == nil {
		if pwd, err := os.ReadFile(path.Join(dir, keyFileName)); err == nil {
			return strings.TrimSpace(string(pwd)), nil
		}
	}
	return "", nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

type ClientPing struct{}

func (ClientPing) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.Ping()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientStatus struct{}

func (ClientStatus) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.Status()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientConnect struct{}

func (ClientConnect) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.Connect()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientDisconnect struct{}

func (ClientDisconnect) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.Disconnect()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientPress struct {
	Key       string   `arg:"" help:"Key name, e.g. a, f4, enter"`
	Modifiers []string `help:"Modifiers held for this press" short:"m"`
	HoldMs    int      `help:"How long the key stays down, in milliseconds (0 uses the server default)"`
	NoRelease bool     `help:"Leave the key and modifiers held instead of releasing them"`
}

func (p *ClientPress) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	req := apitypes.PressRequest{Key: p.Key, Modifiers: p.Modifiers, HoldMs: p.HoldMs}
	if p.NoRelease {
		autoRelease := false
		req.AutoRelease = &autoRelease
	}
	res, err := api.PressKey(req)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientTap struct {
	Key    string `arg:"" help:"Key name to tap"`
	HoldMs int    `help:"How long the key stays down, in milliseconds (0 uses the server default)"`
}

func (t *ClientTap) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.TapKey(t.Key, t.HoldMs)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientHold struct {
	Key string `arg:"" help:"Key or modifier name to hold down"`
}

func (h *ClientHold) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.HoldKey(h.Key)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientRelease struct {
	Key string `arg:"" help:"Key or modifier name to release"`
}

func (r *ClientRelease) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.ReleaseKey(r.Key)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientReleaseAll struct{}

func (ClientReleaseAll) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.ReleaseAll()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientCombo struct {
	Combo string `arg:"" help:"Combination like ctrl+shift+esc"`
}

func (cb *ClientCombo) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.Combo(cb.Combo)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientType struct {
	Text      string `arg:"" help:"Text to type"`
	DelayMs   int    `help:"Delay between characters, in milliseconds (0 uses the server default)"`
	Lowercase bool   `help:"Lowercase the text before typing instead of shifting uppercase characters"`
}

func (t *ClientType) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	req := apitypes.TypeRequest{Text: t.Text, DelayMs: t.DelayMs}
	if t.Lowercase {
		preserveCase := false
		req.PreserveCase = &preserveCase
	}
	res, err := api.TypeText(req)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientSeq struct {
	Steps   []string `arg:"" help:"Steps in order: key names, combos (ctrl+a), text:<string>, wait:<ms>, release"`
	DelayMs int      `help:"Extra delay inserted between steps, in milliseconds"`
}

func (s *ClientSeq) Run(c *Client) error {
	actions, err := parseSequenceSteps(s.Steps, s.DelayMs)
	if err != nil {
		return err
	}
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.RunSequence(actions)
	if err != nil {
		return err
	}
	return printJSON(res)
}

// parseSequenceSteps turns CLI tokens into sequence actions. "wait:<ms>"
// becomes a delay, "text:<string>" types, "release" clears held state,
// everything else is a key or "+"-combination.
func parseSequenceSteps(steps []string, betweenMs int) ([]apitypes.SequenceAction, error) {
	actions := make([]apitypes.SequenceAction, 0, len(steps))
	for i, step := range steps {
		switch {
		case strings.HasPrefix(step, "wait:"):
			ms, err := strconv.Atoi(strings.TrimPrefix(step, "wait:"))
			if err != nil || ms <= 0 {
				return nil, fmt.Errorf("step %d: wait wants a positive millisecond count, got %q", i, step)
			}
			actions = append(actions, apitypes.SequenceAction{Type: "delay", DelayMs: ms})
		case strings.HasPrefix(step, "text:"):
			text := strings.TrimPrefix(step, "text:")
			if text == "" {
				return nil, fmt.Errorf("step %d: text step is empty", i)
			}
			actions = append(actions, apitypes.SequenceAction{Type: "text", Text: text})
		case step == "release":
			actions = append(actions, apitypes.SequenceAction{Type: "releaseAll"})
		case step == "":
			return nil, fmt.Errorf("step %d: empty step", i)
		default:
			actions = append(actions, apitypes.SequenceAction{Type: "keys", Keys: step})
		}
		if betweenMs > 0 && i < len(steps)-1 {
			actions = append(actions, apitypes.SequenceAction{Type: "delay", DelayMs: betweenMs})
		}
	}
	return actions, nil
}

type ClientReport struct {
	Mask uint8 `help:"Modifier bitmask byte"`
	Keys []int `arg:"" optional:"" help:"Up to six HID usage codes"`
}

func (r *ClientReport) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.SendReport(r.Mask, r.Keys)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientKeys struct{}

func (ClientKeys) Run(c *Client) error {
	api, err := c.api()
	if err != nil {
		return err
	}
	res, err := api.KeysList()
	if err != nil {
		return err
	}
	return printJSON(res)
}

type ClientWatch struct{}

func (ClientWatch) Run(c *Client, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := c.api()
	if err != nil {
		return err
	}
	stream, err := api.Watch(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	logger.Info("Watching engine events", "addr", c.Addr)
	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-stream.Events():
			if !ok {
				return stream.Err()
			}
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
	}
}
