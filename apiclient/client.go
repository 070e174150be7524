package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apitypes "github.com/zane-programs/helldivers-stratagem-pad/apitypes"
)

// Client provides a high-level interface to the stratapad API, handling
// request formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client using the internal low-level Transport.
// The addr parameter specifies the TCP address (host:port) of the stratapad API server.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the stratapad server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	const path = "ping"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw)
}

// Status reports device connectivity and the currently held modifiers and keys.
func (c *Client) Status() (*apitypes.StatusResponse, error) {
	return c.StatusCtx(context.Background())
}

func (c *Client) StatusCtx(ctx context.Context) (*apitypes.StatusResponse, error) {
	const path = "status"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.StatusResponse](raw)
}

// Connect opens the gadget device on the server. Connecting while already
// connected succeeds without reopening.
func (c *Client) Connect() (*apitypes.ConnectResponse, error) {
	return c.ConnectCtx(context.Background())
}

func (c *Client) ConnectCtx(ctx context.Context) (*apitypes.ConnectResponse, error) {
	const path = "connect"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.ConnectResponse](raw)
}

// Disconnect releases all keys and closes the gadget device on the server.
// Disconnecting never fails.
func (c *Client) Disconnect() (*apitypes.DisconnectResponse, error) {
	return c.DisconnectCtx(context.Background())
}

func (c *Client) DisconnectCtx(ctx context.Context) (*apitypes.DisconnectResponse, error) {
	const path = "disconnect"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DisconnectResponse](raw)
}

// HoldKey latches a key or modifier down until released.
// Returns the held state after the operation.
func (c *Client) HoldKey(key string) (*apitypes.KeyResponse, error) {
	return c.HoldKeyCtx(context.Background(), key)
}

func (c *Client) HoldKeyCtx(ctx context.Context, key string) (*apitypes.KeyResponse, error) {
	const path = "key/hold"
	raw, err := c.transport.DoCtx(ctx, path, key, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeyResponse](raw)
}

// ReleaseKey lifts a held key or modifier. Releasing a key that is not held
// succeeds.
func (c *Client) ReleaseKey(key string) (*apitypes.KeyResponse, error) {
	return c.ReleaseKeyCtx(context.Background(), key)
}

func (c *Client) ReleaseKeyCtx(ctx context.Context, key string) (*apitypes.KeyResponse, error) {
	const path = "key/release"
	raw, err := c.transport.DoCtx(ctx, path, key, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeyResponse](raw)
}

// PressKey performs a full press: fresh modifier mask, hold, then
// auto-release or fold into the held state, as the request specifies.
func (c *Client) PressKey(req apitypes.PressRequest) (*apitypes.KeyResponse, error) {
	return c.PressKeyCtx(context.Background(), req)
}

func (c *Client) PressKeyCtx(ctx context.Context, req apitypes.PressRequest) (*apitypes.KeyResponse, error) {
	const path = "key/press"
	payloadBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal press request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeyResponse](raw)
}

// TapKey presses a key on top of the currently held keys and modifiers,
// restoring the held state afterwards. A holdMs of zero uses the server
// default hold time.
func (c *Client) TapKey(key string, holdMs int) (*apitypes.KeyResponse, error) {
	return c.TapKeyCtx(context.Background(), key, holdMs)
}

func (c *Client) TapKeyCtx(ctx context.Context, key string, holdMs int) (*apitypes.KeyResponse, error) {
	const path = "key/tap"
	payloadBytes, err := json.Marshal(apitypes.TapRequest{Key: key, HoldMs: holdMs})
	if err != nil {
		return nil, fmt.Errorf("marshal tap request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeyResponse](raw)
}

// ReleaseAll clears all held keys and modifiers and sends the empty report.
func (c *Client) ReleaseAll() (*apitypes.ReleaseAllResponse, error) {
	return c.ReleaseAllCtx(context.Background())
}

func (c *Client) ReleaseAllCtx(ctx context.Context) (*apitypes.ReleaseAllResponse, error) {
	const path = "release-all"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.ReleaseAllResponse](raw)
}

// Combo presses a "+"-separated combination like "ctrl+shift+tab".
func (c *Client) Combo(combo string) (*apitypes.ComboResponse, error) {
	return c.ComboCtx(context.Background(), combo)
}

func (c *Client) ComboCtx(ctx context.Context, combo string) (*apitypes.ComboResponse, error) {
	const path = "combo"
	raw, err := c.transport.DoCtx(ctx, path, combo, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.ComboResponse](raw)
}

// TypeText types free text character by character. Characters the server's
// layout cannot produce are skipped, not an error.
func (c *Client) TypeText(req apitypes.TypeRequest) (*apitypes.TypeResponse, error) {
	return c.TypeTextCtx(context.Background(), req)
}

func (c *Client) TypeTextCtx(ctx context.Context, req apitypes.TypeRequest) (*apitypes.TypeResponse, error) {
	const path = "type"
	payloadBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal type request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.TypeResponse](raw)
}

// RunSequence executes an ordered list of actions on the server. The first
// failing action aborts the rest; its index is reported in the error detail.
func (c *Client) RunSequence(actions []apitypes.SequenceAction) (*apitypes.SequenceResponse, error) {
	return c.RunSequenceCtx(context.Background(), actions)
}

func (c *Client) RunSequenceCtx(ctx context.Context, actions []apitypes.SequenceAction) (*apitypes.SequenceResponse, error) {
	const path = "sequence/run"
	payloadBytes, err := json.Marshal(apitypes.SequenceRequest{Actions: actions})
	if err != nil {
		return nil, fmt.Errorf("marshal sequence request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.SequenceResponse](raw)
}

// SendReport writes a raw boot report from a modifier mask and up to six
// usage codes. Held state on the server is not consulted or changed.
func (c *Client) SendReport(mask uint8, keys []int) (*apitypes.ReportResponse, error) {
	return c.SendReportCtx(context.Background(), mask, keys)
}

func (c *Client) SendReportCtx(ctx context.Context, mask uint8, keys []int) (*apitypes.ReportResponse, error) {
	const path = "report/send"
	payloadBytes, err := json.Marshal(apitypes.ReportRequest{Mask: mask, Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("marshal report request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.ReportResponse](raw)
}

// KeysList retrieves every key and modifier name the server resolves,
// partitioned for display.
func (c *Client) KeysList() (*apitypes.KeysResponse, error) {
	return c.KeysListCtx(context.Background())
}

func (c *Client) KeysListCtx(ctx context.Context) (*apitypes.KeysResponse, error) {
	const path = "keys/list"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeysResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
