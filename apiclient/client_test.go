package apiclient_test

import (
	"context"
	"errors"
	"testing"

	apiclient "github.com/zane-programs/helldivers-stratagem-pad/apiclient"
	apitypes "github.com/zane-programs/helldivers-stratagem-pad/apitypes"

	"github.com/stretchr/testify/assert"
)

// testClient constructs a client backed by a simple in-memory responder.
// responses maps request paths to raw JSON payloads.
// If err is non-nil, every request returns that error, simulating dial failures.
func testClient(responses map[string]string, err error) *apiclient.Client {
	return apiclient.WithTransport(apiclient.NewMockTransport(func(path string, _ any, _ map[string]string) (string, error) {
		if err != nil {
			return "", err
		}
		if out, ok := responses[path]; ok {
			return out, nil
		}
		return "", nil
	}))
}

func TestHighLevelClient(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(responses map[string]string) (err error)
		call       func(c *apiclient.Client) (any, error)
		wantErr    string
		assertFunc func(t *testing.T, got any)
	}{
		{
			name: "ping success",
			setup: func(responses map[string]string) error {
				responses["ping"] = `{"server":"stratapad","version":"0.0.1-dev"}`
				return nil
			},
			call: func(c *apiclient.Client) (any, error) { return c.Ping() },
			assertFunc: func(t *testing.T, got any) {
				resp, ok := got.(*apitypes.PingResponse)
				assert.True(t, ok, "expected *apitypes.PingResponse type")
				assert.Equal(t, "stratapad", resp.Server)
			},
		},
		{
			name: "hold key error structured",
			setup: func(responses map[string]string) error {
				responses["key/hold"] = `{"status":422,"title":"Unprocessable Entity","detail":"unknown key: \"blorp\""}`
				return nil
			},
			call:    func(c *apiclient.Client) (any, error) { return c.HoldKey("blorp") },
			wantErr: `422 Unprocessable Entity: unknown key: "blorp"`,
		},
		{
			name: "status with held keys",
			setup: func(responses map[string]string) error {
				responses["status"] = `{"connected":true,"device":"/dev/hidg0","modifiers":["shift"],"keys":["a"],"droppedEvents":0}`
				return nil
			},
			call: func(c *apiclient.Client) (any, error) { return c.Status() },
			assertFunc: func(t *testing.T, got any) {
				resp := got.(*apitypes.StatusResponse)
				assert.True(t, resp.Connected)
				assert.Equal(t, []string{"shift"}, resp.Modifiers)
				assert.Equal(t, []string{"a"}, resp.Keys)
			},
		},
		{
			name: "sequence run",
			setup: func(responses map[string]string) error {
				responses["sequence/run"] = `{"completed":3}`
				return nil
			},
			call: func(c *apiclient.Client) (any, error) {
				return c.RunSequence([]apitypes.SequenceAction{
					{Type: "keys", Keys: "ctrl+a"},
					{Type: "delay", DelayMs: 10},
					{Type: "text", Text: "hi"},
				})
			},
			assertFunc: func(t *testing.T, got any) {
				resp := got.(*apitypes.SequenceResponse)
				assert.Equal(t, 3, resp.Completed)
			},
		},
		{
			name:    "transport failure",
			setup:   func(responses map[string]string) error { return errors.New("dial fail") },
			call:    func(c *apiclient.Client) (any, error) { return c.Status() },
			wantErr: "dial fail",
		},
		{
			name:    "blank response error",
			setup:   func(responses map[string]string) error { return nil },
			call:    func(c *apiclient.Client) (any, error) { return c.Status() },
			wantErr: "empty response",
		},
		{
			name: "keys list empty buckets",
			setup: func(responses map[string]string) error {
				responses["keys/list"] = `{"letters":[],"digits":[],"function":[],"navigation":[],"modifiers":[],"other":[]}`
				return nil
			},
			call: func(c *apiclient.Client) (any, error) { return c.KeysList() },
			assertFunc: func(t *testing.T, got any) {
				resp := got.(*apitypes.KeysResponse)
				assert.Len(t, resp.Letters, 0)
				assert.Len(t, resp.Modifiers, 0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := map[string]string{}
			errInject := error(nil)
			if tt.setup != nil {
				if e := tt.setup(responses); e != nil {
					errInject = e
				}
			}
			c := testClient(responses, errInject)
			got, err := tt.call(c)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if tt.assertFunc != nil {
				tt.assertFunc(t, got)
			}
		})
	}
}

func TestContextCancellation(t *testing.T) {
	c := apiclient.WithTransport(apiclient.NewTransport("127.0.0.1:9")) // address irrelevant due to early cancel
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.StatusCtx(ctx)
	assert.Error(t, err)
}

func TestStrictJSONDecode(t *testing.T) {
	responses := map[string]string{}
	responses["ping"] = `{"server":"stratapad","version":"1.0.0","extra":true}` // extra field should cause decode error
	c := testClient(responses, nil)
	_, err := c.Ping()
	assert.Error(t, err)
}
