package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zane-programs/helldivers-stratagem-pad/apiclient"
	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/handler"
	handlerTest "github.com/zane-programs/helldivers-stratagem-pad/internal/testing"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

func TestSequenceRun(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(t *testing.T, kb *keyboard.Keyboard)
		payload          any
		expectedResponse string
	}{
		{
			name:  "full action mix",
			setup: connectEngine,
			payload: apitypes.SequenceRequest{Actions: []apitypes.SequenceAction{
				{Type: "keys", Keys: "a"},
				{Type: "keys", Keys: "ctrl+c"},
				{Type: "delay", DelayMs: 5},
				{Type: "text", Text: "hi"},
				{Type: "releaseAll"},
			}},
			expectedResponse: `{"completed":5}`,
		},
		{
			name:  "aborts at the failing action",
			setup: connectEngine,
			payload: apitypes.SequenceRequest{Actions: []apitypes.SequenceAction{
				{Type: "keys", Keys: "a"},
				{Type: "keys", Keys: "zz"},
			}},
			expectedResponse: `{"status":422,"title":"Unprocessable Entity","detail":"sequence action 1: unknown key: \"zz\""}`,
		},
		{
			name:             "empty action list",
			setup:            connectEngine,
			payload:          `{"actions":[]}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"sequence has no actions"}`,
		},
		{
			name:             "keys action without keys",
			setup:            connectEngine,
			payload:          `{"actions":[{"type":"keys"}]}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"action 0: missing keys"}`,
		},
		{
			name:             "text action without text",
			setup:            connectEngine,
			payload:          `{"actions":[{"type":"keys","keys":"a"},{"type":"text"}]}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"action 1: missing text"}`,
		},
		{
			name:             "delay action without delayMs",
			setup:            connectEngine,
			payload:          `{"actions":[{"type":"delay"}]}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"action 0: delay requires a positive delayMs"}`,
		},
		{
			name:             "unknown action type",
			setup:            connectEngine,
			payload:          `{"actions":[{"type":"jump"}]}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"action 0: unknown type \"jump\""}`,
		},
		{
			name:             "missing payload",
			setup:            connectEngine,
			payload:          nil,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"missing payload"}`,
		},
		{
			name:  "not connected",
			setup: nil,
			payload: apitypes.SequenceRequest{Actions: []apitypes.SequenceAction{
				{Type: "keys", Keys: "a"},
			}},
			expectedResponse: `{"status":409,"title":"Conflict","detail":"sequence action 0: hid device not connected"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, kb, _, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
				r.Register("sequence/run", handler.SequenceRun(kb))
			})
			defer done()
			if tt.setup != nil {
				tt.setup(t, kb)
			}
			c := apiclient.NewTransport(addr)
			line, err := c.Do("sequence/run", tt.payload, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
		})
	}
}

func TestSequenceRunNoPartialValidation(t *testing.T) {
	// A bad action later in the list must reject the whole sequence before
	// anything is pressed.
	addr, kb, mem, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
		r.Register("sequence/run", handler.SequenceRun(kb))
	})
	defer done()
	connectEngine(t, kb)

	c := apiclient.NewTransport(addr)
	line, err := c.Do("sequence/run", `{"actions":[{"type":"keys","keys":"a"},{"type":"wat"}]}`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":400,"title":"Bad Request","detail":"action 1: unknown type \"wat\""}`, line)
	assert.Empty(t, mem.Reports())
}
