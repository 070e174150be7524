package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zane-programs/helldivers-stratagem-pad/apiclient"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/handler"
	handlerTest "github.com/zane-programs/helldivers-stratagem-pad/internal/testing"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

func TestReleaseAll(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(t *testing.T, kb *keyboard.Keyboard)
		expectedResponse string
	}{
		{
			name: "clears held keys and modifiers",
			setup: func(t *testing.T, kb *keyboard.Keyboard) {
				connectEngine(t, kb)
				holdKeys(t, kb, "ctrl", "shift", "a", "b")
			},
			expectedResponse: `{"released":true}`,
		},
		{
			name:             "nothing held",
			setup:            connectEngine,
			expectedResponse: `{"released":true}`,
		},
		{
			name:             "not connected",
			setup:            nil,
			expectedResponse: `{"status":409,"title":"Conflict","detail":"hid device not connected"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, kb, mem, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
				r.Register("release-all", handler.ReleaseAll(kb))
			})
			defer done()
			if tt.setup != nil {
				tt.setup(t, kb)
			}
			c := apiclient.NewTransport(addr)
			line, err := c.Do("release-all", nil, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)

			if tt.expectedResponse == `{"released":true}` {
				mask, keys := kb.Held()
				assert.Zero(t, mask)
				assert.Empty(t, keys)
				assert.Equal(t, make([]byte, 8), mem.Last())
			}
		})
	}
}
