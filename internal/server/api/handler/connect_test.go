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

func TestConnect(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(t *testing.T, kb *keyboard.Keyboard)
		expectedResponse string
	}{
		{
			name:             "valid connect",
			setup:            nil,
			expectedResponse: `{"connected":true,"device":"/dev/hidg-test"}`,
		},
		{
			name: "connect while connected is a no-op",
			setup: func(t *testing.T, kb *keyboard.Keyboard) {
				if err := kb.Connect(); err != nil {
					t.Fatalf("connect failed: %v", err)
				}
			},
			expectedResponse: `{"connected":true,"device":"/dev/hidg-test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, kb, _, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
				r.Register("connect", handler.Connect(kb))
			})
			defer done()
			if tt.setup != nil {
				tt.setup(t, kb)
			}
			c := apiclient.NewTransport(addr)
			line, err := c.Do("connect", nil, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
			assert.True(t, kb.Connected())
		})
	}
}
