package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zane-programs/helldivers-stratagem-pad/apiclient"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/handler"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
	handlerTest "github.com/zane-programs/helldivers-stratagem-pad/internal/testing"
)

func TestPing(t *testing.T) {
	addr, _, _, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
		r.Register("ping", handler.Ping())
	})
	defer done()

	c := apiclient.NewTransport(addr)
	line, err := c.Do("ping", nil, nil)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"server":"stratapad","version":"0.0.1-dev"}`, line)
}
