package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// Status returns a handler reporting device connectivity and held state.
func Status(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		mods, keys := kb.HeldNames()
		payload, err := json.Marshal(apitypes.StatusResponse{
			Connected:     kb.Connected(),
			Device:        kb.DevicePath(),
			Modifiers:     mods,
			Keys:          keys,
			DroppedEvents: kb.DroppedEvents(),
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
