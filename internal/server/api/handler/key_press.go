package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// KeyPress returns a handler for the full press operation: fresh modifier
// mask, hold, then auto-release or fold into held state.
func KeyPress(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var pressReq apitypes.PressRequest
		if err := json.Unmarshal([]byte(req.Payload), &pressReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}
		if pressReq.Key == "" {
			return apierror.ErrBadRequest("missing key name")
		}
		if pressReq.HoldMs < 0 {
			return apierror.ErrBadRequest("holdMs cannot be negative")
		}

		opts := keyboard.PressOptions{
			Modifiers:   pressReq.Modifiers,
			HoldTime:    time.Duration(pressReq.HoldMs) * time.Millisecond,
			AutoRelease: pressReq.AutoRelease,
		}
		if err := kb.PressKey(pressReq.Key, opts); err != nil {
			return engineError(err)
		}

		mods, keys := kb.HeldNames()
		payload, err := json.Marshal(apitypes.KeyResponse{
			Key:       pressReq.Key,
			Modifiers: mods,
			Keys:      keys,
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
