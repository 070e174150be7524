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

// KeyTap returns a handler that taps a key on top of the currently held
// keys and modifiers, restoring the held state afterwards.
func KeyTap(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var tapReq apitypes.TapRequest
		if err := json.Unmarshal([]byte(req.Payload), &tapReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}
		if tapReq.Key == "" {
			return apierror.ErrBadRequest("missing key name")
		}
		if tapReq.HoldMs < 0 {
			return apierror.ErrBadRequest("holdMs cannot be negative")
		}

		if err := kb.PressWithHeld(tapReq.Key, time.Duration(tapReq.HoldMs)*time.Millisecond); err != nil {
			return engineError(err)
		}

		mods, keys := kb.HeldNames()
		payload, err := json.Marshal(apitypes.KeyResponse{
			Key:       tapReq.Key,
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
