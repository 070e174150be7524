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

// TypeText returns a handler that types free text character by character.
// Characters the layout cannot produce are skipped, not an error.
func TypeText(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var typeReq apitypes.TypeRequest
		if err := json.Unmarshal([]byte(req.Payload), &typeReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}
		if typeReq.Text == "" {
			return apierror.ErrBadRequest("missing text")
		}
		if typeReq.DelayMs < 0 {
			return apierror.ErrBadRequest("delayMs cannot be negative")
		}

		opts := keyboard.TypeOptions{
			Delay:        time.Duration(typeReq.DelayMs) * time.Millisecond,
			PreserveCase: typeReq.PreserveCase,
		}
		if err := kb.TypeText(typeReq.Text, opts); err != nil {
			return engineError(err)
		}

		payload, err := json.Marshal(apitypes.TypeResponse{Text: typeReq.Text})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
