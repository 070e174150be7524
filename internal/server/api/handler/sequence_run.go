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

// SequenceRun returns a handler executing an ordered action list. The first
// failing action aborts the rest; its index travels back in the error detail.
func SequenceRun(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var seqReq apitypes.SequenceRequest
		if err := json.Unmarshal([]byte(req.Payload), &seqReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}
		if len(seqReq.Actions) == 0 {
			return apierror.ErrBadRequest("sequence has no actions")
		}

		actions := make([]keyboard.Action, 0, len(seqReq.Actions))
		for i, a := range seqReq.Actions {
			switch keyboard.ActionKind(a.Type) {
			case keyboard.ActionKeys:
				if a.Keys == "" {
					return apierror.ErrBadRequest(fmt.Sprintf("action %d: missing keys", i))
				}
				actions = append(actions, keyboard.Action{Kind: keyboard.ActionKeys, Keys: a.Keys})
			case keyboard.ActionText:
				if a.Text == "" {
					return apierror.ErrBadRequest(fmt.Sprintf("action %d: missing text", i))
				}
				actions = append(actions, keyboard.Action{Kind: keyboard.ActionText, Text: a.Text})
			case keyboard.ActionDelay:
				if a.DelayMs <= 0 {
					return apierror.ErrBadRequest(fmt.Sprintf("action %d: delay requires a positive delayMs", i))
				}
				actions = append(actions, keyboard.Action{Kind: keyboard.ActionDelay, Delay: time.Duration(a.DelayMs) * time.Millisecond})
			case keyboard.ActionReleaseAll:
				actions = append(actions, keyboard.Action{Kind: keyboard.ActionReleaseAll})
			default:
				return apierror.ErrBadRequest(fmt.Sprintf("action %d: unknown type %q", i, a.Type))
			}
		}

		if err := kb.RunSequence(actions); err != nil {
			return engineError(err)
		}

		payload, err := json.Marshal(apitypes.SequenceResponse{Completed: len(actions)})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
