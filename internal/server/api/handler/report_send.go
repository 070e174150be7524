package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

// ReportSend returns a handler writing a raw boot report from a modifier
// mask and up to six usage codes. Held state is not consulted or changed.
func ReportSend(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var reportReq apitypes.ReportRequest
		if err := json.Unmarshal([]byte(req.Payload), &reportReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}

		keys := make([]keymap.KeyCode, 0, len(reportReq.Keys))
		for i, c := range reportReq.Keys {
			if c < 0 || c > 0xff {
				return apierror.ErrBadRequest(fmt.Sprintf("key %d: usage code %d out of range", i, c))
			}
			keys = append(keys, keymap.KeyCode(c))
		}

		if err := kb.SendReport(keymap.Modifier(reportReq.Mask), keys); err != nil {
			return engineError(err)
		}

		report, err := keyboard.BuildReport(keymap.Modifier(reportReq.Mask), keys)
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to rebuild report: %v", err))
		}
		payload, err := json.Marshal(apitypes.ReportResponse{Report: report.Hex()})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
