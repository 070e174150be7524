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

// Connect returns a handler that opens the gadget device. Connecting while
// already connected succeeds without reopening.
func Connect(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err := kb.Connect(); err != nil {
			return engineError(err)
		}
		payload, err := json.Marshal(apitypes.ConnectResponse{
			Connected: true,
			Device:    kb.DevicePath(),
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
