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

// Disconnect returns a handler that releases all keys and closes the gadget
// device. Disconnect never fails; teardown problems are logged server-side.
func Disconnect(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		kb.Disconnect()
		payload, err := json.Marshal(apitypes.DisconnectResponse{Connected: false})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
