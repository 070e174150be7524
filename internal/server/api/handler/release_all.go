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

// ReleaseAll returns a handler that clears all held keys and modifiers and
// sends the empty report.
func ReleaseAll(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err := kb.ReleaseAll(); err != nil {
			return engineError(err)
		}
		payload, err := json.Marshal(apitypes.ReleaseAllResponse{Released: true})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
