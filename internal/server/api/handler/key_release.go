package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// KeyRelease returns a handler that lifts a held key or modifier. The
// payload is the bare key name. Releasing a key that is not held succeeds.
func KeyRelease(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		name := strings.TrimSpace(req.Payload)
		if name == "" {
			return apierror.ErrBadRequest("missing key name")
		}
		if err := kb.ReleaseKey(name); err != nil {
			return engineError(err)
		}
		mods, keys := kb.HeldNames()
		payload, err := json.Marshal(apitypes.KeyResponse{
			Key:       name,
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
