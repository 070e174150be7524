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

// Combo returns a handler pressing a "+"-separated combination like
// "ctrl+shift+tab". The payload is the bare combination string.
func Combo(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		combo := strings.TrimSpace(req.Payload)
		if combo == "" {
			return apierror.ErrBadRequest("missing combination")
		}
		if err := kb.SendCombination(combo); err != nil {
			return engineError(err)
		}
		payload, err := json.Marshal(apitypes.ComboResponse{Combo: combo})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
