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

// KeysList returns a handler listing every key and modifier name the server
// resolves, partitioned for display.
func KeysList(kb *keyboard.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		c := kb.Catalog()
		payload, err := json.Marshal(apitypes.KeysResponse{
			Letters:    c.Letters,
			Digits:     c.Digits,
			Function:   c.Function,
			Navigation: c.Navigation,
			Modifiers:  c.Modifiers,
			Other:      c.Other,
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
