package handler

import (
	"errors"

	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// engineError maps engine failures onto problem-details responses so clients
// can tell bad input apart from device trouble. Unrecognized errors pass
// through and get wrapped as 500 by the server.
func engineError(err error) error {
	switch {
	case errors.Is(err, keyboard.ErrUnknownKey), errors.Is(err, keyboard.ErrUnknownModifier):
		return apierror.ErrUnprocessable(err.Error())
	case errors.Is(err, keyboard.ErrInvalidCombination), errors.Is(err, keyboard.ErrInvalidReport):
		return apierror.ErrBadRequest(err.Error())
	case errors.Is(err, keyboard.ErrMaxKeys), errors.Is(err, keyboard.ErrNotConnected):
		return apierror.ErrConflict(err.Error())
	case errors.Is(err, keyboard.ErrDeviceUnavailable):
		return apierror.ErrServiceUnavailable(err.Error())
	default:
		return err
	}
}
