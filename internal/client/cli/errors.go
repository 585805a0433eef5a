package cli

import (
	"errors"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/client"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// describe turns an error into a line for the user. Backend detail text is
// shown as is when present.
func describe(err error) string {
	var apiErr *client.APIError
	detail := ""
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		detail = apiErr.Detail
	}

	switch {
	case errors.Is(err, common.ErrAuthRequired):
		return "you are not signed in or your session expired"
	case errors.Is(err, common.ErrPermissionDenied):
		return "location permission was denied"
	case errors.Is(err, common.ErrConflict):
		if detail == "" {
			detail = "already exists"
		}
		return detail + " (try 'login' instead)"
	case errors.Is(err, common.ErrNetwork):
		return "could not reach the server, please try again"
	case errors.Is(err, common.ErrNoUsersAvailable):
		return "nobody is nearby right now"
	case errors.Is(err, common.ErrNoSelection):
		return "select someone on the radar first ('select <n>')"
	case detail != "":
		return detail
	}
	return err.Error()
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
