package common

import "errors"

var (
	// Auth errors: missing, invalid or expired token. The client reacts by
	// sending the user back to login.
	ErrAuthRequired = errors.New("authentication required")

	// Location permission refused on a device that supports location.
	ErrPermissionDenied = errors.New("location permission denied")

	// Request-level errors reported by the backend.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")

	// Connectivity failures, timeouts and 5xx responses.
	ErrNetwork = errors.New("network error")

	// Radar selection errors.
	ErrNoSelection      = errors.New("no user selected")
	ErrNoUsersAvailable = errors.New("no users available")
	ErrUnknownBlip      = errors.New("unknown blip")

	// Compose errors.
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoRecipients = errors.New("no recipients")
	ErrAlreadySent  = errors.New("message already sent")
)
