package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status %d)", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Err, e.Detail, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// errorBody covers both error shapes: {"detail": "text"} and the 422 form
// {"detail": [{"loc": [...], "msg": "..."}]}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return string(eb.Detail)
}

// mapStatus converts a non-2xx response into an *APIError.
func mapStatus(status int, body []byte) error {
	detail := parseDetail(body)

	var sentinel error
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		sentinel = common.ErrAuthRequired
	case status == http.StatusUnprocessableEntity:
		sentinel = common.ErrValidation
	case status == http.StatusNotFound:
		sentinel = common.ErrNotFound
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(detail), "already exists"):
		sentinel = common.ErrConflict
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(detail), "not found"):
		sentinel = common.ErrNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict:
		sentinel = common.ErrValidation
	default:
		sentinel = common.ErrNetwork
	}

	return &APIError{StatusCode: status, Detail: detail, Err: sentinel}
}

// mapError converts a transport failure. The cause stays reachable, so
// errors.Is(err, context.Canceled) still tells cancellation from failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrNetwork, err)
}
