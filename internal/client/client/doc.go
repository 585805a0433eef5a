// Package client talks to the Nearby Connect backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): auth
//     (Signup/Verify/Login), location push, nearby search, profile and
//     preferences, messages, and a liveness Ping.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token, applies a per-request timeout, tags requests with an
//     X-Request-ID and maps failures onto the shared error taxonomy.
//
// # Error Handling
//
// Every failure matches one of the sentinels in package common through
// errors.Is (ErrAuthRequired, ErrValidation, ErrConflict, ErrNotFound,
// ErrNetwork). Backend responses are additionally wrapped in *APIError which
// carries the status code and the backend's detail text.
//
// The client holds no session state: the token is passed on every call.
package client
