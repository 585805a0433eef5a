// Package devbackend is an in-memory stand-in for the Nearby Connect backend.
//
// It serves the same HTTP/JSON contract as the real service (auth, location,
// nearby search, profile, preferences, messages) from process memory, so the
// client can be exercised end to end in tests and local demos. Nothing is
// persisted; restarting the process forgets every account.
//
// Behaviour mirrors the real backend where the client can observe it:
// 6-digit verification codes echoed in the signup response, HS256 tokens
// carrying a user_id claim, FastAPI-shaped error bodies ({"detail": ...}),
// nearby search limited to users active in the last 30 minutes, distances in
// miles rounded to two decimals.
package devbackend
