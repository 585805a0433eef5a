package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccountUser is the user object returned by verify and login.
type AccountUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session is an authenticated context: the bearer token plus a snapshot of
// the signed-in user. It is passed explicitly to every component needing auth.
type Session struct {
	Token string
	User  AccountUser
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the token's exp claim is at or before now. The
// signature is not checked; tokens that are not JWTs, or carry no exp, never
// expire from the client's point of view.
func (s *Session) Expired(now time.Time) bool {
	if !s.Valid() {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SignupResult is returned by a successful signup. The verification code is
// echoed by the backend instead of being sent by SMS or email.
type SignupResult struct {
	Message          string `json:"message"`
	UserID           string `json:"user_id"`
	VerificationCode string `json:"verification_code"`
}

// Profile is the full profile of the signed-in user.
type Profile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Preferences  []string `json:"preferences"`
	ProfileImage *string  `json:"profile_image"`
}

// ProfileUpdate holds the editable profile fields; nil fields are not sent.
type ProfileUpdate struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}
