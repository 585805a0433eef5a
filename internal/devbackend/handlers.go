package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
	"github.com/gorilla/mux"
)

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{7,15}$`)
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Handler serves the backend contract under /api.
type Handler struct {
	cfg    *Config
	store  *store
	logger logging.Logger
	now    func() time.Time
}

// Option customises a Handler.
type Option func(*Handler)

// WithClock replaces time.Now, which drives token expiry and activity windows.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(cfg *Config, logger logging.Logger, opts ...Option) *Handler {
	h := &Handler{cfg: cfg, logger: logger.With("module", "devbackend"), now: time.Now}
	for _, o := range opts {
		o(h)
	}
	h.store = newStore(func() time.Time { return h.now() })
	return h
}

// Router wires every route of the contract.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.withLogging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", h.verify).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(h.withAuth)
	protected.HandleFunc("/location", h.updateLocation).Methods(http.MethodPost)
	protected.HandleFunc("/users/nearby", h.nearbyUsers).Methods(http.MethodPost)
	protected.HandleFunc("/profile", h.getProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", h.updateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/preferences", h.updatePreferences).Methods(http.MethodPut)
	protected.HandleFunc("/messages", h.sendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/messages", h.listMessages).Methods(http.MethodGet)

	return r
}

// --- middleware ---

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(common.RequestIDHeaderName),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) || strings.TrimSpace(header[len(common.BearerPrefix):]) == "" {
			writeDetail(w, http.StatusForbidden, "Not authenticated")
			return
		}

		userID, err := GetUserIDFromToken(strings.TrimSpace(header[len(common.BearerPrefix):]), []byte(h.cfg.SecretKey))
		if err != nil {
			if errors.Is(err, errTokenExpired) {
				writeDetail(w, http.StatusUnauthorized, "Token expired")
				return
			}
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if _, ok := h.store.get(userID); !ok {
			writeDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// --- response helpers ---

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeValidation(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{"detail": errs})
}

func invalidField(field, msg string) fieldError {
	return fieldError{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: "Invalid JSON body", Type: "value_error.jsondecode"}})
		return false
	}
	return true
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func viewOf(a *account) userView {
	return userView{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

// --- auth ---

type signupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, invalidField("name", "Name is required"))
	}
	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, invalidField("email", "Invalid email format"))
	}
	if !phonePattern.MatchString(req.Phone) {
		errs = append(errs, invalidField("phone", "Invalid phone format"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	a, err := h.store.createAccount(req.Name, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			writeDetail(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.logger.Error(r.Context(), "signup failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":           "User created successfully",
		"verification_code": a.VerificationCode,
		"user_id":           a.ID,
	})
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, a *account, message string) {
	token, err := GenerateToken(a.ID, []byte(h.cfg.SecretKey), h.cfg.TokenValidity, h.now())
	if err != nil {
		h.logger.Error(r.Context(), "token generation failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"token":   token,
		"user":    viewOf(a),
	})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID           string `json:"user_id"`
		VerificationCode string `json:"verification_code"`
	}
	if !decode(w, r, &req) {
		return
	}

	a, err := h.store.verify(req.UserID, req.VerificationCode)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid verification code")
		return
	}
	h.issueToken(w, r, a, "User verified successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	a, ok := h.store.findByEmail(req.Email)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "User not found")
		return
	}
	if !a.Verified {
		writeDetail(w, http.StatusBadRequest, "User not verified")
		return
	}
	h.issueToken(w, r, a, "Login successful")
}

// --- location ---

type coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (c coordinates) validate() []fieldError {
	var errs []fieldError
	if c.Latitude == nil {
		errs = append(errs, invalidField("latitude", "field required"))
	} else if *c.Latitude < -90 || *c.Latitude > 90 {
		errs = append(errs, invalidField("latitude", "Latitude must be between -90 and 90"))
	}
	if c.Longitude == nil {
		errs = append(errs, invalidField("longitude", "field required"))
	} else if *c.Longitude < -180 || *c.Longitude > 180 {
		errs = append(errs, invalidField("longitude", "Longitude must be between -180 and 180"))
	}
	return errs
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	var req coordinates
	if !decode(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	if err := h.store.setPosition(currentUserID(r), *req.Latitude, *req.Longitude); err != nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Location updated successfully"})
}

func (h *Handler) nearbyUsers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		coordinates
		RadiusMiles *float64 `json:"radius_miles"`
	}
	if !decode(w, r, &req) {
		return
	}

	errs := req.coordinates.validate()
	radius := 1.0
	if req.RadiusMiles != nil {
		radius = *req.RadiusMiles
	}
	if radius < common.MinRadiusMiles || radius > common.MaxRadiusMiles {
		errs = append(errs, invalidField("radius_miles", "radius_miles must be between 0.5 and 5.0"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	users := h.store.nearby(currentUserID(r), *req.Latitude, *req.Longitude, radius, h.cfg.ActiveWindow)
	writeJSON(w, http.StatusOK, map[string]any{"nearby_users": users})
}

// --- profile ---

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := h.store.get(currentUserID(r))
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":            a.ID,
		"name":          a.Name,
		"email":         a.Email,
		"phone":         a.Phone,
		"preferences":   a.Preferences,
		"profile_image": a.ProfileImage,
	})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         *string `json:"name"`
		Phone        *string `json:"phone"`
		ProfileImage *string `json:"profile_image"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Phone != nil && !phonePattern.MatchString(*req.Phone) {
		writeValidation(w, []fieldError{invalidField("phone", "Invalid phone format")})
		return
	}

	if err := h.store.updateProfile(currentUserID(r), req.Name, req.Phone, req.ProfileImage); err != nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preferences []string `json:"preferences"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Preferences == nil {
		writeValidation(w, []fieldError{invalidField("preferences", "field required")})
		return
	}

	if err := h.store.setPreferences(currentUserID(r), req.Preferences); err != nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Preferences updated successfully"})
}

// --- messages ---

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content      *string  `json:"content"`
		RecipientIDs []string `json:"recipient_ids"`
		ImageData    *string  `json:"image_data"`
	}
	if !decode(w, r, &req) {
		return
	}

	var errs []fieldError
	if req.Content == nil {
		errs = append(errs, invalidField("content", "field required"))
	}
	if req.RecipientIDs == nil {
		errs = append(errs, invalidField("recipient_ids", "field required"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	m := h.store.addMessage(currentUserID(r), req.RecipientIDs, *req.Content, req.ImageData)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully", "message_id": m.ID})
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	messages := h.store.inbox(currentUserID(r), h.cfg.MessageListLimit)
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
