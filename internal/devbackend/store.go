package devbackend

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/cryptox"
	"github.com/google/uuid"
)

type account struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	VerificationCode string
	Verified         bool
	CreatedAt        time.Time
	LastActive       time.Time
	ProfileImage     *string
	Preferences      []string
}

type position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

type message struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name,omitempty"`
	RecipientIDs []string  `json:"recipient_ids"`
	Content      string    `json:"content"`
	ImageData    *string   `json:"image_data"`
	Timestamp    time.Time `json:"timestamp"`
	ReadBy       []string  `json:"read_by"`
}

type nearbyUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	DistanceMiles float64   `json:"distance_miles"`
	LastActive    time.Time `json:"last_active"`
}

// store keeps every collection in memory behind a single mutex.
type store struct {
	mu        sync.RWMutex
	now       func() time.Time
	accounts  map[string]*account
	byEmail   map[string]string
	positions map[string]position
	messages  []message
}

func newStore(now func() time.Time) *store {
	return &store{
		now:       now,
		accounts:  make(map[string]*account),
		byEmail:   make(map[string]string),
		positions: make(map[string]position),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *store) createAccount(name, email, phone string) (*account, error) {
	code, err := cryptox.RandomDigits(6)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.byEmail[key]; ok {
		return nil, common.ErrConflict
	}

	now := s.now()
	a := &account{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		VerificationCode: code,
		CreatedAt:        now,
		LastActive:       now,
		Preferences:      []string{},
	}
	s.accounts[a.ID] = a
	s.byEmail[key] = a.ID

	copied := *a
	return &copied, nil
}

// verify marks the account verified when code matches. A used code is
// cleared, so verifying twice fails.
func (s *store) verify(userID, code string) (*account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[userID]
	if !ok || a.VerificationCode == "" || a.VerificationCode != code {
		return nil, common.ErrValidation
	}
	a.Verified = true
	a.VerificationCode = ""

	copied := *a
	return &copied, nil
}

func (s *store) findByEmail(email string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	copied := *s.accounts[id]
	return &copied, true
}

func (s *store) get(id string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	copied := *a
	copied.Preferences = append([]string{}, a.Preferences...)
	return &copied, true
}

func (s *store) updateProfile(id string, name, phone, image *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return common.ErrNotFound
	}
	if name != nil {
		a.Name = *name
	}
	if phone != nil {
		a.Phone = *phone
	}
	if image != nil {
		a.ProfileImage = image
	}
	return nil
}

func (s *store) setPreferences(id string, prefs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Preferences = append([]string{}, prefs...)
	return nil
}

// setPosition upserts the user's position and bumps last activity.
func (s *store) setPosition(id string, lat, lon float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return common.ErrNotFound
	}
	now := s.now()
	s.positions[id] = position{Latitude: lat, Longitude: lon, Timestamp: now}
	a.LastActive = now
	return nil
}

// nearby returns every other user active within window whose last position
// is within radius miles of (lat, lon), closest first.
func (s *store) nearby(callerID string, lat, lon, radius float64, window time.Duration) []nearbyUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-window)
	result := make([]nearbyUser, 0)

	for id, a := range s.accounts {
		if id == callerID || a.LastActive.Before(cutoff) {
			continue
		}
		p, ok := s.positions[id]
		if !ok {
			continue
		}
		d := distanceMiles(lat, lon, p.Latitude, p.Longitude)
		if d > radius {
			continue
		}
		result = append(result, nearbyUser{
			ID:            id,
			Name:          a.Name,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			DistanceMiles: round2(d),
			LastActive:    a.LastActive,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceMiles == result[j].DistanceMiles {
			return result[i].ID < result[j].ID
		}
		return result[i].DistanceMiles < result[j].DistanceMiles
	})
	return result
}

func (s *store) addMessage(senderID string, recipients []string, content string, image *string) message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := message{
		ID:           uuid.NewString(),
		SenderID:     senderID,
		RecipientIDs: append([]string{}, recipients...),
		Content:      content,
		ImageData:    image,
		Timestamp:    s.now(),
		ReadBy:       []string{},
	}
	s.messages = append(s.messages, m)
	return m
}

// inbox returns messages sent by or to userID, newest first, at most limit.
func (s *store) inbox(userID string, limit int) []message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message, 0)
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.SenderID != userID && !slices.Contains(m.RecipientIDs, userID) {
			continue
		}
		if a, ok := s.accounts[m.SenderID]; ok {
			m.SenderName = a.Name
		}
		result = append(result, m)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
