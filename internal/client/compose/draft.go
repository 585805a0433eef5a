// Package compose builds and submits one message to a fixed set of nearby
// users.
package compose

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/filex"
)

// MaxPhotoBytes caps the raw size of an attached photo.
const MaxPhotoBytes = 5 << 20

// Sender delivers a message on behalf of the session's user.
type Sender interface {
	SendMessage(ctx context.Context, token string, msg models.OutgoingMessage) (string, error)
}

// Draft is a message being composed. Recipients are fixed when the draft is
// created; later changes to the nearby list do not affect them.
type Draft struct {
	recipients []string
	names      []string
	content    string
	photo      *string
	messageID  string
}

func NewDraft(recipients []models.User) *Draft {
	d := &Draft{
		recipients: make([]string, 0, len(recipients)),
		names:      make([]string, 0, len(recipients)),
	}
	for _, u := range recipients {
		d.recipients = append(d.recipients, u.ID)
		d.names = append(d.names, u.Name)
	}
	return d
}

func (d *Draft) Recipients() []string {
	return append([]string(nil), d.recipients...)
}

// RecipientNames is for display only.
func (d *Draft) RecipientNames() []string {
	return append([]string(nil), d.names...)
}

// SetContent replaces the message text. Text over the length limit is
// rejected and the previous text kept.
func (d *Draft) SetContent(text string) error {
	if n := utf8.RuneCountInString(text); n > common.MaxMessageLength {
		return fmt.Errorf("%w: message is %d characters, limit is %d", common.ErrValidation, n, common.MaxMessageLength)
	}
	d.content = text
	return nil
}

func (d *Draft) Content() string { return d.content }

// AttachPhoto replaces the photo with raw, base64-encoded.
func (d *Draft) AttachPhoto(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty photo", common.ErrValidation)
	}
	if len(raw) > MaxPhotoBytes {
		return fmt.Errorf("%w: photo exceeds %d bytes", common.ErrValidation, MaxPhotoBytes)
	}
	enc := base64.StdEncoding.EncodeToString(raw)
	d.photo = &enc
	return nil
}

func (d *Draft) AttachPhotoFile(path string) error {
	raw, err := filex.ReadFileLimited(path, MaxPhotoBytes)
	if err != nil {
		return err
	}
	return d.AttachPhoto(raw)
}

func (d *Draft) RemovePhoto() { d.photo = nil }

func (d *Draft) HasPhoto() bool { return d.photo != nil }

// Sent reports whether Submit has succeeded.
func (d *Draft) Sent() bool { return d.messageID != "" }

// Submit sends the draft in a single call. Failures leave the draft intact
// so the user may submit again; nothing is retried automatically.
func (d *Draft) Submit(ctx context.Context, sess *models.Session, sender Sender) (string, error) {
	if d.Sent() {
		return "", common.ErrAlreadySent
	}
	if strings.TrimSpace(d.content) == "" && d.photo == nil {
		return "", common.ErrEmptyMessage
	}
	if len(d.recipients) == 0 {
		return "", common.ErrNoRecipients
	}
	if !sess.Valid() {
		return "", common.ErrAuthRequired
	}

	msg := models.OutgoingMessage{
		Content:      strings.TrimSpace(d.content),
		RecipientIDs: d.Recipients(),
		ImageData:    d.photo,
	}
	id, err := sender.SendMessage(ctx, sess.Token, msg)
	if err != nil {
		return "", err
	}
	if id == "" {
		// backend answered 2xx without an id; still counts as delivered
		id = "sent"
	}
	d.messageID = id
	return id, nil
}
