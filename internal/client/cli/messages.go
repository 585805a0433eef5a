package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/compose"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dustin/go-humanize"
)

var getMultiline = GetMultiline

// Send composes a message to the selected user.
func (a *App) Send(ctx context.Context) error {
	if err := a.requireRadar(); err != nil {
		return err
	}
	users, err := a.radar.ComposeMessageForSelection()
	if err != nil {
		return err
	}
	return a.compose(ctx, users)
}

// SendAll composes one message to everyone currently on the radar.
func (a *App) SendAll(ctx context.Context) error {
	if err := a.requireRadar(); err != nil {
		return err
	}
	users, err := a.radar.ComposeMessageForAll()
	if err != nil {
		return err
	}
	return a.compose(ctx, users)
}

// compose runs the draft through text, photo and confirmation, and lets the
// user retry a failed submit.
func (a *App) compose(ctx context.Context, users []models.User) error {
	d := compose.NewDraft(users)
	a.printf("To: %s\n", strings.Join(d.RecipientNames(), ", "))

	for {
		text, err := getMultiline(a.reader, fmt.Sprintf("Message (up to %d characters)", common.MaxMessageLength), a.out)
		if err != nil {
			return err
		}
		if err := d.SetContent(text); err != nil {
			a.println(describe(err))
			continue
		}
		break
	}

	path, err := getSimpleText(a.reader, "Photo file (empty for none)", a.out)
	if err != nil {
		return err
	}
	if path != "" {
		if err := d.AttachPhotoFile(path); err != nil {
			a.println("Photo skipped:", describe(err))
		} else {
			a.println("Photo attached.")
		}
	}

	ok, err := confirm(a.reader, "Send?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Discarded.")
		return nil
	}

	for {
		_, err := a.messageService.Send(ctx, a.session, d)
		if err == nil {
			a.println("Message sent.")
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		a.println("Send failed:", describe(err))
		again, cerr := confirm(a.reader, "Try again?", a.out)
		if cerr != nil || !again {
			return err
		}
	}
}

func isRetryable(err error) bool {
	return !errorsIsAny(err, common.ErrAuthRequired, common.ErrEmptyMessage, common.ErrNoRecipients, common.ErrAlreadySent)
}

func (a *App) Messages(ctx context.Context) error {
	msgs, err := a.messageService.List(ctx, a.session)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		a.println("No messages yet.")
		return nil
	}

	for _, m := range msgs {
		from := m.SenderName
		if m.SenderID == a.session.User.ID {
			from = "you"
		} else if from == "" {
			from = m.SenderID
		}
		line := fmt.Sprintf("[%s] %s: %s", humanize.Time(m.Timestamp), from, m.Content)
		if m.ImageData != nil {
			line += fmt.Sprintf(" (photo, %s)", humanize.Bytes(uint64(len(*m.ImageData)*3/4)))
		}
		a.println(line)
	}
	return nil
}
