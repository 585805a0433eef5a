package services

import (
	"context"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/client"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/compose"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// MessageService lists the inbox and submits composed drafts.
type MessageService interface {
	List(ctx context.Context, sess *models.Session) ([]models.Message, error)
	Send(ctx context.Context, sess *models.Session, d *compose.Draft) (string, error)
}

type messageService struct {
	client client.Client
}

func NewMessageService(c client.Client) MessageService {
	return &messageService{client: c}
}

func (m *messageService) List(ctx context.Context, sess *models.Session) ([]models.Message, error) {
	if !sess.Valid() {
		return nil, common.ErrAuthRequired
	}
	return m.client.ListMessages(ctx, sess.Token)
}

func (m *messageService) Send(ctx context.Context, sess *models.Session, d *compose.Draft) (string, error) {
	return d.Submit(ctx, sess, m.client)
}
