package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/compose"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesList(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{MessagesRet: []models.Message{{ID: "m1", Content: "hi", Timestamp: ts}}}
	svc := NewMessageService(fc)

	msgs, err := svc.List(context.Background(), annSession)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "tok", fc.LastToken)

	_, err = svc.List(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestMessagesSend(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMessageService(fc)

	d := compose.NewDraft([]models.User{{ID: "a"}, {ID: "b"}})
	require.NoError(t, d.SetContent("hi"))

	id, err := svc.Send(context.Background(), annSession, d)
	require.NoError(t, err)
	assert.Equal(t, "m1", id)
	assert.Equal(t, []string{"a", "b"}, fc.LastMessage.RecipientIDs)
	assert.True(t, d.Sent())
}

func TestMessagesSend_Failure(t *testing.T) {
	fc := &fakeClient{SendErr: common.ErrNetwork}
	svc := NewMessageService(fc)

	d := compose.NewDraft([]models.User{{ID: "a"}})
	require.NoError(t, d.SetContent("hi"))

	_, err := svc.Send(context.Background(), annSession, d)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.False(t, d.Sent())
}
