package services

import (
	"context"
	"testing"
	"time"

	"github.com/courier-app/courier-backend/internal/dto"
	"github.com/courier-app/courier-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	msg, err := svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "hey, want to grab lunch?",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.CreatorID)
	assert.Equal(t, bob.ID, msg.RecipientID)
	assert.False(t, msg.Read)
	assert.False(t, msg.Deleted)
}

func TestSendMessageRejections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: alice.ID,
		Content:     "note to self",
	})
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "visit https://totally-legit.example now",
	})
	assert.ErrorIs(t, err, ErrContentRejected)

	_, err = svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "   ",
	})
	assert.Error(t, err)

	// unknown recipient
	_, err = svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: uuid.New(),
		Content:     "anyone there?",
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestSendMessageBlocked(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.BlockUser(ctx, bob.ID, alice.ID))

	// block cuts both directions
	_, err := svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "hello?",
	})
	assert.ErrorIs(t, err, ErrBlocked)

	_, err = svc.Send(ctx, bob.ID, &dto.SendMessageRequest{
		RecipientID: alice.ID,
		Content:     "hello from the blocker",
	})
	assert.ErrorIs(t, err, ErrBlocked)

	require.NoError(t, svc.UnblockUser(ctx, bob.ID, alice.ID))

	_, err = svc.Send(ctx, alice.ID, &dto.SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "we are good again",
	})
	assert.NoError(t, err)
}

func TestBlockGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	assert.ErrorIs(t, svc.BlockUser(ctx, alice.ID, alice.ID), ErrSelfBlock)

	require.NoError(t, svc.BlockUser(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, svc.BlockUser(ctx, alice.ID, bob.ID), ErrAlreadyBlocked)

	ids, err := svc.BlockedIDs(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, bob.ID, ids[0])
}

func TestConversation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	mkMsg := func(from, to *models.User, content string, at time.Time) *models.PrivateMessage {
		msg := createMessage(t, db, from, to, content)
		require.NoError(t, db.Model(msg).Update("created_at", at).Error)
		return msg
	}

	first := mkMsg(alice, bob, "first", base)
	second := mkMsg(bob, alice, "second", base.Add(time.Minute))
	third := mkMsg(alice, bob, "third", base.Add(2*time.Minute))
	mkMsg(alice, carol, "unrelated", base.Add(3*time.Minute))

	messages, err := svc.Conversation(ctx, alice.ID, bob.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, third.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
	assert.Equal(t, first.ID, messages[2].ID)
	assert.Equal(t, "bob", messages[1].Creator.Username)

	// deleted messages disappear from the conversation
	require.NoError(t, svc.Delete(ctx, bob.ID, second.ID))
	messages, err = svc.Conversation(ctx, alice.ID, bob.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMessageService(db, NewContentFilter())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	msg := createMessage(t, db, alice, bob, "read me")

	// only the recipient can mark a message read
	assert.ErrorIs(t, svc.MarkRead(ctx, alice.ID, msg.ID), ErrMessageNotFound)

	require.NoError(t, svc.MarkRead(ctx, bob.ID, msg.ID))

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
	assert.Equal(t, "alice", got.Creator.Username)
}
