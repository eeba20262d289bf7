package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homerent/pkg/errors"
)

func newChatFixture() (*ChatUseCase, *MessageUseCase, *fakeChatRepo, *fakeUserRepo) {
	users := seedUsers()
	chats := newFakeChatRepo(users)
	chatUC := NewChatUseCase(chats, users)
	messageUC := NewMessageUseCase(chats, users, &recordingBroadcaster{}, 0)
	return chatUC, messageUC, chats, users
}

func TestFindChatReturnsPlaceholderWhenNoneExists(t *testing.T) {
	chatUC, _, _, _ := newChatFixture()
	ctx := context.Background()

	resp, err := chatUC.FindChat(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Empty(t, resp.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, resp.Participants)
	assert.Empty(t, resp.MessageIDs)
	assert.Empty(t, resp.Messages)
	require.NotNil(t, resp.OtherUser)
	assert.Equal(t, "bob", resp.OtherUser.ID)
}

func TestFindChatValidation(t *testing.T) {
	chatUC, _, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := chatUC.FindChat(ctx, "alice", "bad/id")
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = chatUC.FindChat(ctx, "alice", "alice")
	assert.Equal(t, 409, errors.StatusOf(err))

	_, err = chatUC.FindChat(ctx, "alice", "carol")
	assert.Equal(t, 404, errors.StatusOf(err))
}

func TestFindChatReturnsMessages(t *testing.T) {
	chatUC, messageUC, _, _ := newChatFixture()
	ctx := context.Background()

	sent, err := messageUC.SendMessage(ctx, "alice", SendMessageInput{RecipientID: "bob", Content: "hello"})
	require.NoError(t, err)

	// Both participants resolve the same chat.
	fromAlice, err := chatUC.FindChat(ctx, "alice", "bob")
	require.NoError(t, err)
	fromBob, err := chatUC.FindChat(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, fromAlice.ID, fromBob.ID)

	require.Len(t, fromAlice.Messages, 1)
	assert.Equal(t, sent.ID, fromAlice.Messages[0].ID)
	assert.Equal(t, "bob", fromAlice.OtherUser.ID)
	assert.Equal(t, "alice", fromBob.OtherUser.ID)
}

func TestListChats(t *testing.T) {
	chatUC, messageUC, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := messageUC.SendMessage(ctx, "alice", SendMessageInput{RecipientID: "bob", Content: "hi"})
	require.NoError(t, err)

	chats, err := chatUC.ListChats(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "bob", chats[0].OtherUser.ID)

	chats, err = chatUC.ListChats(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, chats, 1)

	chats, err = chatUC.ListChats(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestDeleteChatCascadesMessages(t *testing.T) {
	chatUC, messageUC, chats, _ := newChatFixture()
	ctx := context.Background()

	first, err := messageUC.SendMessage(ctx, "alice", SendMessageInput{RecipientID: "bob", Content: "one"})
	require.NoError(t, err)
	second, err := messageUC.SendMessage(ctx, "bob", SendMessageInput{RecipientID: "alice", Content: "two"})
	require.NoError(t, err)

	require.NoError(t, chatUC.DeleteChat(ctx, "alice", "bob"))

	_, err = chats.GetByParticipants(ctx, "alice", "bob")
	assert.Equal(t, 404, errors.StatusOf(err))
	_, err = chats.GetMessageByID(ctx, first.ID)
	assert.Equal(t, 404, errors.StatusOf(err))
	_, err = chats.GetMessageByID(ctx, second.ID)
	assert.Equal(t, 404, errors.StatusOf(err))
}

func TestDeleteChatValidation(t *testing.T) {
	chatUC, _, _, _ := newChatFixture()
	ctx := context.Background()

	err := chatUC.DeleteChat(ctx, "alice", "bad/id")
	assert.Equal(t, 400, errors.StatusOf(err))

	err = chatUC.DeleteChat(ctx, "alice", "alice")
	assert.Equal(t, 409, errors.StatusOf(err))

	err = chatUC.DeleteChat(ctx, "alice", "carol")
	assert.Equal(t, 404, errors.StatusOf(err))

	// Existing users with no chat yet.
	err = chatUC.DeleteChat(ctx, "alice", "bob")
	assert.Equal(t, 404, errors.StatusOf(err))
}
