package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/realtime"
)

func newChatFixture(rooms ...*models.ChatRoom) (ChatService, *fakeChatRepo, *recordingBroadcaster, *recordingNotifier) {
	alice, bob := player(1, 0), player(2, 0)
	alice.FullName, bob.FullName = "Alice", "Bob"
	chatRepo := newFakeChatRepo(rooms...)
	hub := &recordingBroadcaster{}
	notifier := &recordingNotifier{}
	svc := NewChatService(chatRepo, newFakeProfileRepo(alice, bob, player(3, 0)), fakeTx{}, hub, notifier, discardLogger())
	return svc, chatRepo, hub, notifier
}

func TestOpenRoom(t *testing.T) {
	svc, chatRepo, _, _ := newChatFixture()

	_, err := svc.OpenRoom(context.Background(), 1, OpenRoomInput{PeerID: 1})
	assert.ErrorIs(t, err, ErrChatWithSelf)

	_, err = svc.OpenRoom(context.Background(), 1, OpenRoomInput{PeerID: 42})
	assert.ErrorIs(t, err, ErrUserNotFound)

	room, err := svc.OpenRoom(context.Background(), 2, OpenRoomInput{PeerID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, room.UserA, "members are stored in ascending order")
	assert.Equal(t, 2, room.UserB)
	assert.Equal(t, "Alice", room.PeerName)

	again, err := svc.OpenRoom(context.Background(), 1, OpenRoomInput{PeerID: 2})
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)
	assert.Equal(t, "Bob", again.PeerName)
	assert.Len(t, chatRepo.rooms, 1)

	matchRoom, err := svc.OpenRoom(context.Background(), 1, OpenRoomInput{PeerID: 2, MatchID: intPtr(5)})
	require.NoError(t, err)
	assert.NotEqual(t, room.ID, matchRoom.ID, "match rooms are separate from direct messages")
}

func TestSendMessage(t *testing.T) {
	svc, chatRepo, hub, notifier := newChatFixture(&models.ChatRoom{ID: 1, UserA: 1, UserB: 2})

	_, err := svc.SendMessage(context.Background(), 1, 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(context.Background(), 1, 1, strings.Repeat("가", MaxChatMessageLength+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = svc.SendMessage(context.Background(), 3, 1, "hi")
	assert.ErrorIs(t, err, ErrNotChatMember)

	_, err = svc.SendMessage(context.Background(), 1, 99, "hi")
	assert.ErrorIs(t, err, ErrChatRoomNotFound)

	msg, err := svc.SendMessage(context.Background(), 1, 1, "  see you on ice  ")
	require.NoError(t, err)
	assert.Equal(t, "see you on ice", msg.Content)
	assert.Len(t, chatRepo.messages, 1)
	assert.Equal(t, msg.CreatedAt, chatRepo.touched[1])

	require.Len(t, hub.events, 1)
	assert.Equal(t, realtime.ChatRoomKey(1), hub.rooms[0])
	assert.Equal(t, realtime.EventMessageCreated, hub.events[0].Type)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 2, notifier.sent[0].UserID)
	assert.Equal(t, "see you on ice", notifier.sent[0].N.Body)
	assert.Equal(t, []interface{}{"Alice"}, notifier.sent[0].N.TitleArgs)
}

func TestSendMessage_LongMessagePreview(t *testing.T) {
	svc, _, _, notifier := newChatFixture(&models.ChatRoom{ID: 1, UserA: 1, UserB: 2})

	_, err := svc.SendMessage(context.Background(), 2, 1, strings.Repeat("a", 150))
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 1, notifier.sent[0].UserID)
	assert.Equal(t, strings.Repeat("a", 100)+"…", notifier.sent[0].N.Body)
}

func TestMarkRead(t *testing.T) {
	svc, chatRepo, hub, _ := newChatFixture(&models.ChatRoom{ID: 1, UserA: 1, UserB: 2})

	n, err := svc.MarkRead(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, hub.events, "nothing to announce")

	chatRepo.unread = 3
	n, err = svc.MarkRead(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, hub.events, 1)
	assert.Equal(t, realtime.EventMessagesRead, hub.events[0].Type)

	_, err = svc.MarkRead(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrNotChatMember)
}

func TestListMessages_ClampsLimit(t *testing.T) {
	svc, chatRepo, _, _ := newChatFixture(&models.ChatRoom{ID: 1, UserA: 1, UserB: 2})
	for i := 0; i < 60; i++ {
		chatRepo.messages = append(chatRepo.messages, &models.ChatMessage{ID: i + 1, RoomID: 1, SenderID: 1, Content: "x"})
	}

	msgs, err := svc.ListMessages(context.Background(), 1, 1, nil, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, defaultMessagePage)

	msgs, err = svc.ListMessages(context.Background(), 2, 1, nil, 1000)
	require.NoError(t, err)
	assert.Len(t, msgs, 60)

	_, err = svc.ListMessages(context.Background(), 3, 1, nil, 10)
	assert.ErrorIs(t, err, ErrNotChatMember)
}
