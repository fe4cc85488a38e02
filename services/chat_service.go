package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/realtime"
	"github.com/Dosada05/power-play/repositories"
)

const (
	MaxChatMessageLength = 1000
	defaultMessagePage   = 50
	maxMessagePage       = 200
)

// RoomBroadcaster - то, что нужно чату от websocket-хаба.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, event realtime.Event)
}

type ChatService interface {
	OpenRoom(ctx context.Context, userID int, input OpenRoomInput) (*models.ChatRoom, error)
	ListRooms(ctx context.Context, userID int) ([]*models.ChatRoom, error)
	// AuthorizeRoom проверяет, что пользователь - участник комнаты.
	AuthorizeRoom(ctx context.Context, userID, roomID int) (*models.ChatRoom, error)
	ListMessages(ctx context.Context, userID, roomID int, beforeID *int, limit int) ([]*models.ChatMessage, error)
	SendMessage(ctx context.Context, userID, roomID int, content string) (*models.ChatMessage, error)
	MarkRead(ctx context.Context, userID, roomID int) (int64, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
}

type OpenRoomInput struct {
	PeerID  int  `json:"peer_id"`
	MatchID *int `json:"match_id,omitempty"`
}

type chatService struct {
	chatRepo    repositories.ChatRepository
	profileRepo repositories.ProfileRepository
	tx          repositories.Transactor
	hub         RoomBroadcaster
	notifier    Notifier
	logger      *slog.Logger
	now         func() time.Time
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	profileRepo repositories.ProfileRepository,
	tx repositories.Transactor,
	hub RoomBroadcaster,
	notifier Notifier,
	logger *slog.Logger,
) ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
		tx:          tx,
		hub:         hub,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// OpenRoom возвращает комнату двух пользователей (по матчу, если он указан), создавая её при необходимости.
func (s *chatService) OpenRoom(ctx context.Context, userID int, input OpenRoomInput) (*models.ChatRoom, error) {
	if input.PeerID == userID {
		return nil, ErrChatWithSelf
	}
	peer, err := s.profileRepo.GetByID(ctx, input.PeerID)
	if err != nil {
		return nil, wrapRepoError("failed to get chat peer", err)
	}
	if peer.IsDeleted() {
		return nil, ErrUserNotFound
	}

	userA, userB := userID, input.PeerID
	if userA > userB {
		userA, userB = userB, userA
	}

	room, err := s.chatRepo.FindRoom(ctx, userA, userB, input.MatchID)
	if err == nil {
		room.PeerName = peer.FullName
		return room, nil
	}
	if !errors.Is(err, repositories.ErrChatRoomNotFound) {
		return nil, err
	}

	room = &models.ChatRoom{MatchID: input.MatchID, UserA: userA, UserB: userB}
	if err := s.chatRepo.CreateRoom(ctx, room); err != nil {
		// Комнату мог одновременно создать собеседник.
		existing, findErr := s.chatRepo.FindRoom(ctx, userA, userB, input.MatchID)
		if findErr != nil {
			return nil, err
		}
		room = existing
	}
	room.PeerName = peer.FullName
	return room, nil
}

func (s *chatService) ListRooms(ctx context.Context, userID int) ([]*models.ChatRoom, error) {
	return s.chatRepo.ListRoomsByUser(ctx, userID)
}

func (s *chatService) AuthorizeRoom(ctx context.Context, userID, roomID int) (*models.ChatRoom, error) {
	room, err := s.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, wrapRepoError("failed to get chat room", err)
	}
	if !room.HasMember(userID) {
		return nil, ErrNotChatMember
	}
	return room, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, roomID int, beforeID *int, limit int) ([]*models.ChatMessage, error) {
	if _, err := s.AuthorizeRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessagePage
	}
	if limit > maxMessagePage {
		limit = maxMessagePage
	}
	return s.chatRepo.ListMessages(ctx, roomID, beforeID, limit)
}

// SendMessage сохраняет сообщение, рассылает MESSAGE_CREATED подписчикам комнаты
// и отправляет push собеседнику.
func (s *chatService) SendMessage(ctx context.Context, userID, roomID int, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > MaxChatMessageLength {
		return nil, ErrMessageTooLong
	}
	room, err := s.AuthorizeRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{RoomID: roomID, SenderID: userID, Content: content}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.chatRepo.CreateMessage(ctx, exec, msg); err != nil {
			return err
		}
		return s.chatRepo.TouchRoom(ctx, exec, roomID, msg.CreatedAt)
	})
	if err != nil {
		return nil, wrapRepoError("failed to send chat message", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(realtime.ChatRoomKey(roomID), realtime.Event{
			Type:    realtime.EventMessageCreated,
			Payload: msg,
		})
	}

	senderName := ""
	if sender, err := s.profileRepo.GetByID(ctx, userID); err == nil {
		senderName = sender.FullName
	}
	s.notifier.NotifyUser(ctx, room.Peer(userID), Notification{
		TitleKey:  i18n.MsgChatNewMessageTitle,
		TitleArgs: []interface{}{senderName},
		Body:      previewText(content, 100),
		URL:       fmt.Sprintf("/chat/%d", roomID),
	})
	return msg, nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, roomID int) (int64, error) {
	if _, err := s.AuthorizeRoom(ctx, userID, roomID); err != nil {
		return 0, err
	}
	n, err := s.chatRepo.MarkRead(ctx, roomID, userID, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 && s.hub != nil {
		s.hub.BroadcastToRoom(realtime.ChatRoomKey(roomID), realtime.Event{
			Type:    realtime.EventMessagesRead,
			Payload: map[string]int{"reader_id": userID},
		})
	}
	return n, nil
}

func (s *chatService) UnreadCount(ctx context.Context, userID int) (int, error) {
	return s.chatRepo.CountUnread(ctx, userID)
}

func previewText(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
