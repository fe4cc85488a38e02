package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/power-play/models"
)

var ErrChatRoomNotFound = errors.New("chat room not found")

type ChatRepository interface {
	// FindRoom ищет комнату по упорядоченной паре (userA < userB) и матчу.
	FindRoom(ctx context.Context, userA, userB int, matchID *int) (*models.ChatRoom, error)
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	GetRoom(ctx context.Context, id int) (*models.ChatRoom, error)
	ListRoomsByUser(ctx context.Context, userID int) ([]*models.ChatRoom, error)

	CreateMessage(ctx context.Context, exec SQLExecutor, msg *models.ChatMessage) error
	TouchRoom(ctx context.Context, exec SQLExecutor, roomID int, at time.Time) error
	ListMessages(ctx context.Context, roomID int, beforeID *int, limit int) ([]*models.ChatMessage, error)
	MarkRead(ctx context.Context, roomID, readerID int, at time.Time) (int64, error)
	CountUnread(ctx context.Context, userID int) (int, error)
}

type postgresChatRepository struct {
	db *sql.DB
}

func NewPostgresChatRepository(db *sql.DB) ChatRepository {
	return &postgresChatRepository{db: db}
}

const chatRoomColumns = `id, match_id, user_a, user_b, last_message_at, created_at`

func scanChatRoom(row interface{ Scan(dest ...interface{}) error }, room *models.ChatRoom) error {
	return row.Scan(&room.ID, &room.MatchID, &room.UserA, &room.UserB, &room.LastMessageAt, &room.CreatedAt)
}

func (r *postgresChatRepository) FindRoom(ctx context.Context, userA, userB int, matchID *int) (*models.ChatRoom, error) {
	query := `SELECT ` + chatRoomColumns + `
		FROM chat_rooms
		WHERE user_a = $1 AND user_b = $2 AND COALESCE(match_id, 0) = COALESCE($3, 0)`
	var room models.ChatRoom
	if err := scanChatRoom(r.db.QueryRowContext(ctx, query, userA, userB, matchID), &room); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatRoomNotFound
		}
		return nil, fmt.Errorf("failed to find chat room: %w", err)
	}
	return &room, nil
}

func (r *postgresChatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	query := `
		INSERT INTO chat_rooms (match_id, user_a, user_b)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, room.MatchID, room.UserA, room.UserB).Scan(&room.ID, &room.CreatedAt); err != nil {
		return fmt.Errorf("failed to create chat room: %w", err)
	}
	return nil
}

func (r *postgresChatRepository) GetRoom(ctx context.Context, id int) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := scanChatRoom(r.db.QueryRowContext(ctx, `SELECT `+chatRoomColumns+` FROM chat_rooms WHERE id = $1`, id), &room); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatRoomNotFound
		}
		return nil, fmt.Errorf("failed to get chat room: %w", err)
	}
	return &room, nil
}

func (r *postgresChatRepository) ListRoomsByUser(ctx context.Context, userID int) ([]*models.ChatRoom, error) {
	query := `
		SELECT r.id, r.match_id, r.user_a, r.user_b, r.last_message_at, r.created_at,
			COALESCE(peer.full_name, ''),
			(SELECT m.content FROM chat_messages m WHERE m.room_id = r.id ORDER BY m.id DESC LIMIT 1),
			(SELECT COUNT(*) FROM chat_messages m WHERE m.room_id = r.id AND m.sender_id <> $1 AND m.read_at IS NULL)
		FROM chat_rooms r
		LEFT JOIN profiles peer ON peer.id = CASE WHEN r.user_a = $1 THEN r.user_b ELSE r.user_a END
		WHERE r.user_a = $1 OR r.user_b = $1
		ORDER BY COALESCE(r.last_message_at, r.created_at) DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*models.ChatRoom, 0)
	for rows.Next() {
		var room models.ChatRoom
		if err := rows.Scan(&room.ID, &room.MatchID, &room.UserA, &room.UserB, &room.LastMessageAt, &room.CreatedAt,
			&room.PeerName, &room.LastMessage, &room.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan chat room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

func (r *postgresChatRepository) CreateMessage(ctx context.Context, exec SQLExecutor, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (room_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query, msg.RoomID, msg.SenderID, msg.Content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *postgresChatRepository) TouchRoom(ctx context.Context, exec SQLExecutor, roomID int, at time.Time) error {
	result, err := pickExecutor(r.db, exec).ExecContext(ctx, `UPDATE chat_rooms SET last_message_at = $1 WHERE id = $2`, at, roomID)
	if err != nil {
		return fmt.Errorf("failed to touch chat room: %w", err)
	}
	return checkAffectedRows(result, ErrChatRoomNotFound)
}

func (r *postgresChatRepository) ListMessages(ctx context.Context, roomID int, beforeID *int, limit int) ([]*models.ChatMessage, error) {
	args := []interface{}{roomID}
	query := `SELECT id, room_id, sender_id, content, read_at, created_at FROM chat_messages WHERE room_id = $1`
	if beforeID != nil {
		args = append(args, *beforeID)
		query += " AND id < $2"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// В ответе сообщения идут от старых к новым.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *postgresChatRepository) MarkRead(ctx context.Context, roomID, readerID int, at time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE chat_messages SET read_at = $1 WHERE room_id = $2 AND sender_id <> $3 AND read_at IS NULL`,
		at, roomID, readerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark chat messages read: %w", err)
	}
	return result.RowsAffected()
}

func (r *postgresChatRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM chat_messages m
		JOIN chat_rooms r ON r.id = m.room_id
		WHERE (r.user_a = $1 OR r.user_b = $1) AND m.sender_id <> $1 AND m.read_at IS NULL`
	var n int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&n)
	return n, err
}
