package models

import "time"

type ChatRoom struct {
	ID            int        `json:"id"`
	MatchID       *int       `json:"match_id,omitempty"`
	UserA         int        `json:"user_a"`
	UserB         int        `json:"user_b"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	PeerName    string  `json:"peer_name,omitempty"`
	LastMessage *string `json:"last_message,omitempty"`
	UnreadCount int     `json:"unread_count"`
}

func (r *ChatRoom) HasMember(userID int) bool {
	return r.UserA == userID || r.UserB == userID
}

// Peer возвращает собеседника userID.
func (r *ChatRoom) Peer(userID int) int {
	if r.UserA == userID {
		return r.UserB
	}
	return r.UserA
}

type ChatMessage struct {
	ID        int        `json:"id"`
	RoomID    int        `json:"room_id"`
	SenderID  int        `json:"sender_id"`
	Content   string     `json:"content"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
