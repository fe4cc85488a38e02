package models

import "time"

type ParticipantStatus string

const (
	ParticipantApplied        ParticipantStatus = "applied"
	ParticipantConfirmed      ParticipantStatus = "confirmed"
	ParticipantWaiting        ParticipantStatus = "waiting"
	ParticipantCanceled       ParticipantStatus = "canceled"
	ParticipantPendingPayment ParticipantStatus = "pending_payment"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantApplied, ParticipantConfirmed, ParticipantWaiting, ParticipantCanceled, ParticipantPendingPayment:
		return true
	}
	return false
}

// HoldsSeat - занимает ли заявка место в составе.
func (s ParticipantStatus) HoldsSeat() bool {
	return s != ParticipantCanceled && s != ParticipantWaiting
}

type Participant struct {
	ID        int               `json:"id"`
	MatchID   int               `json:"match_id"`
	UserID    int               `json:"user_id"`
	Position  Position          `json:"position"`
	Status    ParticipantStatus `json:"status"`
	Paid      bool              `json:"paid"`
	CreatedAt time.Time         `json:"created_at"`

	FullName string `json:"full_name,omitempty"`
}
