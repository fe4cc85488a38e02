package models

import "time"

type ChargeStatus string

const (
	ChargePending   ChargeStatus = "pending"
	ChargeConfirmed ChargeStatus = "confirmed"
	ChargeRejected  ChargeStatus = "rejected"
)

type PointChargeRequest struct {
	ID            int          `json:"id"`
	UserID        int          `json:"user_id"`
	Amount        int          `json:"amount"`
	DepositorName string       `json:"depositor_name"`
	Status        ChargeStatus `json:"status"`
	ProcessedBy   *int         `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time   `json:"processed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`

	UserName string `json:"user_name,omitempty"`
}

type PointTransactionType string

const (
	PointTxCharge PointTransactionType = "charge"
	PointTxUse    PointTransactionType = "use"
	PointTxRefund PointTransactionType = "refund"
	PointTxAdjust PointTransactionType = "adjust"
)

type PointTransaction struct {
	ID           int                  `json:"id"`
	UserID       int                  `json:"user_id"`
	Amount       int                  `json:"amount"`
	Type         PointTransactionType `json:"type"`
	ReferenceID  *int                 `json:"reference_id,omitempty"`
	BalanceAfter int                  `json:"balance_after"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Settlement - результат подтверждения пополнения.
type Settlement struct {
	Request               *PointChargeRequest `json:"request"`
	Balance               int                 `json:"balance"`
	ConfirmedParticipants []int               `json:"confirmed_participants"`
}
