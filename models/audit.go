package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID         int             `json:"id"`
	ActorID    *int            `json:"actor_id,omitempty"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   *int            `json:"target_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AuditFilter struct {
	Action *string
	Page   int
	Limit  int
}
