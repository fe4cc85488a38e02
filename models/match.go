package models

import "time"

type MatchStatus string

const (
	MatchStatusOpen     MatchStatus = "open"
	MatchStatusClosed   MatchStatus = "closed"
	MatchStatusCanceled MatchStatus = "canceled"
)

type Match struct {
	ID          int         `json:"id"`
	RinkID      int         `json:"rink_id"`
	ClubID      *int        `json:"club_id,omitempty"`
	StartTime   time.Time   `json:"start_time"`
	EntryPoints int         `json:"entry_points"`
	GoalieFree  bool        `json:"goalie_free"`
	MaxForward  int         `json:"max_fw"`
	MaxDefense  int         `json:"max_df"`
	MaxGoalie   int         `json:"max_g"`
	Status      MatchStatus `json:"status"`
	Description *string     `json:"description,omitempty"`
	CreatedBy   int         `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`

	Rink           *Rink            `json:"rink,omitempty"`
	Club           *Club            `json:"club,omitempty"`
	Participants   []Participant    `json:"participants,omitempty"`
	RemainingSeats map[Position]int `json:"remaining_seats,omitempty"`
}

// Capacity возвращает лимит мест для позиции.
func (m *Match) Capacity(p Position) int {
	switch p {
	case PositionForward:
		return m.MaxForward
	case PositionDefense:
		return m.MaxDefense
	case PositionGoalie:
		return m.MaxGoalie
	}
	return 0
}

// FeeFor - стоимость участия для позиции в очках.
func (m *Match) FeeFor(p Position) int {
	if p == PositionGoalie && m.GoalieFree {
		return 0
	}
	return m.EntryPoints
}

type MatchFilter struct {
	From   *time.Time
	To     *time.Time
	ClubID *int
	RinkID *int
	Status *MatchStatus
	Page   int
	Limit  int
}
