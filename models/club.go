package models

import "time"

type ClubMemberRole string

const (
	ClubRoleMember ClubMemberRole = "member"
	ClubRoleAdmin  ClubMemberRole = "admin"
)

type ClubMemberStatus string

const (
	ClubMemberPending  ClubMemberStatus = "pending"
	ClubMemberApproved ClubMemberStatus = "approved"
	ClubMemberRejected ClubMemberStatus = "rejected"
)

type Club struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	LogoKey     *string   `json:"-"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	ContactInfo *string   `json:"contact_info,omitempty"`
	OpenChatURL *string   `json:"open_chat_url,omitempty"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	MemberCount int `json:"member_count"`
}

type ClubMember struct {
	ClubID    int              `json:"club_id"`
	UserID    int              `json:"user_id"`
	Role      ClubMemberRole   `json:"role"`
	Status    ClubMemberStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	FullName string    `json:"full_name,omitempty"`
	Position *Position `json:"position,omitempty"`
}

func (m *ClubMember) IsApprovedAdmin() bool {
	return m != nil && m.Role == ClubRoleAdmin && m.Status == ClubMemberApproved
}
