package models

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleSuperuser UserRole = "superuser"
)

// IsAdmin - superuser тоже считается администратором.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

type Position string

const (
	PositionForward Position = "FW"
	PositionDefense Position = "DF"
	PositionGoalie  Position = "G"
)

var AllPositions = []Position{PositionForward, PositionDefense, PositionGoalie}

func (p Position) Valid() bool {
	switch p {
	case PositionForward, PositionDefense, PositionGoalie:
		return true
	}
	return false
}

type Profile struct {
	ID                  int        `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	FullName            string     `json:"full_name"`
	Phone               *string    `json:"phone,omitempty"`
	Role                UserRole   `json:"role"`
	Position            *Position  `json:"position,omitempty"`
	Points              int        `json:"points"`
	PreferredLang       string     `json:"preferred_lang"`
	AvatarKey           *string    `json:"-"`
	AvatarURL           *string    `json:"avatar_url,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (p *Profile) IsDeleted() bool {
	return p.DeletedAt != nil
}

type ProfileFilter struct {
	Search string
	Role   *UserRole
	Page   int
	Limit  int
}

type ProfileListResponse struct {
	Users      []Profile `json:"users"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}
