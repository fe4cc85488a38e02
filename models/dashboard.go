package models

type DashboardStats struct {
	UsersTotal     int `json:"users_total"`
	OpenMatches    int `json:"open_matches"`
	PendingCharges int `json:"pending_charges"`
	ClubsTotal     int `json:"clubs_total"`
}
