package models

import "time"

type RinkType string

const (
	RinkTypeFull RinkType = "full"
	RinkTypeMini RinkType = "mini"
)

type Rink struct {
	ID        int       `json:"id"`
	NameKo    string    `json:"name_ko"`
	NameEn    string    `json:"name_en"`
	Address   string    `json:"address"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	RinkType  RinkType  `json:"rink_type"`
	CreatedAt time.Time `json:"created_at"`

	// DisplayName заполняется сервисом в зависимости от локали запроса.
	DisplayName string `json:"display_name,omitempty"`
}

// LocalizedName возвращает английское имя для "en", если оно задано, иначе корейское.
func (r *Rink) LocalizedName(lang string) string {
	if lang == "en" && r.NameEn != "" {
		return r.NameEn
	}
	return r.NameKo
}
