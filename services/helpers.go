package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
	"github.com/Dosada05/power-play/storage"
)

// Actor - текущий пользователь запроса.
type Actor struct {
	ID   int
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

var seoulLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}()

// formatMatchTime - дата матча для текстов уведомлений (по корейскому времени).
func formatMatchTime(t time.Time) string {
	return t.In(seoulLocation).Format("2006-01-02 15:04")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimmedOrNil возвращает nil для пустых строк, чтобы в БД писался NULL.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func populateProfileAvatarURL(p *models.Profile, uploader storage.FileUploader) {
	if p == nil {
		return
	}
	p.PasswordHash = ""
	if p.AvatarKey != nil && *p.AvatarKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*p.AvatarKey); url != "" {
			p.AvatarURL = &url
		}
	}
}

func populateClubLogoURL(c *models.Club, uploader storage.FileUploader) {
	if c != nil && c.LogoKey != nil && *c.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*c.LogoKey); url != "" {
			c.LogoURL = &url
		}
	}
}

// remainingSeats - сколько мест осталось по каждой позиции (не меньше нуля).
func remainingSeats(m *models.Match, taken map[models.Position]int) map[models.Position]int {
	out := make(map[models.Position]int, len(models.AllPositions))
	for _, pos := range models.AllPositions {
		left := m.Capacity(pos) - taken[pos]
		if left < 0 {
			left = 0
		}
		out[pos] = left
	}
	return out
}

// mapRepoError переводит ошибки репозиториев в ошибки сервисного слоя.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrProfileNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrProfileEmailConflict):
		return ErrEmailConflict
	case errors.Is(err, repositories.ErrInsufficientPoints):
		return ErrInsufficientPoints
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchRinkInvalid):
		return ErrRinkNotFound
	case errors.Is(err, repositories.ErrMatchClubInvalid):
		return ErrClubNotFound
	case errors.Is(err, repositories.ErrParticipantNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repositories.ErrParticipantConflict):
		return ErrAlreadyRegistered
	case errors.Is(err, repositories.ErrChargeNotFound):
		return ErrChargeNotFound
	case errors.Is(err, repositories.ErrClubNotFound):
		return ErrClubNotFound
	case errors.Is(err, repositories.ErrClubNameConflict):
		return ErrClubNameConflict
	case errors.Is(err, repositories.ErrClubMemberNotFound):
		return ErrClubMemberNotFound
	case errors.Is(err, repositories.ErrClubMemberConflict):
		return ErrAlreadyClubMember
	case errors.Is(err, repositories.ErrRinkNotFound):
		return ErrRinkNotFound
	case errors.Is(err, repositories.ErrRinkInUse):
		return ErrRinkInUse
	case errors.Is(err, repositories.ErrChatRoomNotFound):
		return ErrChatRoomNotFound
	}
	return err
}

func wrapRepoError(op string, err error) error {
	mapped := mapRepoError(err)
	if mapped != err {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}
