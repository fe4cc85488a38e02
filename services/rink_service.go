package services

import (
	"context"
	"strings"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

type RinkService interface {
	List(ctx context.Context) ([]*models.Rink, error)
	GetByID(ctx context.Context, id int) (*models.Rink, error)
	Create(ctx context.Context, actor Actor, input RinkInput) (*models.Rink, error)
	Update(ctx context.Context, actor Actor, id int, input RinkInput) (*models.Rink, error)
	Delete(ctx context.Context, actor Actor, id int) error
}

type RinkInput struct {
	NameKo   string          `json:"name_ko"`
	NameEn   string          `json:"name_en"`
	Address  string          `json:"address"`
	Lat      *float64        `json:"lat"`
	Lng      *float64        `json:"lng"`
	RinkType models.RinkType `json:"rink_type"`
}

type rinkService struct {
	rinkRepo repositories.RinkRepository
	audit    AuditService
}

func NewRinkService(rinkRepo repositories.RinkRepository, audit AuditService) RinkService {
	return &rinkService{rinkRepo: rinkRepo, audit: audit}
}

func (s *rinkService) List(ctx context.Context) ([]*models.Rink, error) {
	rinks, err := s.rinkRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	lang := i18n.FromContext(ctx)
	for _, r := range rinks {
		r.DisplayName = r.LocalizedName(lang)
	}
	return rinks, nil
}

func (s *rinkService) GetByID(ctx context.Context, id int) (*models.Rink, error) {
	rink, err := s.rinkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError("failed to get rink", err)
	}
	rink.DisplayName = rink.LocalizedName(i18n.FromContext(ctx))
	return rink, nil
}

func (input RinkInput) apply(rink *models.Rink) error {
	nameKo := strings.TrimSpace(input.NameKo)
	if nameKo == "" {
		return ErrRinkNameRequired
	}
	rinkType := input.RinkType
	if rinkType == "" {
		rinkType = models.RinkTypeFull
	}
	if rinkType != models.RinkTypeFull && rinkType != models.RinkTypeMini {
		return ErrInvalidRinkType
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		return ErrValidationFailed
	}
	rink.NameKo = nameKo
	rink.NameEn = strings.TrimSpace(input.NameEn)
	rink.Address = strings.TrimSpace(input.Address)
	rink.Lat = input.Lat
	rink.Lng = input.Lng
	rink.RinkType = rinkType
	return nil
}

func (s *rinkService) Create(ctx context.Context, actor Actor, input RinkInput) (*models.Rink, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	rink := &models.Rink{}
	if err := input.apply(rink); err != nil {
		return nil, err
	}
	if err := s.rinkRepo.Create(ctx, rink); err != nil {
		return nil, wrapRepoError("failed to create rink", err)
	}
	rink.DisplayName = rink.LocalizedName(i18n.FromContext(ctx))

	s.audit.Record(ctx, AuditEntry{ActorID: &actor.ID, Action: ActionRinkCreated, TargetType: "rink", TargetID: &rink.ID})
	return rink, nil
}

func (s *rinkService) Update(ctx context.Context, actor Actor, id int, input RinkInput) (*models.Rink, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	rink, err := s.rinkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError("failed to get rink", err)
	}
	if err := input.apply(rink); err != nil {
		return nil, err
	}
	if err := s.rinkRepo.Update(ctx, rink); err != nil {
		return nil, wrapRepoError("failed to update rink", err)
	}
	rink.DisplayName = rink.LocalizedName(i18n.FromContext(ctx))

	s.audit.Record(ctx, AuditEntry{ActorID: &actor.ID, Action: ActionRinkUpdated, TargetType: "rink", TargetID: &rink.ID})
	return rink, nil
}

func (s *rinkService) Delete(ctx context.Context, actor Actor, id int) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	if err := s.rinkRepo.Delete(ctx, id); err != nil {
		return wrapRepoError("failed to delete rink", err)
	}
	s.audit.Record(ctx, AuditEntry{ActorID: &actor.ID, Action: ActionRinkDeleted, TargetType: "rink", TargetID: &id})
	return nil
}
