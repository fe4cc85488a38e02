package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/push"
	"github.com/Dosada05/power-play/repositories"
)

const (
	defaultPushConcurrency = 8
	pushDeliveryTimeout    = 30 * time.Second
)

// Notification описывает push-уведомление через ключи каталога; текст собирается
// на языке получателя. Body используется как есть, если BodyKey пустой (текст сообщения чата).
type Notification struct {
	TitleKey  string
	TitleArgs []interface{}
	BodyKey   string
	BodyArgs  []interface{}
	Body      string
	URL       string
}

// Notifier отправляет уведомления в фоне. Ошибки доставки только логируются.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int, n Notification)
	NotifyRole(ctx context.Context, role models.UserRole, n Notification)
}

type SubscribeInput struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type NotificationService interface {
	Notifier
	Subscribe(ctx context.Context, userID int, input SubscribeInput) (*models.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	VAPIDPublicKey() string
	// Wait дожидается завершения отправок, запущенных в фоне.
	Wait()
}

type notificationService struct {
	pushRepo    repositories.PushRepository
	profileRepo repositories.ProfileRepository
	sender      push.Sender
	translator  *i18n.Translator
	publicKey   string
	concurrency int
	logger      *slog.Logger
	wg          sync.WaitGroup
}

func NewNotificationService(
	pushRepo repositories.PushRepository,
	profileRepo repositories.ProfileRepository,
	sender push.Sender,
	translator *i18n.Translator,
	publicKey string,
	logger *slog.Logger,
) NotificationService {
	if sender == nil {
		sender = push.NopSender{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		pushRepo:    pushRepo,
		profileRepo: profileRepo,
		sender:      sender,
		translator:  translator,
		publicKey:   publicKey,
		concurrency: defaultPushConcurrency,
		logger:      logger,
	}
}

func (s *notificationService) VAPIDPublicKey() string {
	return s.publicKey
}

func (s *notificationService) Subscribe(ctx context.Context, userID int, input SubscribeInput) (*models.PushSubscription, error) {
	endpoint := strings.TrimSpace(input.Endpoint)
	if endpoint == "" || input.Keys.P256dh == "" || input.Keys.Auth == "" {
		return nil, ErrInvalidPushSubscription
	}
	if !strings.HasPrefix(endpoint, "https://") {
		return nil, ErrInvalidPushSubscription
	}
	sub := &models.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   input.Keys.P256dh,
		Auth:     input.Keys.Auth,
	}
	if err := s.pushRepo.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrInvalidPushSubscription
	}
	err := s.pushRepo.DeleteByEndpoint(ctx, endpoint)
	if errors.Is(err, repositories.ErrPushSubscriptionNotFound) {
		return nil
	}
	return err
}

func (s *notificationService) NotifyUser(ctx context.Context, userID int, n Notification) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushDeliveryTimeout)
		defer cancel()

		subs, err := s.pushRepo.ListByUser(bgCtx, userID)
		if err != nil {
			s.logger.Error("failed to load push subscriptions", slog.Int("user_id", userID), slog.Any("error", err))
			return
		}
		s.deliver(bgCtx, subs, n)
	}()
}

func (s *notificationService) NotifyRole(ctx context.Context, role models.UserRole, n Notification) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushDeliveryTimeout)
		defer cancel()

		subs, err := s.pushRepo.ListByRole(bgCtx, role)
		if err != nil {
			s.logger.Error("failed to load push subscriptions", slog.String("role", string(role)), slog.Any("error", err))
			return
		}
		s.deliver(bgCtx, subs, n)
	}()
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}

// deliver рассылает уведомление по подпискам с ограниченной параллельностью.
// Подписки, на которые push-сервис ответил 404/410, удаляются.
func (s *notificationService) deliver(ctx context.Context, subs []models.PushSubscription, n Notification) {
	if len(subs) == 0 {
		return
	}

	payloads := make(map[int][]byte)
	for _, sub := range subs {
		if _, ok := payloads[sub.UserID]; ok {
			continue
		}
		data, err := json.Marshal(s.render(ctx, sub.UserID, n))
		if err != nil {
			s.logger.Error("failed to marshal push payload", slog.Any("error", err))
			return
		}
		payloads[sub.UserID] = data
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, sub := range subs {
		g.Go(func() error {
			err := s.sender.Send(gctx, sub, payloads[sub.UserID])
			switch {
			case err == nil:
			case errors.Is(err, push.ErrSubscriptionGone):
				s.logger.Info("pruning expired push subscription", slog.Int("user_id", sub.UserID), slog.Int("subscription_id", sub.ID))
				if delErr := s.pushRepo.DeleteByEndpoint(gctx, sub.Endpoint); delErr != nil && !errors.Is(delErr, repositories.ErrPushSubscriptionNotFound) {
					s.logger.Error("failed to prune push subscription", slog.Int("subscription_id", sub.ID), slog.Any("error", delErr))
				}
			default:
				s.logger.Warn("push delivery failed", slog.Int("user_id", sub.UserID), slog.Int("subscription_id", sub.ID), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// render собирает payload на предпочитаемом языке получателя.
func (s *notificationService) render(ctx context.Context, userID int, n Notification) models.PushPayload {
	lang := i18n.DefaultLang
	if profile, err := s.profileRepo.GetByID(ctx, userID); err == nil && i18n.IsSupported(profile.PreferredLang) {
		lang = profile.PreferredLang
	}
	payload := models.PushPayload{Title: n.TitleKey, Body: n.Body, URL: n.URL}
	if s.translator != nil {
		payload.Title = s.translator.T(lang, n.TitleKey, n.TitleArgs...)
		if n.BodyKey != "" {
			payload.Body = s.translator.T(lang, n.BodyKey, n.BodyArgs...)
		}
	}
	return payload
}
