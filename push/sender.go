// Package push доставляет web-push уведомления (VAPID).
package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/Dosada05/power-play/models"
)

// ErrSubscriptionGone - endpoint больше не существует (HTTP 404/410), подписку нужно удалить.
var ErrSubscriptionGone = errors.New("push subscription expired or unsubscribed")

type Sender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error
}

type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subject    string
	TTL        int
}

type webPushSender struct {
	cfg    VAPIDConfig
	client webpush.HTTPClient
}

// NewWebPushSender создаёт отправителя. client может быть nil - тогда используется http.Client по умолчанию.
func NewWebPushSender(cfg VAPIDConfig, client webpush.HTTPClient) (Sender, error) {
	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, errors.New("invalid VAPID configuration: public and private keys are required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 60 * 60 * 24
	}
	if client == nil {
		client = &http.Client{}
	}
	return &webPushSender{cfg: cfg, client: client}, nil
}

func (s *webPushSender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             s.cfg.TTL,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service responded with status %d", resp.StatusCode)
	}
	return nil
}

// NopSender используется, когда VAPID-ключи не настроены.
type NopSender struct{}

func (NopSender) Send(context.Context, models.PushSubscription, []byte) error { return nil }
