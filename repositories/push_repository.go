package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/power-play/models"
)

var ErrPushSubscriptionNotFound = errors.New("push subscription not found")

type PushRepository interface {
	// Upsert перепривязывает endpoint к пользователю, если он уже зарегистрирован.
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	ListByUser(ctx context.Context, userID int) ([]models.PushSubscription, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.PushSubscription, error)
}

type postgresPushRepository struct {
	db *sql.DB
}

func NewPostgresPushRepository(db *sql.DB) PushRepository {
	return &postgresPushRepository{db: db}
}

func (r *postgresPushRepository) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT push_subscriptions_endpoint_key
		DO UPDATE SET user_id = EXCLUDED.user_id, p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return nil
}

func (r *postgresPushRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return checkAffectedRows(result, ErrPushSubscriptionNotFound)
}

func (r *postgresPushRepository) ListByUser(ctx context.Context, userID int) ([]models.PushSubscription, error) {
	return r.list(ctx, `
		SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions
		WHERE user_id = $1`, userID)
}

func (r *postgresPushRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.PushSubscription, error) {
	return r.list(ctx, `
		SELECT s.id, s.user_id, s.endpoint, s.p256dh, s.auth, s.created_at
		FROM push_subscriptions s
		JOIN profiles p ON p.id = s.user_id
		WHERE p.role = $1 AND p.deleted_at IS NULL`, role)
}

func (r *postgresPushRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.PushSubscription, 0)
	for rows.Next() {
		var s models.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
