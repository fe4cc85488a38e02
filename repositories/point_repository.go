package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/power-play/models"
)

var ErrChargeNotFound = errors.New("point charge request not found")

type PointRepository interface {
	CreateCharge(ctx context.Context, c *models.PointChargeRequest) error
	GetChargeForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.PointChargeRequest, error)
	UpdateChargeStatus(ctx context.Context, exec SQLExecutor, id int, status models.ChargeStatus, processedBy int, at time.Time) error
	ListCharges(ctx context.Context, status *models.ChargeStatus, userID *int, page, limit int) ([]models.PointChargeRequest, error)
	CountCharges(ctx context.Context, status models.ChargeStatus) (int, error)
	AddTransaction(ctx context.Context, exec SQLExecutor, tx *models.PointTransaction) error
	ListTransactions(ctx context.Context, userID int, page, limit int) ([]models.PointTransaction, error)
}

type postgresPointRepository struct {
	db *sql.DB
}

func NewPostgresPointRepository(db *sql.DB) PointRepository {
	return &postgresPointRepository{db: db}
}

func (r *postgresPointRepository) CreateCharge(ctx context.Context, c *models.PointChargeRequest) error {
	query := `
		INSERT INTO point_charge_requests (user_id, amount, depositor_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.UserID, c.Amount, c.DepositorName, c.Status).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create point charge request: %w", err)
	}
	return nil
}

func (r *postgresPointRepository) GetChargeForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.PointChargeRequest, error) {
	query := `
		SELECT id, user_id, amount, depositor_name, status, processed_by, processed_at, created_at
		FROM point_charge_requests
		WHERE id = $1
		FOR UPDATE`

	var c models.PointChargeRequest
	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.Amount, &c.DepositorName, &c.Status, &c.ProcessedBy, &c.ProcessedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to get point charge request: %w", err)
	}
	return &c, nil
}

func (r *postgresPointRepository) UpdateChargeStatus(ctx context.Context, exec SQLExecutor, id int, status models.ChargeStatus, processedBy int, at time.Time) error {
	query := `UPDATE point_charge_requests SET status = $1, processed_by = $2, processed_at = $3 WHERE id = $4`
	result, err := pickExecutor(r.db, exec).ExecContext(ctx, query, status, processedBy, at, id)
	if err != nil {
		return fmt.Errorf("failed to update point charge request: %w", err)
	}
	return checkAffectedRows(result, ErrChargeNotFound)
}

func (r *postgresPointRepository) ListCharges(ctx context.Context, status *models.ChargeStatus, userID *int, page, limit int) ([]models.PointChargeRequest, error) {
	var queryBuilder strings.Builder
	args := []interface{}{}

	queryBuilder.WriteString(`
		SELECT c.id, c.user_id, c.amount, c.depositor_name, c.status, c.processed_by, c.processed_at, c.created_at,
			COALESCE(p.full_name, '')
		FROM point_charge_requests c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE 1=1`)
	if status != nil {
		args = append(args, *status)
		queryBuilder.WriteString(fmt.Sprintf(" AND c.status = $%d", len(args)))
	}
	if userID != nil {
		args = append(args, *userID)
		queryBuilder.WriteString(fmt.Sprintf(" AND c.user_id = $%d", len(args)))
	}
	l, offset := pageOffset(page, limit)
	args = append(args, l, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list point charge requests: %w", err)
	}
	defer rows.Close()

	charges := make([]models.PointChargeRequest, 0)
	for rows.Next() {
		var c models.PointChargeRequest
		if err := rows.Scan(&c.ID, &c.UserID, &c.Amount, &c.DepositorName, &c.Status, &c.ProcessedBy, &c.ProcessedAt, &c.CreatedAt, &c.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan point charge request: %w", err)
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

func (r *postgresPointRepository) CountCharges(ctx context.Context, status models.ChargeStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM point_charge_requests WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *postgresPointRepository) AddTransaction(ctx context.Context, exec SQLExecutor, tx *models.PointTransaction) error {
	query := `
		INSERT INTO point_transactions (user_id, amount, type, reference_id, balance_after)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query,
		tx.UserID, tx.Amount, tx.Type, tx.ReferenceID, tx.BalanceAfter,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add point transaction: %w", err)
	}
	return nil
}

func (r *postgresPointRepository) ListTransactions(ctx context.Context, userID int, page, limit int) ([]models.PointTransaction, error) {
	l, offset := pageOffset(page, limit)
	query := `
		SELECT id, user_id, amount, type, reference_id, balance_after, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, l, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list point transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]models.PointTransaction, 0)
	for rows.Next() {
		var t models.PointTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.ReferenceID, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
