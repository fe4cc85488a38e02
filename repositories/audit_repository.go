package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/power-play/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, int, error)
}

type postgresAuditRepository struct {
	db *sql.DB
}

func NewPostgresAuditRepository(db *sql.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

func (r *postgresAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	var details interface{}
	if len(entry.Details) > 0 {
		details = []byte(entry.Details)
	}
	query := `
		INSERT INTO audit_logs (actor_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, entry.ActorID, entry.Action, entry.TargetType, entry.TargetID, details).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *postgresAuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, int, error) {
	args := []interface{}{}
	where := ""
	if filter.Action != nil {
		args = append(args, *filter.Action)
		where = " WHERE action = $1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, actor_id, action, target_type, target_id, details, created_at
		FROM audit_logs%s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.AuditLog, 0)
	for rows.Next() {
		var entry models.AuditLog
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.TargetType, &entry.TargetID, &details, &entry.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entry.Details = details
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
