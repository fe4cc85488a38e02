package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/power-play/models"
)

var (
	ErrRinkNotFound = errors.New("rink not found")
	ErrRinkInUse    = errors.New("rink is referenced by matches")
)

type RinkRepository interface {
	Create(ctx context.Context, rink *models.Rink) error
	GetByID(ctx context.Context, id int) (*models.Rink, error)
	Update(ctx context.Context, rink *models.Rink) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Rink, error)
	ListMissingCoordinates(ctx context.Context) ([]*models.Rink, error)
}

type postgresRinkRepository struct {
	db *sql.DB
}

func NewPostgresRinkRepository(db *sql.DB) RinkRepository {
	return &postgresRinkRepository{db: db}
}

const rinkColumns = `id, name_ko, name_en, address, lat, lng, rink_type, created_at`

func scanRink(row interface{ Scan(dest ...interface{}) error }, rink *models.Rink) error {
	return row.Scan(&rink.ID, &rink.NameKo, &rink.NameEn, &rink.Address, &rink.Lat, &rink.Lng, &rink.RinkType, &rink.CreatedAt)
}

func (r *postgresRinkRepository) Create(ctx context.Context, rink *models.Rink) error {
	query := `
		INSERT INTO rinks (name_ko, name_en, address, lat, lng, rink_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rink.NameKo, rink.NameEn, rink.Address, rink.Lat, rink.Lng, rink.RinkType).
		Scan(&rink.ID, &rink.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rink: %w", err)
	}
	return nil
}

func (r *postgresRinkRepository) GetByID(ctx context.Context, id int) (*models.Rink, error) {
	var rink models.Rink
	if err := scanRink(r.db.QueryRowContext(ctx, `SELECT `+rinkColumns+` FROM rinks WHERE id = $1`, id), &rink); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRinkNotFound
		}
		return nil, fmt.Errorf("failed to get rink: %w", err)
	}
	return &rink, nil
}

func (r *postgresRinkRepository) Update(ctx context.Context, rink *models.Rink) error {
	query := `
		UPDATE rinks SET name_ko = $1, name_en = $2, address = $3, lat = $4, lng = $5, rink_type = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, rink.NameKo, rink.NameEn, rink.Address, rink.Lat, rink.Lng, rink.RinkType, rink.ID)
	if err != nil {
		return fmt.Errorf("failed to update rink: %w", err)
	}
	return checkAffectedRows(result, ErrRinkNotFound)
}

func (r *postgresRinkRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rinks WHERE id = $1`, id)
	if err != nil {
		if code, _, ok := pqConstraint(err); ok && code == pqForeignKeyViolation {
			return ErrRinkInUse
		}
		return fmt.Errorf("failed to delete rink: %w", err)
	}
	return checkAffectedRows(result, ErrRinkNotFound)
}

func (r *postgresRinkRepository) List(ctx context.Context) ([]*models.Rink, error) {
	return r.list(ctx, `SELECT `+rinkColumns+` FROM rinks ORDER BY name_ko ASC`)
}

func (r *postgresRinkRepository) ListMissingCoordinates(ctx context.Context) ([]*models.Rink, error) {
	return r.list(ctx, `SELECT `+rinkColumns+` FROM rinks WHERE (lat IS NULL OR lng IS NULL) AND address <> '' ORDER BY id ASC`)
}

func (r *postgresRinkRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Rink, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rinks: %w", err)
	}
	defer rows.Close()

	rinks := make([]*models.Rink, 0)
	for rows.Next() {
		var rink models.Rink
		if err := scanRink(rows, &rink); err != nil {
			return nil, fmt.Errorf("failed to scan rink row: %w", err)
		}
		rinks = append(rinks, &rink)
	}
	return rinks, rows.Err()
}
