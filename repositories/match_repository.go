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

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchRinkInvalid = errors.New("match rink conflict or invalid")
	ErrMatchClubInvalid = errors.New("match club conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, m *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetForUpdate блокирует строку матча; используется при записи в состав.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, m *models.Match) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
	List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	ListStartedOpen(ctx context.Context, now time.Time) ([]*models.Match, error)
	CountByStatus(ctx context.Context, status models.MatchStatus) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, rink_id, club_id, start_time, entry_points, goalie_free, max_fw, max_df, max_g,
	status, description, created_by, created_at`

func scanMatch(row interface{ Scan(dest ...interface{}) error }, m *models.Match) error {
	return row.Scan(
		&m.ID, &m.RinkID, &m.ClubID, &m.StartTime, &m.EntryPoints, &m.GoalieFree,
		&m.MaxForward, &m.MaxDefense, &m.MaxGoalie,
		&m.Status, &m.Description, &m.CreatedBy, &m.CreatedAt,
	)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := pqConstraint(err); ok && code == pqForeignKeyViolation {
		switch constraint {
		case "matches_rink_id_fkey":
			return ErrMatchRinkInvalid
		case "matches_club_id_fkey":
			return ErrMatchClubInvalid
		}
	}
	return err
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (rink_id, club_id, start_time, entry_points, goalie_free, max_fw, max_df, max_g,
			status, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.RinkID, m.ClubID, m.StartTime, m.EntryPoints, m.GoalieFree,
		m.MaxForward, m.MaxDefense, m.MaxGoalie, m.Status, m.Description, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", r.handleMatchError(err))
	}
	return nil
}

func (r *postgresMatchRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Match, error) {
	var m models.Match
	if err := scanMatch(pickExecutor(r.db, exec).QueryRowContext(ctx, query, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return r.getOne(ctx, nil, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	return r.getOne(ctx, exec, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		UPDATE matches SET
			rink_id = $1, club_id = $2, start_time = $3, entry_points = $4, goalie_free = $5,
			max_fw = $6, max_df = $7, max_g = $8, status = $9, description = $10
		WHERE id = $11`

	result, err := pickExecutor(r.db, exec).ExecContext(ctx, query,
		m.RinkID, m.ClubID, m.StartTime, m.EntryPoints, m.GoalieFree,
		m.MaxForward, m.MaxDefense, m.MaxGoalie, m.Status, m.Description, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", r.handleMatchError(err))
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	result, err := pickExecutor(r.db, exec).ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	var where []string
	args := []interface{}{}

	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("start_time >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("start_time < $%d", len(args)))
	}
	if filter.ClubID != nil {
		args = append(args, *filter.ClubID)
		where = append(where, fmt.Sprintf("club_id = $%d", len(args)))
	}
	if filter.RinkID != nil {
		args = append(args, *filter.RinkID)
		where = append(where, fmt.Sprintf("rink_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageOffset(filter.Page, filter.Limit)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY start_time ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.list(ctx, query, args...)
}

func (r *postgresMatchRepository) ListStartedOpen(ctx context.Context, now time.Time) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE status = $1 AND start_time <= $2`
	return r.list(ctx, query, models.MatchStatusOpen, now)
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context, status models.MatchStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&n)
	return n, err
}
