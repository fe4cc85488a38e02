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
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileEmailConflict = errors.New("profile email conflict")
	ErrInsufficientPoints   = errors.New("point balance cannot go negative")
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id int) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
	SetRole(ctx context.Context, id int, role models.UserRole) error
	SoftDelete(ctx context.Context, id int, at time.Time) error
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error)
	ListIDsByRole(ctx context.Context, role models.UserRole) ([]int, error)
	Count(ctx context.Context) (int, error)
	// LockPoints блокирует строку профиля до конца транзакции и возвращает баланс.
	LockPoints(ctx context.Context, exec SQLExecutor, id int) (int, error)
	SetPoints(ctx context.Context, exec SQLExecutor, id int, points int) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

const profileColumns = `id, email, password_hash, full_name, phone, role, position, points,
	preferred_lang, avatar_key, onboarding_completed, deleted_at, created_at`

func scanProfile(row interface{ Scan(dest ...interface{}) error }, p *models.Profile) error {
	return row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.FullName,
		&p.Phone,
		&p.Role,
		&p.Position,
		&p.Points,
		&p.PreferredLang,
		&p.AvatarKey,
		&p.OnboardingCompleted,
		&p.DeletedAt,
		&p.CreatedAt,
	)
}

func (r *postgresProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, full_name, role, preferred_lang)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, points, onboarding_completed, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Email,
		p.PasswordHash,
		p.FullName,
		p.Role,
		p.PreferredLang,
	).Scan(&p.ID, &p.Points, &p.OnboardingCompleted, &p.CreatedAt)
	if err != nil {
		if code, constraint, ok := pqConstraint(err); ok && code == pqUniqueViolation && constraint == "profiles_email_key" {
			return ErrProfileEmailConflict
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Profile, error) {
	p := &models.Profile{}
	err := scanProfile(r.db.QueryRowContext(ctx, query, args...), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *postgresProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`, email)
}

func (r *postgresProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles SET
			full_name = $1,
			phone = $2,
			position = $3,
			preferred_lang = $4,
			avatar_key = $5,
			onboarding_completed = $6,
			password_hash = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		p.FullName,
		p.Phone,
		p.Position,
		p.PreferredLang,
		p.AvatarKey,
		p.OnboardingCompleted,
		p.PasswordHash,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) SetRole(ctx context.Context, id int, role models.UserRole) error {
	result, err := r.db.ExecContext(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update profile role: %w", err)
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) SoftDelete(ctx context.Context, id int, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE profiles SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete profile: %w", err)
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	var where []string
	args := []interface{}{}

	where = append(where, "deleted_at IS NULL")
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM profiles%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		profileColumns, whereSQL, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *postgresProfileRepository) ListIDsByRole(ctx context.Context, role models.UserRole) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM profiles WHERE role = $1 AND deleted_at IS NULL`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles by role: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE deleted_at IS NULL`).Scan(&n)
	return n, err
}

func (r *postgresProfileRepository) LockPoints(ctx context.Context, exec SQLExecutor, id int) (int, error) {
	var points int
	err := pickExecutor(r.db, exec).QueryRowContext(ctx, `SELECT points FROM profiles WHERE id = $1 FOR UPDATE`, id).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProfileNotFound
		}
		return 0, fmt.Errorf("failed to lock profile points: %w", err)
	}
	return points, nil
}

func (r *postgresProfileRepository) SetPoints(ctx context.Context, exec SQLExecutor, id int, points int) error {
	result, err := pickExecutor(r.db, exec).ExecContext(ctx, `UPDATE profiles SET points = $1 WHERE id = $2`, points, id)
	if err != nil {
		if code, _, ok := pqConstraint(err); ok && code == pqCheckViolation {
			return ErrInsufficientPoints
		}
		return fmt.Errorf("failed to set profile points: %w", err)
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}
