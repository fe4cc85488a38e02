package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/power-play/models"
)

var (
	ErrClubNotFound       = errors.New("club not found")
	ErrClubNameConflict   = errors.New("club name conflict")
	ErrClubMemberNotFound = errors.New("club member not found")
	ErrClubMemberConflict = errors.New("club member already exists")
)

type ClubRepository interface {
	Create(ctx context.Context, exec SQLExecutor, c *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	Update(ctx context.Context, c *models.Club) error
	List(ctx context.Context, search string, page, limit int) ([]*models.Club, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Club, error)
	Count(ctx context.Context) (int, error)

	AddMember(ctx context.Context, exec SQLExecutor, m *models.ClubMember) error
	GetMember(ctx context.Context, clubID, userID int) (*models.ClubMember, error)
	UpdateMember(ctx context.Context, m *models.ClubMember) error
	RemoveMember(ctx context.Context, clubID, userID int) error
	ListMembers(ctx context.Context, clubID int, status *models.ClubMemberStatus) ([]models.ClubMember, error)
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubColumns = `c.id, c.name, c.slug, c.logo_key, c.description, c.contact_info, c.open_chat_url, c.created_by, c.created_at,
	(SELECT COUNT(*) FROM club_members cm WHERE cm.club_id = c.id AND cm.status = 'approved')`

func scanClub(row interface{ Scan(dest ...interface{}) error }, c *models.Club) error {
	return row.Scan(&c.ID, &c.Name, &c.Slug, &c.LogoKey, &c.Description, &c.ContactInfo, &c.OpenChatURL,
		&c.CreatedBy, &c.CreatedAt, &c.MemberCount)
}

func (r *postgresClubRepository) handleClubError(err error) error {
	if code, constraint, ok := pqConstraint(err); ok && code == pqUniqueViolation {
		if constraint == "clubs_name_key" || constraint == "clubs_slug_key" {
			return ErrClubNameConflict
		}
	}
	return err
}

func (r *postgresClubRepository) Create(ctx context.Context, exec SQLExecutor, c *models.Club) error {
	query := `
		INSERT INTO clubs (name, slug, description, contact_info, open_chat_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query,
		c.Name, c.Slug, c.Description, c.ContactInfo, c.OpenChatURL, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if mapped := r.handleClubError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	var c models.Club
	err := scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs c WHERE c.id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return &c, nil
}

func (r *postgresClubRepository) Update(ctx context.Context, c *models.Club) error {
	query := `
		UPDATE clubs SET name = $1, slug = $2, logo_key = $3, description = $4, contact_info = $5, open_chat_url = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, c.LogoKey, c.Description, c.ContactInfo, c.OpenChatURL, c.ID)
	if err != nil {
		if mapped := r.handleClubError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update club: %w", err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) List(ctx context.Context, search string, page, limit int) ([]*models.Club, error) {
	args := []interface{}{}
	query := `SELECT ` + clubColumns + ` FROM clubs c`
	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		query += " WHERE c.name ILIKE $1"
	}
	l, offset := pageOffset(page, limit)
	args = append(args, l, offset)
	query += fmt.Sprintf(" ORDER BY c.name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

func (r *postgresClubRepository) ListByUser(ctx context.Context, userID int) ([]*models.Club, error) {
	query := `SELECT ` + clubColumns + `
		FROM clubs c
		JOIN club_members m ON m.club_id = c.id
		WHERE m.user_id = $1 AND m.status = 'approved'
		ORDER BY c.name ASC`
	return r.list(ctx, query, userID)
}

func (r *postgresClubRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Club, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		var c models.Club
		if err := scanClub(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}
		clubs = append(clubs, &c)
	}
	return clubs, rows.Err()
}

func (r *postgresClubRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&n)
	return n, err
}

func (r *postgresClubRepository) AddMember(ctx context.Context, exec SQLExecutor, m *models.ClubMember) error {
	query := `
		INSERT INTO club_members (club_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query, m.ClubID, m.UserID, m.Role, m.Status).Scan(&m.CreatedAt)
	if err != nil {
		if code, _, ok := pqConstraint(err); ok {
			switch code {
			case pqUniqueViolation:
				return ErrClubMemberConflict
			case pqForeignKeyViolation:
				return ErrClubNotFound
			}
		}
		return fmt.Errorf("failed to add club member: %w", err)
	}
	return nil
}

func (r *postgresClubRepository) GetMember(ctx context.Context, clubID, userID int) (*models.ClubMember, error) {
	query := `
		SELECT m.club_id, m.user_id, m.role, m.status, m.created_at, COALESCE(p.full_name, ''), p.position
		FROM club_members m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.club_id = $1 AND m.user_id = $2`
	var m models.ClubMember
	err := r.db.QueryRowContext(ctx, query, clubID, userID).Scan(
		&m.ClubID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.FullName, &m.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubMemberNotFound
		}
		return nil, fmt.Errorf("failed to get club member: %w", err)
	}
	return &m, nil
}

func (r *postgresClubRepository) UpdateMember(ctx context.Context, m *models.ClubMember) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE club_members SET role = $1, status = $2 WHERE club_id = $3 AND user_id = $4`,
		m.Role, m.Status, m.ClubID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update club member: %w", err)
	}
	return checkAffectedRows(result, ErrClubMemberNotFound)
}

func (r *postgresClubRepository) RemoveMember(ctx context.Context, clubID, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove club member: %w", err)
	}
	return checkAffectedRows(result, ErrClubMemberNotFound)
}

func (r *postgresClubRepository) ListMembers(ctx context.Context, clubID int, status *models.ClubMemberStatus) ([]models.ClubMember, error) {
	args := []interface{}{clubID}
	query := `
		SELECT m.club_id, m.user_id, m.role, m.status, m.created_at, COALESCE(p.full_name, ''), p.position
		FROM club_members m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.club_id = $1`
	if status != nil {
		args = append(args, *status)
		query += " AND m.status = $2"
	}
	query += " ORDER BY m.role ASC, m.created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list club members: %w", err)
	}
	defer rows.Close()

	members := make([]models.ClubMember, 0)
	for rows.Next() {
		var m models.ClubMember
		if err := rows.Scan(&m.ClubID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.FullName, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan club member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
