package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/power-play/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("participant conflict: user already registered for this match")
)

// PendingFee - неоплаченная заявка пользователя вместе с суммой к оплате.
type PendingFee struct {
	ParticipantID int
	MatchID       int
	Position      models.Position
	Fee           int
}

type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Participant, error)
	FindByMatchAndUser(ctx context.Context, exec SQLExecutor, matchID, userID int) (*models.Participant, error)
	// CountSeats считает занятые места по позициям (без canceled и waiting).
	CountSeats(ctx context.Context, exec SQLExecutor, matchID int) (map[models.Position]int, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ParticipantStatus, paid bool) error
	Reapply(ctx context.Context, exec SQLExecutor, p *models.Participant) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Participant, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Participant, error)
	// ListPendingFees блокирует неоплаченные заявки пользователя в порядке подачи.
	ListPendingFees(ctx context.Context, exec SQLExecutor, userID int) ([]PendingFee, error)
	FirstWaiting(ctx context.Context, exec SQLExecutor, matchID int, position models.Position) (*models.Participant, error)
	CancelOutstanding(ctx context.Context, exec SQLExecutor, matchID int) (int64, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	query := `
		INSERT INTO participants (match_id, user_id, position, status, paid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query,
		p.MatchID, p.UserID, p.Position, p.Status, p.Paid,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if code, constraint, ok := pqConstraint(err); ok && code == pqUniqueViolation &&
			constraint == "participants_match_id_user_id_key" {
			return ErrParticipantConflict
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func scanParticipant(row interface{ Scan(dest ...interface{}) error }, p *models.Participant) error {
	return row.Scan(&p.ID, &p.MatchID, &p.UserID, &p.Position, &p.Status, &p.Paid, &p.CreatedAt)
}

func (r *postgresParticipantRepository) findOne(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) (*models.Participant, error) {
	p := &models.Participant{}
	err := scanParticipant(pickExecutor(r.db, exec).QueryRowContext(ctx, query, args...), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Participant, error) {
	query := `SELECT id, match_id, user_id, position, status, paid, created_at FROM participants WHERE id = $1`
	if exec != nil {
		query += " FOR UPDATE"
	}
	return r.findOne(ctx, exec, query, id)
}

func (r *postgresParticipantRepository) FindByMatchAndUser(ctx context.Context, exec SQLExecutor, matchID, userID int) (*models.Participant, error) {
	query := `SELECT id, match_id, user_id, position, status, paid, created_at FROM participants WHERE match_id = $1 AND user_id = $2`
	return r.findOne(ctx, exec, query, matchID, userID)
}

func (r *postgresParticipantRepository) CountSeats(ctx context.Context, exec SQLExecutor, matchID int) (map[models.Position]int, error) {
	query := `
		SELECT position, COUNT(*)
		FROM participants
		WHERE match_id = $1 AND status NOT IN ('canceled', 'waiting')
		GROUP BY position`

	rows, err := pickExecutor(r.db, exec).QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participant seats: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Position]int, len(models.AllPositions))
	for rows.Next() {
		var pos models.Position
		var n int
		if err := rows.Scan(&pos, &n); err != nil {
			return nil, err
		}
		counts[pos] = n
	}
	return counts, rows.Err()
}

func (r *postgresParticipantRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ParticipantStatus, paid bool) error {
	result, err := pickExecutor(r.db, exec).ExecContext(ctx,
		`UPDATE participants SET status = $1, paid = $2 WHERE id = $3`, status, paid, id)
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

// Reapply переиспользует отменённую заявку: новая позиция, статус и время подачи.
func (r *postgresParticipantRepository) Reapply(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	query := `
		UPDATE participants SET position = $1, status = $2, paid = $3, created_at = now()
		WHERE id = $4
		RETURNING created_at`
	err := pickExecutor(r.db, exec).QueryRowContext(ctx, query, p.Position, p.Status, p.Paid, p.ID).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to reapply participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Participant, error) {
	query := `
		SELECT p.id, p.match_id, p.user_id, p.position, p.status, p.paid, p.created_at, COALESCE(u.full_name, '')
		FROM participants p
		LEFT JOIN profiles u ON u.id = p.user_id
		WHERE p.match_id = $1
		ORDER BY p.created_at ASC, p.id ASC`

	rows, err := pickExecutor(r.db, exec).QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants by match: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.MatchID, &p.UserID, &p.Position, &p.Status, &p.Paid, &p.CreatedAt, &p.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) ListByUser(ctx context.Context, userID int) ([]*models.Participant, error) {
	query := `
		SELECT id, match_id, user_id, position, status, paid, created_at
		FROM participants
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants by user: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := scanParticipant(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

func (r *postgresParticipantRepository) ListPendingFees(ctx context.Context, exec SQLExecutor, userID int) ([]PendingFee, error) {
	query := `
		SELECT p.id, p.match_id, p.position,
			CASE WHEN m.goalie_free AND p.position = 'G' THEN 0 ELSE m.entry_points END
		FROM participants p
		JOIN matches m ON m.id = p.match_id
		WHERE p.user_id = $1 AND p.status = 'pending_payment' AND p.paid = FALSE AND m.status <> 'canceled'
		ORDER BY p.created_at ASC, p.id ASC
		FOR UPDATE OF p`

	rows, err := pickExecutor(r.db, exec).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending fees: %w", err)
	}
	defer rows.Close()

	fees := make([]PendingFee, 0)
	for rows.Next() {
		var f PendingFee
		if err := rows.Scan(&f.ParticipantID, &f.MatchID, &f.Position, &f.Fee); err != nil {
			return nil, fmt.Errorf("failed to scan pending fee: %w", err)
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func (r *postgresParticipantRepository) FirstWaiting(ctx context.Context, exec SQLExecutor, matchID int, position models.Position) (*models.Participant, error) {
	query := `
		SELECT id, match_id, user_id, position, status, paid, created_at
		FROM participants
		WHERE match_id = $1 AND position = $2 AND status = 'waiting'
		ORDER BY created_at ASC, id ASC
		LIMIT 1`
	return r.findOne(ctx, exec, query, matchID, position)
}

func (r *postgresParticipantRepository) CancelOutstanding(ctx context.Context, exec SQLExecutor, matchID int) (int64, error) {
	result, err := pickExecutor(r.db, exec).ExecContext(ctx, `
		UPDATE participants SET status = 'canceled'
		WHERE match_id = $1 AND status IN ('pending_payment', 'waiting') AND paid = FALSE`, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel outstanding participants: %w", err)
	}
	return result.RowsAffected()
}
