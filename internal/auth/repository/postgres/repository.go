package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mypunksoft/auth/internal/auth/domain"
	autherror "github.com/mypunksoft/auth/internal/errors"
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ domain.UserRepository = (*PostgresRepository)(nil)

// Create inserts a new user, relying on the unique constraint rather than a
// pre-check so concurrent registrations cannot race.
func (r *PostgresRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id;
	`

	user := &domain.User{Username: username, PasswordHash: passwordHash}
	err := r.db.QueryRow(ctx, query, username, passwordHash).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, autherror.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByUsername returns (nil, nil) when no such user exists.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, login_attempts, first_attempt
		FROM users
		WHERE username = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, username)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.LoginAttempts, &user.FirstAttempt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetIDByUsername(ctx context.Context, username string) (int, error) {
	query := `SELECT id FROM users WHERE username = $1 LIMIT 1;`

	var id int
	err := r.db.QueryRow(ctx, query, username).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, autherror.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get user id by username: %w", err)
	}

	return id, nil
}

// IncrementAttempts bumps the failure counter in a single UPDATE so
// concurrent failed logins never lose increments, and stamps the start of the
// streak only when it is not already set.
func (r *PostgresRepository) IncrementAttempts(ctx context.Context, userID int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET login_attempts = login_attempts + 1,
		    first_attempt = COALESCE(first_attempt, now())
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to increment login attempts: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ResetAttempts(ctx context.Context, userID int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET login_attempts = 0, first_attempt = NULL
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SaveDetails(ctx context.Context, d *domain.UserDetails) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_details (user_id, first_name, last_name, middle_name, phone_number, email, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.UserID, d.FirstName, d.LastName, d.MiddleName, d.PhoneNumber, d.Email, d.City)
	if err != nil {
		return fmt.Errorf("failed to save user details: %w", err)
	}

	return nil
}
