package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, password_hash, status, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, password_hash, status, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// CreateTx inserts a new user inside the given transaction; account
// creation always happens together with the wallet insert
func (r *UserRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, u *domain.User) error {
	return dbTx.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, password_hash, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Phone, u.PasswordHash, u.Status).Scan(&u.ID, &u.CreatedAt)
}

// SetStatus updates the account status
func (r *UserRepository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
	return err
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var phone *string

	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.Status, &u.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if phone != nil {
		u.Phone = *phone
	}

	return &u, nil
}
