package service

import (
	"context"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup and login. Account creation also creates
// the zero-balance wallet in the same transaction, so a user never
// exists without one.
type AuthService struct {
	db         *pgxpool.Pool
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

// NewAuthService creates a new auth service
func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		walletRepo: repository.NewWalletRepository(db),
	}
}

// Signup registers a new account and returns the user with a session token
func (s *AuthService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
		return nil, "", wrapWrite(err)
	}
	if err := s.walletRepo.CreateTx(ctx, tx, user.ID); err != nil {
		return nil, "", wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", wrapWrite(err)
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a session token
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUser returns the user by ID
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
