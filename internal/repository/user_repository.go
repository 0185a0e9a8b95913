package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	GetByTelegram(ctx context.Context, telegram string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	purchase, err := marshalPurchase(user.AIPurchase)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO users (handle, telegram, password_hash, role, is_verified, ai_access, ai_purchase)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.Handle,
		user.Telegram,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.AIAccess,
		purchase,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	purchase, err := marshalPurchase(user.AIPurchase)
	if err != nil {
		return err
	}
	const query = `
        UPDATE users SET handle=$1, telegram=$2, password_hash=$3, role=$4, is_verified=$5, ai_access=$6, ai_purchase=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		user.Handle,
		user.Telegram,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.AIAccess,
		purchase,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const userColumns = `id, handle, telegram, password_hash, role, is_verified, ai_access, ai_purchase, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE handle=$1`, handle)
}

func (r *userRepository) GetByTelegram(ctx context.Context, telegram string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE telegram=$1`, telegram)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var purchase []byte
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Handle,
		&user.Telegram,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.AIAccess,
		&purchase,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalPurchase(purchase, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		var purchase []byte
		if err := rows.Scan(
			&user.ID,
			&user.Handle,
			&user.Telegram,
			&user.PasswordHash,
			&user.Role,
			&user.IsVerified,
			&user.AIAccess,
			&purchase,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalPurchase(purchase, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func marshalPurchase(purchase *domain.AIPurchase) ([]byte, error) {
	if purchase == nil {
		return nil, nil
	}
	return json.Marshal(purchase)
}

func unmarshalPurchase(raw []byte, user *domain.User) error {
	if len(raw) == 0 {
		return nil
	}
	var purchase domain.AIPurchase
	if err := json.Unmarshal(raw, &purchase); err != nil {
		return err
	}
	user.AIPurchase = &purchase
	return nil
}
