package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// OrderFilter captures order search parameters.
type OrderFilter struct {
	UserID   *string
	AdminID  *string
	Statuses []domain.OrderStatus
	Limit    int
	Offset   int
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	// ClaimPaid atomically moves a paid order to in_progress and records the
	// claiming admin. Returns pgx.ErrNoRows when the order is absent or no
	// longer in the paid state.
	ClaimPaid(ctx context.Context, orderID, adminID string) (*domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, telegram, description, category_id, service, price, status, admin_id, closed, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (user_id, telegram, description, category_id, service, price, status, admin_id, closed)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.UserID,
		order.Telegram,
		order.Description,
		order.CategoryID,
		order.Service,
		order.Price,
		order.Status,
		order.AdminID,
		order.Closed,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET user_id=$1, telegram=$2, description=$3, status=$4, admin_id=$5, closed=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		order.UserID,
		order.Telegram,
		order.Description,
		order.Status,
		order.AdminID,
		order.Closed,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(orderDest(&order)...); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ClaimPaid(ctx context.Context, orderID, adminID string) (*domain.Order, error) {
	query := fmt.Sprintf(`
        UPDATE orders SET status=$1, admin_id=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4
        RETURNING %s`, orderColumns)
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query,
		domain.OrderStatusInProgress,
		adminID,
		orderID,
		domain.OrderStatusPaid,
	).Scan(orderDest(&order)...); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	base := fmt.Sprintf(`SELECT %s FROM orders`, orderColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.AdminID != nil {
		args = append(args, *filter.AdminID)
		clauses = append(clauses, fmt.Sprintf("admin_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(orderDest(&order)...); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func orderDest(order *domain.Order) []any {
	return []any{
		&order.ID,
		&order.UserID,
		&order.Telegram,
		&order.Description,
		&order.CategoryID,
		&order.Service,
		&order.Price,
		&order.Status,
		&order.AdminID,
		&order.Closed,
		&order.CreatedAt,
		&order.UpdatedAt,
	}
}
