package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ChatLink associates a contact handle with a bot chat identifier.
type ChatLink struct {
	Telegram  string
	ChatID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatLinkRepository persists chat links with a Redis read-through cache
// keyed by contact handle.
type ChatLinkRepository interface {
	Upsert(ctx context.Context, link *ChatLink) error
	GetByTelegram(ctx context.Context, telegram string) (*ChatLink, error)
}

type chatLinkRepository struct {
	pool     *pgxpool.Pool
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewChatLinkRepository constructs repository. The cache client may be nil.
func NewChatLinkRepository(pool *pgxpool.Pool, cache *redis.Client) ChatLinkRepository {
	return &chatLinkRepository{pool: pool, cache: cache, cacheTTL: 24 * time.Hour}
}

func cacheKey(telegram string) string {
	return "chatlink:" + telegram
}

func (r *chatLinkRepository) Upsert(ctx context.Context, link *ChatLink) error {
	const query = `
        INSERT INTO chat_links (telegram, chat_id)
        VALUES ($1,$2)
        ON CONFLICT (telegram) DO UPDATE SET chat_id=EXCLUDED.chat_id, updated_at=NOW()
        RETURNING created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query, link.Telegram, link.ChatID).
		Scan(&link.CreatedAt, &link.UpdatedAt); err != nil {
		return err
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey(link.Telegram), link.ChatID, r.cacheTTL).Err()
	}
	return nil
}

func (r *chatLinkRepository) GetByTelegram(ctx context.Context, telegram string) (*ChatLink, error) {
	if r.cache != nil {
		if val, err := r.cache.Get(ctx, cacheKey(telegram)).Result(); err == nil {
			if chatID, parseErr := strconv.ParseInt(val, 10, 64); parseErr == nil {
				return &ChatLink{Telegram: telegram, ChatID: chatID}, nil
			}
		}
	}

	const query = `
        SELECT telegram, chat_id, created_at, updated_at
        FROM chat_links WHERE telegram=$1`
	var link ChatLink
	if err := r.pool.QueryRow(ctx, query, telegram).Scan(
		&link.Telegram,
		&link.ChatID,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey(telegram), link.ChatID, r.cacheTTL).Err()
	}
	return &link, nil
}
