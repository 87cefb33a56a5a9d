package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"honeypot-llm/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, id string) (domain.Session, error)
	UpdateEngagement(ctx context.Context, id string, turnCount int, lastSeen time.Time) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (id, turn_count, last_seen_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.TurnCount,
		session.LastSeenAt,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT id, turn_count, last_seen_at, created_at
		FROM sessions
		WHERE id = $1
	`
	var session domain.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.TurnCount,
		&session.LastSeenAt,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, err
	}
	return session, err
}

func (r *PgSessionRepository) UpdateEngagement(ctx context.Context, id string, turnCount int, lastSeen time.Time) error {
	const query = `
		UPDATE sessions
		SET turn_count = $2, last_seen_at = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, turnCount, lastSeen)
	return err
}
