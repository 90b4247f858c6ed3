// Package repo contains all data access for the status bot: the decision
// history (Postgres or in-memory) and the YAML files read at startup.
// No business logic lives here, only SQL, file parsing, and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/status-bot/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatusUpdateRepo records status decisions and lists them back.
type StatusUpdateRepo interface {
	// Record inserts a decision and returns it with ID and CreatedAt populated.
	Record(ctx context.Context, u domain.StatusUpdate) (domain.StatusUpdate, error)

	// GetByID retrieves a single decision.
	// Returns domain.ErrNotFound if no decision with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error)

	// ListPaged returns one page of decisions, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error)
}

// pgStatusUpdateRepo is the Postgres implementation of StatusUpdateRepo.
type pgStatusUpdateRepo struct {
	db db
}

// NewStatusUpdateRepo constructs a StatusUpdateRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStatusUpdateRepo(db db) StatusUpdateRepo {
	return &pgStatusUpdateRepo{db: db}
}

const statusUpdateColumns = `id, integration, text, emoji, expiration, updated, reason, trip_name, created_at`

// Record inserts a status_updates row and returns the full persisted record.
func (r *pgStatusUpdateRepo) Record(ctx context.Context, u domain.StatusUpdate) (domain.StatusUpdate, error) {
	const q = `
		INSERT INTO status_updates (integration, text, emoji, expiration, updated, reason, trip_name)
		VALUES (@integration, @text, @emoji, @expiration, @updated, @reason, @trip_name)
		RETURNING ` + statusUpdateColumns

	args := pgx.NamedArgs{
		"integration": u.Integration,
		"text":        u.Text,
		"emoji":       u.Emoji,
		"expiration":  u.Expiration,
		"updated":     u.Updated,
		"reason":      string(u.Reason),
		"trip_name":   u.TripName,
	}

	result, err := scanStatusUpdate(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.StatusUpdate{}, fmt.Errorf("repo.StatusUpdateRepo.Record: %w", err)
	}
	return result, nil
}

// GetByID retrieves a decision by primary key.
func (r *pgStatusUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error) {
	const q = `SELECT ` + statusUpdateColumns + ` FROM status_updates WHERE id = @id`

	result, err := scanStatusUpdate(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.StatusUpdate{}, fmt.Errorf("repo.StatusUpdateRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of decisions ordered by created_at descending.
func (r *pgStatusUpdateRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM status_updates`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.StatusUpdateRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + statusUpdateColumns + `
		FROM status_updates
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.StatusUpdateRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var updates []domain.StatusUpdate
	for rows.Next() {
		u, err := scanStatusUpdate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.StatusUpdateRepo.ListPaged: scan: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.StatusUpdateRepo.ListPaged: rows: %w", err)
	}

	return updates, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanStatusUpdate maps a single database row into a domain.StatusUpdate.
func scanStatusUpdate(s scanner) (domain.StatusUpdate, error) {
	var (
		u      domain.StatusUpdate
		id     pgtype.UUID
		reason string
	)

	err := s.Scan(&id, &u.Integration, &u.Text, &u.Emoji, &u.Expiration, &u.Updated, &reason, &u.TripName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StatusUpdate{}, domain.ErrNotFound
		}
		return domain.StatusUpdate{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	u.Reason = domain.Reason(reason)
	return u, nil
}
