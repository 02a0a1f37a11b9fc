package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wandermatch/backend/internal/domain"
)

// MatchRepo defines the persistence operations for Matches.
// Status transitions are not part of the API surface yet, so there is no
// Update — matches are inserted as pending and listed.
type MatchRepo interface {
	// Create inserts a new match with status pending and returns the
	// persisted record.
	Create(ctx context.Context, match domain.Match) (domain.Match, error)

	// ListForUser returns every match where userID is either participant,
	// newest first.
	ListForUser(ctx context.Context, userID string) ([]domain.Match, error)

	// ExistsForPair reports whether any match already links the two users,
	// in either order.
	ExistsForPair(ctx context.Context, userOneID, userTwoID string) (bool, error)
}

// pgMatchRepo is the Postgres implementation of MatchRepo.
type pgMatchRepo struct {
	db db
}

// NewMatchRepo constructs a MatchRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMatchRepo(db db) MatchRepo {
	return &pgMatchRepo{db: db}
}

const matchCols = `id, user_one_id, user_two_id, travel_plan_one_id, travel_plan_two_id, status, created_at`

func (r *pgMatchRepo) Create(ctx context.Context, match domain.Match) (domain.Match, error) {
	const q = `
		INSERT INTO matches (user_one_id, user_two_id, travel_plan_one_id, travel_plan_two_id)
		VALUES (@user_one_id, @user_two_id, @travel_plan_one_id, @travel_plan_two_id)
		RETURNING ` + matchCols

	args := pgx.NamedArgs{
		"user_one_id":        match.UserOneID,
		"user_two_id":        match.UserTwoID,
		"travel_plan_one_id": match.TravelPlanOneID,
		"travel_plan_two_id": match.TravelPlanTwoID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMatch(row)
	if err != nil {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMatchRepo) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	const q = `
		SELECT ` + matchCols + `
		FROM matches
		WHERE user_one_id = @user_id OR user_two_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.MatchRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MatchRepo.ListForUser: scan: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MatchRepo.ListForUser: rows: %w", err)
	}

	return matches, nil
}

func (r *pgMatchRepo) ExistsForPair(ctx context.Context, userOneID, userTwoID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE (user_one_id = @a AND user_two_id = @b)
			   OR (user_one_id = @b AND user_two_id = @a)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"a": userOneID, "b": userTwoID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.MatchRepo.ExistsForPair: %w", err)
	}
	return exists, nil
}

// scanMatch maps a single database row into a domain.Match.
func scanMatch(s scanner) (domain.Match, error) {
	var (
		m         domain.Match
		id        pgtype.UUID
		planOneID pgtype.UUID
		planTwoID pgtype.UUID
		status    string
	)

	err := s.Scan(&id, &m.UserOneID, &m.UserTwoID, &planOneID, &planTwoID, &status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Match{}, domain.ErrNotFound
		}
		return domain.Match{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	m.TravelPlanOneID = uuid.UUID(planOneID.Bytes)
	m.TravelPlanTwoID = uuid.UUID(planTwoID.Bytes)
	m.Status = domain.MatchStatus(status)
	return m, nil
}
