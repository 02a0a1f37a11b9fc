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

// TravelPlanRepo defines the persistence operations for TravelPlans.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TravelPlanRepo interface {
	// Create inserts a new plan and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// GetByID retrieves a single plan by its UUID primary key, active or not.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error)

	// ListByUser returns all of a user's plans, including soft-deleted ones,
	// ordered by creation time descending.
	ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error)

	// SearchActive returns all active plans joined with their owner's profile,
	// narrowed by the filter, ordered by creation time descending.
	// It does not exclude any user's own plans — that is the service's job.
	SearchActive(ctx context.Context, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error)

	// Update overwrites the mutable fields of an existing plan and returns
	// the updated record. Returns domain.ErrNotFound if the plan is missing.
	Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// SoftDelete flips the active flag to false. The row remains resolvable
	// by GetByID. Repeating a soft delete succeeds; only a missing ID
	// returns domain.ErrNotFound.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// pgTravelPlanRepo is the Postgres implementation of TravelPlanRepo.
type pgTravelPlanRepo struct {
	db db
}

// NewTravelPlanRepo constructs a TravelPlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelPlanRepo(db db) TravelPlanRepo {
	return &pgTravelPlanRepo{db: db}
}

const planCols = `id, user_id, destination, start_date, end_date, description,
		       interests, is_active, created_at, updated_at`

func (r *pgTravelPlanRepo) Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	const q = `
		INSERT INTO travel_plans (user_id, destination, start_date, end_date, description, interests)
		VALUES (@user_id, @destination, @start_date, @end_date, @description, @interests)
		RETURNING ` + planCols

	args := pgx.NamedArgs{
		"user_id":     plan.UserID,
		"destination": plan.Destination,
		"start_date":  plan.StartDate.Time,
		"end_date":    plan.EndDate.Time,
		"description": plan.Description,
		"interests":   interestsArg(plan.Interests),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.TravelPlanRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTravelPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	const q = `SELECT ` + planCols + ` FROM travel_plans WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanPlan(row)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.TravelPlanRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTravelPlanRepo) ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error) {
	const q = `
		SELECT ` + planCols + `
		FROM travel_plans
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPlanRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var plans []domain.TravelPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TravelPlanRepo.ListByUser: scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TravelPlanRepo.ListByUser: rows: %w", err)
	}

	return plans, nil
}

func (r *pgTravelPlanRepo) SearchActive(ctx context.Context, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
	const q = `
		SELECT p.id, p.user_id, p.destination, p.start_date, p.end_date, p.description,
		       p.interests, p.is_active, p.created_at, p.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.profile_image_url,
		       u.bio, u.location, u.date_of_birth, u.interests, u.created_at, u.updated_at
		FROM travel_plans p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.is_active = 1
		  AND (@destination = '' OR p.destination ILIKE '%' || @destination || '%')
		  AND (@start_date::date IS NULL OR p.start_date >= @start_date)
		  AND (@end_date::date IS NULL OR p.end_date <= @end_date)
		ORDER BY p.created_at DESC`

	args := pgx.NamedArgs{
		"destination": filter.Destination,
		"start_date":  dateArg(filter.StartDate),
		"end_date":    dateArg(filter.EndDate),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPlanRepo.SearchActive: %w", err)
	}
	defer rows.Close()

	var results []domain.PlanWithOwner
	for rows.Next() {
		var (
			ps planScan
			us userScan
		)
		dests := append(ps.dests(), us.dests()...)
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("repo.TravelPlanRepo.SearchActive: scan: %w", err)
		}
		results = append(results, domain.PlanWithOwner{
			TravelPlan: ps.plan(),
			User:       us.user(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TravelPlanRepo.SearchActive: rows: %w", err)
	}

	return results, nil
}

func (r *pgTravelPlanRepo) Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	const q = `
		UPDATE travel_plans
		SET destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    description = @description,
		    interests   = @interests,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + planCols

	args := pgx.NamedArgs{
		"id":          plan.ID,
		"destination": plan.Destination,
		"start_date":  plan.StartDate.Time,
		"end_date":    plan.EndDate.Time,
		"description": plan.Description,
		"interests":   interestsArg(plan.Interests),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.TravelPlanRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTravelPlanRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	// No is_active predicate: soft-deleting an already-inactive plan is a
	// no-op success, so the operation stays idempotent.
	const q = `
		UPDATE travel_plans
		SET is_active = 0, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TravelPlanRepo.SoftDelete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TravelPlanRepo.SoftDelete: %w", domain.ErrNotFound)
	}
	return nil
}

// planScan collects the scan targets for a full travel_plans row and handles
// the UUID, date, and boolean-as-integer conversions.
type planScan struct {
	p        domain.TravelPlan
	id       pgtype.UUID
	start    pgtype.Date
	end      pgtype.Date
	isActive int16
}

func (s *planScan) dests() []any {
	return []any{
		&s.id, &s.p.UserID, &s.p.Destination, &s.start, &s.end, &s.p.Description,
		&s.p.Interests, &s.isActive, &s.p.CreatedAt, &s.p.UpdatedAt,
	}
}

func (s *planScan) plan() domain.TravelPlan {
	s.p.ID = uuid.UUID(s.id.Bytes)
	s.p.StartDate = domain.Date{Time: s.start.Time}
	s.p.EndDate = domain.Date{Time: s.end.Time}
	s.p.IsActive = s.isActive != 0
	return s.p
}

// scanPlan maps a single database row into a domain.TravelPlan.
func scanPlan(s scanner) (domain.TravelPlan, error) {
	var ps planScan
	if err := s.Scan(ps.dests()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelPlan{}, domain.ErrNotFound
		}
		return domain.TravelPlan{}, err
	}
	return ps.plan(), nil
}

// interestsArg normalizes a nil slice to an empty array so the NOT NULL
// interests column accepts it.
func interestsArg(interests []string) []string {
	if interests == nil {
		return []string{}
	}
	return interests
}

// dateArg converts an optional domain.Date to a nullable SQL date argument.
func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
