package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wandermatch/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
// There is no Delete: users are never hard-deleted once the auth provider
// has issued them an identity.
type UserRepo interface {
	// GetByID retrieves a single user by the external-auth subject ID.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// Upsert inserts the profile on first login and refreshes the identity
	// fields (email, names, image) on every subsequent login. Profile fields
	// the auth provider does not own (bio, location, interests, date of
	// birth) are left untouched on update.
	Upsert(ctx context.Context, profile domain.UserProfile) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	const q = `
		SELECT id, email, first_name, last_name, profile_image_url,
		       bio, location, date_of_birth, interests, created_at, updated_at
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Upsert(ctx context.Context, profile domain.UserProfile) (domain.User, error) {
	const q = `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES (@id, @email, @first_name, @last_name, @profile_image_url)
		ON CONFLICT (id) DO UPDATE
		SET email             = EXCLUDED.email,
		    first_name        = EXCLUDED.first_name,
		    last_name         = EXCLUDED.last_name,
		    profile_image_url = EXCLUDED.profile_image_url,
		    updated_at        = now()
		RETURNING id, email, first_name, last_name, profile_image_url,
		          bio, location, date_of_birth, interests, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":                profile.ID,
		"email":             profile.Email, // nil becomes NULL
		"first_name":        profile.FirstName,
		"last_name":         profile.LastName,
		"profile_image_url": profile.ProfileImageURL,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Upsert: %w", err)
	}
	return result, nil
}

// userScan collects the scan targets for a full users row.
// It exists so joined queries (discovery, message threads) can embed user
// columns without repeating the nullable-date handling everywhere.
type userScan struct {
	u   domain.User
	dob pgtype.Date
}

// dests returns the Scan destinations in users column order.
func (s *userScan) dests() []any {
	return []any{
		&s.u.ID, &s.u.Email, &s.u.FirstName, &s.u.LastName, &s.u.ProfileImageURL,
		&s.u.Bio, &s.u.Location, &s.dob, &s.u.Interests, &s.u.CreatedAt, &s.u.UpdatedAt,
	}
}

// user finalizes the scanned row into a domain.User.
func (s *userScan) user() domain.User {
	if s.dob.Valid {
		d := domain.Date{Time: s.dob.Time}
		s.u.DateOfBirth = &d
	}
	return s.u
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var us userScan
	if err := s.Scan(us.dests()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return us.user(), nil
}
