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

// MessageRepo defines the persistence operations for Messages.
// Messages are append-only; the only mutation is MarkRead.
type MessageRepo interface {
	// Create inserts a new message and returns the persisted record.
	Create(ctx context.Context, msg domain.Message) (domain.Message, error)

	// ListForUser returns every message where userID is sender or recipient,
	// newest first, each enriched with both participants' profiles.
	// A non-nil counterpart restricts the result to the two-party thread:
	// messages where the counterpart is also sender or recipient.
	ListForUser(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error)

	// MarkRead flips the read flag on a message. Marking an already-read
	// message succeeds; only a missing ID returns domain.ErrNotFound.
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// pgMessageRepo is the Postgres implementation of MessageRepo.
type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

func (r *pgMessageRepo) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const q = `
		INSERT INTO messages (sender_id, recipient_id, travel_plan_id, content)
		VALUES (@sender_id, @recipient_id, @travel_plan_id, @content)
		RETURNING id, sender_id, recipient_id, travel_plan_id, content, is_read, created_at`

	args := pgx.NamedArgs{
		"sender_id":      msg.SenderID,
		"recipient_id":   msg.RecipientID,
		"travel_plan_id": msg.TravelPlanID, // nil becomes NULL
		"content":        msg.Content,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMessage(row)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repo.MessageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) ListForUser(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error) {
	// Two joins against users: s for the sender profile, t for the recipient.
	const q = `
		SELECT m.id, m.sender_id, m.recipient_id, m.travel_plan_id, m.content, m.is_read, m.created_at,
		       s.id, s.email, s.first_name, s.last_name, s.profile_image_url,
		       s.bio, s.location, s.date_of_birth, s.interests, s.created_at, s.updated_at,
		       t.id, t.email, t.first_name, t.last_name, t.profile_image_url,
		       t.bio, t.location, t.date_of_birth, t.interests, t.created_at, t.updated_at
		FROM messages m
		INNER JOIN users s ON s.id = m.sender_id
		INNER JOIN users t ON t.id = m.recipient_id
		WHERE (m.sender_id = @user_id OR m.recipient_id = @user_id)
		  AND (@counterpart::text IS NULL
		       OR m.sender_id = @counterpart OR m.recipient_id = @counterpart)
		ORDER BY m.created_at DESC`

	args := pgx.NamedArgs{
		"user_id":     userID,
		"counterpart": counterpart, // nil disables the thread restriction
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	var results []domain.MessageWithUsers
	for rows.Next() {
		var (
			ms        messageScan
			sender    userScan
			recipient userScan
		)
		dests := append(ms.dests(), sender.dests()...)
		dests = append(dests, recipient.dests()...)
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("repo.MessageRepo.ListForUser: scan: %w", err)
		}
		results = append(results, domain.MessageWithUsers{
			Message:   ms.message(),
			Sender:    sender.user(),
			Recipient: recipient.user(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListForUser: rows: %w", err)
	}

	return results, nil
}

func (r *pgMessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	// No is_read predicate: marking an already-read message again is a
	// no-op success, so the operation stays idempotent.
	const q = `UPDATE messages SET is_read = 1 WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.MessageRepo.MarkRead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MessageRepo.MarkRead: %w", domain.ErrNotFound)
	}
	return nil
}

// messageScan collects the scan targets for a full messages row and handles
// the UUID and boolean-as-integer conversions.
type messageScan struct {
	m      domain.Message
	id     pgtype.UUID
	planID pgtype.UUID
	isRead int16
}

func (s *messageScan) dests() []any {
	return []any{
		&s.id, &s.m.SenderID, &s.m.RecipientID, &s.planID, &s.m.Content, &s.isRead, &s.m.CreatedAt,
	}
}

func (s *messageScan) message() domain.Message {
	s.m.ID = uuid.UUID(s.id.Bytes)
	if s.planID.Valid {
		pid := uuid.UUID(s.planID.Bytes)
		s.m.TravelPlanID = &pid
	}
	s.m.IsRead = s.isRead != 0
	return s.m
}

// scanMessage maps a single database row into a domain.Message.
func scanMessage(s scanner) (domain.Message, error) {
	var ms messageScan
	if err := s.Scan(ms.dests()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Message{}, domain.ErrNotFound
		}
		return domain.Message{}, err
	}
	return ms.message(), nil
}
