package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rylessKechit/salesup/infrastructure/database/postgres"
	"github.com/rylessKechit/salesup/internal/domain"
)

const (
	invitationsTable = "invitations i"
)

type InvitationRepository interface {
	Create(invitation *domain.Invitation) (*domain.Invitation, error)
	GetByID(id string) (*domain.Invitation, error)
	GetByToken(token string) (*domain.Invitation, error)
	GetPendingByEmail(email string) (*domain.Invitation, error)
	ListByManager(managerID string) ([]*domain.Invitation, error)
	UpdateStatus(id string, status domain.InvitationStatus, userID *string) error
	ExpirePending(now time.Time) (int64, error)
}

type invitationRepository struct {
	conn *postgres.Connection
}

func NewInvitationRepository(conn *postgres.Connection) InvitationRepository {
	return &invitationRepository{
		conn: conn,
	}
}

func (r *invitationRepository) Create(invitation *domain.Invitation) (*domain.Invitation, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("invitations").
		Columns("id", "email", "first_name", "last_name", "token", "status", "invited_by", "invited_by_name", "expires_at").
		Values(
			invitation.ID,
			invitation.Email,
			invitation.FirstName,
			invitation.LastName,
			invitation.Token,
			string(invitation.Status),
			invitation.InvitedBy,
			invitation.InvitedByName,
			invitation.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&invitation.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("executing query: %w", err)
	}

	return invitation, nil
}

func (r *invitationRepository) GetByID(id string) (*domain.Invitation, error) {
	return r.getOne(squirrel.Eq{"i.id": id})
}

func (r *invitationRepository) GetByToken(token string) (*domain.Invitation, error) {
	return r.getOne(squirrel.Eq{"i.token": token, "i.status": string(domain.InvitationPending)})
}

func (r *invitationRepository) GetPendingByEmail(email string) (*domain.Invitation, error) {
	return r.getOne(squirrel.Eq{"i.email": email, "i.status": string(domain.InvitationPending)})
}

func (r *invitationRepository) getOne(where squirrel.Eq) (*domain.Invitation, error) {
	query, args, err := squirrel.
		Select(invitationColumns()...).
		From(invitationsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	invitation, err := scanInvitationFrom(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning invitation: %w", err)
	}

	return invitation, nil
}

func (r *invitationRepository) ListByManager(managerID string) ([]*domain.Invitation, error) {
	query, args, err := squirrel.
		Select(invitationColumns()...).
		From(invitationsTable).
		Where(squirrel.Eq{"i.invited_by": managerID}).
		OrderBy("i.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		invitation, err := scanInvitationFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invitation rows: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return invitations, nil
}

func (r *invitationRepository) UpdateStatus(id string, status domain.InvitationStatus, userID *string) error {
	builder := squirrel.StatementBuilder.
		Update("invitations").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if status == domain.InvitationAccepted {
		builder = builder.Set("accepted_at", squirrel.Expr("NOW()"))
		if userID != nil {
			builder = builder.Set("user_id", *userID)
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

// ExpirePending marks every pending invitation past its expiry date as
// expired, returning the number of rows changed.
func (r *invitationRepository) ExpirePending(now time.Time) (int64, error) {
	query, args, err := squirrel.StatementBuilder.
		Update("invitations").
		Set("status", string(domain.InvitationExpired)).
		Where(squirrel.Eq{"status": string(domain.InvitationPending)}).
		Where(squirrel.Lt{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("executing query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}

	return rowsAffected, nil
}

func invitationColumns() []string {
	return []string{
		"i.id", "i.email", "i.first_name", "i.last_name", "i.token", "i.status",
		"i.invited_by", "i.invited_by_name", "i.user_id", "i.created_at", "i.expires_at", "i.accepted_at",
	}
}

func scanInvitationFrom(s rowScanner) (*domain.Invitation, error) {
	invitation := &domain.Invitation{}
	var status string

	err := s.Scan(
		&invitation.ID,
		&invitation.Email,
		&invitation.FirstName,
		&invitation.LastName,
		&invitation.Token,
		&status,
		&invitation.InvitedBy,
		&invitation.InvitedByName,
		&invitation.UserID,
		&invitation.CreatedAt,
		&invitation.ExpiresAt,
		&invitation.AcceptedAt,
	)
	if err != nil {
		return nil, err
	}

	invitation.Status = domain.InvitationStatus(status)
	return invitation, nil
}
