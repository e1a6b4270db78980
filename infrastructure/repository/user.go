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
	usersTable = "users u"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	GetUserByID(id string) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	ListAgentsByManager(managerID string) ([]*domain.User, error)
	ListActiveAgents() ([]*domain.User, error)
	UpdateUser(user *domain.User) error
	TouchLastLogin(id string, at time.Time) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("users").
		Columns("id", "first_name", "last_name", "email", "password_hash", "role", "active", "invited_by").
		Values(
			user.ID,
			user.FirstName,
			user.LastName,
			user.Email,
			user.PasswordHash,
			string(user.Role),
			user.Active,
			user.InvitedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("executing query: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(id string) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns()...).
		From(usersTable).
		Where(squirrel.Eq{"u.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	user, err := r.scanUser(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns()...).
		From(usersTable).
		Where(squirrel.Eq{"u.email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	user, err := r.scanUser(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return user, nil
}

func (r *userRepository) ListAgentsByManager(managerID string) ([]*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns()...).
		From(usersTable).
		Where(squirrel.Eq{"u.role": string(domain.RoleAgent), "u.invited_by": managerID, "u.active": true}).
		OrderBy("u.created_at ASC").
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := r.scanUserRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user rows: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) ListActiveAgents() ([]*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns()...).
		From(usersTable).
		Where(squirrel.Eq{"u.role": string(domain.RoleAgent), "u.active": true}).
		OrderBy("u.created_at ASC").
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := r.scanUserRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user rows: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	query, args, err := squirrel.StatementBuilder.
		Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("active", user.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func (r *userRepository) TouchLastLogin(id string, at time.Time) error {
	query, args, err := squirrel.StatementBuilder.
		Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func userColumns() []string {
	return []string{
		"u.id", "u.first_name", "u.last_name", "u.email", "u.password_hash",
		"u.role", "u.active", "u.invited_by", "u.last_login_at", "u.created_at", "u.updated_at",
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	return scanUserFrom(row)
}

func (r *userRepository) scanUserRows(rows *sql.Rows) (*domain.User, error) {
	return scanUserFrom(rows)
}

func scanUserFrom(s rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var role string

	err := s.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.Active,
		&user.InvitedBy,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	return user, nil
}
