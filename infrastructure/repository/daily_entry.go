package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rylessKechit/salesup/infrastructure/database/postgres"
	"github.com/rylessKechit/salesup/internal/domain"
)

const (
	dailyEntriesTable = "daily_entries de"

	// Postgres unique_violation, raised on the (agent_id, date) constraint
	uniqueViolationCode = "23505"
)

// ErrDuplicateEntry is returned when an entry already exists for the
// (agent, date) pair.
var ErrDuplicateEntry = fmt.Errorf("an entry already exists for this date")

type DailyEntryRepository interface {
	Create(entry *domain.DailyEntry) (*domain.DailyEntry, error)
	Update(entry *domain.DailyEntry) error
	GetByID(id string) (*domain.DailyEntry, error)
	GetByAgentAndDate(agentID string, date time.Time) (*domain.DailyEntry, error)
	ListByAgent(agentID string, limit int) ([]*domain.DailyEntry, error)
	ListByDateRange(agentID string, startDate, endDate time.Time) ([]*domain.DailyEntry, error)
}

type dailyEntryRepository struct {
	conn *postgres.Connection
}

func NewDailyEntryRepository(conn *postgres.Connection) DailyEntryRepository {
	return &dailyEntryRepository{
		conn: conn,
	}
}

func (r *dailyEntryRepository) Create(entry *domain.DailyEntry) (*domain.DailyEntry, error) {
	packagesJSON, err := json.Marshal(entry.InsurancePackages)
	if err != nil {
		return nil, fmt.Errorf("serializing insurance packages: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("daily_entries").
		Columns("id", "agent_id", "date", "contracts_count", "upgrades_count", "total_upgrade_value", "insurance_packages", "notes").
		Values(
			entry.ID,
			entry.AgentID,
			entry.Date.Format(time.DateOnly),
			entry.ContractsCount,
			entry.UpgradesCount,
			entry.TotalUpgradeValue,
			packagesJSON,
			entry.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolationCode {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("executing query: %w", err)
	}

	return entry, nil
}

func (r *dailyEntryRepository) Update(entry *domain.DailyEntry) error {
	packagesJSON, err := json.Marshal(entry.InsurancePackages)
	if err != nil {
		return fmt.Errorf("serializing insurance packages: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Update("daily_entries").
		Set("contracts_count", entry.ContractsCount).
		Set("upgrades_count", entry.UpgradesCount).
		Set("total_upgrade_value", entry.TotalUpgradeValue).
		Set("insurance_packages", packagesJSON).
		Set("notes", entry.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entry.ID}).
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

func (r *dailyEntryRepository) GetByID(id string) (*domain.DailyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns()...).
		From(dailyEntriesTable).
		Where(squirrel.Eq{"de.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	entry, err := scanEntryFrom(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	return entry, nil
}

func (r *dailyEntryRepository) GetByAgentAndDate(agentID string, date time.Time) (*domain.DailyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns()...).
		From(dailyEntriesTable).
		Where(squirrel.Eq{"de.agent_id": agentID, "de.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	entry, err := scanEntryFrom(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	return entry, nil
}

func (r *dailyEntryRepository) ListByAgent(agentID string, limit int) ([]*domain.DailyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns()...).
		From(dailyEntriesTable).
		Where(squirrel.Eq{"de.agent_id": agentID}).
		OrderBy("de.date DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	return r.queryEntries(query, args...)
}

func (r *dailyEntryRepository) ListByDateRange(agentID string, startDate, endDate time.Time) ([]*domain.DailyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns()...).
		From(dailyEntriesTable).
		Where(squirrel.Eq{"de.agent_id": agentID}).
		Where(squirrel.GtOrEq{"de.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"de.date": endDate.Format(time.DateOnly)}).
		OrderBy("de.date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	return r.queryEntries(query, args...)
}

func (r *dailyEntryRepository) queryEntries(query string, args ...interface{}) ([]*domain.DailyEntry, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.DailyEntry, 0)
	for rows.Next() {
		entry, err := scanEntryFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry rows: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return entries, nil
}

func entryColumns() []string {
	return []string{
		"de.id", "de.agent_id", "de.date", "de.contracts_count", "de.upgrades_count",
		"de.total_upgrade_value", "de.insurance_packages", "de.notes", "de.created_at", "de.updated_at",
	}
}

func scanEntryFrom(s rowScanner) (*domain.DailyEntry, error) {
	entry := &domain.DailyEntry{}
	var packagesJSON []byte

	err := s.Scan(
		&entry.ID,
		&entry.AgentID,
		&entry.Date,
		&entry.ContractsCount,
		&entry.UpgradesCount,
		&entry.TotalUpgradeValue,
		&packagesJSON,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if packagesJSON != nil {
		packages := make([]domain.InsurancePackage, 0)
		if err := json.Unmarshal(packagesJSON, &packages); err != nil {
			return nil, fmt.Errorf("deserializing insurance packages: %w", err)
		}
		entry.InsurancePackages = packages
	}

	return entry, nil
}
