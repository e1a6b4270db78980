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
	snapshotsTable = "performance_snapshots ps"
)

type SnapshotRepository interface {
	GetByAgent(agentID string, period string) (*domain.PerformanceSnapshot, error)
	SaveOrUpdate(snapshot *domain.PerformanceSnapshot) error
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) GetByAgent(agentID string, period string) (*domain.PerformanceSnapshot, error) {
	query, args, err := squirrel.
		Select("ps.id, ps.agent_id, ps.period, ps.start_date, ps.end_date, ps.metrics, ps.calculated_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"ps.agent_id": agentID, "ps.period": period}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	snapshot := &domain.PerformanceSnapshot{}
	var metricsJSON []byte

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&snapshot.ID,
		&snapshot.AgentID,
		&snapshot.Period,
		&snapshot.StartDate,
		&snapshot.EndDate,
		&metricsJSON,
		&snapshot.CalculatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	if metricsJSON != nil {
		if err := json.Unmarshal(metricsJSON, &snapshot.Metrics); err != nil {
			return nil, fmt.Errorf("deserializing metrics: %w", err)
		}
	}

	return snapshot, nil
}

func (r *snapshotRepository) SaveOrUpdate(snapshot *domain.PerformanceSnapshot) error {
	metricsJSON, err := json.Marshal(snapshot.Metrics)
	if err != nil {
		return fmt.Errorf("serializing metrics: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("performance_snapshots").
		Columns("agent_id", "period", "start_date", "end_date", "metrics", "calculated_at").
		Values(
			snapshot.AgentID,
			snapshot.Period,
			snapshot.StartDate.Format(time.DateOnly),
			snapshot.EndDate.Format(time.DateOnly),
			metricsJSON,
			snapshot.CalculatedAt,
		).
		Suffix(`
			ON CONFLICT (agent_id, period) DO UPDATE SET
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				metrics = EXCLUDED.metrics,
				calculated_at = EXCLUDED.calculated_at
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}
