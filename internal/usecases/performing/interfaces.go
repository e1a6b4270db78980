package performing

import (
	"github.com/rylessKechit/salesup/internal/domain"
)

// Snapshotter recomputes and serves performance snapshots
type Snapshotter interface {
	// Refresh recomputes the trailing-window snapshot for the agent and
	// persists it. Returns nil when the agent has no entries in the window.
	Refresh(agentID string) (*domain.PerformanceSnapshot, error)

	// Latest returns the stored snapshot, computing it on first access.
	// Returns nil when the agent has no data yet.
	Latest(agentID string) (*domain.PerformanceSnapshot, error)
}
