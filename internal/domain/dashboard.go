package domain

// AgentDashboard is everything an agent's landing page needs
type AgentDashboard struct {
	User               *User                `json:"user"`
	RecentEntries      []*DailyEntry        `json:"recent_entries"`
	PerformanceMetrics *PerformanceSnapshot `json:"performance_metrics"`
	TodayEntry         *DailyEntry          `json:"today_entry"`
	HasFilledToday     bool                 `json:"has_filled_today"`
}

// AgentWithMetrics is a roster row in the manager dashboard
type AgentWithMetrics struct {
	*User
	PerformanceMetrics *PerformanceMetrics `json:"performance_metrics"`
}

// TeamStats summarizes a manager's team
type TeamStats struct {
	TotalAgents        int `json:"total_agents"`
	ActiveAgents       int `json:"active_agents"`
	PendingInvitations int `json:"pending_invitations"`
}

// ManagerDashboard is everything a manager's landing page needs
type ManagerDashboard struct {
	Manager     *User               `json:"manager"`
	Agents      []*AgentWithMetrics `json:"agents"`
	Invitations []*Invitation       `json:"invitations"`
	TeamStats   TeamStats           `json:"team_stats"`
}
