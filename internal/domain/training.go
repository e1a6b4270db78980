package domain

import "time"

// CustomerPersona is one of the fixed roleplay customer profiles
type CustomerPersona struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Behavior    string `json:"behavior"`
}

// RoleplayMessage is one turn of a training conversation
type RoleplayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RoleplaySession is the transient state of one voice-training conversation.
// Sessions live in an in-process store and are evicted after their TTL.
type RoleplaySession struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	CustomerType  string            `json:"customer_type"`
	Scenario      string            `json:"scenario"`
	Messages      []RoleplayMessage `json:"messages"`
	ExchangeCount int               `json:"exchange_count"`
	StartedAt     time.Time         `json:"started_at"`
}

// RoleplayEvaluation is the end-of-session scoring, each dimension on 1-10
type RoleplayEvaluation struct {
	Greeting          int      `json:"greeting"`
	Argumentation     int      `json:"argumentation"`
	ObjectionHandling int      `json:"objection_handling"`
	Closing           int      `json:"closing"`
	Overall           int      `json:"overall"`
	Feedback          []string `json:"feedback"`
}
