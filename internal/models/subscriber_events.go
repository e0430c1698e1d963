package models

import "time"

const (
	ReconcileTopic2Subscribe string = "payments.reconcile"
)

// ReconcileCommand asks the orchestrator to re-query provider state for an intent.
type ReconcileCommand struct {
	IntentID    string    `json:"intent_id"`
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
