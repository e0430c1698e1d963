package models

import "time"

const (
	AuditTopic       = "payments.audit"
	PaymentsDLQTopic = "payments.dlq"

	EntityPaymentIntent = "payment_intent"
	EntityRisk          = "risk_assessment"

	ActionAuthorize  = "authorize"
	ActionCapture    = "capture"
	ActionSettle     = "settle"
	ActionCancel     = "cancel"
	ActionExpire     = "expire"
	ActionReconcile  = "reconcile"
	ActionRiskAssess = "risk_assess"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePending = "pending"

	ActorSystem = "system"
)

// AuditEvent is emitted for every phase transition and every risk decision.
type AuditEvent struct {
	ID         string                 `json:"id"`
	EntityID   string                 `json:"entity_id"`
	EntityType string                 `json:"entity_type"`
	Action     string                 `json:"action"`
	Actor      string                 `json:"actor"`
	Timestamp  time.Time              `json:"timestamp"`
	Outcome    string                 `json:"outcome"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

type DLQMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Attempts      int       `json:"attempts"`
}

// PartitionKey keeps every event of one entity on the same partition.
func (e AuditEvent) PartitionKey() string { return e.EntityID }

func (m DLQMessage) PartitionKey() string { return m.Key }
