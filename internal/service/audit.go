package service

import (
	"context"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/metrics"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// emit publishes an audit event. The publish outlives the caller's
// cancellation but not AuditTimeout. A failed publish is logged and counted;
// it never undoes the transition it describes.
func (s *PaymentService) emit(ctx context.Context, entityID, entityType, action, outcome string, details map[string]interface{}) {
	event := models.AuditEvent{
		ID:         ulid.Make().String(),
		EntityID:   entityID,
		EntityType: entityType,
		Action:     action,
		Actor:      models.ActorSystem,
		Timestamp:  s.now().UTC(),
		Outcome:    outcome,
		Details:    details,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.AuditTimeout)
	defer cancel()

	if err := s.Publisher.Publish(ctx, models.AuditTopic, event); err != nil {
		metrics.AuditPublishFailuresTotal.Inc()
		logrus.WithFields(logrus.Fields{
			"entity_id": entityID,
			"action":    action,
			"outcome":   outcome,
		}).Errorf("error publishing audit event: %v", err)
	}
}

// recordTransition audits a phase change of intent and counts it.
func (s *PaymentService) recordTransition(ctx context.Context, intent *models.PaymentIntent, action, outcome string, details map[string]interface{}) {
	metrics.PaymentTransitionsTotal.WithLabelValues(action, outcome).Inc()

	if details == nil {
		details = map[string]interface{}{}
	}
	details["status"] = intent.Status
	details["amount"] = intent.Amount
	details["currency"] = intent.Currency
	details["provider"] = intent.Provider
	if intent.FailureReason != "" {
		details["failure_reason"] = intent.FailureReason
	}

	intentLog(intent).WithField("action", action).Infof("payment transition %s", outcome)
	s.emit(ctx, intent.ID, models.EntityPaymentIntent, action, outcome, details)
}

func (s *PaymentService) recordRisk(ctx context.Context, assessment models.RiskAssessment) {
	metrics.RiskDecisionsTotal.WithLabelValues(string(assessment.Recommendation)).Inc()
	metrics.RiskScore.Observe(assessment.Score)

	factors := make([]string, 0, len(assessment.Factors))
	for _, f := range assessment.Factors {
		factors = append(factors, f.Name)
	}

	outcome := models.OutcomeSuccess
	if assessment.Recommendation == models.RecommendDecline {
		outcome = models.OutcomeFailure
	}
	s.emit(ctx, assessment.PaymentID, models.EntityRisk, models.ActionRiskAssess, outcome, map[string]interface{}{
		"score":          assessment.Score,
		"level":          assessment.Level,
		"recommendation": assessment.Recommendation,
		"confidence":     assessment.Confidence,
		"factors":        factors,
	})
}
