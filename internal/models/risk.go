package models

import "time"

type RiskLevel string
type Recommendation string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"

	RecommendApprove   Recommendation = "APPROVE"
	RecommendReview    Recommendation = "REVIEW"
	RecommendDecline   Recommendation = "DECLINE"
	RecommendChallenge Recommendation = "CHALLENGE"
)

// RiskFactor is one weighted signal contributing to a RiskAssessment.
type RiskFactor struct {
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail,omitempty"`
}

type RiskAssessment struct {
	PaymentID      string         `json:"payment_id"`
	Score          float64        `json:"score"`
	Level          RiskLevel      `json:"level"`
	Factors        []RiskFactor   `json:"factors"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	AssessedAt     time.Time      `json:"assessed_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
}

// Factor returns the factor with the given name, if it fired.
func (r *RiskAssessment) Factor(name string) (RiskFactor, bool) {
	for _, f := range r.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// RequiresReview reports whether the payment may proceed but needs manual follow up.
func (r Recommendation) RequiresReview() bool {
	return r == RecommendReview || r == RecommendChallenge
}
