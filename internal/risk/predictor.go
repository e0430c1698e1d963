package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Prediction is an external model's opinion of a payment.
type Prediction struct {
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
}

type Predictor interface {
	Predict(ctx context.Context, req Request, rc RequestContext) (*Prediction, error)
}

// HTTPPredictor posts payment features to a scoring service.
type HTTPPredictor struct {
	client *resty.Client
	path   string
}

func NewHTTPPredictor(baseURL string, timeout time.Duration) *HTTPPredictor {
	if timeout == 0 {
		timeout = 500 * time.Millisecond
	}
	return &HTTPPredictor{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		path:   "/v1/score",
	}
}

type predictionRequest struct {
	PaymentID         string `json:"payment_id"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Email             string `json:"email,omitempty"`
	BillingCountry    string `json:"billing_country,omitempty"`
	UserID            string `json:"user_id,omitempty"`
	IPAddress         string `json:"ip_address,omitempty"`
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, req Request, rc RequestContext) (*Prediction, error) {
	var prediction Prediction
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(predictionRequest{
			PaymentID:         req.PaymentID,
			Amount:            req.Amount,
			Currency:          string(req.Currency),
			Email:             req.CustomerEmail,
			BillingCountry:    req.BillingCountry,
			UserID:            rc.UserID,
			IPAddress:         rc.IPAddress,
			DeviceFingerprint: rc.DeviceFingerprint,
		}).
		SetResult(&prediction).
		Post(p.path)
	if err != nil {
		return nil, fmt.Errorf("error calling predictor: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("predictor returned %s", resp.Status())
	}
	return &prediction, nil
}
