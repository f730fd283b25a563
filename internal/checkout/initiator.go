package checkout

import (
	"context"
	"net/url"

	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/plan"
)

// InitiationRequest is handed to the payment gateway boundary.
type InitiationRequest struct {
	TransactionID string
	StudentID     string
	Plan          plan.Type
	Amount        money.Cents
}

// Initiation is the gateway's answer: where to send the parent to pay.
type Initiation struct {
	RedirectURL string
}

// Initiator is the payment-initiation collaborator. The real gateway client
// satisfies this; handlers and services never see gateway specifics.
type Initiator interface {
	Initiate(ctx context.Context, req InitiationRequest) (*Initiation, error)
}

// HostedCheckout builds redirect URLs for a hosted checkout page.
type HostedCheckout struct {
	baseURL string
}

func NewHostedCheckout(baseURL string) *HostedCheckout {
	return &HostedCheckout{baseURL: baseURL}
}

func (hc *HostedCheckout) Initiate(ctx context.Context, req InitiationRequest) (*Initiation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(hc.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("session", req.TransactionID)
	q.Set("student", req.StudentID)
	q.Set("type", string(req.Plan))
	u.RawQuery = q.Encode()

	return &Initiation{RedirectURL: u.String()}, nil
}
