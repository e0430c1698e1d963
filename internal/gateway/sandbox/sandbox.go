package sandbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

const (
	OpAuthorize = "authorize"
	OpCapture   = "capture"
	OpSettle    = "settle"
	OpVoid      = "void"
)

// Payment method refs with special behavior, in the spirit of processor test cards.
const (
	MethodDecline        = "pm_sandbox_decline"
	MethodRequiresAction = "pm_sandbox_requires_action"
)

// statuses is the sandbox's native vocabulary.
var statuses = gateway.StatusTable{
	"held":            gateway.StatusAuthorized,
	"needs_challenge": gateway.StatusRequiresAction,
	"charged":         gateway.StatusCaptured,
	"queued":          gateway.StatusPending,
	"paid_out":        gateway.StatusSettled,
	"released":        gateway.StatusVoided,
	"rejected":        gateway.StatusFailed,
}

type hold struct {
	ref      string
	status   string
	amount   int64
	captured int64
	expires  time.Time
}

type fault struct {
	remaining int
	commit    bool
}

// Gateway is an in-memory processor used for local runs and tests. It keeps
// idempotency keys like a real processor and can be told to fail.
type Gateway struct {
	mu         sync.Mutex
	provider   models.Provider
	authWindow time.Duration
	now        func() time.Time

	holds       map[string]*hold
	byKey       map[string]string
	captures    map[string]*gateway.CaptureResult
	settlements map[string]*gateway.SettlementResult
	faults      map[string]*fault
	calls       map[string]int
}

func New(authWindow time.Duration) *Gateway {
	if authWindow == 0 {
		authWindow = 7 * 24 * time.Hour
	}
	return &Gateway{
		provider:    models.ProviderSandbox,
		authWindow:  authWindow,
		now:         time.Now,
		holds:       make(map[string]*hold),
		byKey:       make(map[string]string),
		captures:    make(map[string]*gateway.CaptureResult),
		settlements: make(map[string]*gateway.SettlementResult),
		faults:      make(map[string]*fault),
		calls:       make(map[string]int),
	}
}

// As makes the sandbox answer for another provider name, so orchestration
// can be exercised with that provider's fee schedule.
func (g *Gateway) As(provider models.Provider) *Gateway {
	g.provider = provider
	return g
}

// WithClock overrides the time source.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// FailNext makes the next n calls of op fail with a transient error.
func (g *Gateway) FailNext(op string, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.faults[op] = &fault{remaining: n}
}

// TimeoutAfterCommitNext makes the next n calls of op apply their effect and
// then report a transient error, like a response lost on the wire.
func (g *Gateway) TimeoutAfterCommitNext(op string, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.faults[op] = &fault{remaining: n, commit: true}
}

// Calls returns how many times op reached the sandbox.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *Gateway) Name() models.Provider {
	return g.provider
}

// takeFault must be called with mu held.
func (g *Gateway) takeFault(op string) (failed bool, commit bool) {
	f, ok := g.faults[op]
	if !ok || f.remaining == 0 {
		return false, false
	}
	f.remaining--
	return true, f.commit
}

func (g *Gateway) transient(op string) error {
	return &models.ProviderError{Provider: g.provider, Operation: op, StatusCode: 503, Err: errors.New("sandbox unavailable")}
}

func (g *Gateway) CreateAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[OpAuthorize]++

	failed, commit := g.takeFault(OpAuthorize)
	if failed && !commit {
		return nil, g.transient(OpAuthorize)
	}

	if ref, ok := g.byKey[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return g.authResult(g.holds[ref]), nil
	}

	if req.PaymentMethodRef == MethodDecline {
		return nil, &models.ProviderDeclineError{Provider: g.provider, Operation: OpAuthorize, Code: "card_declined", Reason: "sandbox decline"}
	}

	h := &hold{
		ref:     "sbx_auth_" + uuid.NewString(),
		status:  "held",
		amount:  req.Amount,
		expires: g.now().Add(g.authWindow),
	}
	if req.PaymentMethodRef == MethodRequiresAction {
		h.status = "needs_challenge"
	}
	g.holds[h.ref] = h
	if req.IdempotencyKey != "" {
		g.byKey[req.IdempotencyKey] = h.ref
	}

	if failed {
		return nil, g.transient(OpAuthorize)
	}
	return g.authResult(h), nil
}

func (g *Gateway) authResult(h *hold) *gateway.AuthorizationResult {
	return &gateway.AuthorizationResult{
		ProviderRef: h.ref,
		Status:      statuses.Translate(h.status),
		ExpiresAt:   h.expires,
	}
}

// CompleteAction resolves a pending customer challenge on a hold.
func (g *Gateway) CompleteAction(providerRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.holds[providerRef]
	if !ok {
		return gateway.ErrNotFoundAtProvider
	}
	h.status = "held"
	return nil
}

func (g *Gateway) LookupAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ref, ok := g.byKey[req.IdempotencyKey]
	if !ok {
		return nil, gateway.ErrNotFoundAtProvider
	}
	return g.authResult(g.holds[ref]), nil
}

func (g *Gateway) CreateCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[OpCapture]++

	failed, commit := g.takeFault(OpCapture)
	if failed && !commit {
		return nil, g.transient(OpCapture)
	}

	if existing, ok := g.captures[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return existing, nil
	}

	h, ok := g.holds[req.ProviderAuthRef]
	if !ok {
		return nil, &models.ProviderDeclineError{Provider: g.provider, Operation: OpCapture, Code: "no_such_hold", Reason: "unknown authorization"}
	}
	if h.status != "held" {
		return nil, &models.ProviderDeclineError{Provider: g.provider, Operation: OpCapture, Code: "hold_" + h.status, Reason: "authorization not capturable"}
	}
	if h.captured+req.Amount > h.amount {
		return nil, &models.ProviderDeclineError{Provider: g.provider, Operation: OpCapture, Code: "amount_too_large", Reason: "capture exceeds hold"}
	}

	h.captured += req.Amount
	result := &gateway.CaptureResult{ProviderRef: "sbx_cap_" + uuid.NewString(), Status: statuses.Translate("charged")}
	g.captures[req.IdempotencyKey] = result

	if failed {
		return nil, g.transient(OpCapture)
	}
	return result, nil
}

func (g *Gateway) LookupCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result, ok := g.captures[req.IdempotencyKey]
	if !ok {
		return nil, gateway.ErrNotFoundAtProvider
	}
	return result, nil
}

func (g *Gateway) CreateSettlement(ctx context.Context, req gateway.SettlementRequest) (*gateway.SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[OpSettle]++

	failed, commit := g.takeFault(OpSettle)
	if failed && !commit {
		return nil, g.transient(OpSettle)
	}

	if existing, ok := g.settlements[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return existing, nil
	}
	if req.Destination == "" {
		return nil, &models.ProviderDeclineError{Provider: g.provider, Operation: OpSettle, Code: "no_destination", Reason: "missing bank account"}
	}

	result := &gateway.SettlementResult{
		ProviderRef:    "sbx_po_" + uuid.NewString(),
		Status:         statuses.Translate("paid_out"),
		NetAmount:      req.NetAmount,
		BankAccountRef: req.Destination,
	}
	g.settlements[req.IdempotencyKey] = result

	if failed {
		return nil, g.transient(OpSettle)
	}
	return result, nil
}

func (g *Gateway) VoidAuthorization(ctx context.Context, providerAuthRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[OpVoid]++

	if failed, _ := g.takeFault(OpVoid); failed {
		return g.transient(OpVoid)
	}

	h, ok := g.holds[providerAuthRef]
	if !ok {
		return &models.ProviderDeclineError{Provider: g.provider, Operation: OpVoid, Code: "no_such_hold", Reason: fmt.Sprintf("unknown authorization %s", providerAuthRef)}
	}
	if h.captured > 0 {
		return &models.ProviderDeclineError{Provider: g.provider, Operation: OpVoid, Code: "already_captured", Reason: "authorization has captures"}
	}
	h.status = "released"
	return nil
}

// HoldStatus exposes the canonical status of a hold for assertions.
func (g *Gateway) HoldStatus(providerRef string) (gateway.ProviderStatus, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.holds[providerRef]
	if !ok {
		return "", false
	}
	return statuses.Translate(h.status), true
}
