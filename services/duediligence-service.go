package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/logging"
)

type ScreeningResult struct {
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	RiskScore int      `json:"risk_score"`
	Flags     []string `json:"flags"`
}

// ScreeningProvider is the pluggable risk-screening collaborator.
type ScreeningProvider interface {
	Screen(ctx context.Context, name, country string) (ScreeningResult, error)
}

// Score is the deterministic mock scoring function. Do not replace it with
// a real lookup; its whole value is reproducibility.
func Score(name string) int {
	return (len(name) * 13) % 100
}

// StubProvider is the default provider: pure, local, and never failing.
type StubProvider struct{}

func (StubProvider) Screen(_ context.Context, name, country string) (ScreeningResult, error) {
	return ScreeningResult{
		Name:      name,
		Country:   country,
		RiskScore: Score(name),
		Flags:     []string{"sanctions: clear", "whois: n/a"},
	}, nil
}

// DueDiligenceService calls the provider through a circuit breaker, the
// same way outbound collaborator calls are guarded elsewhere. With the
// stub provider the breaker simply never trips.
type DueDiligenceService struct {
	provider ScreeningProvider
	breaker  *gobreaker.CircuitBreaker
}

func NewDueDiligenceService(provider ScreeningProvider) *DueDiligenceService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ScreeningProviderCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &DueDiligenceService{provider: provider, breaker: breaker}
}

func (s *DueDiligenceService) Screen(ctx context.Context, name, country string) (ScreeningResult, error) {
	if strings.TrimSpace(name) == "" {
		return ScreeningResult{}, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.provider.Screen(ctx, name, country)
	})
	if err != nil {
		return ScreeningResult{}, fmt.Errorf("screening provider failed: %v", err)
	}
	return out.(ScreeningResult), nil
}
