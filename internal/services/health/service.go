// Package health backs the liveness endpoint. The pipeline has no local
// state to probe, so a reachable process is a healthy one; provider
// outages surface per-request instead.
package health

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{"ok": true, "service": "resume-recommender"}
}
