package health

// Service answers liveness probes. It carries no dependencies so probes stay
// green while the catalog runs degraded.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "ok"}
}
