package engine

// ============================================================================
// ENGINE OPTIONS — functional options for Aggregate()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	entity EntityKind
	topN   int // 0 = unlimited ranking
}

// WithEntityKind selects which entity the ranking, daily series and sector
// breakdown group by. Defaults to supervisors.
func WithEntityKind(kind EntityKind) Option {
	return func(c *config) {
		c.entity = kind
	}
}

// WithTopN caps the ranking (and the breakdown rows that follow it) at the
// first n entities. Zero keeps every entity.
func WithTopN(n int) Option {
	return func(c *config) {
		c.topN = n
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		entity: EntitySupervisor,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
