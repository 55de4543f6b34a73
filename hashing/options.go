package hashing

// Options carries per-call cost overrides. A zero field means "not supplied"
// and falls through to the hasher's configured default, then to the built-in
// constant.
type Options struct {
	// Rounds is the bcrypt work factor.
	Rounds int
	// Memory is the Argon2 memory cost in KiB.
	Memory int
	// Time is the number of Argon2 passes.
	Time int
	// Threads is the Argon2 degree of parallelism.
	Threads int
}

// Option sets a single per-call override.
type Option func(*Options)

// WithRounds overrides the bcrypt work factor for one call.
func WithRounds(n int) Option { return func(o *Options) { o.Rounds = n } }

// WithMemory overrides the Argon2 memory cost (KiB) for one call.
func WithMemory(kib int) Option { return func(o *Options) { o.Memory = kib } }

// WithTime overrides the Argon2 iteration count for one call.
func WithTime(n int) Option { return func(o *Options) { o.Time = n } }

// WithThreads overrides the Argon2 parallelism for one call.
func WithThreads(n int) Option { return func(o *Options) { o.Threads = n } }

func collect(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// resolve picks the per-call override, then the configured default, then the
// built-in constant.
func resolve(override, configured, builtin int) int {
	if override != 0 {
		return override
	}
	if configured != 0 {
		return configured
	}
	return builtin
}
