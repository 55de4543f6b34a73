package hashing

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-laravel-hashing/config"
)

// Registry resolves driver names to lazily constructed, cached [Hasher]
// instances and dispatches the facade operations to the default driver.
//
// The first successful construction for a name is kept for the lifetime of
// the Registry; there is no eviction. A failed construction caches nothing,
// so a later call retries the factory.
//
// # Thread safety
//
// All methods are safe for concurrent use. Cache hits take a read lock;
// construction is serialised under the write lock, so concurrent first
// resolutions of the same name build exactly one instance.
type Registry struct {
	src       config.Source
	logger    *zap.Logger
	factories map[DriverName]Factory

	mu      sync.RWMutex
	drivers map[DriverName]Hasher
}

// RegistryOption configures a [Registry].
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report driver construction. The
// registry logs under the "hashing" name.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFactory registers f under name, replacing a built-in factory of the
// same name. A nil f removes the name from the registry.
//
//	r := hashing.NewRegistry(src, hashing.WithFactory("legacy", newLegacyDriver))
func WithFactory(name DriverName, f Factory) RegistryOption {
	return func(r *Registry) {
		if f == nil {
			delete(r.factories, name)
			return
		}
		r.factories[name] = f
	}
}

// NewRegistry returns a Registry reading its configuration from src, with
// the built-in bcrypt, argon, argon2i and argon2id factories. A nil src
// behaves like empty configuration.
func NewRegistry(src config.Source, opts ...RegistryOption) *Registry {
	if src == nil {
		src = config.Map{}
	}
	r := &Registry{
		src:       src,
		logger:    zap.NewNop(),
		factories: defaultFactories(),
		drivers:   make(map[DriverName]Hasher),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("hashing")
	return r
}

// DefaultDriver returns the name configured under "hashing.driver", or
// [DriverBcrypt] when the key is absent or unusable.
func (r *Registry) DefaultDriver() DriverName {
	name, err := config.String(r.src, ConfigKeyDriver, string(DriverBcrypt))
	if err != nil {
		return DriverBcrypt
	}
	return DriverName(name)
}

// Supported returns the registered driver names in sorted order.
func (r *Registry) Supported() []DriverName {
	names := make([]DriverName, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Driver returns the hasher for name, constructing and caching it on first
// use. An empty name resolves the default driver.
//
// Returns [ErrUnsupportedDriver] when no factory is registered for the name.
func (r *Registry) Driver(name DriverName) (Hasher, error) {
	if name == "" {
		name = r.DefaultDriver()
	}

	r.mu.RLock()
	h, ok := r.drivers[name]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.drivers[name]; ok {
		return h, nil
	}
	factory, ok := r.factories[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDriver, "driver %q", name)
	}
	h, err := factory(r.src)
	if err != nil {
		return nil, errors.Wrapf(err, "hashing: create driver %q", name)
	}
	if h == nil {
		return nil, errors.Wrapf(ErrUnsupportedDriver, "factory for %q returned no hasher", name)
	}
	r.drivers[name] = h
	r.logger.Debug("driver created",
		zap.String("driver", string(name)),
		zap.String("algorithm", string(h.Algorithm())),
	)
	return h, nil
}

// Drivers returns a snapshot of the drivers constructed so far.
func (r *Registry) Drivers() map[DriverName]Hasher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[DriverName]Hasher, len(r.drivers))
	for name, h := range r.drivers {
		out[name] = h
	}
	return out
}

// Make hashes value with the default driver.
func (r *Registry) Make(value string, opts ...Option) (string, error) {
	h, err := r.Driver("")
	if err != nil {
		return "", err
	}
	return h.Make(value, opts...)
}

// Check verifies value against digest with the default driver.
func (r *Registry) Check(value, digest string, opts ...Option) (bool, error) {
	h, err := r.Driver("")
	if err != nil {
		return false, err
	}
	return h.Check(value, digest, opts...)
}

// NeedsRehash reports whether digest should be regenerated under the default
// driver's effective parameters.
func (r *Registry) NeedsRehash(digest string, opts ...Option) (bool, error) {
	h, err := r.Driver("")
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(digest, opts...)
}

// Info inspects digest through the default driver.
func (r *Registry) Info(digest string) (Info, error) {
	h, err := r.Driver("")
	if err != nil {
		return Info{}, err
	}
	return h.Info(digest)
}
