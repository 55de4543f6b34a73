package hashing

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/argon2"
)

const (
	// DefaultArgonMemory is the default memory cost in KiB.
	DefaultArgonMemory = 1024

	// DefaultArgonTime is the default number of passes over memory.
	DefaultArgonTime = 2

	// DefaultArgonThreads is the default degree of parallelism.
	DefaultArgonThreads = 2

	argonKeyLen  = 32
	argonSaltLen = 16
)

// ArgonConfig holds the configured defaults of the Argon2 drivers.
// Zero cost fields fall back to the DefaultArgon* constants.
type ArgonConfig struct {
	// Memory is the memory cost in KiB. Must be at least 8 × Threads.
	Memory int
	// Time is the number of passes. Must be at least 1.
	Time int
	// Threads is the degree of parallelism, in [1, 255].
	Threads int
	// Verify makes the Argon2i driver reject, with ErrAlgorithmMismatch,
	// digests that are not Argon2i. The Argon2id driver ignores it.
	Verify bool
}

// argonDriver holds the behaviour shared by both Argon2 variants.
type argonDriver struct {
	algorithm Algorithm
	cfg       ArgonConfig
}

// Algorithm returns the Argon2 variant produced by this hasher.
func (d *argonDriver) Algorithm() Algorithm { return d.algorithm }

// Config returns the configured defaults.
func (d *argonDriver) Config() ArgonConfig { return d.cfg }

func (d *argonDriver) params(o Options) (memory, time, threads int) {
	return resolve(o.Memory, d.cfg.Memory, DefaultArgonMemory),
		resolve(o.Time, d.cfg.Time, DefaultArgonTime),
		resolve(o.Threads, d.cfg.Threads, DefaultArgonThreads)
}

func validateArgon(memory, time, threads int) error {
	switch {
	case time < 1 || int64(time) > math.MaxUint32:
		return errors.Wrapf(ErrHashingUnsupported, "argon2 time %d must be in [1, %d]", time, uint32(math.MaxUint32))
	case threads < 1 || threads > math.MaxUint8:
		return errors.Wrapf(ErrHashingUnsupported, "argon2 threads %d must be in [1, %d]", threads, math.MaxUint8)
	case memory < 8*threads || int64(memory) > math.MaxUint32:
		return errors.Wrapf(ErrHashingUnsupported, "argon2 memory %d KiB must be in [8×threads (%d), %d]",
			memory, 8*threads, uint32(math.MaxUint32))
	}
	return nil
}

// Make hashes value with the effective Argon2 parameters and returns a PHC
// string. A fresh 16-byte salt is drawn for every call.
func (d *argonDriver) Make(value string, opts ...Option) (string, error) {
	memory, time, threads := d.params(collect(opts))
	if err := validateArgon(memory, time, threads); err != nil {
		return "", err
	}
	salt, err := randomSalt(argonSaltLen)
	if err != nil {
		return "", err
	}
	p := &argonParams{
		algorithm: d.algorithm,
		version:   argon2.Version,
		memory:    uint32(memory),
		time:      uint32(time),
		threads:   uint8(threads),
		salt:      salt,
	}
	p.key = p.derive(value, argonKeyLen)
	return p.encode(), nil
}

// Check verifies value against digest. The digest may use any supported
// algorithm; unparsable digests return (false, nil).
func (d *argonDriver) Check(value, digest string, _ ...Option) (bool, error) {
	return verify(value, digest), nil
}

// NeedsRehash returns true when digest uses another algorithm or its memory,
// time or threads differ from the effective parameters.
func (d *argonDriver) NeedsRehash(digest string, opts ...Option) (bool, error) {
	info, err := Inspect(digest)
	if err != nil {
		return false, err
	}
	if info.Algorithm != d.algorithm {
		return true, nil
	}
	memory, time, threads := d.params(collect(opts))
	return info.Options["memory"] != memory ||
		info.Options["time"] != time ||
		info.Options["threads"] != threads, nil
}

// Info returns the metadata of any supported digest. See [Inspect].
func (d *argonDriver) Info(digest string) (Info, error) {
	return Inspect(digest)
}

// ──────────────────────────────────────────────────────────────────────────────
// ArgonHasher (Argon2i)
// ──────────────────────────────────────────────────────────────────────────────

// ArgonHasher hashes values with Argon2i.
//
// When its configuration sets Verify, Check refuses digests that do not
// carry the argon2i tag instead of verifying them. This guards against a
// stored digest being swapped for one of a weaker algorithm.
type ArgonHasher struct {
	argonDriver
}

// NewArgonHasher returns an Argon2i hasher with the given defaults.
func NewArgonHasher(cfg ArgonConfig) *ArgonHasher {
	return &ArgonHasher{argonDriver{algorithm: AlgorithmArgon2i, cfg: cfg}}
}

// Check verifies value against digest. With Verify enabled it returns
// ErrMalformedDigest for unparsable digests and ErrAlgorithmMismatch for
// digests of any other algorithm, before any comparison is made.
func (h *ArgonHasher) Check(value, digest string, opts ...Option) (bool, error) {
	if h.cfg.Verify {
		info, err := Inspect(digest)
		if err != nil {
			return false, err
		}
		if info.Algorithm != AlgorithmArgon2i {
			return false, errors.Wrapf(ErrAlgorithmMismatch, "digest uses %s, not argon2i", info.Algorithm)
		}
	}
	return h.argonDriver.Check(value, digest, opts...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2idHasher
// ──────────────────────────────────────────────────────────────────────────────

// Argon2idHasher hashes values with Argon2id. It shares every parameter and
// default with [ArgonHasher]; only the derivation function and digest tag
// differ. It has no algorithm guard on Check.
type Argon2idHasher struct {
	argonDriver
}

// NewArgon2idHasher returns an Argon2id hasher with the given defaults.
func NewArgon2idHasher(cfg ArgonConfig) *Argon2idHasher {
	return &Argon2idHasher{argonDriver{algorithm: AlgorithmArgon2id, cfg: cfg}}
}
