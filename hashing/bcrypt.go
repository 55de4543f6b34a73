package hashing

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptRounds is the work factor used when neither a per-call option
// nor the configuration supplies one.
const DefaultBcryptRounds = 10

// BcryptConfig holds the configured defaults of a [BcryptHasher].
// A zero Rounds falls back to [DefaultBcryptRounds].
type BcryptConfig struct {
	Rounds int
}

// BcryptHasher hashes values with bcrypt.
//
// Digests use the Modular Crypt Format ("$2a$10$..."). Digests with the
// "$2b$" and "$2y$" prefixes written by other implementations verify as well.
//
// bcrypt only considers the first 72 bytes of its input; Make refuses longer
// values with ErrHashingUnsupported rather than silently truncating them.
type BcryptHasher struct {
	cfg BcryptConfig
}

// NewBcryptHasher returns a BcryptHasher with the given defaults. Cost
// parameters are validated when Make runs, not here.
func NewBcryptHasher(cfg BcryptConfig) *BcryptHasher {
	return &BcryptHasher{cfg: cfg}
}

// Algorithm returns [AlgorithmBcrypt].
func (h *BcryptHasher) Algorithm() Algorithm { return AlgorithmBcrypt }

// Config returns the configured defaults.
func (h *BcryptHasher) Config() BcryptConfig { return h.cfg }

func (h *BcryptHasher) rounds(o Options) int {
	return resolve(o.Rounds, h.cfg.Rounds, DefaultBcryptRounds)
}

// Make hashes value with bcrypt using the effective work factor.
func (h *BcryptHasher) Make(value string, opts ...Option) (string, error) {
	rounds := h.rounds(collect(opts))
	if rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost {
		return "", errors.Wrapf(ErrHashingUnsupported, "bcrypt rounds %d must be in [%d, %d]",
			rounds, bcrypt.MinCost, bcrypt.MaxCost)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(value), rounds)
	if err != nil {
		return "", errors.WithSecondaryError(errors.Wrapf(ErrHashingUnsupported, "hashing: bcrypt: %v", err), err)
	}
	return string(digest), nil
}

// Check verifies value against digest. The digest may use any supported
// algorithm; unparsable digests return (false, nil).
func (h *BcryptHasher) Check(value, digest string, _ ...Option) (bool, error) {
	return verify(value, digest), nil
}

// NeedsRehash returns true when digest is not a bcrypt digest or its work
// factor differs from the effective one.
func (h *BcryptHasher) NeedsRehash(digest string, opts ...Option) (bool, error) {
	info, err := Inspect(digest)
	if err != nil {
		return false, err
	}
	if info.Algorithm != AlgorithmBcrypt {
		return true, nil
	}
	return info.Options["rounds"] != h.rounds(collect(opts)), nil
}

// Info returns the metadata of any supported digest. See [Inspect].
func (h *BcryptHasher) Info(digest string) (Info, error) {
	return Inspect(digest)
}
