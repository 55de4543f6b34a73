package hashing

import "github.com/cockroachdb/errors"

// Sentinel errors returned by hashing operations. None of them is retried
// internally; compare with [errors.Is]:
//
//	ok, err := registry.Check(password, digest)
//	if errors.Is(err, hashing.ErrAlgorithmMismatch) {
//	    // refuse the login and alert: possible downgrade
//	}
var (
	// ErrHashingUnsupported is returned by Make when the primitive refuses to
	// produce a digest, typically because a cost parameter is out of range.
	ErrHashingUnsupported = errors.New("hashing: hashing not supported with these parameters")

	// ErrAlgorithmMismatch is returned by the Argon2i driver's Check, when its
	// verify flag is on, for digests produced by any other algorithm.
	ErrAlgorithmMismatch = errors.New("hashing: digest does not use the expected algorithm")

	// ErrMalformedDigest is returned when a digest cannot be parsed.
	ErrMalformedDigest = errors.New("hashing: malformed or unrecognised digest")

	// ErrUnsupportedDriver is returned by [Registry.Driver] when no factory
	// is registered for the requested or configured driver name.
	ErrUnsupportedDriver = errors.New("hashing: driver not supported")

	// ErrInvalidOption is returned by driver factories when a configured
	// value has the wrong type.
	ErrInvalidOption = errors.New("hashing: invalid option value")
)
