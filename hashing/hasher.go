package hashing

import "strings"

// Algorithm identifies the hashing algorithm embedded in a digest.
type Algorithm string

const (
	// AlgorithmBcrypt tags bcrypt digests ($2a$, $2b$, $2y$).
	AlgorithmBcrypt Algorithm = "bcrypt"
	// AlgorithmArgon2i tags Argon2i PHC digests.
	AlgorithmArgon2i Algorithm = "argon2i"
	// AlgorithmArgon2id tags Argon2id PHC digests.
	AlgorithmArgon2id Algorithm = "argon2id"
)

// DriverName is the key under which a [Registry] resolves a [Hasher].
// It is also the value expected in the "hashing.driver" configuration key.
type DriverName string

const (
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon selects the Argon2i driver.
	DriverArgon DriverName = "argon"
	// DriverArgon2i is an alias of DriverArgon.
	DriverArgon2i DriverName = "argon2i"
	// DriverArgon2id selects the Argon2id driver.
	DriverArgon2id DriverName = "argon2id"
)

// Hasher is the contract satisfied by every password-hashing driver.
//
// Implementations hold only the defaults they were constructed with and are
// safe for concurrent use. Per-call [Option] values override those defaults
// for a single call and never modify them.
type Hasher interface {
	// Make hashes value and returns a self-describing digest. A fresh random
	// salt is generated for every call, so hashing the same value twice
	// yields two different digests.
	//
	// Returns ErrHashingUnsupported when the effective cost parameters are
	// out of range for the underlying primitive.
	Make(value string, opts ...Option) (string, error)

	// Check reports whether value matches digest. The comparison runs in
	// constant time. A mismatch is (false, nil), never an error.
	Check(value, digest string, opts ...Option) (bool, error)

	// NeedsRehash reports whether digest was produced with an algorithm or
	// cost parameters that differ from the hasher's effective settings.
	// It does not verify any secret.
	NeedsRehash(digest string, opts ...Option) (bool, error)

	// Info parses the digest header. See [Inspect].
	Info(digest string) (Info, error)

	// Algorithm returns the algorithm this hasher produces.
	Algorithm() Algorithm
}

// Info describes a digest without verifying it.
type Info struct {
	// Algorithm is the algorithm name ("bcrypt", "argon2i", "argon2id").
	Algorithm Algorithm `json:"algoName"`

	// ID is the identifier found in the digest prefix: "2a", "2b" or "2y"
	// for bcrypt, the algorithm name for Argon2.
	ID string `json:"algoId"`

	// Options holds the embedded cost parameters.
	//
	// bcrypt:           "rounds"
	// argon2i/argon2id: "memory" (KiB), "time", "threads"
	Options map[string]int `json:"options"`
}

// DetectAlgorithm returns the algorithm named by the digest prefix. It is a
// cheap prefix test; use [Inspect] to validate the whole digest.
func DetectAlgorithm(digest string) (Algorithm, bool) {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return AlgorithmArgon2id, true
	case strings.HasPrefix(digest, "$argon2i$"):
		return AlgorithmArgon2i, true
	case strings.HasPrefix(digest, "$2a$"),
		strings.HasPrefix(digest, "$2b$"),
		strings.HasPrefix(digest, "$2y$"):
		return AlgorithmBcrypt, true
	default:
		return "", false
	}
}
