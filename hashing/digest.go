package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// bcryptDigestLen is the length of a Modular Crypt Format bcrypt digest:
// "$2a$" + 2-digit cost + "$" + 22-char salt + 31-char hash.
const bcryptDigestLen = 60

// Inspect parses any digest produced by this package (or by another compliant
// implementation) and returns its algorithm and embedded cost parameters.
// It does not verify the digest.
//
// Returns [ErrMalformedDigest] when the digest is not recognised.
func Inspect(digest string) (Info, error) {
	algo, ok := DetectAlgorithm(digest)
	if !ok {
		return Info{}, errors.Wrap(ErrMalformedDigest, "unknown digest prefix")
	}
	if algo == AlgorithmBcrypt {
		return inspectBcrypt(digest)
	}
	p, err := decodePHC(digest)
	if err != nil {
		return Info{}, err
	}
	return p.info(), nil
}

func inspectBcrypt(digest string) (Info, error) {
	if len(digest) != bcryptDigestLen {
		return Info{}, errors.Wrapf(ErrMalformedDigest, "bcrypt digest has length %d, want %d",
			len(digest), bcryptDigestLen)
	}
	rounds, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		return Info{}, errors.Wrapf(ErrMalformedDigest, "bcrypt: %v", err)
	}
	return Info{
		Algorithm: AlgorithmBcrypt,
		ID:        digest[1:3],
		Options:   map[string]int{"rounds": rounds},
	}, nil
}

// verify checks value against any supported digest. Unparsable digests never
// match.
func verify(value, digest string) bool {
	algo, ok := DetectAlgorithm(digest)
	if !ok {
		return false
	}
	if algo == AlgorithmBcrypt {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(value)) == nil
	}
	p, err := decodePHC(digest)
	if err != nil || p.version != argon2.Version {
		return false
	}
	computed := p.derive(value, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(computed, p.key) == 1
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format
// ──────────────────────────────────────────────────────────────────────────────

// argonParams holds the parameters and raw values of an Argon2 PHC digest.
type argonParams struct {
	algorithm Algorithm
	version   uint32
	memory    uint32
	time      uint32
	threads   uint8
	salt      []byte
	key       []byte
}

func (p *argonParams) derive(value string, keyLen uint32) []byte {
	if p.algorithm == AlgorithmArgon2id {
		return argon2.IDKey([]byte(value), p.salt, p.time, p.memory, p.threads, keyLen)
	}
	return argon2.Key([]byte(value), p.salt, p.time, p.memory, p.threads, keyLen)
}

func (p *argonParams) info() Info {
	return Info{
		Algorithm: p.algorithm,
		ID:        string(p.algorithm),
		Options: map[string]int{
			"memory":  int(p.memory),
			"time":    int(p.time),
			"threads": int(p.threads),
		},
	}
}

// encode serialises p in PHC string format:
//
//	$argon2id$v=19$m=1024,t=2,p=2$<salt>$<key>
//
// Salt and key use standard base64 without padding, as libargon2 does.
func (p *argonParams) encode() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.algorithm,
		p.version,
		p.memory,
		p.time,
		p.threads,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

// decodePHC parses an Argon2 PHC digest. Every failure wraps
// [ErrMalformedDigest].
func decodePHC(encoded string) (*argonParams, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.Wrapf(ErrMalformedDigest, "expected 5-segment PHC string, got %d segments",
			len(parts)-1)
	}

	p := &argonParams{}
	switch Algorithm(parts[1]) {
	case AlgorithmArgon2i, AlgorithmArgon2id:
		p.algorithm = Algorithm(parts[1])
	default:
		return nil, errors.Wrapf(ErrMalformedDigest, "unknown argon2 variant %q", parts[1])
	}

	version, err := parseKV(parts[2], "v")
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedDigest, "%v", err)
	}
	p.version = uint32(version)

	kvs, err := parseParams(parts[3])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedDigest, "%v", err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.Wrapf(ErrMalformedDigest, "missing m/t/p in parameter segment %q", parts[3])
	}
	if time < 1 || threads < 1 || threads > math.MaxUint8 || memory > math.MaxUint32 || time > math.MaxUint32 {
		return nil, errors.Wrapf(ErrMalformedDigest, "parameters out of range in %q", parts[3])
	}
	p.memory, p.time, p.threads = uint32(memory), uint32(time), uint8(threads)

	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return nil, errors.Wrap(ErrMalformedDigest, "invalid salt encoding")
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) == 0 {
		return nil, errors.Wrap(ErrMalformedDigest, "invalid hash encoding")
	}
	return p, nil
}

// parseKV parses a "key=value" string and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 32)
}

// parseParams splits "m=1024,t=2,p=2" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64, 3)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, errors.WithSecondaryError(errors.Wrap(ErrHashingUnsupported, "hashing: generate salt"), err)
	}
	return b, nil
}
