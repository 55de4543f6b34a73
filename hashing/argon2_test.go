package hashing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-laravel-hashing/hashing"
)

// fastArgonConfig returns minimal Argon2 parameters for unit tests.
// These are intentionally weak — do NOT use in production.
func fastArgonConfig() hashing.ArgonConfig {
	return hashing.ArgonConfig{
		Memory:  8 * 2, // 8 × Threads minimum
		Time:    1,
		Threads: 2,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared behaviour, run against both variants
// ──────────────────────────────────────────────────────────────────────────────

type argonVariant struct {
	name   string
	prefix string
	algo   hashing.Algorithm
	build  func(hashing.ArgonConfig) hashing.Hasher
}

func argonVariants() []argonVariant {
	return []argonVariant{
		{
			name:   "argon2i",
			prefix: "$argon2i$v=19$",
			algo:   hashing.AlgorithmArgon2i,
			build:  func(c hashing.ArgonConfig) hashing.Hasher { return hashing.NewArgonHasher(c) },
		},
		{
			name:   "argon2id",
			prefix: "$argon2id$v=19$",
			algo:   hashing.AlgorithmArgon2id,
			build:  func(c hashing.ArgonConfig) hashing.Hasher { return hashing.NewArgon2idHasher(c) },
		},
	}
}

func TestArgon_Make_PHCFormat(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			digest, err := v.build(fastArgonConfig()).Make("password")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(digest, v.prefix+"m=16,t=1,p=2$"), "digest = %q", digest)
			assert.Len(t, strings.Split(digest, "$"), 6)
		})
	}
}

func TestArgon_Make_BuiltinDefaults(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			digest, err := v.build(hashing.ArgonConfig{}).Make("password")
			require.NoError(t, err)
			assert.Contains(t, digest, "$m=1024,t=2,p=2$")
		})
	}
}

func TestArgon_Make_UniqueDigests(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			d1, _ := h.Make("same")
			d2, _ := h.Make("same")
			assert.NotEqual(t, d1, d2)
		})
	}
}

func TestArgon_Make_Overrides(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, err := h.Make("pw", hashing.WithMemory(32), hashing.WithTime(2), hashing.WithThreads(1))
			require.NoError(t, err)
			assert.Contains(t, digest, "$m=32,t=2,p=1$")

			info, err := h.Info(digest)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"memory": 32, "time": 2, "threads": 1}, info.Options)
		})
	}
}

func TestArgon_Make_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		opts []hashing.Option
	}{
		{"memory below 8×threads", []hashing.Option{hashing.WithMemory(8)}},
		{"negative time", []hashing.Option{hashing.WithTime(-1)}},
		{"too many threads", []hashing.Option{hashing.WithThreads(256), hashing.WithMemory(8 * 256)}},
		{"negative threads", []hashing.Option{hashing.WithThreads(-2)}},
	}
	for _, v := range argonVariants() {
		for _, tt := range tests {
			t.Run(v.name+"/"+tt.name, func(t *testing.T) {
				digest, err := v.build(fastArgonConfig()).Make("pw", tt.opts...)
				assert.ErrorIs(t, err, hashing.ErrHashingUnsupported)
				assert.Empty(t, digest)
			})
		}
	}
}

func TestArgon_Check(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, _ := h.Make("secret")

			ok, err := h.Check("secret", digest)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Check("wrong", digest)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestArgon_Check_EmptyValue(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, _ := h.Make("")
			ok, err := h.Check("", digest)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestArgon_Check_UsesDigestParameters(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			digest, _ := v.build(fastArgonConfig()).Make("pw")
			// A hasher configured differently still verifies the old digest.
			ok, err := v.build(hashing.ArgonConfig{Memory: 64, Time: 3, Threads: 1}).Check("pw", digest)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestArgon_Check_TamperedDigest(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, _ := h.Make("pw")
			tampered := strings.Replace(digest, "t=1", "t=2", 1)
			ok, err := h.Check("pw", tampered)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestArgon_NeedsRehash(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, _ := h.Make("pw")

			needs, err := h.NeedsRehash(digest)
			require.NoError(t, err)
			assert.False(t, needs, "same parameters")

			for _, opt := range []hashing.Option{
				hashing.WithMemory(32),
				hashing.WithTime(2),
				hashing.WithThreads(1),
			} {
				needs, err = h.NeedsRehash(digest, opt)
				require.NoError(t, err)
				assert.True(t, needs)
			}

			needs, err = v.build(hashing.ArgonConfig{Memory: 2048}).NeedsRehash(digest)
			require.NoError(t, err)
			assert.True(t, needs, "configured memory differs")
		})
	}
}

func TestArgon_NeedsRehash_OtherAlgorithm(t *testing.T) {
	bcryptDigest, _ := newTestBcryptHasher(t).Make("pw")
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			needs, err := v.build(fastArgonConfig()).NeedsRehash(bcryptDigest)
			require.NoError(t, err)
			assert.True(t, needs)
		})
	}
}

func TestArgon_NeedsRehash_Malformed(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			_, err := v.build(fastArgonConfig()).NeedsRehash("$argon2i$v=19$garbage")
			assert.ErrorIs(t, err, hashing.ErrMalformedDigest)
		})
	}
}

func TestArgon_Info(t *testing.T) {
	for _, v := range argonVariants() {
		t.Run(v.name, func(t *testing.T) {
			h := v.build(fastArgonConfig())
			digest, _ := h.Make("pw")
			info, err := h.Info(digest)
			require.NoError(t, err)
			assert.Equal(t, v.algo, info.Algorithm)
			assert.Equal(t, v.name, info.ID)
			assert.Equal(t, map[string]int{"memory": 16, "time": 1, "threads": 2}, info.Options)
			assert.Equal(t, v.algo, h.Algorithm())
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2i algorithm guard
// ──────────────────────────────────────────────────────────────────────────────

func strictArgonHasher() *hashing.ArgonHasher {
	cfg := fastArgonConfig()
	cfg.Verify = true
	return hashing.NewArgonHasher(cfg)
}

func TestArgonHasher_Verify_AcceptsArgon2i(t *testing.T) {
	h := strictArgonHasher()
	digest, _ := h.Make("pw")
	ok, err := h.Check("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgonHasher_Verify_RejectsBcrypt(t *testing.T) {
	digest, _ := newTestBcryptHasher(t).Make("pw")
	ok, err := strictArgonHasher().Check("pw", digest)
	assert.ErrorIs(t, err, hashing.ErrAlgorithmMismatch)
	assert.False(t, ok)
}

func TestArgonHasher_Verify_RejectsArgon2id(t *testing.T) {
	digest, _ := hashing.NewArgon2idHasher(fastArgonConfig()).Make("pw")
	_, err := strictArgonHasher().Check("pw", digest)
	assert.ErrorIs(t, err, hashing.ErrAlgorithmMismatch)
}

func TestArgonHasher_Verify_MalformedDigest(t *testing.T) {
	_, err := strictArgonHasher().Check("pw", "garbage")
	assert.ErrorIs(t, err, hashing.ErrMalformedDigest)
}

func TestArgonHasher_NoVerify_AcceptsForeignDigests(t *testing.T) {
	digest, _ := newTestBcryptHasher(t).Make("pw")
	ok, err := hashing.NewArgonHasher(fastArgonConfig()).Check("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2idHasher_IgnoresVerifyFlag(t *testing.T) {
	cfg := fastArgonConfig()
	cfg.Verify = true
	digest, _ := newTestBcryptHasher(t).Make("pw")

	ok, err := hashing.NewArgon2idHasher(cfg).Check("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}
