package hashing

import (
	"github.com/cockroachdb/errors"

	"github.com/hasbyte1/go-laravel-hashing/config"
)

// Configuration keys read by the registry and the built-in factories.
const (
	ConfigKeyDriver = "hashing.driver"
	ConfigKeyBcrypt = "hashing.bcrypt"
	ConfigKeyArgon  = "hashing.argon"
)

// Factory constructs a driver from configuration. The built-in factories
// read only their own sub-tree of src and have no side effects, so calling
// one twice with the same src yields equivalent hashers.
type Factory func(src config.Source) (Hasher, error)

// NewBcryptDriver builds a [BcryptHasher] from "hashing.bcrypt.rounds".
func NewBcryptDriver(src config.Source) (Hasher, error) {
	cfg, err := bcryptConfigFrom(config.Scope(src, ConfigKeyBcrypt))
	if err != nil {
		return nil, err
	}
	return NewBcryptHasher(cfg), nil
}

// NewArgonDriver builds an Argon2i [ArgonHasher] from "hashing.argon.*".
func NewArgonDriver(src config.Source) (Hasher, error) {
	cfg, err := argonConfigFrom(config.Scope(src, ConfigKeyArgon))
	if err != nil {
		return nil, err
	}
	return NewArgonHasher(cfg), nil
}

// NewArgon2idDriver builds an [Argon2idHasher] from "hashing.argon.*".
func NewArgon2idDriver(src config.Source) (Hasher, error) {
	cfg, err := argonConfigFrom(config.Scope(src, ConfigKeyArgon))
	if err != nil {
		return nil, err
	}
	return NewArgon2idHasher(cfg), nil
}

func defaultFactories() map[DriverName]Factory {
	return map[DriverName]Factory{
		DriverBcrypt:   NewBcryptDriver,
		DriverArgon:    NewArgonDriver,
		DriverArgon2i:  NewArgonDriver,
		DriverArgon2id: NewArgon2idDriver,
	}
}

func bcryptConfigFrom(src config.Source) (BcryptConfig, error) {
	rounds, err := config.Int(src, "rounds", DefaultBcryptRounds)
	if err != nil {
		return BcryptConfig{}, errors.WithSecondaryError(errors.Wrapf(ErrInvalidOption, "hashing: bcrypt: %v", err), err)
	}
	return BcryptConfig{Rounds: rounds}, nil
}

func argonConfigFrom(src config.Source) (ArgonConfig, error) {
	var (
		cfg  ArgonConfig
		errs error
	)
	read := func(key string, def int) int {
		n, err := config.Int(src, key, def)
		errs = errors.CombineErrors(errs, err)
		return n
	}
	cfg.Memory = read("memory", DefaultArgonMemory)
	cfg.Time = read("time", DefaultArgonTime)
	cfg.Threads = read("threads", DefaultArgonThreads)

	verify, err := config.Bool(src, "verify", false)
	errs = errors.CombineErrors(errs, err)
	cfg.Verify = verify

	if errs != nil {
		return ArgonConfig{}, errors.WithSecondaryError(errors.Wrapf(ErrInvalidOption, "hashing: argon: %v", errs), errs)
	}
	return cfg, nil
}
