package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// hashing.bcrypt.rounds → HASHING_BCRYPT_ROUNDS
var envKeyReplacer = strings.NewReplacer(".", "_")

// Load builds a viper-backed [Source].
//
// When path is non-empty the file is read (format inferred from the
// extension) and a read failure is returned. Environment variables such as
// HASHING_DRIVER or HASHING_ARGON_MEMORY override file values.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("hashing.driver", "bcrypt")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	return v, nil
}
