// Package config supplies the configuration view consumed by the hashing
// registry and its driver factories.
//
// # Sources
//
// Everything reads through the [Source] interface, which addresses values with
// dot-separated keys:
//
//	hashing.driver          → "bcrypt" | "argon" | "argon2i" | "argon2id"
//	hashing.bcrypt.rounds   → int
//	hashing.argon.memory    → int (KiB)
//	hashing.argon.time      → int
//	hashing.argon.threads   → int
//	hashing.argon.verify    → bool
//
// Two implementations ship out of the box:
//
//   - [Map] — an in-memory nested map[string]any, handy for tests and for
//     applications that already hold their settings in a map.
//   - *viper.Viper — returned by [Load]; reads a yaml/json/toml file and
//     honours HASHING_* environment overrides.
//
// # Scoping
//
// [Scope] narrows a Source to one sub-tree so that a consumer can only see
// its own keys:
//
//	bcryptCfg := config.Scope(src, "hashing.bcrypt")
//	rounds, _ := config.Int(bcryptCfg, "rounds", 10)
package config
