// Package hashing provides password hashing behind interchangeable drivers,
// modelled after Laravel's Illuminate/Hashing module.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface. Three drivers ship with
// this package:
//
//   - [BcryptHasher] — bcrypt, 10 rounds by default
//   - [ArgonHasher] — Argon2i, with an optional algorithm guard on Check
//   - [Argon2idHasher] — Argon2id, same parameters as Argon2i
//
// The [Registry] resolves a driver name to a hasher, building it on first use
// from a [Factory] and caching it for the registry's lifetime. The default
// driver comes from the "hashing.driver" configuration key and falls back to
// "bcrypt". [Registry.Make], [Registry.Check], [Registry.NeedsRehash] and
// [Registry.Info] delegate to the default driver.
//
// # Quick start
//
//	src := config.Map{"hashing": map[string]any{"driver": "argon2id"}}
//	r := hashing.NewRegistry(src)
//
//	digest, _ := r.Make("my-secret-password")
//	ok, _     := r.Check("my-secret-password", digest) // true
//
// # Cost parameters
//
// Every operation accepts per-call overrides:
//
//	digest, _ := r.Make(pw, hashing.WithMemory(65536), hashing.WithTime(3))
//
// The effective value of each parameter is the per-call option if supplied,
// else the driver's configured value, else the built-in constant
// (bcrypt rounds 10; Argon2 memory 1024 KiB, time 2, threads 2). Overrides
// never change the driver's stored defaults.
//
// # Re-hashing on login
//
//	ok, err := r.Check(password, stored)
//	if ok {
//	    if stale, _ := r.NeedsRehash(stored); stale {
//	        fresh, _ := r.Make(password)
//	        persist(userID, fresh)
//	    }
//	}
//
// # Digest formats
//
// bcrypt digests use the Modular Crypt Format ("$2a$10$..."); Argon2 digests
// use the PHC string format:
//
//	$argon2i$v=19$m=1024,t=2,p=2$<base64-salt>$<base64-hash>
//
// Both embed every parameter needed for verification, so any driver can
// verify any supported digest without extra configuration.
package hashing
