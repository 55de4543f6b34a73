package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// ErrInvalidValue is returned by the typed readers when a configured value
// cannot be converted to the requested type.
var ErrInvalidValue = errors.New("config: invalid value")

// Source is a read-only view over hierarchical configuration addressed with
// dot-separated keys such as "hashing.bcrypt.rounds".
//
// *viper.Viper satisfies Source, as does [Map].
type Source interface {
	// IsSet reports whether key holds a value.
	IsSet(key string) bool

	// Get returns the value stored at key, or nil.
	Get(key string) any
}

// Scope returns a Source exposing only the sub-tree of src rooted at prefix.
// Keys passed to the returned Source are resolved relative to prefix, so a
// consumer handed Scope(src, "hashing.bcrypt") cannot read "hashing.argon.*".
//
// A nil src yields an empty Source.
func Scope(src Source, prefix string) Source {
	if src == nil {
		return Map{}
	}
	return scoped{parent: src, prefix: strings.Trim(prefix, ".")}
}

type scoped struct {
	parent Source
	prefix string
}

func (s scoped) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + "." + k
}

func (s scoped) IsSet(key string) bool { return s.parent.IsSet(s.key(key)) }

func (s scoped) Get(key string) any { return s.parent.Get(s.key(key)) }

// Int reads key as an int, returning def when the key is absent.
func Int(src Source, key string, def int) (int, error) {
	if src == nil || !src.IsSet(key) {
		return def, nil
	}
	n, err := cast.ToIntE(src.Get(key))
	if err != nil {
		return def, errors.Wrapf(ErrInvalidValue, "%s: %v", key, err)
	}
	return n, nil
}

// Bool reads key as a bool, returning def when the key is absent.
func Bool(src Source, key string, def bool) (bool, error) {
	if src == nil || !src.IsSet(key) {
		return def, nil
	}
	b, err := cast.ToBoolE(src.Get(key))
	if err != nil {
		return def, errors.Wrapf(ErrInvalidValue, "%s: %v", key, err)
	}
	return b, nil
}

// String reads key as a string, returning def when the key is absent or
// holds an empty string.
func String(src Source, key string, def string) (string, error) {
	if src == nil || !src.IsSet(key) {
		return def, nil
	}
	s, err := cast.ToStringE(src.Get(key))
	if err != nil {
		return def, errors.Wrapf(ErrInvalidValue, "%s: %v", key, err)
	}
	if s = strings.TrimSpace(s); s == "" {
		return def, nil
	}
	return s, nil
}
