// Package idgen provides the component id strategies used by the builder.
// Components are keyed "<type>_<suffix>"; the generators here produce the
// suffix.
package idgen

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces an id suffix.
type Generator func() string

// UnixMillis returns a Generator that emits the creation time in unix
// milliseconds. Ids drawn within the same millisecond are bumped forward so
// the sequence stays strictly increasing.
func UnixMillis(now func() time.Time) Generator {
	if now == nil {
		now = time.Now
	}
	var (
		mu   sync.Mutex
		last int64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		ms := now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		last = ms
		return strconv.FormatInt(ms, 10)
	}
}

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps gen and prepends prefix to every id.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// ForStrategy resolves a configured strategy name. Unknown names fall back
// to UnixMillis.
func ForStrategy(name string, now func() time.Time) Generator {
	switch name {
	case "uuid", "uuidv7":
		return UUIDv7()
	default:
		return UnixMillis(now)
	}
}
