// Package cache keeps fetched view sets keyed by logical query identity and
// coalesces concurrent loads of the same key into one underlying call.
package cache

import "strings"

// Key identifies one logical query: an entity kind plus its scoping
// parameters, e.g. ("messages","event",eventID) or ("events","technical").
type Key struct {
	Kind  string
	Parts []string
}

func NewKey(kind string, parts ...string) Key {
	return Key{Kind: kind, Parts: parts}
}

func (k Key) String() string {
	if len(k.Parts) == 0 {
		return k.Kind
	}
	return k.Kind + "/" + strings.Join(k.Parts, "/")
}

// HasPrefix matches on whole key segments: ("messages","event") covers
// ("messages","event",X) but never ("messages","eventual",Y).
func (k Key) HasPrefix(prefix Key) bool {
	if k.Kind != prefix.Kind || len(prefix.Parts) > len(k.Parts) {
		return false
	}
	for i, part := range prefix.Parts {
		if k.Parts[i] != part {
			return false
		}
	}
	return true
}
