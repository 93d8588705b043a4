package gateway

import "github.com/dgraph-io/badger/v4"

// Open opens the backing store at path. inMemory swaps it for an ephemeral
// store, used by tests and throwaway runs. Badger's own chatty logger is
// silenced; the gateway logs through slog instead.
func Open(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	return badger.Open(opts)
}
