package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerGateway stores every collection in one BadgerDB.
// Keys are laid out as:
//  1. "doc:{collection}:{id}" for documents.
//  2. "uniq:{collection}:{constraint}:{v1}|{v2}" for unique index entries,
//     checked and written in the same transaction as the document so a
//     duplicate insert can never slip through between check and write.
type BadgerGateway struct {
	db     *badger.DB
	schema Schema
	log    *slog.Logger
}

func NewBadgerGateway(db *badger.DB, schema Schema, log *slog.Logger) *BadgerGateway {
	return &BadgerGateway{db: db, schema: schema, log: log}
}

func docKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("doc:%s:%s", collection, id))
}

func uniqueKey(collection string, constraint Unique, doc map[string]any) []byte {
	values := make([]string, 0, len(constraint.Fields))
	for _, field := range constraint.Fields {
		values = append(values, fmt.Sprintf("%v", doc[field]))
	}
	return []byte(fmt.Sprintf("uniq:%s:%s:%s", collection, constraint.Name, strings.Join(values, "|")))
}

// Insert appends one document to a collection. Missing "id" and "created_at"
// fields are filled in before the write. A violated uniqueness constraint
// surfaces as a constraint_violation error naming the constraint; every other
// storage failure surfaces as a transport_failure.
func (g *BadgerGateway) Insert(ctx context.Context, collection string, record any) error {
	if err := ctx.Err(); err != nil {
		return transportFailure(err)
	}
	if collection == "" {
		return badRequest("insert without a collection")
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return badRequest("record not serializable: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return badRequest("record is not a document: %v", err)
	}

	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.NewString()
		doc["id"] = id
	}
	if created, _ := doc["created_at"].(string); created == "" {
		doc["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	}

	bytes, err := json.Marshal(doc)
	if err != nil {
		return badRequest("record not serializable: %v", err)
	}

	// Two racing inserts of the same unique pair make badger abort one commit
	// with ErrConflict. Re-running that transaction re-reads the index entry
	// the winner just wrote, so the loser deterministically surfaces the
	// constraint violation instead of a spurious storage error.
	for {
		err = g.db.Update(func(txn *badger.Txn) error {
			for _, constraint := range g.schema[collection] {
				key := uniqueKey(collection, constraint, doc)
				_, getErr := txn.Get(key)
				switch {
				case getErr == nil:
					return constraintViolation(constraint.Name)
				case !errors.Is(getErr, badger.ErrKeyNotFound):
					return getErr
				}
				if setErr := txn.Set(key, []byte(id)); setErr != nil {
					return setErr
				}
			}
			return txn.Set(docKey(collection, id), bytes)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return gerr
		}
		return transportFailure(err)
	}

	g.log.Debug("document inserted", "collection", collection, "id", id)
	return nil
}

// Query runs a prefix scan over the collection, keeps the documents matching
// every filter, sorts them by the requested ordering and truncates to the
// limit. The whole read happens inside one snapshot transaction.
func (g *BadgerGateway) Query(ctx context.Context, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, transportFailure(err)
	}
	if q.Collection == "" {
		return nil, badRequest("query without a collection")
	}

	type row struct {
		doc map[string]any
		raw []byte
	}
	var rows []row

	err := g.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("doc:%s:", q.Collection))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var doc map[string]any
				if err := json.Unmarshal(value, &doc); err != nil {
					return err
				}
				if !matchesAll(doc, q.Filters) {
					return nil
				}
				raw := make([]byte, len(value))
				copy(raw, value)
				rows = append(rows, row{doc: doc, raw: raw})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, transportFailure(err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, order := range q.OrderBy {
			c := compareValues(rows[i].doc[order.Field], rows[j].doc[order.Field])
			if c == 0 {
				continue
			}
			if order.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	records := make([]Record, len(rows))
	for i, r := range rows {
		records[i] = Record(r.raw)
	}
	return records, nil
}
