package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// Standalone store inspector: scans the document keyspace and renders one
// row per document. Uniqueness index entries (uniq:) are skipped.
func main() {
	dbPath := flag.String("db", "/tmp/portal-badger", "Path to badger DB")
	prefix := flag.String("prefix", "doc:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Collection", "ID", "Created At", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			rawKey := string(item.Key())
			if strings.HasPrefix(rawKey, "uniq:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				var doc map[string]any
				if err := json.Unmarshal(v, &doc); err != nil {
					// Keep scanning; a broken value only loses its own row.
					fmt.Printf("Error unmarshaling key %s: %v\n", rawKey, err)
					return nil
				}

				collection, id := splitKey(rawKey)
				table.Append([]string{collection, shortID(id), str(doc["created_at"]), detail(doc)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// splitKey breaks "doc:{collection}:{id}" into its parts.
func splitKey(key string) (collection, id string) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return key, ""
	}
	return parts[1], parts[2]
}

// detail picks the most telling field a document carries.
func detail(doc map[string]any) string {
	for _, field := range []string{"content", "name", "user_id"} {
		if v := str(doc[field]); v != "" {
			return v
		}
	}
	return ""
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
