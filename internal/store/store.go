package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// Load reads every ledger file of dir into one collection, file by file in
// name order and row by row within a file.
func Load(dir string, ignore []string) (*ledger.Collection, error) {
	files, err := Scan(dir, ignore)
	if err != nil {
		return nil, err
	}

	c := ledger.NewCollection()
	for _, f := range files {
		records, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		c.Append(records...)
	}
	return c, nil
}

// LoadFile reads the records of one ledger file.
func LoadFile(f File) ([]ledger.Record, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger file %s: %w", f.Name, err)
	}
	defer fh.Close()

	records, err := ReadRecords(fh, f.Direction)
	if err != nil {
		return nil, fmt.Errorf("reading ledger file %s: %w", f.Name, err)
	}
	return records, nil
}

// WriteFile creates dir/<direction>-<bucket> holding records. An existing
// file is replaced.
func WriteFile(dir string, direction ledger.Direction, bucket string, records []ledger.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating ledger dir: %w", err)
	}

	path := filepath.Join(dir, FileName(direction, bucket))
	fh, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating ledger file: %w", err)
	}
	if err := WriteRecords(fh, records); err != nil {
		fh.Close()
		return "", fmt.Errorf("writing ledger file: %w", err)
	}
	if err := fh.Close(); err != nil {
		return "", fmt.Errorf("closing ledger file: %w", err)
	}
	return path, nil
}
