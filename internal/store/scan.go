package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cleared-dev/cashbook/internal/ledger"
)

// ErrMissingDirectory means the ledger directory does not exist.
var ErrMissingDirectory = errors.New("ledger directory does not exist")

// File describes one ledger file, named "<direction>-<bucket>".
type File struct {
	Name      string
	Path      string
	Direction ledger.Direction
	Bucket    string
}

// FileName returns the ledger file name for a direction and bucket.
func FileName(direction ledger.Direction, bucket string) string {
	return string(direction) + "-" + bucket
}

// ParseFileName splits "outgoing-2025-01" into direction and bucket.
func ParseFileName(name string) (ledger.Direction, string, error) {
	dir, bucket, found := strings.Cut(name, "-")
	if !found || bucket == "" {
		return "", "", fmt.Errorf("file name %q is not <direction>-<bucket>", name)
	}
	direction, err := ledger.ParseDirection(dir)
	if err != nil {
		return "", "", fmt.Errorf("file name %q: %w", name, err)
	}
	return direction, bucket, nil
}

// Scan lists the ledger files of dir in name order. Subdirectories, hidden
// files and names listed in ignore are skipped.
func Scan(dir string, ignore []string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrMissingDirectory)
		}
		return nil, fmt.Errorf("reading ledger dir: %w", err)
	}

	var files []File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || slices.Contains(ignore, name) {
			continue
		}
		direction, bucket, err := ParseFileName(name)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name:      name,
			Path:      filepath.Join(dir, name),
			Direction: direction,
			Bucket:    bucket,
		})
	}
	return files, nil
}
