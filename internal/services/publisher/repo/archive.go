// Package repo implements the file-backed dedup archive
package repo

import (
	"bufio"
	"os"
	"strings"

	perr "nexuproxy/internal/platform/errors"
)

// FileArchive is the append-only archive of delivered canonical links:
// plain text, one canonical link per line, no header, no ordering guarantee.
// The file is fully read before any write and written with a single append
// pass at run end, so crashes never remove or rewrite existing entries
type FileArchive struct {
	path string
}

// NewFileArchive returns an archive backed by the file at path
func NewFileArchive(path string) *FileArchive {
	return &FileArchive{path: path}
}

// Load reads the whole archive into a set. A missing file is a normal first
// run and yields an empty set with no error; a read failure yields an empty
// set plus the error so the caller can log and continue
func (a *FileArchive) Load() (map[string]struct{}, error) {
	set := map[string]struct{}{}

	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return set, perr.Wrapf(err, perr.ErrorCodeUnknown, "archive %s unreadable", a.path)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			set[line] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return set, perr.Wrapf(err, perr.ErrorCodeUnknown, "archive %s read failed", a.path)
	}
	return set, nil
}

// Append adds keys to the archive, one per line. No-op for an empty slice
func (a *FileArchive) Append(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "archive %s open for append failed", a.path)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "archive %s append failed", a.path)
	}
	return nil
}
