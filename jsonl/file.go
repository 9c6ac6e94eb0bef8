// Package jsonl persists snapshot history and feedback records as JSONL files.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// maxRecordSize bounds one line. A snapshot carries the captured source of
// every imported file.
const maxRecordSize = 16 << 20

// locks serializes appends to the same file within the process.
var locks sync.Map // path -> *sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(path, new(sync.Mutex))
	return mu.(*sync.Mutex)
}

// appendRecord writes rec as one line at the end of path.
func appendRecord(path string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if len(data) >= maxRecordSize {
		return fmt.Errorf("record of %d bytes exceeds %d", len(data), maxRecordSize)
	}

	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// load decodes every line of path. A missing file has no records. A final
// line without a newline is an interrupted append and is skipped when it
// does not decode.
func load[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []T
	r := bufio.NewReaderSize(f, 64<<10)
	for n := 1; ; n++ {
		line, err := r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		complete := err == nil
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var rec T
			if derr := json.Unmarshal(trimmed, &rec); derr != nil {
				if !complete {
					break
				}
				return nil, fmt.Errorf("%s line %d: %w", path, n, derr)
			}
			records = append(records, rec)
		}
		if !complete {
			break
		}
	}
	return records, nil
}
