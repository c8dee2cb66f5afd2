package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Rana718/sqlforge/internal/types"
)

const maxLineSize = 4 * 1024 * 1024

// Store is an append-only JSON Lines file of training records.
type Store struct {
	path string
}

// Entry is one line of the file. Err is set when the line is not a valid record.
type Entry struct {
	Line   int
	Record types.TrainingRecord
	Err    error
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Count returns the number of lines in the file. A missing file counts as
// zero and a last line without a trailing newline still counts.
func (s *Store) Count() (int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	count := 0
	pending := false
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			pending = buf[n-1] != '\n'
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read dataset: %w", err)
		}
	}
	if pending {
		count++
	}
	return count, nil
}

// Append writes each record as its own line. Every line is handed to the OS
// before the next one is encoded, so an interrupted run loses nothing that
// was reported as written.
func (s *Store) Append(records ...types.TrainingRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	written := 0
	for _, record := range records {
		line, err := encodeLine(record)
		if err != nil {
			return written, err
		}
		if _, err := f.Write(line); err != nil {
			return written, fmt.Errorf("failed to write record: %w", err)
		}
		written++
	}

	if err := f.Close(); err != nil {
		return written, fmt.Errorf("failed to close dataset: %w", err)
	}
	return written, nil
}

// Records reads every line of the file. A missing file yields no entries.
func (s *Store) Records() ([]Entry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		entry := Entry{Line: line}
		if err := json.Unmarshal(scanner.Bytes(), &entry.Record); err != nil {
			entry.Err = fmt.Errorf("invalid record: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read dataset: %w", err)
	}
	return entries, nil
}

func encodeLine(record types.TrainingRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep <, > and & readable in SQL
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return buf.Bytes(), nil
}
