// Package store persists decision records as one JSON object per line in
// a single JSONL file. Saves append; updates rewrite the whole file
// atomically so readers never observe a half-written store. A store handle
// is always passed in explicitly, which keeps tests isolated on their own
// temporary files.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/farsight-cli/farsight/internal/decision"
)

// DefaultPath is the store file used when configuration supplies nothing.
const DefaultPath = "decisions.jsonl"

// maxRecordSize bounds a single persisted record; reasoning and context
// prose can push records well past bufio's default line limit.
const maxRecordSize = 4 * 1024 * 1024

// LoadIssue describes one persisted line that could not be decoded. Bad
// lines are skipped, not fatal; callers surface the collected issues to
// the user instead of losing the rest of the corpus.
type LoadIssue struct {
	Line int
	Err  error
}

func (li LoadIssue) String() string {
	return fmt.Sprintf("line %d: %v", li.Line, li.Err)
}

// Store reads and writes decisions at a fixed path. The mutex serializes
// writers within this process; the atomic rewrite keeps the file whole
// across crashes.
type Store struct {
	path string

	mu     sync.Mutex
	issues []LoadIssue
}

// New returns a store backed by the JSONL file at path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// List returns every readable decision in file order. A missing file is an
// empty store. Malformed lines are skipped and recorded; read them back
// with Issues.
func (s *Store) List() ([]decision.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// ListUnscored returns decisions that do not yet have recorded outcomes.
func (s *Store) ListUnscored() ([]decision.Decision, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []decision.Decision
	for _, d := range all {
		if !d.Scored() {
			out = append(out, d)
		}
	}
	return out, nil
}

// ListDueForReview returns decided, unscored decisions whose review date
// has arrived as of now.
func (s *Store) ListDueForReview(now time.Time) ([]decision.Decision, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []decision.Decision
	for i := range all {
		if all[i].DueForReview(now) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Get resolves an id or unique id prefix to its decision. An exact id
// match wins outright; otherwise all ids sharing the prefix are
// candidates, and anything but exactly one is an error.
func (s *Store) Get(idOrPrefix string) (decision.Decision, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		return decision.Decision{}, fmt.Errorf("empty id: %w", ErrDecisionNotFound)
	}
	all, err := s.List()
	if err != nil {
		return decision.Decision{}, err
	}

	var matches []decision.Decision
	for _, d := range all {
		if d.ID == idOrPrefix {
			return d, nil
		}
		if strings.HasPrefix(d.ID, idOrPrefix) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return decision.Decision{}, fmt.Errorf("id %q: %w", idOrPrefix, ErrDecisionNotFound)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return decision.Decision{}, fmt.Errorf("id prefix %q matches %s: %w",
			idOrPrefix, strings.Join(ids, ", "), ErrAmbiguousID)
	}
}

// Save appends a new record. Ids must be unique within the store.
func (s *Store) Save(d decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID == d.ID {
			return fmt.Errorf("id %q: %w", d.ID, ErrDuplicateID)
		}
	}
	return s.appendRecord(d)
}

// Update rewrites the store with the record matching d.ID replaced,
// preserving the position of every other record. The rewrite goes through
// a temp file and a rename, so a crash mid-write leaves the old file
// intact.
func (s *Store) Update(d decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range existing {
		if existing[i].ID == d.ID {
			existing[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("id %q: %w", d.ID, ErrDecisionNotFound)
	}

	return s.atomicWrite(func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for i := range existing {
			if err := enc.Encode(&existing[i]); err != nil {
				return fmt.Errorf("encode record %s: %w", existing[i].ID, err)
			}
		}
		return nil
	})
}

// Issues returns the diagnostics collected by the most recent load.
func (s *Store) Issues() []LoadIssue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LoadIssue, len(s.issues))
	copy(out, s.issues)
	return out
}

// load reads the whole file. Callers hold s.mu.
func (s *Store) load() (decisions []decision.Decision, err error) {
	s.issues = nil

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var d decision.Decision
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			s.issues = append(s.issues, LoadIssue{Line: line, Err: err})
			continue
		}
		decisions = append(decisions, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return decisions, nil
}

// appendRecord writes one record to the end of the file. Callers hold s.mu.
func (s *Store) appendRecord(d decision.Decision) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := json.Marshal(&d)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return f.Sync()
}

// atomicWrite replaces the store file in one step: write a temp file in
// the same directory, sync, close, rename.
func (s *Store) atomicWrite(writeFunc func(io.Writer) error) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writeFunc(tmpFile); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}

	success = true
	return nil
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}
