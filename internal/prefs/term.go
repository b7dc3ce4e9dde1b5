package prefs

import (
	"strings"
	"sync"
)

// TermStore persists the last successful search term across sessions.
type TermStore interface {
	Get() string
	Set(term string) error
	Delete() error
}

var (
	_ TermStore = (*FileStore)(nil)
	_ TermStore = (*MemoryStore)(nil)
)

// FileStore keeps the term under search_term in the prefs file, leaving the
// other preferences untouched.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by the prefs file at path (empty uses the default).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the stored term, or "" when none is stored or the file is unreadable.
func (s *FileStore) Get() string {
	p, _ := Load(s.path)
	return p.SearchTerm
}

// Set stores term.
func (s *FileStore) Set(term string) error {
	return Update(s.path, func(p *Prefs) { p.SearchTerm = strings.TrimSpace(term) })
}

// Delete removes the stored term.
func (s *FileStore) Delete() error {
	return Update(s.path, func(p *Prefs) { p.SearchTerm = "" })
}

// MemoryStore is a process-local TermStore.
type MemoryStore struct {
	mu   sync.Mutex
	term string
}

// NewMemoryStore returns a MemoryStore seeded with term.
func NewMemoryStore(term string) *MemoryStore {
	return &MemoryStore{term: term}
}

func (s *MemoryStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

func (s *MemoryStore) Set(term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = strings.TrimSpace(term)
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = ""
	return nil
}
